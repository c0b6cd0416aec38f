package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sergiuconi/casier-api/internal/domain/enum"
)

// Receipt is a finalized bon persisted to the receipts log. The frozen
// line items are stored as a JSON document: a receipt is immutable once
// written, so the rows are never queried line-by-line.
type Receipt struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Casa          int                `gorm:"not null;index" json:"casa"`
	BonNo         *int               `gorm:"index" json:"bon_no,omitempty"`
	Total         int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	PaymentMethod enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	Lines         json.RawMessage    `gorm:"type:jsonb" json:"lines"`
	IssuedAt      time.Time          `gorm:"not null;index" json:"issued_at"`
	CreatedAt     time.Time          `json:"created_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (r Receipt) MarshalJSON() ([]byte, error) {
	type Alias Receipt
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(r),
		Total: r.GetTotalDecimal(),
	})
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// GetTotalDecimal returns the total as a decimal
func (r *Receipt) GetTotalDecimal() float64 {
	return float64(r.Total) / 100
}
