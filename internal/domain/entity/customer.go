package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sergiuconi/casier-api/internal/domain/enum"
)

// Customer represents a registered customer of the store. Walk-in sales
// use the seeded anonymous private-individual record.
type Customer struct {
	ID              uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Type            enum.CustomerType `gorm:"size:2;not null;default:'pf'" json:"type"`
	FirstName       *string           `gorm:"size:255" json:"first_name,omitempty"`
	LastName        *string           `gorm:"size:255" json:"last_name,omitempty"`
	CardID          *string           `gorm:"size:100;index" json:"card_id,omitempty"`
	DiscountPercent float64           `gorm:"default:0" json:"discount_percent,omitempty"`
	NrAuto          *string           `gorm:"size:20" json:"nr_auto,omitempty"`
	CodFiscal       *string           `gorm:"size:50" json:"cod_fiscal,omitempty"`
	Anonymous       bool              `gorm:"default:false;index" json:"anonymous,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	DeletedAt       gorm.DeletedAt    `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
