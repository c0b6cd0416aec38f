package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sergiuconi/casier-api/internal/domain/enum"
)

// Product is a catalog record resolved by scan code. The fiscal
// classification fields (departament, clasa, grupa, gest, tax1..3) are
// opaque to the cart engine and only travel to the fiscal export.
type Product struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UPC         string           `gorm:"size:100;unique;not null;column:upc" json:"upc"`
	Name        string           `gorm:"size:255;not null" json:"name"`
	Price       int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	VATRate     float64          `gorm:"default:0" json:"vat_rate,omitempty"`
	Departament int              `gorm:"default:0" json:"departament,omitempty"`
	Clasa       int              `gorm:"default:0" json:"clasa,omitempty"`
	Grupa       int              `gorm:"default:0" json:"grupa,omitempty"`
	Gest        string           `gorm:"size:50" json:"gest,omitempty"`
	Tax1        int              `gorm:"default:0" json:"tax1,omitempty"`
	Tax2        int              `gorm:"default:0" json:"tax2,omitempty"`
	Tax3        int              `gorm:"default:0" json:"tax3,omitempty"`
	SGR         enum.SGRCategory `gorm:"size:20;column:sgr" json:"sgr,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(p),
		Price: p.GetPriceDecimal(),
	})
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// GetPriceDecimal returns the reference unit price as a decimal
func (p *Product) GetPriceDecimal() float64 {
	return float64(p.Price) / 100
}

// SetPriceFromDecimal sets the reference unit price from a decimal value
func (p *Product) SetPriceFromDecimal(price float64) {
	p.Price = int64(price*100 + 0.5)
}
