// Package cart implements the receipt computation engine: line items,
// discount arithmetic, cart totals, lifecycle operations and deposit-line
// synthesis. Everything in this package is pure — functions take values
// and return new values, never touching storage or the network. The
// store layer (internal/application/service) owns identity, sequencing
// and persistence.
package cart

import (
	"github.com/google/uuid"

	"github.com/sergiuconi/casier-api/internal/domain/enum"
	"github.com/sergiuconi/casier-api/pkg/money"
)

// MinQty is the smallest quantity a line may carry. Operator input below
// it is floored, never rejected.
const MinQty = 0.0001

// Kind discriminates operator-entered merchandise lines from synthetic
// deposit lines derived by Synthesize.
type Kind string

const (
	KindReal    Kind = "real"
	KindDeposit Kind = "deposit"
)

// Product is the catalog snapshot embedded in a line at the moment it is
// added. Later catalog changes must not retroactively alter the line, so
// the snapshot is held by value. The fiscal classification fields are
// opaque to the engine and only travel to the fiscal export.
type Product struct {
	ID          string           `json:"id"`
	UPC         string           `json:"upc"`
	Name        string           `json:"name"`
	Price       float64          `json:"price"`
	VATRate     float64          `json:"vatRate,omitempty"`
	Departament int              `json:"departament,omitempty"`
	Clasa       int              `json:"clasa,omitempty"`
	Grupa       int              `json:"grupa,omitempty"`
	Gest        string           `json:"gest,omitempty"`
	Tax1        int              `json:"tax1,omitempty"`
	Tax2        int              `json:"tax2,omitempty"`
	Tax3        int              `json:"tax3,omitempty"`
	SGR         enum.SGRCategory `json:"sgr,omitempty"`
}

// DiscountKind tags the Discount union.
type DiscountKind string

const (
	DiscountNone    DiscountKind = ""
	DiscountPercent DiscountKind = "percent"
	DiscountValue   DiscountKind = "value"
)

// Discount is a tagged union: no discount, a percentage of the line base,
// or a fixed amount. Percent and value are mutually exclusive by
// construction; a value discount always replaces a percent one.
type Discount struct {
	Kind    DiscountKind `json:"kind,omitempty"`
	Percent float64      `json:"percent,omitempty"`
	Value   float64      `json:"value,omitempty"`
}

// NoDiscount returns the zero discount.
func NoDiscount() Discount {
	return Discount{}
}

// PercentOff builds a percentage discount clamped to 0–100.
// Non-positive input collapses to no discount.
func PercentOff(p float64) Discount {
	if p <= 0 {
		return Discount{}
	}
	if p > 100 {
		p = 100
	}
	return Discount{Kind: DiscountPercent, Percent: p}
}

// ValueOff builds a fixed-amount discount. Non-positive input collapses
// to no discount; clamping against the line base happens at computation
// time, since the base depends on quantity.
func ValueOff(v float64) Discount {
	if v <= 0 {
		return Discount{}
	}
	return Discount{Kind: DiscountValue, Value: v}
}

// IsZero reports whether no discount is set.
func (d Discount) IsZero() bool {
	return d.Kind == DiscountNone
}

// Item is one entry on the receipt. Multiple items may reference the same
// product; identity is the line id, generated at creation.
type Item struct {
	ID         string           `json:"id"`
	Product    Product          `json:"product"`
	Qty        float64          `json:"qty"`
	UnitPrice  float64          `json:"unitPrice"`
	Discount   Discount         `json:"discount,omitempty"`
	Storno     bool             `json:"storno,omitempty"`
	Casa       int              `json:"casa,omitempty"`
	Kind       Kind             `json:"kind"`
	DepositFor enum.SGRCategory `json:"depositFor,omitempty"`
}

// NewItemInput carries the operator input for a new line.
type NewItemInput struct {
	Product   Product
	Qty       float64
	UnitPrice *float64 // nil means the catalog price
	Discount  Discount
	Storno    bool
	Casa      int
}

// NewItem builds a merchandise line from operator input. Quantity is
// floored to MinQty and the unit price defaults to the catalog price.
func NewItem(in NewItemInput) Item {
	qty := in.Qty
	if qty < MinQty {
		qty = MinQty
	}
	price := in.Product.Price
	if in.UnitPrice != nil {
		price = *in.UnitPrice
	}
	return Item{
		ID:        uuid.New().String(),
		Product:   in.Product,
		Qty:       qty,
		UnitPrice: price,
		Discount:  in.Discount,
		Storno:    in.Storno,
		Casa:      in.Casa,
		Kind:      KindReal,
	}
}

// LineTotals holds the per-line money breakdown. Discount is reported
// magnitude-only; Total carries the storno sign.
type LineTotals struct {
	Base     float64 `json:"base"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// Totals computes the line money breakdown. A value discount is clamped
// to the line base, never rejected; a percent discount only applies when
// no value discount is set. A storno line contributes its discounted
// value with the sign flipped.
func (it Item) Totals() LineTotals {
	base := money.Round(it.Qty * it.UnitPrice)

	var discount float64
	switch it.Discount.Kind {
	case DiscountValue:
		discount = it.Discount.Value
		if discount > base {
			discount = base
		}
	case DiscountPercent:
		discount = money.Round(base * it.Discount.Percent / 100)
	}
	discount = money.Round(discount)

	total := money.Round(base - discount)
	if it.Storno {
		total = -total
	}
	return LineTotals{Base: base, Discount: discount, Total: total}
}
