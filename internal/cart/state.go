package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/sergiuconi/casier-api/internal/domain/enum"
	"github.com/sergiuconi/casier-api/pkg/money"
)

// Customer is the cart view of a customer record. The default anonymous
// private individual is the reset baseline.
type Customer struct {
	ID              string            `json:"id"`
	Type            enum.CustomerType `json:"type"`
	FirstName       string            `json:"firstName,omitempty"`
	LastName        string            `json:"lastName,omitempty"`
	CardID          string            `json:"cardId,omitempty"`
	DiscountPercent float64           `json:"discountPercent,omitempty"`
	NrAuto          string            `json:"nrAuto,omitempty"`
}

// AnonymousCustomer returns the default walk-in customer.
func AnonymousCustomer() Customer {
	return Customer{ID: "0", Type: enum.CustomerIndividual, LastName: "Persoana fizica"}
}

// PendingPayment is the confirmation handle returned by the settlement
// side-channel while a submitted payment awaits its terminal state.
type PendingPayment struct {
	BonNo       int                `json:"bon_no"`
	ProcessedAt string             `json:"processed_at"`
	Type        enum.PaymentMethod `json:"type,omitempty"`
}

// Totals is the derived money summary of a cart.
type Totals struct {
	Subtotal      float64 `json:"subtotal"`
	TotalDiscount float64 `json:"totalDiscount"`
	Total         float64 `json:"total"`
	Change        float64 `json:"change"`
}

// State is the full cart aggregate. Subtotal, TotalDiscount, Total and
// Change are derived: only Recalculate writes them, and every mutation of
// Items or CashGiven must pass through it before the state is observable.
type State struct {
	Items          []Item             `json:"items"`
	Customer       Customer           `json:"customer"`
	CashGiven      float64            `json:"cashGiven"`
	CodFiscal      string             `json:"codFiscal"`
	BonuriValorice float64            `json:"bonuriValorice"`
	CardAmount     float64            `json:"cardAmount"`
	NumerarAmount  float64            `json:"numerarAmount"`
	Subtotal       float64            `json:"subtotal"`
	TotalDiscount  float64            `json:"totalDiscount"`
	Total          float64            `json:"total"`
	Change         float64            `json:"change"`
	SelectedItemID string             `json:"selectedItemId,omitempty"`
	LastAction     string             `json:"lastAction,omitempty"`
	PaymentMethod  enum.PaymentMethod `json:"paymentMethod,omitempty"`
	PendingPayment *PendingPayment    `json:"pendingPayment,omitempty"`
}

// Receipt is a finalized, immutable snapshot of a paid cart. It is
// created only by the payment-completion transition.
type Receipt struct {
	ID            string             `json:"id"`
	Items         []Item             `json:"items"`
	Total         float64            `json:"total"`
	PaymentMethod enum.PaymentMethod `json:"paymentMethod"`
	Timestamp     time.Time          `json:"timestamp"`
}

// Initial returns the empty cart for the given customer.
func Initial(customer Customer) State {
	return State{Items: []Item{}, Customer: customer}
}

// ComputeTotals aggregates line totals. Storno lines subtract from the
// subtotal and reverse their discount contribution. Change is never
// negative: insufficient cash yields zero change, the engine does not
// block checkout on it.
func ComputeTotals(items []Item, cashGiven float64) Totals {
	var subtotal, totalDiscount float64
	for _, it := range items {
		lt := it.Totals()
		subtotal += lt.Total
		if it.Storno {
			totalDiscount -= lt.Discount
		} else {
			totalDiscount += lt.Discount
		}
	}
	subtotal = money.Round(subtotal)
	total := subtotal
	change := money.Round(cashGiven - total)
	if change < 0 {
		change = 0
	}
	return Totals{
		Subtotal:      subtotal,
		TotalDiscount: money.Round(totalDiscount),
		Total:         total,
		Change:        change,
	}
}

// Recalculate re-derives the money summary from Items and CashGiven.
// It is the single place the derived fields are written.
func Recalculate(s State) State {
	t := ComputeTotals(s.Items, s.CashGiven)
	s.Subtotal = t.Subtotal
	s.TotalDiscount = t.TotalDiscount
	s.Total = t.Total
	s.Change = t.Change
	return s
}

// Freeze snapshots the cart into an immutable receipt. The item slice is
// copied so later cart mutations cannot reach the frozen record.
func Freeze(s State, method enum.PaymentMethod, now time.Time) Receipt {
	items := make([]Item, len(s.Items))
	copy(items, s.Items)
	return Receipt{
		ID:            uuid.New().String(),
		Items:         items,
		Total:         s.Total,
		PaymentMethod: method,
		Timestamp:     now,
	}
}
