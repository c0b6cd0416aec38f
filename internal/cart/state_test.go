package cart

import (
	"testing"
	"time"

	"github.com/sergiuconi/casier-api/internal/domain/enum"
)

func TestComputeTotalsSimpleCart(t *testing.T) {
	items := []Item{NewItem(NewItemInput{Product: testProduct, Qty: 2})}
	totals := ComputeTotals(items, 0)
	if !almostEqual(totals.Subtotal, 20) {
		t.Fatalf("subtotal = %v, want 20", totals.Subtotal)
	}
	if !almostEqual(totals.TotalDiscount, 0) {
		t.Fatalf("discount = %v, want 0", totals.TotalDiscount)
	}
	if totals.Total != totals.Subtotal {
		t.Fatalf("total %v != subtotal %v", totals.Total, totals.Subtotal)
	}
}

func TestComputeTotalsChange(t *testing.T) {
	items := []Item{NewItem(NewItemInput{Product: Product{ID: "a", Price: 32.5}, Qty: 1})}
	if got := ComputeTotals(items, 50).Change; !almostEqual(got, 17.5) {
		t.Fatalf("change = %v, want 17.50", got)
	}
	// Insufficient cash yields zero change, not a deficit.
	if got := ComputeTotals(items, 20).Change; got != 0 {
		t.Fatalf("change = %v, want 0", got)
	}
}

func TestComputeTotalsStornoReversesLineAndDiscount(t *testing.T) {
	forward := NewItem(NewItemInput{Product: testProduct, Qty: 2, Discount: PercentOff(10)})
	reversed := forward
	reversed.Storno = true

	totals := ComputeTotals([]Item{forward, reversed}, 0)
	if !almostEqual(totals.Subtotal, 0) {
		t.Fatalf("subtotal = %v, want 0 after full reversal", totals.Subtotal)
	}
	if !almostEqual(totals.TotalDiscount, 0) {
		t.Fatalf("discount = %v, want 0 after full reversal", totals.TotalDiscount)
	}
}

func TestToggleStornoTwiceRestoresSubtotal(t *testing.T) {
	items := []Item{NewItem(NewItemInput{Product: testProduct, Qty: 3, Discount: PercentOff(10)})}
	before := ComputeTotals(items, 0)

	toggle := func(it Item) Item {
		it.Storno = !it.Storno
		return it
	}
	items = Update(items, items[0].ID, toggle)
	items = Update(items, items[0].ID, toggle)

	after := ComputeTotals(items, 0)
	if before != after {
		t.Fatalf("double storno changed totals: %+v vs %+v", before, after)
	}
}

func TestRecalculateWritesDerivedFields(t *testing.T) {
	s := Initial(AnonymousCustomer())
	s.Items = []Item{NewItem(NewItemInput{Product: testProduct, Qty: 2})}
	s.CashGiven = 50
	s = Recalculate(s)
	if !almostEqual(s.Subtotal, 20) || !almostEqual(s.Total, 20) || !almostEqual(s.Change, 30) {
		t.Fatalf("recalculated state = subtotal %v total %v change %v", s.Subtotal, s.Total, s.Change)
	}
}

func TestFreezeCopiesItems(t *testing.T) {
	s := Initial(AnonymousCustomer())
	s.Items = []Item{NewItem(NewItemInput{Product: testProduct, Qty: 1})}
	s = Recalculate(s)

	receipt := Freeze(s, enum.PaymentCash, time.Now())
	if receipt.Total != s.Total || len(receipt.Items) != 1 {
		t.Fatalf("receipt = %+v", receipt)
	}

	// Mutating the live cart must not reach the frozen record.
	s.Items[0].Qty = 99
	if receipt.Items[0].Qty == 99 {
		t.Fatal("receipt items share backing array with live cart")
	}
}

func TestAnonymousCustomerIsIndividual(t *testing.T) {
	c := AnonymousCustomer()
	if c.Type != enum.CustomerIndividual {
		t.Fatalf("type = %v, want pf", c.Type)
	}
}
