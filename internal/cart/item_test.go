package cart

import (
	"math"
	"testing"
)

var testProduct = Product{ID: "test", UPC: "0001", Name: "Produs test", Price: 10}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLineTotalsPercentDiscount(t *testing.T) {
	item := NewItem(NewItemInput{
		Product:  testProduct,
		Qty:      3,
		Discount: PercentOff(10),
	})
	lt := item.Totals()
	if !almostEqual(lt.Base, 30) {
		t.Fatalf("base = %v, want 30", lt.Base)
	}
	if !almostEqual(lt.Discount, 3) {
		t.Fatalf("discount = %v, want 3", lt.Discount)
	}
	if !almostEqual(lt.Total, 27) {
		t.Fatalf("total = %v, want 27", lt.Total)
	}
}

func TestLineTotalsValueDiscountWins(t *testing.T) {
	// Value and percent cannot coexist on a constructed item, but even a
	// hand-built line with both applies the value discount only.
	item := Item{
		ID:        "x",
		Product:   testProduct,
		Qty:       2,
		UnitPrice: 10,
		Discount:  Discount{Kind: DiscountValue, Percent: 50, Value: 3},
		Kind:      KindReal,
	}
	lt := item.Totals()
	if !almostEqual(lt.Discount, 3) {
		t.Fatalf("discount = %v, want 3", lt.Discount)
	}
	if !almostEqual(lt.Total, 17) {
		t.Fatalf("total = %v, want 17", lt.Total)
	}
}

func TestLineTotalsValueDiscountClampedToBase(t *testing.T) {
	item := NewItem(NewItemInput{
		Product:  testProduct,
		Qty:      1,
		Discount: ValueOff(25),
	})
	lt := item.Totals()
	if !almostEqual(lt.Discount, 10) {
		t.Fatalf("discount = %v, want clamp to base 10", lt.Discount)
	}
	if !almostEqual(lt.Total, 0) {
		t.Fatalf("total = %v, want 0", lt.Total)
	}
}

func TestLineTotalsStornoFlipsSignOnly(t *testing.T) {
	item := NewItem(NewItemInput{
		Product:  testProduct,
		Qty:      2,
		Discount: PercentOff(10),
		Storno:   true,
	})
	lt := item.Totals()
	if !almostEqual(lt.Total, -18) {
		t.Fatalf("storno total = %v, want -18", lt.Total)
	}
	if !almostEqual(lt.Discount, 2) {
		t.Fatalf("storno discount reported magnitude-only, got %v", lt.Discount)
	}
}

func TestLineTotalsIdempotent(t *testing.T) {
	item := NewItem(NewItemInput{Product: testProduct, Qty: 2.5, Discount: PercentOff(7)})
	first := item.Totals()
	second := item.Totals()
	if first != second {
		t.Fatalf("totals not idempotent: %+v vs %+v", first, second)
	}
}

func TestNewItemFloorsQty(t *testing.T) {
	tests := []struct {
		name string
		qty  float64
		want float64
	}{
		{"zero", 0, MinQty},
		{"negative", -3, MinQty},
		{"fractional kept", 0.25, 0.25},
		{"default-ish", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := NewItem(NewItemInput{Product: testProduct, Qty: tt.qty})
			if item.Qty != tt.want {
				t.Fatalf("qty = %v, want %v", item.Qty, tt.want)
			}
		})
	}
}

func TestNewItemDefaultsToCatalogPrice(t *testing.T) {
	item := NewItem(NewItemInput{Product: testProduct, Qty: 1})
	if item.UnitPrice != 10 {
		t.Fatalf("unit price = %v, want catalog price 10", item.UnitPrice)
	}
	override := 7.5
	item = NewItem(NewItemInput{Product: testProduct, Qty: 1, UnitPrice: &override})
	if item.UnitPrice != 7.5 {
		t.Fatalf("unit price = %v, want override 7.5", item.UnitPrice)
	}
}

func TestDiscountConstructorsClamp(t *testing.T) {
	if d := PercentOff(150); d.Percent != 100 {
		t.Fatalf("percent = %v, want clamp to 100", d.Percent)
	}
	if d := PercentOff(-5); !d.IsZero() {
		t.Fatalf("negative percent should collapse to no discount, got %+v", d)
	}
	if d := ValueOff(-2); !d.IsZero() {
		t.Fatalf("negative value should collapse to no discount, got %+v", d)
	}
	if d := PercentOff(30); d.Kind != DiscountPercent || d.Value != 0 {
		t.Fatalf("percent discount carries stray value: %+v", d)
	}
	if d := ValueOff(3); d.Kind != DiscountValue || d.Percent != 0 {
		t.Fatalf("value discount carries stray percent: %+v", d)
	}
}

func TestNewItemGeneratesUniqueIDs(t *testing.T) {
	a := NewItem(NewItemInput{Product: testProduct, Qty: 1})
	b := NewItem(NewItemInput{Product: testProduct, Qty: 1})
	if a.ID == b.ID || a.ID == "" {
		t.Fatalf("expected distinct non-empty ids, got %q and %q", a.ID, b.ID)
	}
}
