package cart

import (
	"testing"

	"github.com/sergiuconi/casier-api/internal/domain/enum"
)

func petBottle(qty float64) Item {
	return NewItem(NewItemInput{
		Product: Product{ID: "pet1", UPC: "P100", Name: "Apa minerala", Price: 4, SGR: enum.SGRPet},
		Qty:     qty,
	})
}

func TestSynthesizeAppendsOneLinePerCategory(t *testing.T) {
	items := []Item{
		petBottle(2),
		NewItem(NewItemInput{
			Product: Product{ID: "doza1", UPC: "D100", Name: "Suc doza", Price: 3, SGR: enum.SGRCan},
			Qty:     6,
		}),
		NewItem(NewItemInput{Product: Product{ID: "paine", UPC: "B1", Name: "Paine", Price: 8.25}, Qty: 1}),
	}
	out := Synthesize(items)
	if len(out) != 5 {
		t.Fatalf("expected 3 real + 2 deposit lines, got %d", len(out))
	}

	deposits := map[enum.SGRCategory]Item{}
	for _, it := range out {
		if it.Kind == KindDeposit {
			deposits[it.DepositFor] = it
		}
	}
	pet, ok := deposits[enum.SGRPet]
	if !ok || !almostEqual(pet.Qty, 2) || pet.UnitPrice != enum.SGRDepositValue {
		t.Fatalf("PET deposit line = %+v", pet)
	}
	if pet.Product.ID != "1112" {
		t.Fatalf("PET deposit carries code %q, want 1112", pet.Product.ID)
	}
	can, ok := deposits[enum.SGRCan]
	if !ok || !almostEqual(can.Qty, 6) {
		t.Fatalf("Doza deposit line = %+v", can)
	}
	if _, ok := deposits[enum.SGRGlass]; ok {
		t.Fatal("glass deposit line synthesized with zero glass quantity")
	}
}

func TestSynthesizeIsIdempotent(t *testing.T) {
	items := Synthesize([]Item{petBottle(3)})
	again := Synthesize(items)
	if len(again) != len(items) {
		t.Fatalf("second synthesis changed line count: %d vs %d", len(again), len(items))
	}
	var count int
	for _, it := range again {
		if it.Kind == KindDeposit {
			count++
			if !almostEqual(it.Qty, 3) {
				t.Fatalf("deposit qty = %v, want 3", it.Qty)
			}
		}
	}
	if count != 1 {
		t.Fatalf("deposit lines = %d, want 1", count)
	}
}

func TestSynthesizeExcludesStornoLines(t *testing.T) {
	bottle := petBottle(2)
	items := Synthesize([]Item{bottle})

	items = Update(items, bottle.ID, func(it Item) Item {
		it.Storno = true
		return it
	})
	items = Synthesize(items)
	for _, it := range items {
		if it.Kind == KindDeposit {
			t.Fatalf("deposit line remains after storno of all merchandise: %+v", it)
		}
	}
}

func TestSynthesizeClearsAfterRemoval(t *testing.T) {
	bottle := petBottle(1)
	items := Synthesize([]Item{bottle})
	items = Synthesize(Remove(items, bottle.ID))
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}
}

func TestDepositQuantitiesIgnoresDepositAndStornoLines(t *testing.T) {
	bottle := petBottle(2)
	reversed := petBottle(1)
	reversed.Storno = true
	items := Synthesize([]Item{bottle, reversed})

	sums := DepositQuantities(items)
	if !almostEqual(sums[enum.SGRPet], 2) {
		t.Fatalf("PET sum = %v, want 2 (reversed line excluded)", sums[enum.SGRPet])
	}
}

func TestDepositLinesCountTowardTotals(t *testing.T) {
	items := Synthesize([]Item{petBottle(2)})
	totals := ComputeTotals(items, 0)
	// 2 * 4.00 merchandise + 2 * 0.50 deposit.
	if !almostEqual(totals.Subtotal, 9) {
		t.Fatalf("subtotal = %v, want 9", totals.Subtotal)
	}
}
