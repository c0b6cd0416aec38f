package cart

import "testing"

func TestMergeAccumulatesQuantity(t *testing.T) {
	product := Product{ID: "1", UPC: "P1", Name: "Apa plata", Price: 10}

	items, _ := Merge(nil, product, 2, Overrides{})
	if got := ComputeTotals(items, 0).Subtotal; !almostEqual(got, 20) {
		t.Fatalf("subtotal = %v, want 20", got)
	}

	items, id := Merge(items, product, 1, Overrides{})
	if len(items) != 1 {
		t.Fatalf("expected single merged line, got %d", len(items))
	}
	if !almostEqual(items[0].Qty, 3) {
		t.Fatalf("qty = %v, want 3", items[0].Qty)
	}
	if id != items[0].ID {
		t.Fatalf("merge returned id %q, line id %q", id, items[0].ID)
	}
	if got := ComputeTotals(items, 0).Subtotal; !almostEqual(got, 30) {
		t.Fatalf("subtotal = %v, want 30", got)
	}
}

func TestMergeOverridesReplaceNotAccumulate(t *testing.T) {
	product := Product{ID: "1", UPC: "P1", Name: "Apa plata", Price: 10}
	price := 100.0
	items, _ := Merge(nil, product, 1, Overrides{UnitPrice: &price})

	d := PercentOff(50)
	items, _ = Merge(items, product, 1, Overrides{Discount: &d})
	if !almostEqual(items[0].Qty, 2) {
		t.Fatalf("qty = %v, want 2", items[0].Qty)
	}
	if items[0].UnitPrice != 100 {
		t.Fatalf("unit price = %v, want earlier override kept", items[0].UnitPrice)
	}
	if items[0].Discount.Kind != DiscountPercent || items[0].Discount.Percent != 50 {
		t.Fatalf("discount = %+v, want percent 50 replacement", items[0].Discount)
	}
}

func TestMergeStornoAlwaysAppends(t *testing.T) {
	product := Product{ID: "1", UPC: "P1", Name: "Apa plata", Price: 10}
	items, _ := Merge(nil, product, 2, Overrides{})
	items, _ = Merge(items, product, 1, Overrides{Storno: true})
	if len(items) != 2 {
		t.Fatalf("expected reversal on its own line, got %d lines", len(items))
	}
	if !items[1].Storno {
		t.Fatal("appended line should carry the storno flag")
	}
	// A later forward scan still merges onto the forward line only.
	items, _ = Merge(items, product, 1, Overrides{})
	if len(items) != 2 || !almostEqual(items[0].Qty, 3) {
		t.Fatalf("forward scan merged wrongly: %d lines, qty %v", len(items), items[0].Qty)
	}
}

func TestMergeSkipsStornoLines(t *testing.T) {
	product := Product{ID: "1", UPC: "P1", Name: "Apa plata", Price: 10}
	items, _ := Merge(nil, product, 1, Overrides{Storno: true})
	items, _ = Merge(items, product, 1, Overrides{})
	if len(items) != 2 {
		t.Fatalf("forward scan must not merge onto a storno line, got %d lines", len(items))
	}
}

func TestMergeRoundsQtyToThreeDecimals(t *testing.T) {
	product := Product{ID: "w", UPC: "W1", Name: "Branza vrac", Price: 30}
	items, _ := Merge(nil, product, 0.3333, Overrides{})
	items, _ = Merge(items, product, 0.3333, Overrides{})
	if !almostEqual(items[0].Qty, 0.667) {
		t.Fatalf("qty = %v, want 0.667", items[0].Qty)
	}
}

func TestUpdateMissingIDIsNoop(t *testing.T) {
	items := []Item{NewItem(NewItemInput{Product: testProduct, Qty: 1})}
	out := Update(items, "missing", func(it Item) Item {
		it.Qty = 99
		return it
	})
	if out[0].Qty != 1 {
		t.Fatalf("update on missing id mutated a line: %+v", out[0])
	}
}

func TestRemove(t *testing.T) {
	items := []Item{
		NewItem(NewItemInput{Product: testProduct, Qty: 1}),
		NewItem(NewItemInput{Product: Product{ID: "2", Price: 5}, Qty: 1}),
	}
	out := Remove(items, items[0].ID)
	if len(out) != 1 || out[0].Product.ID != "2" {
		t.Fatalf("remove left %+v", out)
	}
	if out = Remove(out, "missing"); len(out) != 1 {
		t.Fatal("remove on missing id should be a no-op")
	}
}

func TestMoveAdjacentSwap(t *testing.T) {
	a := NewItem(NewItemInput{Product: Product{ID: "a", Price: 1}, Qty: 1})
	b := NewItem(NewItemInput{Product: Product{ID: "b", Price: 1}, Qty: 1})
	c := NewItem(NewItemInput{Product: Product{ID: "c", Price: 1}, Qty: 1})
	items := []Item{a, b, c}

	out := Move(items, b.ID, MoveUp)
	if out[0].ID != b.ID || out[1].ID != a.ID {
		t.Fatalf("move up order: %q %q %q", out[0].Product.ID, out[1].Product.ID, out[2].Product.ID)
	}

	// Boundary moves are no-ops.
	out = Move(items, a.ID, MoveUp)
	if out[0].ID != a.ID {
		t.Fatal("top line moved up")
	}
	out = Move(items, c.ID, MoveDown)
	if out[2].ID != c.ID {
		t.Fatal("bottom line moved down")
	}
}

func TestMoveDepositLineIsNoop(t *testing.T) {
	items := []Item{
		NewItem(NewItemInput{Product: Product{ID: "a", Price: 1}, Qty: 1}),
		newDepositItem("PET", 2),
	}
	out := Move(items, items[1].ID, MoveUp)
	if out[1].Kind != KindDeposit {
		t.Fatal("deposit line was reordered")
	}
}

func TestMoveIntoDepositLineIsNoop(t *testing.T) {
	// The last merchandise line sits directly above the deposit block;
	// moving it down must not drag the deposit line above merchandise.
	items := []Item{
		NewItem(NewItemInput{Product: Product{ID: "a", Price: 1}, Qty: 1}),
		newDepositItem("PET", 2),
	}
	out := Move(items, items[0].ID, MoveDown)
	if out[0].Kind != KindReal {
		t.Fatal("merchandise line was swapped past the deposit line")
	}
	if out[1].Kind != KindDeposit {
		t.Fatal("deposit line was reordered above merchandise")
	}
}
