package cart

import "github.com/sergiuconi/casier-api/pkg/money"

// Direction selects the neighbor for an adjacent swap.
type Direction int

const (
	MoveUp Direction = iota
	MoveDown
)

// Overrides carries per-scan replacements applied when a product is added.
// A nil field keeps the existing value on a merged line.
type Overrides struct {
	UnitPrice *float64
	Discount  *Discount
	Storno    bool
	Casa      int
}

// Merge adds qty of product to the cart. Repeated scans of the same
// barcode consolidate into one printed line: an existing non-storno
// merchandise line with the same product id accumulates the quantity,
// with override fields replacing (not accumulating on) the merged line.
// Explicit reversals always append a new line so they stay distinct from
// the forward sale they reverse. Returns the new slice and the id of the
// touched line.
func Merge(items []Item, product Product, qty float64, ov Overrides) ([]Item, string) {
	existing := -1
	if !ov.Storno {
		for i, it := range items {
			if it.Kind == KindReal && !it.Storno && it.Product.ID == product.ID {
				existing = i
				break
			}
		}
	}

	if existing == -1 {
		in := NewItemInput{
			Product:   product,
			Qty:       qty,
			UnitPrice: ov.UnitPrice,
			Storno:    ov.Storno,
			Casa:      ov.Casa,
		}
		if ov.Discount != nil {
			in.Discount = *ov.Discount
		}
		item := NewItem(in)
		out := make([]Item, len(items), len(items)+1)
		copy(out, items)
		return append(out, item), item.ID
	}

	out := make([]Item, len(items))
	copy(out, items)
	it := out[existing]
	it.Qty = money.RoundTo(it.Qty+qty, 3)
	if ov.UnitPrice != nil {
		it.UnitPrice = *ov.UnitPrice
	}
	if ov.Discount != nil {
		it.Discount = *ov.Discount
	}
	out[existing] = it
	return out, it.ID
}

// Update replaces the line matching id through a pure transform.
// Missing ids are a no-op.
func Update(items []Item, id string, fn func(Item) Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	for i, it := range out {
		if it.ID == id {
			out[i] = fn(it)
			break
		}
	}
	return out
}

// Remove filters out the line matching id. Missing ids are a no-op.
func Remove(items []Item, id string) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

// Move swaps the line with its immediate neighbor. Boundary moves and
// synthetic deposit lines are no-ops: deposit lines are a derived
// projection and cannot be reordered by the operator.
func Move(items []Item, id string, dir Direction) []Item {
	index := -1
	for i, it := range items {
		if it.ID == id {
			index = i
			break
		}
	}
	if index == -1 || items[index].Kind == KindDeposit {
		return items
	}
	target := index - 1
	if dir == MoveDown {
		target = index + 1
	}
	if target < 0 || target >= len(items) {
		return items
	}
	// Swapping with a deposit line would pull it above merchandise.
	if items[target].Kind == KindDeposit {
		return items
	}
	out := make([]Item, len(items))
	copy(out, items)
	out[index], out[target] = out[target], out[index]
	return out
}
