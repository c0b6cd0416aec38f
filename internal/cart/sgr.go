package cart

import (
	"github.com/sergiuconi/casier-api/internal/domain/enum"
	"github.com/sergiuconi/casier-api/pkg/money"
)

// DepositQuantities sums quantities per deposit category over active
// (non-storno) merchandise lines. Reversed lines are excluded so a
// stornoed bottle no longer owes its deposit.
func DepositQuantities(items []Item) map[enum.SGRCategory]float64 {
	sums := make(map[enum.SGRCategory]float64)
	for _, it := range items {
		if it.Kind != KindReal || it.Storno || it.Product.SGR == enum.SGRNone {
			continue
		}
		sums[it.Product.SGR] = money.RoundTo(sums[it.Product.SGR]+it.Qty, 3)
	}
	return sums
}

// Synthesize reconciles the synthetic deposit lines with the merchandise
// lines: existing deposit lines are stripped and one fresh line per
// category with a positive summed quantity is appended. It must run after
// every mutation of the item list, including storno toggles.
func Synthesize(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Kind != KindDeposit {
			out = append(out, it)
		}
	}

	sums := DepositQuantities(out)
	for _, cat := range enum.SGRCategories {
		qty := sums[cat]
		if qty <= 0 {
			continue
		}
		out = append(out, newDepositItem(cat, qty))
	}
	return out
}

func newDepositItem(cat enum.SGRCategory, qty float64) Item {
	item := NewItem(NewItemInput{
		Product: Product{
			ID:    cat.Code(),
			UPC:   cat.Code(),
			Name:  cat.LineName(),
			Price: enum.SGRDepositValue,
			SGR:   cat,
		},
		Qty: qty,
	})
	item.Kind = KindDeposit
	item.DepositFor = cat
	return item
}
