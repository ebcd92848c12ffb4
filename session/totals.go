package session

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PricedLine is a cart line resolved against the catalog.
type PricedLine struct {
	Product   Product
	Quantity  int
	LineTotal decimal.Decimal
}

// FilteredProducts returns the products the session's category filter lets
// through, in catalog order.
func FilteredProducts(catalog *Catalog, s State) []Product {
	return catalog.FilterByCategory(s.SelectedCategory())
}

// TotalItemCount sums quantities across the cart.
func TotalItemCount(s State) int {
	total := 0
	for _, l := range s.cart {
		total += l.Quantity
	}
	return total
}

// TotalPrice sums quantity times unit price across the cart.
func TotalPrice(s State, catalog *Catalog) (decimal.Decimal, error) {
	_, total, err := PriceLines(s, catalog)
	return total, err
}

// PriceLines resolves every cart line against the catalog. A line whose
// product is missing fails the whole computation with
// ErrDanglingCartReference rather than being skipped.
func PriceLines(s State, catalog *Catalog) ([]PricedLine, decimal.Decimal, error) {
	lines := make([]PricedLine, 0, len(s.cart))
	total := decimal.Zero
	for _, l := range s.cart {
		p, ok := catalog.Lookup(l.ProductID)
		if !ok {
			return nil, decimal.Zero, fmt.Errorf("%w: product %d", ErrDanglingCartReference, l.ProductID)
		}
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		lines = append(lines, PricedLine{Product: p, Quantity: l.Quantity, LineTotal: lineTotal})
		total = total.Add(lineTotal)
	}
	return lines, total, nil
}
