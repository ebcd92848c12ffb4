package session

import "github.com/shopspring/decimal"

// Receipt is what a successful checkout reports.
type Receipt struct {
	Lines     []PricedLine
	ItemCount int
	Total     decimal.Decimal
}

// Checkout finalizes the cart. On success the cart is emptied and the cart
// view closed; the wishlist and category filter are kept. On failure the
// returned state is the receiver.
func (s State) Checkout(catalog *Catalog) (State, Receipt, error) {
	if s.CartEmpty() {
		return s, Receipt{}, ErrEmptyCart
	}
	lines, total, err := PriceLines(s, catalog)
	if err != nil {
		return s, Receipt{}, err
	}
	receipt := Receipt{
		Lines:     lines,
		ItemCount: TotalItemCount(s),
		Total:     total,
	}
	next := s
	next.cart = nil
	next.cartOpen = false
	return next, receipt, nil
}
