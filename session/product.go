package session

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductID identifies a catalog entry.
type ProductID int64

// Product is a read-only catalog entry. The engine never edits products; it
// only references them by ID from cart lines and the wishlist.
type Product struct {
	ID              ProductID
	Name            string
	Brand           string
	Price           decimal.Decimal
	OriginalPrice   decimal.Decimal
	DiscountPercent int
	Category        Category
	Rating          float64
	RatingCount     int
	Image           string
}

// Discount returns the supplied discount percentage, or derives it from the
// two prices when none was supplied.
func (p Product) Discount() int {
	if p.DiscountPercent > 0 || !p.OriginalPrice.IsPositive() {
		return p.DiscountPercent
	}
	off := p.OriginalPrice.Sub(p.Price).Div(p.OriginalPrice).Mul(decimal.NewFromInt(100))
	return int(off.Round(0).IntPart())
}

func (p Product) validate() error {
	switch {
	case p.Price.IsNegative() || p.OriginalPrice.IsNegative():
		return fmt.Errorf("%w: product %d has a negative price", ErrInvalidProduct, p.ID)
	case p.Price.GreaterThan(p.OriginalPrice):
		return fmt.Errorf("%w: product %d price %s exceeds original price %s",
			ErrInvalidProduct, p.ID, p.Price, p.OriginalPrice)
	case p.Category.IsAll():
		return fmt.Errorf("%w: product %d uses the %q filter as its category", ErrInvalidProduct, p.ID, CategoryAll)
	case !p.Category.Valid():
		return fmt.Errorf("%w: product %d: %q", ErrInvalidCategory, p.ID, p.Category)
	}
	return nil
}
