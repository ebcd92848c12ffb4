package session

import "errors"

var (
	// ErrEmptyCart is returned by Checkout when there is nothing to buy.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidCategory is returned for a category outside the enumeration.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrDanglingCartReference means a cart line points at a product the
	// catalog does not contain. Cart and catalog are out of sync, which is a
	// programming error rather than a user mistake.
	ErrDanglingCartReference = errors.New("cart references product missing from catalog")

	ErrProductNotFound = errors.New("product not found")
	ErrSessionNotFound = errors.New("session not found")

	ErrInvalidProduct = errors.New("invalid product")
)
