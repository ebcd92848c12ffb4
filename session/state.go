package session

import "slices"

// MaxQuantity is the largest quantity a single cart line can hold.
const MaxQuantity = 99

// CartLine is one product in the cart. Quantity is always between 1 and
// MaxQuantity; a line that would drop below that is removed instead.
type CartLine struct {
	ProductID ProductID
	Quantity  int
}

// State is the aggregate root of one shopping session. It is a value: every
// transition returns a new State and leaves the receiver untouched, so a
// rejected transition never leaves a half-applied state behind.
type State struct {
	cart     []CartLine
	wishlist []ProductID
	category Category
	cartOpen bool
}

// NewState returns the state a fresh session starts in.
func NewState() State {
	return State{category: CategoryAll}
}

// Lines returns the cart in insertion order.
func (s State) Lines() []CartLine {
	return slices.Clone(s.cart)
}

// Line returns the cart line for id, if any.
func (s State) Line(id ProductID) (CartLine, bool) {
	if i := s.lineIndex(id); i >= 0 {
		return s.cart[i], true
	}
	return CartLine{}, false
}

func (s State) CartEmpty() bool {
	return len(s.cart) == 0
}

// Wishlist returns saved product IDs in the order they were saved.
func (s State) Wishlist() []ProductID {
	return slices.Clone(s.wishlist)
}

func (s State) InWishlist(id ProductID) bool {
	return slices.Contains(s.wishlist, id)
}

func (s State) WishlistCount() int {
	return len(s.wishlist)
}

func (s State) SelectedCategory() Category {
	if s.category == "" {
		return CategoryAll
	}
	return s.category
}

// CartOpen reports whether the cart view should be shown.
func (s State) CartOpen() bool {
	return s.cartOpen
}

func (s State) lineIndex(id ProductID) int {
	return slices.IndexFunc(s.cart, func(l CartLine) bool { return l.ProductID == id })
}

// AddToCart appends a new line with quantity 1, or bumps the quantity of the
// existing line in place. A line already at MaxQuantity is left alone.
func (s State) AddToCart(p Product) (State, Outcome) {
	next := s
	if i := s.lineIndex(p.ID); i >= 0 {
		if s.cart[i].Quantity >= MaxQuantity {
			return s, OutcomeNoChange
		}
		next.cart = slices.Clone(s.cart)
		next.cart[i].Quantity++
		return next, OutcomeQuantityIncremented
	}
	next.cart = append(slices.Clone(s.cart), CartLine{ProductID: p.ID, Quantity: 1})
	return next, OutcomeLineAdded
}

// RemoveFromCart drops the line for id. Removing an absent line is a no-op.
func (s State) RemoveFromCart(id ProductID) (State, Outcome) {
	i := s.lineIndex(id)
	if i < 0 {
		return s, OutcomeNoChange
	}
	next := s
	next.cart = slices.Delete(slices.Clone(s.cart), i, i+1)
	if len(next.cart) == 0 {
		next.cart = nil
	}
	return next, OutcomeLineRemoved
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line; one above MaxQuantity is clamped to it. It never
// creates a line: only AddToCart does.
func (s State) UpdateQuantity(id ProductID, quantity int) (State, Outcome) {
	if quantity <= 0 {
		return s.RemoveFromCart(id)
	}
	quantity = min(quantity, MaxQuantity)
	i := s.lineIndex(id)
	if i < 0 || s.cart[i].Quantity == quantity {
		return s, OutcomeNoChange
	}
	next := s
	next.cart = slices.Clone(s.cart)
	next.cart[i].Quantity = quantity
	return next, OutcomeQuantityChanged
}

// ToggleWishlist saves p, or unsaves it if it was already saved.
func (s State) ToggleWishlist(p Product) (State, Outcome) {
	next := s
	if i := slices.Index(s.wishlist, p.ID); i >= 0 {
		next.wishlist = slices.Delete(slices.Clone(s.wishlist), i, i+1)
		if len(next.wishlist) == 0 {
			next.wishlist = nil
		}
		return next, OutcomeWishlistRemoved
	}
	next.wishlist = append(slices.Clone(s.wishlist), p.ID)
	return next, OutcomeWishlistAdded
}

// SelectCategory switches the category filter.
func (s State) SelectCategory(c Category) (State, Outcome, error) {
	if _, err := ParseCategory(string(c)); err != nil {
		return s, OutcomeNoChange, err
	}
	next := s
	next.category = c
	return next, OutcomeCategorySelected, nil
}

func (s State) OpenCart() (State, Outcome) {
	if s.cartOpen {
		return s, OutcomeNoChange
	}
	next := s
	next.cartOpen = true
	return next, OutcomeCartOpened
}

func (s State) CloseCart() (State, Outcome) {
	if !s.cartOpen {
		return s, OutcomeNoChange
	}
	next := s
	next.cartOpen = false
	return next, OutcomeCartClosed
}

// BuyNow adds p to the cart and opens the cart view. It does not check out.
// The returned outcome is the one of the add, or OutcomeCartOpened when the
// line was already full and only the view changed.
func (s State) BuyNow(p Product) (State, Outcome) {
	next, outcome := s.AddToCart(p)
	if outcome == OutcomeNoChange && !s.cartOpen {
		outcome = OutcomeCartOpened
	}
	next.cartOpen = true
	return next, outcome
}
