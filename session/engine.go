package session

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Engine owns the State of one session and applies transitions to it by
// product ID, resolving products against the shared catalog. It is not safe
// for concurrent use; Store serializes access per session.
type Engine struct {
	catalog *Catalog
	state   State
}

func NewEngine(catalog *Catalog) *Engine {
	return &Engine{catalog: catalog, state: NewState()}
}

// State returns the current state. Callers render from it.
func (e *Engine) State() State {
	return e.state
}

func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

func (e *Engine) product(id ProductID) (Product, error) {
	p, ok := e.catalog.Lookup(id)
	if !ok {
		return Product{}, fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}
	return p, nil
}

func (e *Engine) AddToCart(id ProductID) (Outcome, error) {
	p, err := e.product(id)
	if err != nil {
		return OutcomeNoChange, err
	}
	var outcome Outcome
	e.state, outcome = e.state.AddToCart(p)
	return outcome, nil
}

func (e *Engine) RemoveFromCart(id ProductID) Outcome {
	var outcome Outcome
	e.state, outcome = e.state.RemoveFromCart(id)
	return outcome
}

func (e *Engine) UpdateQuantity(id ProductID, quantity int) Outcome {
	var outcome Outcome
	e.state, outcome = e.state.UpdateQuantity(id, quantity)
	return outcome
}

func (e *Engine) ToggleWishlist(id ProductID) (Outcome, error) {
	p, err := e.product(id)
	if err != nil {
		return OutcomeNoChange, err
	}
	var outcome Outcome
	e.state, outcome = e.state.ToggleWishlist(p)
	return outcome, nil
}

func (e *Engine) SelectCategory(c Category) (Outcome, error) {
	next, outcome, err := e.state.SelectCategory(c)
	if err != nil {
		return outcome, err
	}
	e.state = next
	return outcome, nil
}

func (e *Engine) BuyNow(id ProductID) (Outcome, error) {
	p, err := e.product(id)
	if err != nil {
		return OutcomeNoChange, err
	}
	var outcome Outcome
	e.state, outcome = e.state.BuyNow(p)
	return outcome, nil
}

func (e *Engine) OpenCart() Outcome {
	var outcome Outcome
	e.state, outcome = e.state.OpenCart()
	return outcome
}

func (e *Engine) CloseCart() Outcome {
	var outcome Outcome
	e.state, outcome = e.state.CloseCart()
	return outcome
}

// Checkout reports OutcomeCheckoutEmptyCart alongside ErrEmptyCart so callers
// can count the failed attempt like any other outcome.
func (e *Engine) Checkout() (Receipt, Outcome, error) {
	next, receipt, err := e.state.Checkout(e.catalog)
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			return Receipt{}, OutcomeCheckoutEmptyCart, err
		}
		return Receipt{}, OutcomeNoChange, err
	}
	e.state = next
	return receipt, OutcomeCheckoutSucceeded, nil
}

func (e *Engine) FilteredProducts() []Product {
	return FilteredProducts(e.catalog, e.state)
}

func (e *Engine) TotalItemCount() int {
	return TotalItemCount(e.state)
}

func (e *Engine) TotalPrice() (decimal.Decimal, error) {
	return TotalPrice(e.state, e.catalog)
}
