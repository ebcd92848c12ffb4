package session

import "fmt"

// Outcome tags which branch a transition took so the presentation layer can
// pick the right notification. It carries no user-facing text.
type Outcome int

const (
	OutcomeNoChange Outcome = iota
	OutcomeLineAdded
	OutcomeQuantityIncremented
	OutcomeQuantityChanged
	OutcomeLineRemoved
	OutcomeWishlistAdded
	OutcomeWishlistRemoved
	OutcomeCategorySelected
	OutcomeCartOpened
	OutcomeCartClosed
	OutcomeCheckoutSucceeded
	OutcomeCheckoutEmptyCart
)

var outcomeNames = map[Outcome]string{
	OutcomeNoChange:            "no_change",
	OutcomeLineAdded:           "line_added",
	OutcomeQuantityIncremented: "quantity_incremented",
	OutcomeQuantityChanged:     "quantity_changed",
	OutcomeLineRemoved:         "line_removed",
	OutcomeWishlistAdded:       "wishlist_added",
	OutcomeWishlistRemoved:     "wishlist_removed",
	OutcomeCategorySelected:    "category_selected",
	OutcomeCartOpened:          "cart_opened",
	OutcomeCartClosed:          "cart_closed",
	OutcomeCheckoutSucceeded:   "checkout_succeeded",
	OutcomeCheckoutEmptyCart:   "checkout_empty_cart",
}

// Outcomes lists every outcome, used to pre-register metric label values.
func Outcomes() []Outcome {
	out := make([]Outcome, 0, len(outcomeNames))
	for o := OutcomeNoChange; o <= OutcomeCheckoutEmptyCart; o++ {
		out = append(out, o)
	}
	return out
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

func (o Outcome) MarshalText() ([]byte, error) {
	if _, ok := outcomeNames[o]; !ok {
		return nil, fmt.Errorf("unknown outcome %d", int(o))
	}
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	for k, v := range outcomeNames {
		if v == string(text) {
			*o = k
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", text)
}

// Changed reports whether the transition modified session state.
func (o Outcome) Changed() bool {
	return o != OutcomeNoChange && o != OutcomeCheckoutEmptyCart
}
