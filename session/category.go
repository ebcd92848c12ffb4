package session

import "fmt"

// Category is a storefront department. The set is closed: only the values
// returned by Categories are accepted anywhere in the engine.
type Category string

const (
	CategoryAll        Category = "All"
	CategoryMen        Category = "Men"
	CategoryWomen      Category = "Women"
	CategoryKids       Category = "Kids"
	CategoryHomeLiving Category = "Home & Living"
	CategoryBeauty     Category = "Beauty"
	CategoryStudio     Category = "Studio"
)

var categories = []Category{
	CategoryAll,
	CategoryMen,
	CategoryWomen,
	CategoryKids,
	CategoryHomeLiving,
	CategoryBeauty,
	CategoryStudio,
}

// Categories returns the enumeration in navigation order, All first.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c belongs to the enumeration.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// IsAll reports whether c is the filter sentinel.
func (c Category) IsAll() bool {
	return c == CategoryAll
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory maps a display name onto the enumeration.
func ParseCategory(name string) (Category, error) {
	c := Category(name)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, name)
	}
	return c, nil
}
