package session

import "fmt"

// Catalog is the immutable, ordered product list a session is served from.
// It is safe to share between sessions.
type Catalog struct {
	products []Product
	index    map[ProductID]int
}

// NewCatalog validates products and freezes them in the given order.
func NewCatalog(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		index:    make(map[ProductID]int, len(products)),
	}
	for _, p := range products {
		if err := p.validate(); err != nil {
			return nil, err
		}
		if _, dup := c.index[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %d", ErrInvalidProduct, p.ID)
		}
		c.index[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// Products returns a copy of the catalog in catalog order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Lookup finds a product by ID.
func (c *Catalog) Lookup(id ProductID) (Product, bool) {
	i, ok := c.index[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// FilterByCategory is a stable filter over the catalog. The All sentinel
// yields every product.
func (c *Catalog) FilterByCategory(category Category) []Product {
	if category.IsAll() {
		return c.Products()
	}
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}
