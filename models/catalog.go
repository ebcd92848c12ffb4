package models

import (
	"fmt"

	"github.com/mytheresa/storefront/session"
)

// ToSession maps a stored product onto the engine's product type. The
// category association must be loaded.
func (p Product) ToSession() (session.Product, error) {
	category, err := session.ParseCategory(p.Category.Name)
	if err != nil {
		return session.Product{}, fmt.Errorf("product %s: %w", p.Code, err)
	}
	return session.Product{
		ID:              session.ProductID(p.ID),
		Name:            p.Name,
		Brand:           p.Brand,
		Price:           p.Price,
		OriginalPrice:   p.OriginalPrice,
		DiscountPercent: p.DiscountPercent,
		Category:        category,
		Rating:          p.Rating,
		RatingCount:     p.RatingCount,
		Image:           p.Image,
	}, nil
}

// ToCatalog converts stored rows into the immutable catalog sessions are
// served from, keeping row order.
func ToCatalog(products []Product) (*session.Catalog, error) {
	out := make([]session.Product, 0, len(products))
	for _, p := range products {
		sp, err := p.ToSession()
		if err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return session.NewCatalog(out)
}

// LoadCatalog reads the catalog once through the repository.
func LoadCatalog(repo *ProductsRepository) (*session.Catalog, error) {
	products, err := repo.GetAllProducts()
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	return ToCatalog(products)
}
