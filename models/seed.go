package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultCategories is the storefront navigation, without the All filter.
func DefaultCategories() []Category {
	return []Category{
		{Code: "men", Name: "Men", Position: 1},
		{Code: "women", Name: "Women", Position: 2},
		{Code: "kids", Name: "Kids", Position: 3},
		{Code: "home-living", Name: "Home & Living", Position: 4},
		{Code: "beauty", Name: "Beauty", Position: 5},
		{Code: "studio", Name: "Studio", Position: 6},
	}
}

func categoryByCode(code string) Category {
	for _, c := range DefaultCategories() {
		if c.Code == code {
			return c
		}
	}
	panic("models: unknown default category " + code)
}

func seedProduct(id uint, code, name, brand string, price, original int64, discount int, rating float64, ratingCount int, image, category string) Product {
	return Product{
		ID:              id,
		Code:            code,
		Name:            name,
		Brand:           brand,
		Price:           decimal.NewFromInt(price),
		OriginalPrice:   decimal.NewFromInt(original),
		DiscountPercent: discount,
		Rating:          rating,
		RatingCount:     ratingCount,
		Image:           image,
		Category:        categoryByCode(category),
	}
}

// DefaultProducts is the demo catalog. Category is filled in by value so the
// slice can be converted without a database round trip.
func DefaultProducts() []Product {
	return []Product{
		seedProduct(1, "roadster-navy-tshirt", "Roadster Men Navy Blue Solid Round Neck T-shirt", "Roadster", 499, 999, 50, 4.2, 1200, "/images/mens-tshirt.jpg", "men"),
		seedProduct(2, "sassafras-black-dress", "SASSAFRAS Women Black Solid A-Line Dress", "SASSAFRAS", 1299, 2599, 50, 4.1, 890, "/images/womens-dress.jpg", "women"),
		seedProduct(3, "nike-revolution-6", "Nike Men Black Revolution 6 Running Shoes", "Nike", 3495, 4995, 30, 4.4, 2100, "/images/nike-shoes.jpg", "men"),
		seedProduct(4, "libas-pink-kurta", "Libas Women Pink Printed Kurta with Trousers", "Libas", 1799, 3599, 50, 4.3, 756, "/images/womens-kurta.jpg", "women"),
		seedProduct(5, "hm-kids-denim-jacket", "H&M Kids Blue Denim Jacket", "H&M", 1999, 2999, 33, 4.0, 445, "/images/kids-jacket.jpg", "kids"),
		seedProduct(6, "puma-white-sneakers", "Puma Men White Sneakers", "Puma", 2799, 4999, 44, 4.2, 1567, "/images/puma-sneakers.jpg", "men"),
		seedProduct(7, "zara-beige-blazer", "Zara Women Beige Blazer", "Zara", 3999, 5999, 33, 4.5, 234, "/images/womens-blazer.jpg", "women"),
		seedProduct(8, "adidas-black-track-pants", "Adidas Men Black Track Pants", "Adidas", 1899, 2999, 37, 4.1, 987, "/images/mens-trackpants.jpg", "men"),
	}
}

// Seed inserts the default categories and products. Rows that already exist
// are left untouched, so running it twice is harmless.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		categories := DefaultCategories()
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&categories).Error; err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}

		var stored []Category
		if err := tx.Find(&stored).Error; err != nil {
			return fmt.Errorf("load categories: %w", err)
		}
		ids := make(map[string]uint, len(stored))
		for _, c := range stored {
			ids[c.Code] = c.ID
		}

		products := DefaultProducts()
		for i := range products {
			id, ok := ids[products[i].Category.Code]
			if !ok {
				return fmt.Errorf("seed products: category %q missing", products[i].Category.Code)
			}
			products[i].CategoryID = id
			products[i].Category = Category{}
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Omit(clause.Associations).
			Create(&products).Error; err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
		return nil
	})
}
