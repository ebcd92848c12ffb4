package models

import (
	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// It includes display data, the selling and original price, and its category.
type Product struct {
	ID              uint            `gorm:"primaryKey"`
	Code            string          `gorm:"uniqueIndex;not null"`
	Name            string          `gorm:"not null"`
	Brand           string          `gorm:"index;not null"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	OriginalPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DiscountPercent int             `gorm:"not null;default:0"`
	Rating          float64         `gorm:"not null;default:0"`
	RatingCount     int             `gorm:"not null;default:0"`
	Image           string          `gorm:"size:255"`
	CategoryID      uint            `gorm:"not null"`
	Category        Category        `gorm:"foreignKey:CategoryID"`
}

func (p *Product) TableName() string {
	return "products"
}
