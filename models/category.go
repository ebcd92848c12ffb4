package models

// Category represents a storefront department.
// Name must be one of the session categories; Position orders navigation.
type Category struct {
	ID       uint   `gorm:"primaryKey"`
	Code     string `gorm:"uniqueIndex;not null"`
	Name     string `gorm:"uniqueIndex;not null"`
	Position int    `gorm:"not null;default:0"`
}

func (c *Category) TableName() string {
	return "categories"
}
