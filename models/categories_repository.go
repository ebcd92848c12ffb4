package models

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrCategoryExists is returned when a category code or name is taken.
var ErrCategoryExists = errors.New("category already exists")

// uniqueViolation is the postgres SQLSTATE for a unique constraint failure.
const uniqueViolation pq.ErrorCode = "23505"

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{
		db: db,
	}
}

func (r *CategoriesRepository) GetAllCategories() ([]Category, error) {
	var categories []Category
	if err := r.db.Order("position, id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoriesRepository) CreateCategory(category *Category) error {
	err := r.db.Create(category).Error
	if isUniqueViolation(err) {
		return ErrCategoryExists
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
