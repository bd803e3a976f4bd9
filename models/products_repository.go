package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductsRepository struct {
	db *gorm.DB
}

// ProductFilters holds exact-match filters. Empty fields are not applied.
type ProductFilters struct {
	CategoryName string
	Brand        string
	Name         string
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) filtered(ctx context.Context, filters ProductFilters) *gorm.DB {
	query := conn(ctx, r.db).Model(&Product{}).
		Joins("JOIN categories ON categories.id = products.category_id")

	if filters.CategoryName != "" {
		query = query.Where("categories.name = ?", filters.CategoryName)
	}
	if filters.Brand != "" {
		query = query.Where("products.brand = ?", filters.Brand)
	}
	if filters.Name != "" {
		query = query.Where("products.name = ?", filters.Name)
	}
	return query
}

func (r *ProductsRepository) Find(ctx context.Context, filters ProductFilters) ([]Product, error) {
	products := []Product{}
	if err := r.filtered(ctx, filters).
		Preload("Category").
		Order("products.id ASC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("could not find products: %w", err)
	}
	return products, nil
}

func (r *ProductsRepository) Count(ctx context.Context, filters ProductFilters) (int64, error) {
	var total int64
	if err := r.filtered(ctx, filters).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("could not count products: %w", err)
	}
	return total, nil
}

func (r *ProductsRepository) GetByID(ctx context.Context, id uint) (*Product, error) {
	var product Product
	if err := conn(ctx, r.db).
		Preload("Category").
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "product", Key: id}
		}
		return nil, fmt.Errorf("could not get product by id: %w", err)
	}
	return &product, nil
}

// Save inserts the product when it has no id and updates it otherwise.
// The category must already exist; it is referenced, never written.
func (r *ProductsRepository) Save(ctx context.Context, product *Product) error {
	if err := conn(ctx, r.db).Omit(clause.Associations).Save(product).Error; err != nil {
		if isForeignKeyViolation(err) {
			return &NotFoundError{Entity: "category", Key: product.CategoryID}
		}
		return fmt.Errorf("could not save product: %w", err)
	}
	return nil
}

func (r *ProductsRepository) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Delete(&Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("could not delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Entity: "product", Key: id}
	}
	return nil
}
