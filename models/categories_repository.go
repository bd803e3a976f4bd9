package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{
		db: db,
	}
}

func (r *CategoriesRepository) GetByID(ctx context.Context, id uint) (*Category, error) {
	var category Category
	if err := conn(ctx, r.db).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "category", Key: id}
		}
		return nil, fmt.Errorf("could not get category by id: %w", err)
	}
	return &category, nil
}

func (r *CategoriesRepository) GetByName(ctx context.Context, name string) (*Category, error) {
	var category Category
	if err := conn(ctx, r.db).Where("name = ?", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "category", Key: name}
		}
		return nil, fmt.Errorf("could not get category by name: %w", err)
	}
	return &category, nil
}

func (r *CategoriesRepository) List(ctx context.Context) ([]Category, error) {
	categories := []Category{}
	if err := conn(ctx, r.db).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("could not list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoriesRepository) Create(ctx context.Context, category *Category) error {
	if err := conn(ctx, r.db).Create(category).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %q", ErrCategoryExists, category.Name)
		}
		return fmt.Errorf("could not create category: %w", err)
	}
	return nil
}

func (r *CategoriesRepository) Update(ctx context.Context, category *Category) error {
	result := conn(ctx, r.db).Model(&Category{}).
		Where("id = ?", category.ID).
		Update("name", category.Name)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return fmt.Errorf("%w: %q", ErrCategoryExists, category.Name)
		}
		return fmt.Errorf("could not update category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Entity: "category", Key: category.ID}
	}
	return nil
}

// Delete removes a category. It refuses while any product references it.
func (r *CategoriesRepository) Delete(ctx context.Context, id uint) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&Product{}).Where("category_id = ?", id).Count(&refs).Error; err != nil {
			return fmt.Errorf("could not count products for category: %w", err)
		}
		if refs > 0 {
			return fmt.Errorf("%w: %d products", ErrCategoryInUse, refs)
		}

		result := tx.Delete(&Category{}, id)
		if result.Error != nil {
			if isForeignKeyViolation(result.Error) {
				return ErrCategoryInUse
			}
			return fmt.Errorf("could not delete category: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return &NotFoundError{Entity: "category", Key: id}
		}
		return nil
	})
}

// FirstOrCreateByName inserts the category unless the name is taken, then
// reads it back. Concurrent callers converge on the same row through the
// unique index on name.
func (r *CategoriesRepository) FirstOrCreateByName(ctx context.Context, name string) (*Category, error) {
	err := conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&Category{Name: name}).Error
	if err != nil {
		return nil, fmt.Errorf("could not resolve category %q: %w", name, err)
	}
	return r.GetByName(ctx, name)
}
