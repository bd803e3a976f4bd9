package categories

import (
	"context"
	"strings"

	"github.com/dreamshops/catalog/models"
	"github.com/sirupsen/logrus"
)

// CategoryStore is the persistence the service needs. *models.CategoriesRepository satisfies it.
type CategoryStore interface {
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetByName(ctx context.Context, name string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error
}

// CategoryPatch carries the fields of a partial update. Nil fields are left alone.
type CategoryPatch struct {
	Name *string
}

type CategoryService struct {
	store CategoryStore
	log   *logrus.Logger
}

func NewCategoryService(store CategoryStore, logger *logrus.Logger) *CategoryService {
	return &CategoryService{
		store: store,
		log:   logger,
	}
}

func (s *CategoryService) GetCategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.store.GetByID(ctx, id)
	if err != nil {
		s.log.Warnf("Category Service: failed to get category ID %d: %v", id, err)
		return nil, err
	}
	return category, nil
}

// GetCategoryByName returns a NotFoundError on a miss; callers check models.IsNotFound.
func (s *CategoryService) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	category, err := s.store.GetByName(ctx, name)
	if err != nil {
		if !models.IsNotFound(err) {
			s.log.Errorf("Category Service: failed to get category '%s': %v", name, err)
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.store.List(ctx)
	if err != nil {
		s.log.Errorf("Category Service: failed to list categories: %v", err)
		return nil, err
	}
	s.log.Debugf("Category Service: retrieved %d categories", len(categories))
	return categories, nil
}

func (s *CategoryService) AddCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	name, err := validName(category.Name)
	if err != nil {
		return nil, err
	}

	created := &models.Category{Name: name}
	if err := s.store.Create(ctx, created); err != nil {
		s.log.Errorf("Category Service: failed to create category '%s': %v", name, err)
		return nil, err
	}

	s.log.Infof("Category Service: category '%s' created with ID %d", created.Name, created.ID)
	return created, nil
}

// UpdateCategory replaces every field of the category stored at id.
func (s *CategoryService) UpdateCategory(ctx context.Context, category *models.Category, id uint) (*models.Category, error) {
	name, err := validName(category.Name)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		s.log.Warnf("Category Service: category ID %d not available for update: %v", id, err)
		return nil, err
	}

	existing.Name = name
	if err := s.store.Update(ctx, existing); err != nil {
		s.log.Errorf("Category Service: failed to update category ID %d: %v", id, err)
		return nil, err
	}

	s.log.Infof("Category Service: category ID %d updated", id)
	return existing, nil
}

// UpdateCategoryByID applies the non-nil fields of patch to the category at id.
func (s *CategoryService) UpdateCategoryByID(ctx context.Context, id uint, patch CategoryPatch) (*models.Category, error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		s.log.Warnf("Category Service: category ID %d not available for patch: %v", id, err)
		return nil, err
	}

	if patch.Name == nil {
		return existing, nil
	}

	name, err := validName(*patch.Name)
	if err != nil {
		return nil, err
	}
	if name == existing.Name {
		return existing, nil
	}

	existing.Name = name
	if err := s.store.Update(ctx, existing); err != nil {
		s.log.Errorf("Category Service: failed to patch category ID %d: %v", id, err)
		return nil, err
	}

	s.log.Infof("Category Service: category ID %d patched", id)
	return existing, nil
}

// DeleteCategoryByID fails with models.ErrCategoryInUse while products reference the category.
func (s *CategoryService) DeleteCategoryByID(ctx context.Context, id uint) error {
	if err := s.store.Delete(ctx, id); err != nil {
		s.log.Warnf("Category Service: failed to delete category ID %d: %v", id, err)
		return err
	}
	s.log.Infof("Category Service: category ID %d deleted", id)
	return nil
}

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &models.ValidationError{Field: "name", Reason: "cannot be empty"}
	}
	return name, nil
}
