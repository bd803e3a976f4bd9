package catalog

import (
	"context"
	"strings"

	"github.com/dreamshops/catalog/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ProductStore is satisfied by *models.ProductsRepository.
type ProductStore interface {
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Save(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	Find(ctx context.Context, filters models.ProductFilters) ([]models.Product, error)
	Count(ctx context.Context, filters models.ProductFilters) (int64, error)
}

// CategoryResolver is satisfied by *models.CategoriesRepository.
type CategoryResolver interface {
	FirstOrCreateByName(ctx context.Context, name string) (*models.Category, error)
}

// Transactor is satisfied by *models.Transactor.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CategoryRef names the category a product belongs to.
type CategoryRef struct {
	Name string
}

type AddProductRequest struct {
	Name        string
	Brand       string
	Price       decimal.Decimal
	Inventory   int
	Description string
	Category    CategoryRef
}

// ProductUpdateRequest carries the full replacement state of a product.
type ProductUpdateRequest AddProductRequest

type ProductService struct {
	products   ProductStore
	categories CategoryResolver
	tx         Transactor
	log        *logrus.Logger
}

func NewProductService(products ProductStore, categories CategoryResolver, tx Transactor, logger *logrus.Logger) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		tx:         tx,
		log:        logger,
	}
}

// AddProduct stores a new product, creating its category when the name is new.
// Both writes commit or roll back together.
func (s *ProductService) AddProduct(ctx context.Context, req AddProductRequest) (*models.Product, error) {
	fields := productFields(req)
	if err := fields.validate(); err != nil {
		return nil, err
	}

	product := &models.Product{}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		category, err := s.categories.FirstOrCreateByName(ctx, fields.category)
		if err != nil {
			return err
		}
		fields.apply(product, category)
		return s.products.Save(ctx, product)
	})
	if err != nil {
		s.log.Errorf("Product Service: failed to add product '%s': %v", fields.name, err)
		return nil, err
	}

	s.log.Infof("Product Service: product '%s' created with ID %d in category '%s'", product.Name, product.ID, product.Category.Name)
	return product, nil
}

func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		s.log.Warnf("Product Service: failed to get product ID %d: %v", id, err)
		return nil, err
	}
	return product, nil
}

func (s *ProductService) DeleteProductByID(ctx context.Context, id uint) error {
	if err := s.products.Delete(ctx, id); err != nil {
		s.log.Warnf("Product Service: failed to delete product ID %d: %v", id, err)
		return err
	}
	s.log.Infof("Product Service: product ID %d deleted", id)
	return nil
}

// UpdateProduct replaces every field of the product at productID. The
// category is resolved the same way AddProduct resolves it.
func (s *ProductService) UpdateProduct(ctx context.Context, req ProductUpdateRequest, productID uint) (*models.Product, error) {
	fields := productFields(AddProductRequest(req))
	if err := fields.validate(); err != nil {
		return nil, err
	}

	var product *models.Product
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		category, err := s.categories.FirstOrCreateByName(ctx, fields.category)
		if err != nil {
			return err
		}
		fields.apply(existing, category)
		if err := s.products.Save(ctx, existing); err != nil {
			return err
		}
		product = existing
		return nil
	})
	if err != nil {
		s.log.Warnf("Product Service: failed to update product ID %d: %v", productID, err)
		return nil, err
	}

	s.log.Infof("Product Service: product ID %d updated", productID)
	return product, nil
}

func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.find(ctx, models.ProductFilters{})
}

func (s *ProductService) GetAllProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	if err := required("category", category); err != nil {
		return nil, err
	}
	return s.find(ctx, models.ProductFilters{CategoryName: category})
}

func (s *ProductService) GetProductsByBrand(ctx context.Context, brand string) ([]models.Product, error) {
	if err := required("brand", brand); err != nil {
		return nil, err
	}
	return s.find(ctx, models.ProductFilters{Brand: brand})
}

func (s *ProductService) GetProductsByCategoryAndBrand(ctx context.Context, category, brand string) ([]models.Product, error) {
	if err := required("category", category); err != nil {
		return nil, err
	}
	if err := required("brand", brand); err != nil {
		return nil, err
	}
	return s.find(ctx, models.ProductFilters{CategoryName: category, Brand: brand})
}

// GetProductsByName filters by name, and by category when category is not empty.
func (s *ProductService) GetProductsByName(ctx context.Context, name, category string) ([]models.Product, error) {
	if err := required("name", name); err != nil {
		return nil, err
	}
	return s.find(ctx, models.ProductFilters{Name: name, CategoryName: category})
}

func (s *ProductService) GetProductsByBrandAndName(ctx context.Context, name, brand string) ([]models.Product, error) {
	if err := required("name", name); err != nil {
		return nil, err
	}
	if err := required("brand", brand); err != nil {
		return nil, err
	}
	return s.find(ctx, models.ProductFilters{Brand: brand, Name: name})
}

func (s *ProductService) CountProductsByBrandAndName(ctx context.Context, brand, name string) (int64, error) {
	if err := required("brand", brand); err != nil {
		return 0, err
	}
	if err := required("name", name); err != nil {
		return 0, err
	}
	total, err := s.products.Count(ctx, models.ProductFilters{Brand: brand, Name: name})
	if err != nil {
		s.log.Errorf("Product Service: failed to count products brand='%s' name='%s': %v", brand, name, err)
		return 0, err
	}
	return total, nil
}

// SearchProducts applies any combination of filters; empty filters match everything.
func (s *ProductService) SearchProducts(ctx context.Context, filters models.ProductFilters) ([]models.Product, error) {
	return s.find(ctx, filters)
}

func (s *ProductService) find(ctx context.Context, filters models.ProductFilters) ([]models.Product, error) {
	products, err := s.products.Find(ctx, filters)
	if err != nil {
		s.log.Errorf("Product Service: failed to list products %+v: %v", filters, err)
		return nil, err
	}
	s.log.Debugf("Product Service: found %d products for %+v", len(products), filters)
	return products, nil
}

// productInput is the common shape of add and update requests.
type productInput struct {
	name        string
	brand       string
	price       decimal.Decimal
	inventory   int
	description string
	category    string
}

func productFields(r AddProductRequest) productInput {
	return productInput{
		name:        strings.TrimSpace(r.Name),
		brand:       strings.TrimSpace(r.Brand),
		price:       r.Price,
		inventory:   r.Inventory,
		description: r.Description,
		category:    strings.TrimSpace(r.Category.Name),
	}
}

func (in productInput) validate() error {
	if err := required("name", in.name); err != nil {
		return err
	}
	if err := required("brand", in.brand); err != nil {
		return err
	}
	if err := required("category", in.category); err != nil {
		return err
	}
	if in.price.IsNegative() {
		return &models.ValidationError{Field: "price", Reason: "cannot be negative"}
	}
	if in.inventory < 0 {
		return &models.ValidationError{Field: "inventory", Reason: "cannot be negative"}
	}
	return nil
}

func (in productInput) apply(p *models.Product, category *models.Category) {
	p.Name = in.name
	p.Brand = in.brand
	p.Price = in.price
	p.Inventory = in.inventory
	p.Description = in.description
	p.CategoryID = category.ID
	p.Category = *category
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &models.ValidationError{Field: field, Reason: "cannot be empty"}
	}
	return nil
}
