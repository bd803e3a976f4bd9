package catalog

import (
	"context"
	"net/http"
	"strings"

	"github.com/dreamshops/catalog/app/api"
	"github.com/dreamshops/catalog/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	Inventory   int      `json:"inventory"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
}

type CountResponse struct {
	Brand string `json:"brand"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type productPayload struct {
	Name        string          `json:"name" binding:"required"`
	Brand       string          `json:"brand" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Inventory   int             `json:"inventory"`
	Description string          `json:"description"`
	Category    struct {
		Name string `json:"name" binding:"required"`
	} `json:"category"`
}

func (p productPayload) toRequest() AddProductRequest {
	return AddProductRequest{
		Name:        p.Name,
		Brand:       p.Brand,
		Price:       p.Price,
		Inventory:   p.Inventory,
		Description: p.Description,
		Category:    CategoryRef{Name: p.Category.Name},
	}
}

type ProductProvider interface {
	AddProduct(ctx context.Context, req AddProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uint) (*models.Product, error)
	DeleteProductByID(ctx context.Context, id uint) error
	UpdateProduct(ctx context.Context, req ProductUpdateRequest, productID uint) (*models.Product, error)
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	GetAllProductsByCategory(ctx context.Context, category string) ([]models.Product, error)
	GetProductsByBrand(ctx context.Context, brand string) ([]models.Product, error)
	GetProductsByCategoryAndBrand(ctx context.Context, category, brand string) ([]models.Product, error)
	GetProductsByName(ctx context.Context, name, category string) ([]models.Product, error)
	GetProductsByBrandAndName(ctx context.Context, name, brand string) ([]models.Product, error)
	CountProductsByBrandAndName(ctx context.Context, brand, name string) (int64, error)
	SearchProducts(ctx context.Context, filters models.ProductFilters) ([]models.Product, error)
}

type CatalogHandler struct {
	service ProductProvider
	log     *logrus.Logger
}

func NewCatalogHandler(s ProductProvider, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: s,
		log:     logger,
	}
}

func (h *CatalogHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group("/products")
	{
		products.GET("", h.HandleGet)
		products.POST("", h.HandleCreate)
		products.GET("/count", h.HandleCount)
		products.GET("/:id", h.HandleGetProduct)
		products.PUT("/:id", h.HandleUpdate)
		products.DELETE("/:id", h.HandleDelete)
	}
}

func toProduct(p *models.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Price:       p.Price.InexactFloat64(),
		Inventory:   p.Inventory,
		Description: p.Description,
		Category: Category{
			ID:   p.Category.ID,
			Name: p.Category.Name,
		},
	}
}

// HandleGet lists products. The category, brand and name query parameters
// narrow the result by exact match.
func (h *CatalogHandler) HandleGet(c *gin.Context) {
	ctx := c.Request.Context()
	category := strings.TrimSpace(c.Query("category"))
	brand := strings.TrimSpace(c.Query("brand"))
	name := strings.TrimSpace(c.Query("name"))

	var (
		res []models.Product
		err error
	)
	switch {
	case category != "" && brand != "" && name != "":
		res, err = h.service.SearchProducts(ctx, models.ProductFilters{CategoryName: category, Brand: brand, Name: name})
	case brand != "" && name != "":
		res, err = h.service.GetProductsByBrandAndName(ctx, name, brand)
	case name != "":
		res, err = h.service.GetProductsByName(ctx, name, category)
	case category != "" && brand != "":
		res, err = h.service.GetProductsByCategoryAndBrand(ctx, category, brand)
	case category != "":
		res, err = h.service.GetAllProductsByCategory(ctx, category)
	case brand != "":
		res, err = h.service.GetProductsByBrand(ctx, brand)
	default:
		res, err = h.service.GetAllProducts(ctx)
	}
	if err != nil {
		h.log.Errorf("Failed to list products (category=%q brand=%q name=%q): %v", category, brand, name, err)
		api.Fail(c, "failed to get products", err)
		return
	}

	products := make([]Product, len(res))
	for i := range res {
		products[i] = toProduct(&res[i])
	}

	api.SuccessResponse(c, http.StatusOK, "Products retrieved", Response{
		Total:    len(products),
		Products: products,
	})
}

func (h *CatalogHandler) HandleCount(c *gin.Context) {
	brand := strings.TrimSpace(c.Query("brand"))
	name := strings.TrimSpace(c.Query("name"))

	count, err := h.service.CountProductsByBrandAndName(c.Request.Context(), brand, name)
	if err != nil {
		api.Fail(c, "failed to count products", err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Products counted", CountResponse{
		Brand: brand,
		Name:  name,
		Count: count,
	})
}

func (h *CatalogHandler) HandleGetProduct(c *gin.Context) {
	id, ok := api.ParseID(c, "id")
	if !ok {
		api.ErrorResponse(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.service.GetProductByID(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, "Failed to retrieve product", err)
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Product retrieved", toProduct(product))
}

func (h *CatalogHandler) HandleCreate(c *gin.Context) {
	var payload productPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.service.AddProduct(c.Request.Context(), payload.toRequest())
	if err != nil {
		h.log.Warnf("Failed to create product '%s': %v", payload.Name, err)
		api.Fail(c, "Failed to create product", err)
		return
	}
	api.SuccessResponse(c, http.StatusCreated, "Product created successfully", toProduct(product))
}

func (h *CatalogHandler) HandleUpdate(c *gin.Context) {
	id, ok := api.ParseID(c, "id")
	if !ok {
		api.ErrorResponse(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var payload productPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.service.UpdateProduct(c.Request.Context(), ProductUpdateRequest(payload.toRequest()), id)
	if err != nil {
		h.log.Warnf("Failed to update product ID %d: %v", id, err)
		api.Fail(c, "Failed to update product", err)
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Product updated successfully", toProduct(product))
}

func (h *CatalogHandler) HandleDelete(c *gin.Context) {
	id, ok := api.ParseID(c, "id")
	if !ok {
		api.ErrorResponse(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.service.DeleteProductByID(c.Request.Context(), id); err != nil {
		api.Fail(c, "Failed to delete product", err)
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Product deleted successfully", nil)
}
