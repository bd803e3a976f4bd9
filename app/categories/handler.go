package categories

import (
	"context"
	"net/http"

	"github.com/dreamshops/catalog/app/api"
	"github.com/dreamshops/catalog/models"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CategoryProvider interface {
	GetCategoryByID(ctx context.Context, id uint) (*models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	AddCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category, id uint) (*models.Category, error)
	UpdateCategoryByID(ctx context.Context, id uint, patch CategoryPatch) (*models.Category, error)
	DeleteCategoryByID(ctx context.Context, id uint) error
}

type CategoryHandler struct {
	service CategoryProvider
	log     *logrus.Logger
}

func NewCategoryHandler(s CategoryProvider, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{service: s, log: logger}
}

func (h *CategoryHandler) RegisterRoutes(router gin.IRouter) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.HandleGetAll)
		categories.POST("", h.HandleCreate)
		categories.GET("/by-name/:name", h.HandleGetByName)
		categories.GET("/:id", h.HandleGet)
		categories.PUT("/:id", h.HandleUpdate)
		categories.PATCH("/:id", h.HandlePatch)
		categories.DELETE("/:id", h.HandleDelete)
	}
}

func toResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

func (h *CategoryHandler) HandleGetAll(c *gin.Context) {
	categories, err := h.service.GetAllCategories(c.Request.Context())
	if err != nil {
		api.Fail(c, "failed to fetch categories", err)
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i := range categories {
		response[i] = toResponse(&categories[i])
	}
	api.SuccessResponse(c, http.StatusOK, "Categories retrieved", response)
}

func (h *CategoryHandler) HandleGet(c *gin.Context) {
	id, ok := api.ParseID(c, "id")
	if !ok {
		api.ErrorResponse(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	category, err := h.service.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, "Failed to retrieve category", err)
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Category retrieved", toResponse(category))
}

func (h *CategoryHandler) HandleGetByName(c *gin.Context) {
	category, err := h.service.GetCategoryByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		api.Fail(c, "Failed to retrieve category", err)
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Category retrieved", toResponse(category))
}

func (h *CategoryHandler) HandleCreate(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		api.ErrorResponse(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	category, err := h.service.AddCategory(c.Request.Context(), &models.Category{Name: input.Name})
	if err != nil {
		h.log.Warnf("Failed to create category '%s': %v", input.Name, err)
		api.Fail(c, "Failed to create category", err)
		return
	}

	api.SuccessResponse(c, http.StatusCreated, "Category created successfully", toResponse(category))
}

func (h *CategoryHandler) HandleUpdate(c *gin.Context) {
	id, ok := api.ParseID(c, "id")
	if !ok {
		api.ErrorResponse(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		api.ErrorResponse(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	category, err := h.service.UpdateCategory(c.Request.Context(), &models.Category{Name: input.Name}, id)
	if err != nil {
		h.log.Warnf("Failed to update category ID %d: %v", id, err)
		api.Fail(c, "Failed to update category", err)
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Category updated successfully", toResponse(category))
}

func (h *CategoryHandler) HandlePatch(c *gin.Context) {
	id, ok := api.ParseID(c, "id")
	if !ok {
		api.ErrorResponse(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var input struct {
		Name *string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		api.ErrorResponse(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	category, err := h.service.UpdateCategoryByID(c.Request.Context(), id, CategoryPatch{Name: input.Name})
	if err != nil {
		h.log.Warnf("Failed to patch category ID %d: %v", id, err)
		api.Fail(c, "Failed to update category", err)
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Category updated successfully", toResponse(category))
}

func (h *CategoryHandler) HandleDelete(c *gin.Context) {
	id, ok := api.ParseID(c, "id")
	if !ok {
		api.ErrorResponse(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	if err := h.service.DeleteCategoryByID(c.Request.Context(), id); err != nil {
		api.Fail(c, "Failed to delete category", err)
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Category deleted successfully", nil)
}
