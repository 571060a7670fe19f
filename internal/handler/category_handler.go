package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripova/tourbase/internal/dto"
	"github.com/tripova/tourbase/internal/service"
	"github.com/tripova/tourbase/pkg/middleware"
	"github.com/tripova/tourbase/pkg/response"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	catService service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(catService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{catService: catService}
}

// List handles GET /api/v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	tenantID := middleware.ResolvedTenant(c)
	categories, err := h.catService.ListCategories(c.Request.Context(), tenantID, true)
	if err != nil {
		writeServiceError(c, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, response.Success(categories))
}

// GetByName handles GET /api/v1/categories/:name
func (h *CategoryHandler) GetByName(c *gin.Context) {
	tenantID := middleware.ResolvedTenant(c)
	category, err := h.catService.GetCategoryByName(c.Request.Context(), tenantID, c.Param("name"))
	if err != nil {
		writeServiceError(c, err, "Failed to get category")
		return
	}
	c.JSON(http.StatusOK, response.Success(category))
}

// AdminList handles GET /admin/api/v1/categories
func (h *CategoryHandler) AdminList(c *gin.Context) {
	tenantID := middleware.ResolvedTenant(c)
	categories, err := h.catService.ListCategories(c.Request.Context(), tenantID, false)
	if err != nil {
		writeServiceError(c, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, response.Success(categories))
}

// Create handles POST /admin/api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	req.TenantID = middleware.ResolvedTenant(c)

	category, err := h.catService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, response.Success(category))
}

// Update handles PUT /admin/api/v1/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	tenantID := middleware.ResolvedTenant(c)

	category, err := h.catService.UpdateCategory(c.Request.Context(), tenantID, c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err, "Failed to update category")
		return
	}
	c.JSON(http.StatusOK, response.Success(category))
}

// Delete handles DELETE /admin/api/v1/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	tenantID := middleware.ResolvedTenant(c)
	if err := h.catService.DeleteCategory(c.Request.Context(), tenantID, c.Param("id")); err != nil {
		writeServiceError(c, err, "Failed to delete category")
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"status": "deleted"}))
}
