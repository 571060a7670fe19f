package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripova/tourbase/internal/dto"
	"github.com/tripova/tourbase/internal/service"
	"github.com/tripova/tourbase/pkg/middleware"
	"github.com/tripova/tourbase/pkg/response"
)

// AttractionHandler handles attraction page HTTP requests
type AttractionHandler struct {
	attrService service.AttractionService
}

// NewAttractionHandler creates a new AttractionHandler
func NewAttractionHandler(attrService service.AttractionService) *AttractionHandler {
	return &AttractionHandler{attrService: attrService}
}

// List handles GET /api/v1/attractions
func (h *AttractionHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	tenantID := middleware.ResolvedTenant(c)

	pages, total, err := h.attrService.ListAttractions(c.Request.Context(), tenantID, true, page, limit)
	if err != nil {
		writeServiceError(c, err, "Failed to list attractions")
		return
	}
	c.JSON(http.StatusOK, response.Paginated(pages, page, limit, int64(total)))
}

// GetBySlug handles GET /api/v1/attractions/:slug
func (h *AttractionHandler) GetBySlug(c *gin.Context) {
	tenantID := middleware.ResolvedTenant(c)
	attraction, err := h.attrService.GetAttractionBySlug(c.Request.Context(), tenantID, c.Param("slug"))
	if err != nil {
		writeServiceError(c, err, "Failed to get attraction")
		return
	}
	c.JSON(http.StatusOK, response.Success(attraction))
}

// AdminList handles GET /admin/api/v1/attractions
func (h *AttractionHandler) AdminList(c *gin.Context) {
	page, limit := parsePagination(c)
	tenantID := middleware.ResolvedTenant(c)

	pages, total, err := h.attrService.ListAttractions(c.Request.Context(), tenantID, false, page, limit)
	if err != nil {
		writeServiceError(c, err, "Failed to list attractions")
		return
	}
	c.JSON(http.StatusOK, response.Paginated(pages, page, limit, int64(total)))
}

// Create handles POST /admin/api/v1/attractions
func (h *AttractionHandler) Create(c *gin.Context) {
	var req dto.CreateAttractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	req.TenantID = middleware.ResolvedTenant(c)

	attraction, err := h.attrService.CreateAttraction(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err, "Failed to create attraction")
		return
	}
	c.JSON(http.StatusCreated, response.Success(attraction))
}

// Update handles PUT /admin/api/v1/attractions/:id
func (h *AttractionHandler) Update(c *gin.Context) {
	var req dto.UpdateAttractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	tenantID := middleware.ResolvedTenant(c)

	attraction, err := h.attrService.UpdateAttraction(c.Request.Context(), tenantID, c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err, "Failed to update attraction")
		return
	}
	c.JSON(http.StatusOK, response.Success(attraction))
}

// Delete handles DELETE /admin/api/v1/attractions/:id
func (h *AttractionHandler) Delete(c *gin.Context) {
	tenantID := middleware.ResolvedTenant(c)
	if err := h.attrService.DeleteAttraction(c.Request.Context(), tenantID, c.Param("id")); err != nil {
		writeServiceError(c, err, "Failed to delete attraction")
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"status": "deleted"}))
}
