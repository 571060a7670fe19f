package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripova/tourbase/internal/dto"
	"github.com/tripova/tourbase/internal/service"
	"github.com/tripova/tourbase/pkg/middleware"
	"github.com/tripova/tourbase/pkg/response"
)

// DestinationHandler handles destination-related HTTP requests
type DestinationHandler struct {
	destService service.DestinationService
}

// NewDestinationHandler creates a new DestinationHandler
func NewDestinationHandler(destService service.DestinationService) *DestinationHandler {
	return &DestinationHandler{destService: destService}
}

// List handles GET /api/v1/destinations
func (h *DestinationHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	tenantID := middleware.ResolvedTenant(c)

	destinations, total, err := h.destService.ListDestinations(c.Request.Context(), tenantID, true, page, limit)
	if err != nil {
		writeServiceError(c, err, "Failed to list destinations")
		return
	}
	c.JSON(http.StatusOK, response.Paginated(destinations, page, limit, int64(total)))
}

// GetBySlug handles GET /api/v1/destinations/:slug
func (h *DestinationHandler) GetBySlug(c *gin.Context) {
	tenantID := middleware.ResolvedTenant(c)
	dest, err := h.destService.GetDestinationBySlug(c.Request.Context(), tenantID, c.Param("slug"))
	if err != nil {
		writeServiceError(c, err, "Failed to get destination")
		return
	}
	c.JSON(http.StatusOK, response.Success(dest))
}

// AdminList handles GET /admin/api/v1/destinations
func (h *DestinationHandler) AdminList(c *gin.Context) {
	page, limit := parsePagination(c)
	tenantID := middleware.ResolvedTenant(c)

	destinations, total, err := h.destService.ListDestinations(c.Request.Context(), tenantID, false, page, limit)
	if err != nil {
		writeServiceError(c, err, "Failed to list destinations")
		return
	}
	c.JSON(http.StatusOK, response.Paginated(destinations, page, limit, int64(total)))
}

// Create handles POST /admin/api/v1/destinations
func (h *DestinationHandler) Create(c *gin.Context) {
	var req dto.CreateDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	req.TenantID = middleware.ResolvedTenant(c)

	dest, err := h.destService.CreateDestination(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err, "Failed to create destination")
		return
	}
	c.JSON(http.StatusCreated, response.Success(dest))
}

// Update handles PUT /admin/api/v1/destinations/:id
func (h *DestinationHandler) Update(c *gin.Context) {
	var req dto.UpdateDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	tenantID := middleware.ResolvedTenant(c)

	dest, err := h.destService.UpdateDestination(c.Request.Context(), tenantID, c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err, "Failed to update destination")
		return
	}
	c.JSON(http.StatusOK, response.Success(dest))
}

// Delete handles DELETE /admin/api/v1/destinations/:id
func (h *DestinationHandler) Delete(c *gin.Context) {
	tenantID := middleware.ResolvedTenant(c)
	if err := h.destService.DeleteDestination(c.Request.Context(), tenantID, c.Param("id")); err != nil {
		writeServiceError(c, err, "Failed to delete destination")
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"status": "deleted"}))
}
