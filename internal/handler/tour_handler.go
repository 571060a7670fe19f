package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripova/tourbase/internal/dto"
	"github.com/tripova/tourbase/internal/service"
	"github.com/tripova/tourbase/pkg/middleware"
	"github.com/tripova/tourbase/pkg/response"
)

// TourHandler handles tour-related HTTP requests
type TourHandler struct {
	tourService service.TourService
}

// NewTourHandler creates a new TourHandler
func NewTourHandler(tourService service.TourService) *TourHandler {
	return &TourHandler{tourService: tourService}
}

// List handles GET /api/v1/tours - lists the tenant's published tours.
// Listings are strictly tenant-scoped; shared fallback rows never appear.
func (h *TourHandler) List(c *gin.Context) {
	var query dto.TourListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	tenantID := middleware.ResolvedTenant(c)

	tours, total, err := h.tourService.ListTours(c.Request.Context(), tenantID, &query, true)
	if err != nil {
		writeServiceError(c, err, "Failed to list tours")
		return
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 20
	}
	c.JSON(http.StatusOK, response.Paginated(tours, page, limit, int64(total)))
}

// GetBySlug handles GET /api/v1/tours/:slug - a tour detail page. The
// tenant's own tour wins; otherwise shared default content serves the page.
func (h *TourHandler) GetBySlug(c *gin.Context) {
	tenantID := middleware.ResolvedTenant(c)
	tour, err := h.tourService.GetTourBySlug(c.Request.Context(), tenantID, c.Param("slug"))
	if err != nil {
		writeServiceError(c, err, "Failed to get tour")
		return
	}
	c.JSON(http.StatusOK, response.Success(tour))
}

// AdminList handles GET /admin/api/v1/tours - includes unpublished tours
func (h *TourHandler) AdminList(c *gin.Context) {
	var query dto.TourListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	tenantID := middleware.ResolvedTenant(c)

	tours, total, err := h.tourService.ListTours(c.Request.Context(), tenantID, &query, false)
	if err != nil {
		writeServiceError(c, err, "Failed to list tours")
		return
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 20
	}
	c.JSON(http.StatusOK, response.Paginated(tours, page, limit, int64(total)))
}

// Create handles POST /admin/api/v1/tours
func (h *TourHandler) Create(c *gin.Context) {
	var req dto.CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	req.TenantID = middleware.ResolvedTenant(c)

	tour, err := h.tourService.CreateTour(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err, "Failed to create tour")
		return
	}
	c.JSON(http.StatusCreated, response.Success(tour))
}

// Update handles PUT /admin/api/v1/tours/:id
func (h *TourHandler) Update(c *gin.Context) {
	var req dto.UpdateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	tenantID := middleware.ResolvedTenant(c)

	tour, err := h.tourService.UpdateTour(c.Request.Context(), tenantID, c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err, "Failed to update tour")
		return
	}
	c.JSON(http.StatusOK, response.Success(tour))
}

// Delete handles DELETE /admin/api/v1/tours/:id
func (h *TourHandler) Delete(c *gin.Context) {
	tenantID := middleware.ResolvedTenant(c)
	if err := h.tourService.DeleteTour(c.Request.Context(), tenantID, c.Param("id")); err != nil {
		writeServiceError(c, err, "Failed to delete tour")
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"status": "deleted"}))
}
