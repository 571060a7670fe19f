package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripova/tourbase/internal/dto"
	"github.com/tripova/tourbase/internal/service"
	"github.com/tripova/tourbase/pkg/middleware"
	"github.com/tripova/tourbase/pkg/response"
)

// ReviewHandler handles review HTTP requests
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ListByTour handles GET /api/v1/reviews?tour_id=... The public route
// returns approved reviews only.
func (h *ReviewHandler) ListByTour(c *gin.Context) {
	tourID := c.Query("tour_id")
	if tourID == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("tour_id is required"))
		return
	}
	page, limit := parsePagination(c)
	tenantID := middleware.ResolvedTenant(c)

	reviews, total, err := h.reviewService.ListReviews(c.Request.Context(), tenantID, tourID, true, page, limit)
	if err != nil {
		writeServiceError(c, err, "Failed to list reviews")
		return
	}
	c.JSON(http.StatusOK, response.Paginated(reviews, page, limit, int64(total)))
}

// Submit handles POST /api/v1/reviews?tour_id=...
func (h *ReviewHandler) Submit(c *gin.Context) {
	tourID := c.Query("tour_id")
	if tourID == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("tour_id is required"))
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	tenantID := middleware.ResolvedTenant(c)

	review, err := h.reviewService.SubmitReview(c.Request.Context(), tenantID, tourID, &req)
	if err != nil {
		if errors.Is(err, service.ErrReviewTourNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Tour not found"))
			return
		}
		writeServiceError(c, err, "Failed to submit review")
		return
	}
	c.JSON(http.StatusCreated, response.Success(review))
}

// AdminList handles GET /admin/api/v1/reviews?tour_id=... - includes
// unmoderated reviews
func (h *ReviewHandler) AdminList(c *gin.Context) {
	tourID := c.Query("tour_id")
	if tourID == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("tour_id is required"))
		return
	}
	page, limit := parsePagination(c)
	tenantID := middleware.ResolvedTenant(c)

	reviews, total, err := h.reviewService.ListReviews(c.Request.Context(), tenantID, tourID, false, page, limit)
	if err != nil {
		writeServiceError(c, err, "Failed to list reviews")
		return
	}
	c.JSON(http.StatusOK, response.Paginated(reviews, page, limit, int64(total)))
}

// Moderate handles POST /admin/api/v1/reviews/:id/moderate
func (h *ReviewHandler) Moderate(c *gin.Context) {
	var req struct {
		Approved bool `json:"approved"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	tenantID := middleware.ResolvedTenant(c)

	if err := h.reviewService.ModerateReview(c.Request.Context(), tenantID, c.Param("id"), req.Approved); err != nil {
		writeServiceError(c, err, "Failed to moderate review")
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"status": "moderated"}))
}

// Delete handles DELETE /admin/api/v1/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	tenantID := middleware.ResolvedTenant(c)
	if err := h.reviewService.DeleteReview(c.Request.Context(), tenantID, c.Param("id")); err != nil {
		writeServiceError(c, err, "Failed to delete review")
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"status": "deleted"}))
}
