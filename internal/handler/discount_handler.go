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

// DiscountHandler handles discount code HTTP requests
type DiscountHandler struct {
	discountService service.DiscountService
}

// NewDiscountHandler creates a new DiscountHandler
func NewDiscountHandler(discountService service.DiscountService) *DiscountHandler {
	return &DiscountHandler{discountService: discountService}
}

// Apply handles POST /api/v1/discounts/apply - quotes a code against an
// amount. Codes from other tenants, including the default tenant, are
// invisible here.
func (h *DiscountHandler) Apply(c *gin.Context) {
	var req dto.ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	tenantID := middleware.ResolvedTenant(c)

	quote, err := h.discountService.ApplyDiscount(c.Request.Context(), tenantID, &req)
	if err != nil {
		h.writeDiscountError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(quote))
}

// Redeem handles POST /api/v1/discounts/redeem
func (h *DiscountHandler) Redeem(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	tenantID := middleware.ResolvedTenant(c)

	if err := h.discountService.RedeemDiscount(c.Request.Context(), tenantID, req.Code); err != nil {
		h.writeDiscountError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"status": "redeemed"}))
}

func (h *DiscountHandler) writeDiscountError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDiscountNotFound):
		c.JSON(http.StatusNotFound, response.Error(response.ErrCodeDiscountInvalid, "Discount code not found"))
	case errors.Is(err, service.ErrDiscountNotRedeemable):
		c.JSON(http.StatusUnprocessableEntity, response.Error(response.ErrCodeDiscountInvalid, "Discount code cannot be applied"))
	default:
		writeServiceError(c, err, "Failed to process discount")
	}
}

// AdminList handles GET /admin/api/v1/discounts
func (h *DiscountHandler) AdminList(c *gin.Context) {
	tenantID := middleware.ResolvedTenant(c)
	discounts, err := h.discountService.ListDiscounts(c.Request.Context(), tenantID, false)
	if err != nil {
		writeServiceError(c, err, "Failed to list discounts")
		return
	}
	c.JSON(http.StatusOK, response.Success(discounts))
}

// Create handles POST /admin/api/v1/discounts
func (h *DiscountHandler) Create(c *gin.Context) {
	var req dto.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	req.TenantID = middleware.ResolvedTenant(c)

	discount, err := h.discountService.CreateDiscount(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err, "Failed to create discount")
		return
	}
	c.JSON(http.StatusCreated, response.Success(discount))
}

// Update handles PUT /admin/api/v1/discounts/:id
func (h *DiscountHandler) Update(c *gin.Context) {
	var req dto.UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	tenantID := middleware.ResolvedTenant(c)

	discount, err := h.discountService.UpdateDiscount(c.Request.Context(), tenantID, c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrDiscountNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Discount not found"))
			return
		}
		writeServiceError(c, err, "Failed to update discount")
		return
	}
	c.JSON(http.StatusOK, response.Success(discount))
}
