package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripova/tourbase/internal/domain"
	"github.com/tripova/tourbase/internal/dto"
	"github.com/tripova/tourbase/internal/service"
	"github.com/tripova/tourbase/pkg/middleware"
	"github.com/tripova/tourbase/pkg/response"
)

// TenantHandler handles tenant resolution and administration requests
type TenantHandler struct {
	registry service.TenantRegistryService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(registry service.TenantRegistryService) *TenantHandler {
	return &TenantHandler{registry: registry}
}

// GetPublicConfig handles GET /api/v1/site-config - the storefront bootstrap
// call. The tenant comes from the resolution middleware, never from input.
func (h *TenantHandler) GetPublicConfig(c *gin.Context) {
	tenantID := middleware.ResolvedTenant(c)
	cfg, err := h.registry.GetPublicConfig(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError("Failed to load site configuration"))
		return
	}
	c.JSON(http.StatusOK, response.Success(cfg))
}

// Create handles POST /admin/api/v1/tenants - registers a tenant (operator only)
func (h *TenantHandler) Create(c *gin.Context) {
	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	tenant, err := h.registry.CreateTenant(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrTenantAlreadyExists) {
			c.JSON(http.StatusConflict, response.Error(response.ErrCodeTenantExists, "A tenant with this domain already exists"))
			return
		}
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(tenant))
}

// Get handles GET /admin/api/v1/tenants/:id
func (h *TenantHandler) Get(c *gin.Context) {
	tenant, err := h.registry.GetTenant(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Tenant not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError("Failed to get tenant"))
		return
	}
	c.JSON(http.StatusOK, response.Success(tenant))
}

// List handles GET /admin/api/v1/tenants
func (h *TenantHandler) List(c *gin.Context) {
	var filter dto.TenantListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	tenants, total, err := h.registry.ListTenants(c.Request.Context(), &filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError("Failed to list tenants"))
		return
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	c.JSON(http.StatusOK, response.Paginated(tenants, page, limit, int64(total)))
}

// Update handles PUT /admin/api/v1/tenants/:id
func (h *TenantHandler) Update(c *gin.Context) {
	var req dto.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	tenant, err := h.registry.UpdateTenant(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTenantNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Tenant not found"))
		case errors.Is(err, domain.ErrTenantAlreadyExists):
			c.JSON(http.StatusConflict, response.Error(response.ErrCodeTenantExists, "A tenant with this domain already exists"))
		default:
			c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(tenant))
}

// SetDefault handles POST /admin/api/v1/tenants/:id/default - promotes a
// tenant to platform default
func (h *TenantHandler) SetDefault(c *gin.Context) {
	if err := h.registry.SetDefaultTenant(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Tenant not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError("Failed to set default tenant"))
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"status": "default tenant updated"}))
}

// Delete handles DELETE /admin/api/v1/tenants/:id
func (h *TenantHandler) Delete(c *gin.Context) {
	if err := h.registry.DeleteTenant(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, domain.ErrTenantNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Tenant not found"))
		case errors.Is(err, domain.ErrTenantImmutable):
			c.JSON(http.StatusConflict, response.Error(response.ErrCodeConflict, "The default tenant cannot be deleted"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError("Failed to delete tenant"))
		}
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"status": "deleted"}))
}
