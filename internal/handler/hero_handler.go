package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripova/tourbase/internal/dto"
	"github.com/tripova/tourbase/internal/service"
	"github.com/tripova/tourbase/pkg/middleware"
	"github.com/tripova/tourbase/pkg/response"
)

// HeroHandler handles hero settings HTTP requests
type HeroHandler struct {
	heroService service.HeroService
}

// NewHeroHandler creates a new HeroHandler
func NewHeroHandler(heroService service.HeroService) *HeroHandler {
	return &HeroHandler{heroService: heroService}
}

// GetActive handles GET /api/v1/hero - the landing page hero, with
// default-tenant fallback when the tenant has none configured
func (h *HeroHandler) GetActive(c *gin.Context) {
	tenantID := middleware.ResolvedTenant(c)
	hero, err := h.heroService.GetActiveHero(c.Request.Context(), tenantID)
	if err != nil {
		writeServiceError(c, err, "Failed to get hero")
		return
	}
	c.JSON(http.StatusOK, response.Success(hero))
}

// AdminList handles GET /admin/api/v1/heroes
func (h *HeroHandler) AdminList(c *gin.Context) {
	tenantID := middleware.ResolvedTenant(c)
	heroes, err := h.heroService.ListHeroes(c.Request.Context(), tenantID)
	if err != nil {
		writeServiceError(c, err, "Failed to list heroes")
		return
	}
	c.JSON(http.StatusOK, response.Success(heroes))
}

// Create handles POST /admin/api/v1/heroes
func (h *HeroHandler) Create(c *gin.Context) {
	var req dto.CreateHeroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	req.TenantID = middleware.ResolvedTenant(c)

	hero, err := h.heroService.CreateHero(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err, "Failed to create hero")
		return
	}
	c.JSON(http.StatusCreated, response.Success(hero))
}

// Activate handles POST /admin/api/v1/heroes/:id/activate
func (h *HeroHandler) Activate(c *gin.Context) {
	tenantID := middleware.ResolvedTenant(c)
	if err := h.heroService.ActivateHero(c.Request.Context(), tenantID, c.Param("id")); err != nil {
		writeServiceError(c, err, "Failed to activate hero")
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"status": "activated"}))
}

// Update handles PUT /admin/api/v1/heroes/:id
func (h *HeroHandler) Update(c *gin.Context) {
	var req dto.UpdateHeroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	tenantID := middleware.ResolvedTenant(c)

	hero, err := h.heroService.UpdateHero(c.Request.Context(), tenantID, c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err, "Failed to update hero")
		return
	}
	c.JSON(http.StatusOK, response.Success(hero))
}

// Delete handles DELETE /admin/api/v1/heroes/:id
func (h *HeroHandler) Delete(c *gin.Context) {
	tenantID := middleware.ResolvedTenant(c)
	if err := h.heroService.DeleteHero(c.Request.Context(), tenantID, c.Param("id")); err != nil {
		writeServiceError(c, err, "Failed to delete hero")
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"status": "deleted"}))
}
