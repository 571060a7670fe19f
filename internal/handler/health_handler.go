package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tripova/tourbase/pkg/database"
	"github.com/tripova/tourbase/pkg/redis"
	"github.com/tripova/tourbase/pkg/response"
)

// HealthHandler reports process and dependency health
type HealthHandler struct {
	db      *database.PostgresDB
	cache   *redis.Client // nil when Redis is disabled
	version string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *database.PostgresDB, cache *redis.Client, version string) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, version: version}
}

// Live handles GET /health - process liveness only
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(gin.H{
		"status":  "ok",
		"version": h.version,
	}))
}

// Ready handles GET /ready - checks dependencies with a short deadline
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{}
	healthy := true

	if err := h.db.Ping(ctx); err != nil {
		checks["database"] = "down: " + err.Error()
		healthy = false
	} else {
		checks["database"] = "up"
	}

	if h.cache != nil {
		if err := h.cache.Raw().Ping(ctx).Err(); err != nil {
			checks["redis"] = "down: " + err.Error()
			healthy = false
		} else {
			checks["redis"] = "up"
		}
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, response.Error(response.ErrCodeServiceUnavailable, "Dependencies unavailable"))
		return
	}
	c.JSON(http.StatusOK, response.Success(checks))
}
