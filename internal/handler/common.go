package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tripova/tourbase/internal/domain"
	"github.com/tripova/tourbase/pkg/response"
)

// parsePagination reads page/limit query params with sane bounds
func parsePagination(c *gin.Context) (page, limit int) {
	page = 1
	limit = 20
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	return page, limit
}

// writeServiceError maps shared domain errors onto the response envelope,
// falling back to a 500 with the given message. Handlers dispatch their own
// specific errors before calling this.
func writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, response.NotFound(""))
	case errors.Is(err, domain.ErrSlugConflict):
		c.JSON(http.StatusConflict, response.SlugConflict(""))
	case errors.Is(err, domain.ErrTenantScopeRequired):
		// A missing tenant scope is a wiring bug, not a client mistake.
		c.JSON(http.StatusInternalServerError, response.InternalError("Request was not tenant-scoped"))
	default:
		c.JSON(http.StatusInternalServerError, response.InternalError(fallback))
	}
}
