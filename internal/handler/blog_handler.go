package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripova/tourbase/internal/dto"
	"github.com/tripova/tourbase/internal/service"
	"github.com/tripova/tourbase/pkg/middleware"
	"github.com/tripova/tourbase/pkg/response"
)

// BlogHandler handles blog-related HTTP requests
type BlogHandler struct {
	blogService service.BlogService
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(blogService service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// List handles GET /api/v1/blogs
func (h *BlogHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	tenantID := middleware.ResolvedTenant(c)

	blogs, total, err := h.blogService.ListBlogs(c.Request.Context(), tenantID, true, page, limit)
	if err != nil {
		writeServiceError(c, err, "Failed to list blogs")
		return
	}
	c.JSON(http.StatusOK, response.Paginated(blogs, page, limit, int64(total)))
}

// GetBySlug handles GET /api/v1/blogs/:slug
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	tenantID := middleware.ResolvedTenant(c)
	blog, err := h.blogService.GetBlogBySlug(c.Request.Context(), tenantID, c.Param("slug"))
	if err != nil {
		writeServiceError(c, err, "Failed to get blog")
		return
	}
	c.JSON(http.StatusOK, response.Success(blog))
}

// AdminList handles GET /admin/api/v1/blogs
func (h *BlogHandler) AdminList(c *gin.Context) {
	page, limit := parsePagination(c)
	tenantID := middleware.ResolvedTenant(c)

	blogs, total, err := h.blogService.ListBlogs(c.Request.Context(), tenantID, false, page, limit)
	if err != nil {
		writeServiceError(c, err, "Failed to list blogs")
		return
	}
	c.JSON(http.StatusOK, response.Paginated(blogs, page, limit, int64(total)))
}

// Create handles POST /admin/api/v1/blogs
func (h *BlogHandler) Create(c *gin.Context) {
	var req dto.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	req.TenantID = middleware.ResolvedTenant(c)

	blog, err := h.blogService.CreateBlog(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err, "Failed to create blog")
		return
	}
	c.JSON(http.StatusCreated, response.Success(blog))
}

// Update handles PUT /admin/api/v1/blogs/:id
func (h *BlogHandler) Update(c *gin.Context) {
	var req dto.UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	tenantID := middleware.ResolvedTenant(c)

	blog, err := h.blogService.UpdateBlog(c.Request.Context(), tenantID, c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err, "Failed to update blog")
		return
	}
	c.JSON(http.StatusOK, response.Success(blog))
}

// Delete handles DELETE /admin/api/v1/blogs/:id
func (h *BlogHandler) Delete(c *gin.Context) {
	tenantID := middleware.ResolvedTenant(c)
	if err := h.blogService.DeleteBlog(c.Request.Context(), tenantID, c.Param("id")); err != nil {
		writeServiceError(c, err, "Failed to delete blog")
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"status": "deleted"}))
}
