package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tripova/tourbase/pkg/middleware"
)

// RouterDeps collects everything the HTTP surface needs.
type RouterDeps struct {
	Health       *HealthHandler
	Tenants      *TenantHandler
	Tours        *TourHandler
	Destinations *DestinationHandler
	Categories   *CategoryHandler
	Blogs        *BlogHandler
	Attractions  *AttractionHandler
	Discounts    *DiscountHandler
	Reviews      *ReviewHandler
	Heroes       *HeroHandler

	Resolver  middleware.TenantResolver
	JWTSecret string
	Audit     *middleware.AuditLogger // nil disables audit logging
}

// NewRouter builds the gin engine with the public and admin route groups.
func NewRouter(deps *RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", deps.Health.Live)
	router.GET("/ready", deps.Health.Ready)

	// Public storefront API. Every request is tenant-scoped off the
	// Host header, with header/cookie override for previews.
	public := router.Group("/api/v1")
	public.Use(middleware.TenantScope(deps.Resolver))
	{
		public.GET("/site-config", deps.Tenants.GetPublicConfig)

		public.GET("/tours", deps.Tours.List)
		public.GET("/tours/:slug", deps.Tours.GetBySlug)

		public.GET("/destinations", deps.Destinations.List)
		public.GET("/destinations/:slug", deps.Destinations.GetBySlug)

		public.GET("/categories", deps.Categories.List)
		public.GET("/categories/:name", deps.Categories.GetByName)

		public.GET("/blogs", deps.Blogs.List)
		public.GET("/blogs/:slug", deps.Blogs.GetBySlug)

		public.GET("/attractions", deps.Attractions.List)
		public.GET("/attractions/:slug", deps.Attractions.GetBySlug)

		public.GET("/reviews", deps.Reviews.ListByTour)
		public.POST("/reviews", deps.Reviews.Submit)

		public.POST("/discounts/apply", deps.Discounts.Apply)
		public.POST("/discounts/redeem", deps.Discounts.Redeem)

		public.GET("/hero", deps.Heroes.GetActive)
	}

	// Admin API. Tenant scope still applies so tenant admins operate on
	// the tenant their console is pointed at.
	admin := router.Group("/admin/api/v1")
	admin.Use(middleware.TenantScope(deps.Resolver))
	admin.Use(middleware.JWTMiddleware(&middleware.JWTConfig{Secret: deps.JWTSecret}))
	if deps.Audit != nil {
		admin.Use(middleware.Audit(deps.Audit))
	}

	operator := admin.Group("", middleware.RequireRole(middleware.RoleOperator))
	{
		operator.POST("/tenants", deps.Tenants.Create)
		operator.GET("/tenants", deps.Tenants.List)
		operator.GET("/tenants/:id", deps.Tenants.Get)
		operator.PUT("/tenants/:id", deps.Tenants.Update)
		operator.DELETE("/tenants/:id", deps.Tenants.Delete)
		operator.POST("/tenants/:id/default", deps.Tenants.SetDefault)
	}

	content := admin.Group("",
		middleware.RequireRole(middleware.RoleOperator, middleware.RoleTenantAdmin),
		middleware.RequireTenantClaim())
	{
		content.GET("/tours", deps.Tours.AdminList)
		content.POST("/tours", deps.Tours.Create)
		content.PUT("/tours/:id", deps.Tours.Update)
		content.DELETE("/tours/:id", deps.Tours.Delete)

		content.GET("/destinations", deps.Destinations.AdminList)
		content.POST("/destinations", deps.Destinations.Create)
		content.PUT("/destinations/:id", deps.Destinations.Update)
		content.DELETE("/destinations/:id", deps.Destinations.Delete)

		content.GET("/categories", deps.Categories.AdminList)
		content.POST("/categories", deps.Categories.Create)
		content.PUT("/categories/:id", deps.Categories.Update)
		content.DELETE("/categories/:id", deps.Categories.Delete)

		content.GET("/blogs", deps.Blogs.AdminList)
		content.POST("/blogs", deps.Blogs.Create)
		content.PUT("/blogs/:id", deps.Blogs.Update)
		content.DELETE("/blogs/:id", deps.Blogs.Delete)

		content.GET("/attractions", deps.Attractions.AdminList)
		content.POST("/attractions", deps.Attractions.Create)
		content.PUT("/attractions/:id", deps.Attractions.Update)
		content.DELETE("/attractions/:id", deps.Attractions.Delete)

		content.GET("/discounts", deps.Discounts.AdminList)
		content.POST("/discounts", deps.Discounts.Create)
		content.PUT("/discounts/:id", deps.Discounts.Update)

		content.GET("/reviews", deps.Reviews.AdminList)
		content.POST("/reviews/:id/moderate", deps.Reviews.Moderate)
		content.DELETE("/reviews/:id", deps.Reviews.Delete)

		content.GET("/heroes", deps.Heroes.AdminList)
		content.POST("/heroes", deps.Heroes.Create)
		content.POST("/heroes/:id/activate", deps.Heroes.Activate)
		content.PUT("/heroes/:id", deps.Heroes.Update)
		content.DELETE("/heroes/:id", deps.Heroes.Delete)
	}

	return router
}
