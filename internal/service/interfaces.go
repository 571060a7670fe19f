package service

import (
	"context"

	"github.com/tripova/tourbase/internal/domain"
	"github.com/tripova/tourbase/internal/dto"
)

// TenantRegistryService defines the interface for tenant resolution and
// administration. ResolveTenantID doubles as the middleware resolver.
type TenantRegistryService interface {
	// ResolveTenantID maps a normalized request host (plus optional
	// override) to a tenant id. It never fails; unknown hosts get the
	// default tenant.
	ResolveTenantID(ctx context.Context, host, override string) string
	// DefaultTenantID returns the id of the platform's default tenant
	DefaultTenantID(ctx context.Context) string
	// GetPublicConfig returns the storefront-safe view of the tenant
	GetPublicConfig(ctx context.Context, tenantID string) (*dto.PublicTenantConfig, error)
	// CreateTenant registers a new tenant site
	CreateTenant(ctx context.Context, req *dto.CreateTenantRequest) (*domain.Tenant, error)
	// GetTenant retrieves a tenant by id
	GetTenant(ctx context.Context, id string) (*domain.Tenant, error)
	// ListTenants lists tenants with pagination
	ListTenants(ctx context.Context, filter *dto.TenantListFilter) ([]*domain.Tenant, int, error)
	// UpdateTenant updates a tenant's settings
	UpdateTenant(ctx context.Context, id string, req *dto.UpdateTenantRequest) (*domain.Tenant, error)
	// SetDefaultTenant promotes a tenant to be the platform default
	SetDefaultTenant(ctx context.Context, id string) error
	// DeleteTenant soft deletes a tenant
	DeleteTenant(ctx context.Context, id string) error
}

// DestinationService defines the interface for destination business logic
type DestinationService interface {
	// CreateDestination creates a destination with a generated unique slug
	CreateDestination(ctx context.Context, req *dto.CreateDestinationRequest) (*domain.Destination, error)
	// GetDestinationBySlug resolves a destination with default-tenant fallback
	GetDestinationBySlug(ctx context.Context, tenantID, slug string) (*domain.Destination, error)
	// ListDestinations lists the tenant's own destinations
	ListDestinations(ctx context.Context, tenantID string, publishedOnly bool, page, limit int) ([]*domain.Destination, int, error)
	// UpdateDestination updates a destination
	UpdateDestination(ctx context.Context, tenantID, id string, req *dto.UpdateDestinationRequest) (*domain.Destination, error)
	// DeleteDestination soft deletes a destination
	DeleteDestination(ctx context.Context, tenantID, id string) error
}

// TourService defines the interface for tour business logic
type TourService interface {
	// CreateTour creates a tour with a generated unique slug
	CreateTour(ctx context.Context, req *dto.CreateTourRequest) (*domain.Tour, error)
	// GetTourByID retrieves a tour owned by the tenant
	GetTourByID(ctx context.Context, tenantID, id string) (*domain.Tour, error)
	// GetTourBySlug resolves a tour detail page with default-tenant fallback
	GetTourBySlug(ctx context.Context, tenantID, slug string) (*domain.Tour, error)
	// ListTours lists the tenant's own tours
	ListTours(ctx context.Context, tenantID string, query *dto.TourListQuery, publishedOnly bool) ([]*domain.Tour, int, error)
	// UpdateTour updates a tour
	UpdateTour(ctx context.Context, tenantID, id string, req *dto.UpdateTourRequest) (*domain.Tour, error)
	// DeleteTour soft deletes a tour
	DeleteTour(ctx context.Context, tenantID, id string) error
}

// CategoryService defines the interface for category business logic
type CategoryService interface {
	// CreateCategory creates a category; the name is the per-tenant key
	CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*domain.Category, error)
	// GetCategoryByName resolves a category with default-tenant fallback
	GetCategoryByName(ctx context.Context, tenantID, name string) (*domain.Category, error)
	// ListCategories lists the tenant's own categories
	ListCategories(ctx context.Context, tenantID string, activeOnly bool) ([]*domain.Category, error)
	// UpdateCategory updates a category
	UpdateCategory(ctx context.Context, tenantID, id string, req *dto.UpdateCategoryRequest) (*domain.Category, error)
	// DeleteCategory soft deletes a category
	DeleteCategory(ctx context.Context, tenantID, id string) error
}

// BlogService defines the interface for blog business logic
type BlogService interface {
	// CreateBlog creates a blog post with a generated unique slug
	CreateBlog(ctx context.Context, req *dto.CreateBlogRequest) (*domain.Blog, error)
	// GetBlogBySlug resolves a blog post with default-tenant fallback
	GetBlogBySlug(ctx context.Context, tenantID, slug string) (*domain.Blog, error)
	// ListBlogs lists the tenant's own blog posts
	ListBlogs(ctx context.Context, tenantID string, publishedOnly bool, page, limit int) ([]*domain.Blog, int, error)
	// UpdateBlog updates a blog post
	UpdateBlog(ctx context.Context, tenantID, id string, req *dto.UpdateBlogRequest) (*domain.Blog, error)
	// DeleteBlog soft deletes a blog post
	DeleteBlog(ctx context.Context, tenantID, id string) error
}

// AttractionService defines the interface for attraction page business logic
type AttractionService interface {
	// CreateAttraction creates an attraction page with a generated unique slug
	CreateAttraction(ctx context.Context, req *dto.CreateAttractionRequest) (*domain.AttractionPage, error)
	// GetAttractionBySlug resolves an attraction page with default-tenant fallback
	GetAttractionBySlug(ctx context.Context, tenantID, slug string) (*domain.AttractionPage, error)
	// ListAttractions lists the tenant's own attraction pages
	ListAttractions(ctx context.Context, tenantID string, publishedOnly bool, page, limit int) ([]*domain.AttractionPage, int, error)
	// UpdateAttraction updates an attraction page
	UpdateAttraction(ctx context.Context, tenantID, id string, req *dto.UpdateAttractionRequest) (*domain.AttractionPage, error)
	// DeleteAttraction soft deletes an attraction page
	DeleteAttraction(ctx context.Context, tenantID, id string) error
}

// DiscountService defines the interface for discount business logic
type DiscountService interface {
	// CreateDiscount creates a discount code scoped to the tenant
	CreateDiscount(ctx context.Context, req *dto.CreateDiscountRequest) (*domain.Discount, error)
	// ApplyDiscount validates a code and quotes the discounted amount
	ApplyDiscount(ctx context.Context, tenantID string, req *dto.ApplyDiscountRequest) (*dto.DiscountQuote, error)
	// RedeemDiscount consumes one use of a code
	RedeemDiscount(ctx context.Context, tenantID, code string) error
	// ListDiscounts lists the tenant's discount codes
	ListDiscounts(ctx context.Context, tenantID string, activeOnly bool) ([]*domain.Discount, error)
	// UpdateDiscount updates a discount code
	UpdateDiscount(ctx context.Context, tenantID, id string, req *dto.UpdateDiscountRequest) (*domain.Discount, error)
}

// ReviewService defines the interface for review business logic
type ReviewService interface {
	// SubmitReview records a review for a tenant-owned tour
	SubmitReview(ctx context.Context, tenantID, tourID string, req *dto.CreateReviewRequest) (*domain.Review, error)
	// ListReviews lists a tour's reviews
	ListReviews(ctx context.Context, tenantID, tourID string, approvedOnly bool, page, limit int) ([]*domain.Review, int, error)
	// ModerateReview approves or rejects a review
	ModerateReview(ctx context.Context, tenantID, id string, approved bool) error
	// DeleteReview removes a review
	DeleteReview(ctx context.Context, tenantID, id string) error
}

// HeroService defines the interface for hero settings business logic
type HeroService interface {
	// CreateHero adds an inactive hero configuration
	CreateHero(ctx context.Context, req *dto.CreateHeroRequest) (*domain.HeroSettings, error)
	// GetActiveHero resolves the hero with default-tenant fallback
	GetActiveHero(ctx context.Context, tenantID string) (*domain.HeroSettings, error)
	// ListHeroes lists the tenant's hero configurations
	ListHeroes(ctx context.Context, tenantID string) ([]*domain.HeroSettings, error)
	// ActivateHero makes one configuration the tenant's active hero
	ActivateHero(ctx context.Context, tenantID, id string) error
	// UpdateHero updates a hero configuration's content
	UpdateHero(ctx context.Context, tenantID, id string, req *dto.UpdateHeroRequest) (*domain.HeroSettings, error)
	// DeleteHero removes a hero configuration
	DeleteHero(ctx context.Context, tenantID, id string) error
}
