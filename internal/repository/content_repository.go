package repository

import (
	"context"

	"github.com/tripova/tourbase/internal/domain"
)

// Scoped lookup convention: single-record reads take both the requesting
// tenant id and the default tenant id and prefer the tenant-owned record,
// falling back to the default tenant's record with the same natural key.
// Bulk listings never fall back; they are strictly tenant-filtered.

// DestinationRepository defines tenant-scoped destination data access
type DestinationRepository interface {
	Create(ctx context.Context, d *domain.Destination) error
	GetByID(ctx context.Context, id, tenantID string) (*domain.Destination, error)
	// GetBySlug resolves a destination visible to tenantID: its own record
	// first, then the default tenant's record with the same slug.
	GetBySlug(ctx context.Context, slug, tenantID, defaultTenantID string) (*domain.Destination, error)
	List(ctx context.Context, tenantID string, publishedOnly bool, page, limit int) ([]*domain.Destination, int, error)
	Update(ctx context.Context, d *domain.Destination) error
	SoftDelete(ctx context.Context, id, tenantID string) error
	// ExistsBySlug checks the tenant's own namespace only, optionally
	// excluding the record being updated.
	ExistsBySlug(ctx context.Context, tenantID, slug, excludeID string) (bool, error)
}

// TourRepository defines tenant-scoped tour data access
type TourRepository interface {
	Create(ctx context.Context, t *domain.Tour) error
	GetByID(ctx context.Context, id, tenantID string) (*domain.Tour, error)
	GetBySlug(ctx context.Context, slug, tenantID, defaultTenantID string) (*domain.Tour, error)
	// List is strictly tenant-filtered: tours are never shared across
	// tenants in listing context.
	List(ctx context.Context, tenantID string, filter TourFilter) ([]*domain.Tour, int, error)
	Update(ctx context.Context, t *domain.Tour) error
	SoftDelete(ctx context.Context, id, tenantID string) error
	ExistsBySlug(ctx context.Context, tenantID, slug, excludeID string) (bool, error)
}

// TourFilter narrows tour listings
type TourFilter struct {
	DestinationID string
	CategoryID    string
	FeaturedOnly  bool
	PublishedOnly bool
	Search        string
	Page          int
	Limit         int
}

// CategoryRepository defines tenant-scoped category data access.
// The natural key is the name, unique per tenant.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	GetByID(ctx context.Context, id, tenantID string) (*domain.Category, error)
	GetByName(ctx context.Context, name, tenantID, defaultTenantID string) (*domain.Category, error)
	List(ctx context.Context, tenantID string, activeOnly bool) ([]*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	SoftDelete(ctx context.Context, id, tenantID string) error
	ExistsByName(ctx context.Context, tenantID, name, excludeID string) (bool, error)
}

// BlogRepository defines tenant-scoped blog data access
type BlogRepository interface {
	Create(ctx context.Context, b *domain.Blog) error
	GetByID(ctx context.Context, id, tenantID string) (*domain.Blog, error)
	GetBySlug(ctx context.Context, slug, tenantID, defaultTenantID string) (*domain.Blog, error)
	List(ctx context.Context, tenantID string, publishedOnly bool, page, limit int) ([]*domain.Blog, int, error)
	Update(ctx context.Context, b *domain.Blog) error
	SoftDelete(ctx context.Context, id, tenantID string) error
	ExistsBySlug(ctx context.Context, tenantID, slug, excludeID string) (bool, error)
}

// AttractionRepository defines tenant-scoped attraction page data access
type AttractionRepository interface {
	Create(ctx context.Context, a *domain.AttractionPage) error
	GetByID(ctx context.Context, id, tenantID string) (*domain.AttractionPage, error)
	GetBySlug(ctx context.Context, slug, tenantID, defaultTenantID string) (*domain.AttractionPage, error)
	List(ctx context.Context, tenantID string, publishedOnly bool, page, limit int) ([]*domain.AttractionPage, int, error)
	Update(ctx context.Context, a *domain.AttractionPage) error
	SoftDelete(ctx context.Context, id, tenantID string) error
	ExistsBySlug(ctx context.Context, tenantID, slug, excludeID string) (bool, error)
}

// DiscountRepository defines tenant-scoped discount data access. Discount
// codes never fall back to the default tenant: a shared code would let one
// tenant's promotion apply to another tenant's checkout.
type DiscountRepository interface {
	Create(ctx context.Context, d *domain.Discount) error
	GetByID(ctx context.Context, id, tenantID string) (*domain.Discount, error)
	GetByCode(ctx context.Context, code, tenantID string) (*domain.Discount, error)
	List(ctx context.Context, tenantID string, activeOnly bool) ([]*domain.Discount, error)
	Update(ctx context.Context, d *domain.Discount) error
	// IncrementUsage bumps used_count, guarding the max_uses ceiling in SQL.
	IncrementUsage(ctx context.Context, id, tenantID string) error
	ExistsByCode(ctx context.Context, tenantID, code, excludeID string) (bool, error)
}

// ReviewRepository defines tenant-scoped review data access. Reviews belong
// to the tenant owning the reviewed tour and never fall back.
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) error
	ListByTour(ctx context.Context, tourID, tenantID string, approvedOnly bool, page, limit int) ([]*domain.Review, int, error)
	SetApproved(ctx context.Context, id, tenantID string, approved bool) error
	Delete(ctx context.Context, id, tenantID string) error
}

// HeroRepository defines tenant-scoped hero settings data access
type HeroRepository interface {
	Create(ctx context.Context, h *domain.HeroSettings) error
	GetByID(ctx context.Context, id, tenantID string) (*domain.HeroSettings, error)
	// GetActive returns the tenant's active hero, falling back to the
	// default tenant's active hero when the tenant has none.
	GetActive(ctx context.Context, tenantID, defaultTenantID string) (*domain.HeroSettings, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*domain.HeroSettings, error)
	// Activate makes the given hero the tenant's single active one.
	Activate(ctx context.Context, id, tenantID string) error
	Update(ctx context.Context, h *domain.HeroSettings) error
	Delete(ctx context.Context, id, tenantID string) error
}
