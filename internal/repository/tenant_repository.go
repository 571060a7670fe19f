package repository

import (
	"context"

	"github.com/tripova/tourbase/internal/domain"
)

// TenantRepository defines the interface for tenant registry data access
type TenantRepository interface {
	// Create creates a new tenant
	Create(ctx context.Context, tenant *domain.Tenant) error
	// GetByID retrieves a tenant by its id
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	// GetByHost retrieves the active tenant whose primary or alternate
	// domains contain the normalized host
	GetByHost(ctx context.Context, host string) (*domain.Tenant, error)
	// GetDefault retrieves the tenant flagged is_default
	GetDefault(ctx context.Context) (*domain.Tenant, error)
	// List retrieves tenants with pagination and filters
	List(ctx context.Context, page, limit int, isActive *bool, search string) ([]*domain.Tenant, int, error)
	// Update updates a tenant's mutable fields
	Update(ctx context.Context, tenant *domain.Tenant) error
	// SetDefault atomically makes the given tenant the single default
	SetDefault(ctx context.Context, id string) error
	// SoftDelete soft deletes a tenant
	SoftDelete(ctx context.Context, id string) error
	// ExistsByDomain checks whether any tenant other than excludeID
	// already claims the domain
	ExistsByDomain(ctx context.Context, dom, excludeID string) (bool, error)
}
