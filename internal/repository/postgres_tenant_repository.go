package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripova/tourbase/internal/domain"
)

const tenantColumns = `
	id, name, slug, COALESCE(domain, '') as domain, COALESCE(alt_domains, '{}') as alt_domains,
	COALESCE(branding, '{}'::jsonb) as branding, COALESCE(contact_email, '') as contact_email,
	COALESCE(contact_phone, '') as contact_phone, COALESCE(currency, 'USD') as currency,
	COALESCE(feature_flags, '{}'::jsonb) as feature_flags, COALESCE(secrets, '{}'::jsonb) as secrets,
	is_active, is_default, created_at, updated_at, deleted_at`

// PostgresTenantRepository implements TenantRepository using PostgreSQL.
// The tenant registry always lives in the shared database, even when some
// tenants route their content to dedicated databases.
type PostgresTenantRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTenantRepository creates a new PostgresTenantRepository
func NewPostgresTenantRepository(pool *pgxpool.Pool) *PostgresTenantRepository {
	return &PostgresTenantRepository{pool: pool}
}

func scanTenant(row pgx.Row) (*domain.Tenant, error) {
	tenant := &domain.Tenant{}
	err := row.Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Slug,
		&tenant.Domain,
		&tenant.AltDomains,
		&tenant.Branding,
		&tenant.ContactEmail,
		&tenant.ContactPhone,
		&tenant.Currency,
		&tenant.FeatureFlags,
		&tenant.Secrets,
		&tenant.IsActive,
		&tenant.IsDefault,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
		&tenant.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return tenant, nil
}

// Create creates a new tenant
func (r *PostgresTenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, slug, domain, alt_domains, branding, contact_email,
		                     contact_phone, currency, feature_flags, secrets, is_active, is_default,
		                     created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.pool.Exec(ctx, query,
		tenant.ID,
		tenant.Name,
		tenant.Slug,
		nullStringOrValue(tenant.Domain),
		tenant.AltDomains,
		tenant.Branding,
		nullStringOrValue(tenant.ContactEmail),
		nullStringOrValue(tenant.ContactPhone),
		tenant.Currency,
		tenant.FeatureFlags,
		tenant.Secrets,
		tenant.IsActive,
		tenant.IsDefault,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	)
	return err
}

// GetByID retrieves a tenant by its id
func (r *PostgresTenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1 AND deleted_at IS NULL`
	return scanTenant(r.pool.QueryRow(ctx, query, id))
}

// GetByHost retrieves the active tenant matching the normalized host on its
// primary domain or any alternate domain
func (r *PostgresTenantRepository) GetByHost(ctx context.Context, host string) (*domain.Tenant, error) {
	query := `
		SELECT ` + tenantColumns + `
		FROM tenants
		WHERE (domain = $1 OR $1 = ANY(alt_domains)) AND is_active AND deleted_at IS NULL
	`
	return scanTenant(r.pool.QueryRow(ctx, query, host))
}

// GetDefault retrieves the tenant flagged is_default. The partial unique
// index on (is_default) WHERE is_default guarantees at most one row.
func (r *PostgresTenantRepository) GetDefault(ctx context.Context) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE is_default AND deleted_at IS NULL`
	return scanTenant(r.pool.QueryRow(ctx, query))
}

// List retrieves tenants with pagination and filters
func (r *PostgresTenantRepository) List(ctx context.Context, page, limit int, isActive *bool, search string) ([]*domain.Tenant, int, error) {
	whereClause := "WHERE deleted_at IS NULL"
	args := []interface{}{}
	argIndex := 1

	if isActive != nil {
		whereClause += fmt.Sprintf(" AND is_active = $%d", argIndex)
		args = append(args, *isActive)
		argIndex++
	}

	if search != "" {
		whereClause += fmt.Sprintf(" AND (name ILIKE $%d OR slug ILIKE $%d OR domain ILIKE $%d)", argIndex, argIndex, argIndex)
		args = append(args, "%"+search+"%")
		argIndex++
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM tenants %s", whereClause)
	var totalCount int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	query := fmt.Sprintf(`
		SELECT %s
		FROM tenants
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, tenantColumns, whereClause, argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tenants := make([]*domain.Tenant, 0)
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, 0, err
		}
		tenants = append(tenants, tenant)
	}

	return tenants, totalCount, rows.Err()
}

// Update updates a tenant's mutable fields. The tenant id itself is never
// updatable; changing the default flag goes through SetDefault.
func (r *PostgresTenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	query := `
		UPDATE tenants
		SET name = $2, domain = $3, alt_domains = $4, branding = $5, contact_email = $6,
		    contact_phone = $7, currency = $8, feature_flags = $9, secrets = $10,
		    is_active = $11, updated_at = $12
		WHERE id = $1 AND deleted_at IS NULL
	`
	tenant.UpdatedAt = time.Now()
	result, err := r.pool.Exec(ctx, query,
		tenant.ID,
		tenant.Name,
		nullStringOrValue(tenant.Domain),
		tenant.AltDomains,
		tenant.Branding,
		nullStringOrValue(tenant.ContactEmail),
		nullStringOrValue(tenant.ContactPhone),
		tenant.Currency,
		tenant.FeatureFlags,
		tenant.Secrets,
		tenant.IsActive,
		tenant.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}

// SetDefault atomically moves the default flag to the given tenant. Runs in
// a transaction so the partial unique index never sees two defaults.
func (r *PostgresTenantRepository) SetDefault(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE tenants SET is_default = FALSE, updated_at = NOW() WHERE is_default AND id <> $1`, id); err != nil {
		return err
	}

	result, err := tx.Exec(ctx, `UPDATE tenants SET is_default = TRUE, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrTenantNotFound
	}

	return tx.Commit(ctx)
}

// SoftDelete soft deletes a tenant by setting the deleted_at timestamp
func (r *PostgresTenantRepository) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE tenants SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	result, err := r.pool.Exec(ctx, query, id, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}

// ExistsByDomain checks whether any live tenant other than excludeID claims
// the domain. Pass an empty excludeID on create.
func (r *PostgresTenantRepository) ExistsByDomain(ctx context.Context, dom, excludeID string) (bool, error) {
	query := `SELECT EXISTS(
		SELECT 1 FROM tenants
		WHERE (domain = $1 OR $1 = ANY(alt_domains))
			AND ($2 = '' OR id != $2)
			AND deleted_at IS NULL)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, dom, excludeID).Scan(&exists)
	return exists, err
}

// nullStringOrValue returns nil for empty strings, otherwise returns the value
func nullStringOrValue(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
