package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tripova/tourbase/internal/domain"
	"github.com/tripova/tourbase/pkg/database"
)

const destinationColumns = `id, tenant_id, name, slug, COALESCE(country, ''), COALESCE(description, ''),
	COALESCE(image_url, ''), COALESCE(highlights, '{}'), is_featured, is_published, created_at, updated_at, deleted_at`

// PostgresDestinationRepository implements DestinationRepository using pgx
type PostgresDestinationRepository struct {
	pools *database.TenantPools
}

// NewPostgresDestinationRepository creates a new PostgreSQL destination repository
func NewPostgresDestinationRepository(pools *database.TenantPools) *PostgresDestinationRepository {
	return &PostgresDestinationRepository{pools: pools}
}

func scanDestination(row pgx.Row) (*domain.Destination, error) {
	var d domain.Destination
	err := row.Scan(
		&d.ID, &d.TenantID, &d.Name, &d.Slug, &d.Country, &d.Description,
		&d.ImageURL, &d.Highlights, &d.IsFeatured, &d.IsPublished,
		&d.CreatedAt, &d.UpdatedAt, &d.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan destination: %w", err)
	}
	return &d, nil
}

// Create inserts a new destination into the tenant's database
func (r *PostgresDestinationRepository) Create(ctx context.Context, d *domain.Destination) error {
	if err := requireTenant(d.TenantID); err != nil {
		return err
	}
	db, err := r.pools.ForTenant(ctx, d.TenantID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO destinations (id, tenant_id, name, slug, country, description, image_url, highlights, is_featured, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now

	_, err = db.Pool().Exec(ctx, query,
		d.ID, d.TenantID, d.Name, d.Slug,
		nullStringOrValue(d.Country), nullStringOrValue(d.Description), nullStringOrValue(d.ImageURL),
		d.Highlights, d.IsFeatured, d.IsPublished, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if IsDuplicateKey(err) {
			return domain.ErrSlugConflict
		}
		return fmt.Errorf("failed to create destination: %w", err)
	}
	return nil
}

// GetByID retrieves a destination owned by the given tenant
func (r *PostgresDestinationRepository) GetByID(ctx context.Context, id, tenantID string) (*domain.Destination, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + destinationColumns + ` FROM destinations WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL`
	return scanDestination(db.Pool().QueryRow(ctx, query, id, tenantID))
}

// GetBySlug resolves a destination for the tenant, preferring the tenant's own
// record over the default tenant's record with the same slug.
func (r *PostgresDestinationRepository) GetBySlug(ctx context.Context, slug, tenantID, defaultTenantID string) (*domain.Destination, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	exact := `SELECT ` + destinationColumns + ` FROM destinations WHERE slug = $1 AND tenant_id = $2 AND deleted_at IS NULL`

	if defaultTenantID == "" || tenantID == defaultTenantID {
		return scanDestination(db.Pool().QueryRow(ctx, exact, slug, tenantID))
	}

	shared := r.pools.Shared()
	if db != shared {
		// Dedicated tenant database: the fallback rows live in the shared
		// database, so resolve in two steps with the same preference order.
		d, err := scanDestination(db.Pool().QueryRow(ctx, exact, slug, tenantID))
		if err != nil || d != nil {
			return d, err
		}
		return scanDestination(shared.Pool().QueryRow(ctx, exact, slug, defaultTenantID))
	}

	query := `SELECT ` + destinationColumns + ` FROM destinations
		WHERE slug = $1 AND tenant_id IN ($2, $3) AND deleted_at IS NULL` + fallbackOrder
	return scanDestination(db.Pool().QueryRow(ctx, query, slug, tenantID, defaultTenantID))
}

// List returns the tenant's own destinations only, never shared fallback rows
func (r *PostgresDestinationRepository) List(ctx context.Context, tenantID string, publishedOnly bool, page, limit int) ([]*domain.Destination, int, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, 0, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return nil, 0, err
	}

	where := `WHERE tenant_id = $1 AND deleted_at IS NULL`
	args := []interface{}{tenantID}
	if publishedOnly {
		where += ` AND is_published = true`
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM destinations ` + where
	if err := db.Pool().QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count destinations: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	query := fmt.Sprintf(`SELECT %s FROM destinations %s ORDER BY is_featured DESC, name ASC LIMIT $2 OFFSET $3`,
		destinationColumns, where)
	args = append(args, limit, (page-1)*limit)

	rows, err := db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list destinations: %w", err)
	}
	defer rows.Close()

	var destinations []*domain.Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, 0, err
		}
		destinations = append(destinations, d)
	}
	return destinations, total, rows.Err()
}

// Update modifies a destination. The tenant id is part of the WHERE clause and
// is never written, so a record cannot move between tenants.
func (r *PostgresDestinationRepository) Update(ctx context.Context, d *domain.Destination) error {
	if err := requireTenant(d.TenantID); err != nil {
		return err
	}
	db, err := r.pools.ForTenant(ctx, d.TenantID)
	if err != nil {
		return err
	}

	query := `
		UPDATE destinations
		SET name = $1, slug = $2, country = $3, description = $4, image_url = $5,
			highlights = $6, is_featured = $7, is_published = $8, updated_at = $9
		WHERE id = $10 AND tenant_id = $11 AND deleted_at IS NULL
	`
	d.UpdatedAt = time.Now()

	result, err := db.Pool().Exec(ctx, query,
		d.Name, d.Slug, nullStringOrValue(d.Country), nullStringOrValue(d.Description),
		nullStringOrValue(d.ImageURL), d.Highlights, d.IsFeatured, d.IsPublished,
		d.UpdatedAt, d.ID, d.TenantID,
	)
	if err != nil {
		if IsDuplicateKey(err) {
			return domain.ErrSlugConflict
		}
		return fmt.Errorf("failed to update destination: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marks a destination as deleted
func (r *PostgresDestinationRepository) SoftDelete(ctx context.Context, id, tenantID string) error {
	if err := requireTenant(tenantID); err != nil {
		return err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return err
	}

	query := `UPDATE destinations SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND tenant_id = $3 AND deleted_at IS NULL`
	result, err := db.Pool().Exec(ctx, query, time.Now(), id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete destination: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsBySlug checks for a slug collision within the tenant's own namespace
func (r *PostgresDestinationRepository) ExistsBySlug(ctx context.Context, tenantID, slug, excludeID string) (bool, error) {
	if err := requireTenant(tenantID); err != nil {
		return false, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return false, err
	}

	query := `SELECT EXISTS (SELECT 1 FROM destinations WHERE tenant_id = $1 AND slug = $2 AND deleted_at IS NULL AND ($3 = '' OR id != $3))`
	var exists bool
	if err := db.Pool().QueryRow(ctx, query, tenantID, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check destination slug: %w", err)
	}
	return exists, nil
}
