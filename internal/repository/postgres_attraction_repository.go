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

const attractionColumns = `id, tenant_id, title, slug, COALESCE(heading, ''), body,
	COALESCE(image_url, ''), is_published, created_at, updated_at, deleted_at`

// PostgresAttractionRepository implements AttractionRepository using pgx
type PostgresAttractionRepository struct {
	pools *database.TenantPools
}

// NewPostgresAttractionRepository creates a new PostgreSQL attraction repository
func NewPostgresAttractionRepository(pools *database.TenantPools) *PostgresAttractionRepository {
	return &PostgresAttractionRepository{pools: pools}
}

func scanAttraction(row pgx.Row) (*domain.AttractionPage, error) {
	var a domain.AttractionPage
	err := row.Scan(
		&a.ID, &a.TenantID, &a.Title, &a.Slug, &a.Heading, &a.Body,
		&a.ImageURL, &a.IsPublished, &a.CreatedAt, &a.UpdatedAt, &a.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan attraction page: %w", err)
	}
	return &a, nil
}

// Create inserts a new attraction page into the tenant's database
func (r *PostgresAttractionRepository) Create(ctx context.Context, a *domain.AttractionPage) error {
	if err := requireTenant(a.TenantID); err != nil {
		return err
	}
	db, err := r.pools.ForTenant(ctx, a.TenantID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO attraction_pages (id, tenant_id, title, slug, heading, body, image_url, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	_, err = db.Pool().Exec(ctx, query,
		a.ID, a.TenantID, a.Title, a.Slug,
		nullStringOrValue(a.Heading), a.Body, nullStringOrValue(a.ImageURL),
		a.IsPublished, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if IsDuplicateKey(err) {
			return domain.ErrSlugConflict
		}
		return fmt.Errorf("failed to create attraction page: %w", err)
	}
	return nil
}

// GetByID retrieves an attraction page owned by the given tenant
func (r *PostgresAttractionRepository) GetByID(ctx context.Context, id, tenantID string) (*domain.AttractionPage, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + attractionColumns + ` FROM attraction_pages WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL`
	return scanAttraction(db.Pool().QueryRow(ctx, query, id, tenantID))
}

// GetBySlug resolves an attraction page with default-tenant fallback
func (r *PostgresAttractionRepository) GetBySlug(ctx context.Context, slug, tenantID, defaultTenantID string) (*domain.AttractionPage, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	exact := `SELECT ` + attractionColumns + ` FROM attraction_pages WHERE slug = $1 AND tenant_id = $2 AND deleted_at IS NULL`

	if defaultTenantID == "" || tenantID == defaultTenantID {
		return scanAttraction(db.Pool().QueryRow(ctx, exact, slug, tenantID))
	}

	shared := r.pools.Shared()
	if db != shared {
		a, err := scanAttraction(db.Pool().QueryRow(ctx, exact, slug, tenantID))
		if err != nil || a != nil {
			return a, err
		}
		return scanAttraction(shared.Pool().QueryRow(ctx, exact, slug, defaultTenantID))
	}

	query := `SELECT ` + attractionColumns + ` FROM attraction_pages
		WHERE slug = $1 AND tenant_id IN ($2, $3) AND deleted_at IS NULL` + fallbackOrder
	return scanAttraction(db.Pool().QueryRow(ctx, query, slug, tenantID, defaultTenantID))
}

// List returns the tenant's own attraction pages
func (r *PostgresAttractionRepository) List(ctx context.Context, tenantID string, publishedOnly bool, page, limit int) ([]*domain.AttractionPage, int, error) {
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
	if err := db.Pool().QueryRow(ctx, `SELECT COUNT(*) FROM attraction_pages `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attraction pages: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	query := fmt.Sprintf(`SELECT %s FROM attraction_pages %s ORDER BY title ASC LIMIT $2 OFFSET $3`, attractionColumns, where)
	args = append(args, limit, (page-1)*limit)

	rows, err := db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attraction pages: %w", err)
	}
	defer rows.Close()

	var pages []*domain.AttractionPage
	for rows.Next() {
		a, err := scanAttraction(rows)
		if err != nil {
			return nil, 0, err
		}
		pages = append(pages, a)
	}
	return pages, total, rows.Err()
}

// Update modifies an attraction page; the tenant id is matched, never written
func (r *PostgresAttractionRepository) Update(ctx context.Context, a *domain.AttractionPage) error {
	if err := requireTenant(a.TenantID); err != nil {
		return err
	}
	db, err := r.pools.ForTenant(ctx, a.TenantID)
	if err != nil {
		return err
	}

	query := `
		UPDATE attraction_pages
		SET title = $1, slug = $2, heading = $3, body = $4, image_url = $5, is_published = $6, updated_at = $7
		WHERE id = $8 AND tenant_id = $9 AND deleted_at IS NULL
	`
	a.UpdatedAt = time.Now()

	result, err := db.Pool().Exec(ctx, query,
		a.Title, a.Slug, nullStringOrValue(a.Heading), a.Body, nullStringOrValue(a.ImageURL),
		a.IsPublished, a.UpdatedAt, a.ID, a.TenantID,
	)
	if err != nil {
		if IsDuplicateKey(err) {
			return domain.ErrSlugConflict
		}
		return fmt.Errorf("failed to update attraction page: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marks an attraction page as deleted
func (r *PostgresAttractionRepository) SoftDelete(ctx context.Context, id, tenantID string) error {
	if err := requireTenant(tenantID); err != nil {
		return err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return err
	}

	query := `UPDATE attraction_pages SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND tenant_id = $3 AND deleted_at IS NULL`
	result, err := db.Pool().Exec(ctx, query, time.Now(), id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete attraction page: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsBySlug checks for a slug collision within the tenant's own namespace
func (r *PostgresAttractionRepository) ExistsBySlug(ctx context.Context, tenantID, slug, excludeID string) (bool, error) {
	if err := requireTenant(tenantID); err != nil {
		return false, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return false, err
	}

	query := `SELECT EXISTS (SELECT 1 FROM attraction_pages WHERE tenant_id = $1 AND slug = $2 AND deleted_at IS NULL AND ($3 = '' OR id != $3))`
	var exists bool
	if err := db.Pool().QueryRow(ctx, query, tenantID, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check attraction slug: %w", err)
	}
	return exists, nil
}
