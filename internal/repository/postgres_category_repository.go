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

const categoryColumns = `id, tenant_id, name, slug, COALESCE(description, ''), COALESCE(image_url, ''),
	sort_order, is_active, created_at, updated_at, deleted_at`

// PostgresCategoryRepository implements CategoryRepository using pgx
type PostgresCategoryRepository struct {
	pools *database.TenantPools
}

// NewPostgresCategoryRepository creates a new PostgreSQL category repository
func NewPostgresCategoryRepository(pools *database.TenantPools) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{pools: pools}
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	err := row.Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Slug, &c.Description, &c.ImageURL,
		&c.SortOrder, &c.IsActive, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan category: %w", err)
	}
	return &c, nil
}

// Create inserts a new category into the tenant's database
func (r *PostgresCategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	if err := requireTenant(c.TenantID); err != nil {
		return err
	}
	db, err := r.pools.ForTenant(ctx, c.TenantID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO categories (id, tenant_id, name, slug, description, image_url, sort_order, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err = db.Pool().Exec(ctx, query,
		c.ID, c.TenantID, c.Name, c.Slug,
		nullStringOrValue(c.Description), nullStringOrValue(c.ImageURL),
		c.SortOrder, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if IsDuplicateKey(err) {
			return domain.ErrSlugConflict
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetByID retrieves a category owned by the given tenant
func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id, tenantID string) (*domain.Category, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL`
	return scanCategory(db.Pool().QueryRow(ctx, query, id, tenantID))
}

// GetByName resolves a category by its name, preferring the tenant's own
// record over the default tenant's record with the same name.
func (r *PostgresCategoryRepository) GetByName(ctx context.Context, name, tenantID, defaultTenantID string) (*domain.Category, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	exact := `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1 AND tenant_id = $2 AND deleted_at IS NULL`

	if defaultTenantID == "" || tenantID == defaultTenantID {
		return scanCategory(db.Pool().QueryRow(ctx, exact, name, tenantID))
	}

	shared := r.pools.Shared()
	if db != shared {
		c, err := scanCategory(db.Pool().QueryRow(ctx, exact, name, tenantID))
		if err != nil || c != nil {
			return c, err
		}
		return scanCategory(shared.Pool().QueryRow(ctx, exact, name, defaultTenantID))
	}

	query := `SELECT ` + categoryColumns + ` FROM categories
		WHERE name = $1 AND tenant_id IN ($2, $3) AND deleted_at IS NULL` + fallbackOrder
	return scanCategory(db.Pool().QueryRow(ctx, query, name, tenantID, defaultTenantID))
}

// List returns the tenant's own categories ordered for display
func (r *PostgresCategoryRepository) List(ctx context.Context, tenantID string, activeOnly bool) ([]*domain.Category, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE tenant_id = $1 AND deleted_at IS NULL`
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY sort_order ASC, name ASC`

	rows, err := db.Pool().Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Update modifies a category; the tenant id is matched, never written
func (r *PostgresCategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	if err := requireTenant(c.TenantID); err != nil {
		return err
	}
	db, err := r.pools.ForTenant(ctx, c.TenantID)
	if err != nil {
		return err
	}

	query := `
		UPDATE categories
		SET name = $1, slug = $2, description = $3, image_url = $4, sort_order = $5, is_active = $6, updated_at = $7
		WHERE id = $8 AND tenant_id = $9 AND deleted_at IS NULL
	`
	c.UpdatedAt = time.Now()

	result, err := db.Pool().Exec(ctx, query,
		c.Name, c.Slug, nullStringOrValue(c.Description), nullStringOrValue(c.ImageURL),
		c.SortOrder, c.IsActive, c.UpdatedAt, c.ID, c.TenantID,
	)
	if err != nil {
		if IsDuplicateKey(err) {
			return domain.ErrSlugConflict
		}
		return fmt.Errorf("failed to update category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marks a category as deleted
func (r *PostgresCategoryRepository) SoftDelete(ctx context.Context, id, tenantID string) error {
	if err := requireTenant(tenantID); err != nil {
		return err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return err
	}

	query := `UPDATE categories SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND tenant_id = $3 AND deleted_at IS NULL`
	result, err := db.Pool().Exec(ctx, query, time.Now(), id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsByName checks for a name collision within the tenant's own namespace
func (r *PostgresCategoryRepository) ExistsByName(ctx context.Context, tenantID, name, excludeID string) (bool, error) {
	if err := requireTenant(tenantID); err != nil {
		return false, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return false, err
	}

	query := `SELECT EXISTS (SELECT 1 FROM categories WHERE tenant_id = $1 AND name = $2 AND deleted_at IS NULL AND ($3 = '' OR id != $3))`
	var exists bool
	if err := db.Pool().QueryRow(ctx, query, tenantID, name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}
	return exists, nil
}
