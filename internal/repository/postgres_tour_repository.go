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

const tourColumns = `id, tenant_id, destination_id, category_id, title, slug, COALESCE(description, ''),
	COALESCE(short_description, ''), COALESCE(image_url, ''), COALESCE(gallery, '{}'), duration_minutes,
	price, discount_price, COALESCE(currency, 'USD'), max_group_size, rating, review_count,
	is_featured, is_published, created_at, updated_at, deleted_at`

// PostgresTourRepository implements TourRepository using pgx
type PostgresTourRepository struct {
	pools *database.TenantPools
}

// NewPostgresTourRepository creates a new PostgreSQL tour repository
func NewPostgresTourRepository(pools *database.TenantPools) *PostgresTourRepository {
	return &PostgresTourRepository{pools: pools}
}

func scanTour(row pgx.Row) (*domain.Tour, error) {
	var t domain.Tour
	err := row.Scan(
		&t.ID, &t.TenantID, &t.DestinationID, &t.CategoryID, &t.Title, &t.Slug,
		&t.Description, &t.ShortDescription, &t.ImageURL, &t.Gallery, &t.DurationMinutes,
		&t.Price, &t.DiscountPrice, &t.Currency, &t.MaxGroupSize, &t.Rating, &t.ReviewCount,
		&t.IsFeatured, &t.IsPublished, &t.CreatedAt, &t.UpdatedAt, &t.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan tour: %w", err)
	}
	return &t, nil
}

// Create inserts a new tour into the tenant's database
func (r *PostgresTourRepository) Create(ctx context.Context, t *domain.Tour) error {
	if err := requireTenant(t.TenantID); err != nil {
		return err
	}
	db, err := r.pools.ForTenant(ctx, t.TenantID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tours (id, tenant_id, destination_id, category_id, title, slug, description, short_description,
			image_url, gallery, duration_minutes, price, discount_price, currency, max_group_size,
			is_featured, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err = db.Pool().Exec(ctx, query,
		t.ID, t.TenantID, t.DestinationID, t.CategoryID, t.Title, t.Slug,
		nullStringOrValue(t.Description), nullStringOrValue(t.ShortDescription), nullStringOrValue(t.ImageURL),
		t.Gallery, t.DurationMinutes, t.Price, t.DiscountPrice, t.Currency, t.MaxGroupSize,
		t.IsFeatured, t.IsPublished, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if IsDuplicateKey(err) {
			return domain.ErrSlugConflict
		}
		return fmt.Errorf("failed to create tour: %w", err)
	}
	return nil
}

// GetByID retrieves a tour owned by the given tenant
func (r *PostgresTourRepository) GetByID(ctx context.Context, id, tenantID string) (*domain.Tour, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + tourColumns + ` FROM tours WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL`
	return scanTour(db.Pool().QueryRow(ctx, query, id, tenantID))
}

// GetBySlug resolves a tour detail page for the tenant, preferring the
// tenant's own record over the default tenant's record with the same slug.
func (r *PostgresTourRepository) GetBySlug(ctx context.Context, slug, tenantID, defaultTenantID string) (*domain.Tour, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	exact := `SELECT ` + tourColumns + ` FROM tours WHERE slug = $1 AND tenant_id = $2 AND deleted_at IS NULL`

	if defaultTenantID == "" || tenantID == defaultTenantID {
		return scanTour(db.Pool().QueryRow(ctx, exact, slug, tenantID))
	}

	shared := r.pools.Shared()
	if db != shared {
		t, err := scanTour(db.Pool().QueryRow(ctx, exact, slug, tenantID))
		if err != nil || t != nil {
			return t, err
		}
		return scanTour(shared.Pool().QueryRow(ctx, exact, slug, defaultTenantID))
	}

	query := `SELECT ` + tourColumns + ` FROM tours
		WHERE slug = $1 AND tenant_id IN ($2, $3) AND deleted_at IS NULL` + fallbackOrder
	return scanTour(db.Pool().QueryRow(ctx, query, slug, tenantID, defaultTenantID))
}

// List returns the tenant's own tours only; listings never mix in shared rows
func (r *PostgresTourRepository) List(ctx context.Context, tenantID string, filter TourFilter) ([]*domain.Tour, int, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, 0, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return nil, 0, err
	}

	where := `WHERE tenant_id = $1 AND deleted_at IS NULL`
	args := []interface{}{tenantID}
	argIndex := 2

	if filter.DestinationID != "" {
		where += fmt.Sprintf(` AND destination_id = $%d`, argIndex)
		args = append(args, filter.DestinationID)
		argIndex++
	}
	if filter.CategoryID != "" {
		where += fmt.Sprintf(` AND category_id = $%d`, argIndex)
		args = append(args, filter.CategoryID)
		argIndex++
	}
	if filter.FeaturedOnly {
		where += ` AND is_featured = true`
	}
	if filter.PublishedOnly {
		where += ` AND is_published = true`
	}
	if filter.Search != "" {
		where += fmt.Sprintf(` AND (title ILIKE $%d OR description ILIKE $%d)`, argIndex, argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM tours ` + where
	if err := db.Pool().QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tours: %w", err)
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	query := fmt.Sprintf(`SELECT %s FROM tours %s ORDER BY is_featured DESC, rating DESC, created_at DESC LIMIT $%d OFFSET $%d`,
		tourColumns, where, argIndex, argIndex+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tours: %w", err)
	}
	defer rows.Close()

	var tours []*domain.Tour
	for rows.Next() {
		t, err := scanTour(rows)
		if err != nil {
			return nil, 0, err
		}
		tours = append(tours, t)
	}
	return tours, total, rows.Err()
}

// Update modifies a tour; the tenant id is matched, never written
func (r *PostgresTourRepository) Update(ctx context.Context, t *domain.Tour) error {
	if err := requireTenant(t.TenantID); err != nil {
		return err
	}
	db, err := r.pools.ForTenant(ctx, t.TenantID)
	if err != nil {
		return err
	}

	query := `
		UPDATE tours
		SET destination_id = $1, category_id = $2, title = $3, slug = $4, description = $5,
			short_description = $6, image_url = $7, gallery = $8, duration_minutes = $9,
			price = $10, discount_price = $11, currency = $12, max_group_size = $13,
			is_featured = $14, is_published = $15, updated_at = $16
		WHERE id = $17 AND tenant_id = $18 AND deleted_at IS NULL
	`
	t.UpdatedAt = time.Now()

	result, err := db.Pool().Exec(ctx, query,
		t.DestinationID, t.CategoryID, t.Title, t.Slug,
		nullStringOrValue(t.Description), nullStringOrValue(t.ShortDescription), nullStringOrValue(t.ImageURL),
		t.Gallery, t.DurationMinutes, t.Price, t.DiscountPrice, t.Currency, t.MaxGroupSize,
		t.IsFeatured, t.IsPublished, t.UpdatedAt, t.ID, t.TenantID,
	)
	if err != nil {
		if IsDuplicateKey(err) {
			return domain.ErrSlugConflict
		}
		return fmt.Errorf("failed to update tour: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marks a tour as deleted
func (r *PostgresTourRepository) SoftDelete(ctx context.Context, id, tenantID string) error {
	if err := requireTenant(tenantID); err != nil {
		return err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return err
	}

	query := `UPDATE tours SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND tenant_id = $3 AND deleted_at IS NULL`
	result, err := db.Pool().Exec(ctx, query, time.Now(), id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete tour: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsBySlug checks for a slug collision within the tenant's own namespace
func (r *PostgresTourRepository) ExistsBySlug(ctx context.Context, tenantID, slug, excludeID string) (bool, error) {
	if err := requireTenant(tenantID); err != nil {
		return false, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return false, err
	}

	query := `SELECT EXISTS (SELECT 1 FROM tours WHERE tenant_id = $1 AND slug = $2 AND deleted_at IS NULL AND ($3 = '' OR id != $3))`
	var exists bool
	if err := db.Pool().QueryRow(ctx, query, tenantID, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check tour slug: %w", err)
	}
	return exists, nil
}
