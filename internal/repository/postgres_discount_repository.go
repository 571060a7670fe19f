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

const discountColumns = `id, tenant_id, code, percentage, max_uses, used_count, valid_from, valid_until,
	is_active, created_at, updated_at`

// PostgresDiscountRepository implements DiscountRepository using pgx.
// Discounts are strictly tenant-owned; there is no default-tenant fallback.
type PostgresDiscountRepository struct {
	pools *database.TenantPools
}

// NewPostgresDiscountRepository creates a new PostgreSQL discount repository
func NewPostgresDiscountRepository(pools *database.TenantPools) *PostgresDiscountRepository {
	return &PostgresDiscountRepository{pools: pools}
}

func scanDiscount(row pgx.Row) (*domain.Discount, error) {
	var d domain.Discount
	err := row.Scan(
		&d.ID, &d.TenantID, &d.Code, &d.Percentage, &d.MaxUses, &d.UsedCount,
		&d.ValidFrom, &d.ValidUntil, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan discount: %w", err)
	}
	return &d, nil
}

// Create inserts a new discount into the tenant's database
func (r *PostgresDiscountRepository) Create(ctx context.Context, d *domain.Discount) error {
	if err := requireTenant(d.TenantID); err != nil {
		return err
	}
	db, err := r.pools.ForTenant(ctx, d.TenantID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO discounts (id, tenant_id, code, percentage, max_uses, valid_from, valid_until, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now

	_, err = db.Pool().Exec(ctx, query,
		d.ID, d.TenantID, d.Code, d.Percentage, d.MaxUses,
		d.ValidFrom, d.ValidUntil, d.IsActive, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if IsDuplicateKey(err) {
			return domain.ErrSlugConflict
		}
		return fmt.Errorf("failed to create discount: %w", err)
	}
	return nil
}

// GetByID retrieves a discount owned by the given tenant
func (r *PostgresDiscountRepository) GetByID(ctx context.Context, id, tenantID string) (*domain.Discount, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + discountColumns + ` FROM discounts WHERE id = $1 AND tenant_id = $2`
	return scanDiscount(db.Pool().QueryRow(ctx, query, id, tenantID))
}

// GetByCode retrieves a discount by code within the tenant only
func (r *PostgresDiscountRepository) GetByCode(ctx context.Context, code, tenantID string) (*domain.Discount, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + discountColumns + ` FROM discounts WHERE code = $1 AND tenant_id = $2`
	return scanDiscount(db.Pool().QueryRow(ctx, query, code, tenantID))
}

// List returns the tenant's discounts
func (r *PostgresDiscountRepository) List(ctx context.Context, tenantID string, activeOnly bool) ([]*domain.Discount, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + discountColumns + ` FROM discounts WHERE tenant_id = $1`
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.Pool().Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list discounts: %w", err)
	}
	defer rows.Close()

	var discounts []*domain.Discount
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, err
		}
		discounts = append(discounts, d)
	}
	return discounts, rows.Err()
}

// Update modifies a discount; the tenant id is matched, never written
func (r *PostgresDiscountRepository) Update(ctx context.Context, d *domain.Discount) error {
	if err := requireTenant(d.TenantID); err != nil {
		return err
	}
	db, err := r.pools.ForTenant(ctx, d.TenantID)
	if err != nil {
		return err
	}

	query := `
		UPDATE discounts
		SET code = $1, percentage = $2, max_uses = $3, valid_from = $4, valid_until = $5, is_active = $6, updated_at = $7
		WHERE id = $8 AND tenant_id = $9
	`
	d.UpdatedAt = time.Now()

	result, err := db.Pool().Exec(ctx, query,
		d.Code, d.Percentage, d.MaxUses, d.ValidFrom, d.ValidUntil, d.IsActive,
		d.UpdatedAt, d.ID, d.TenantID,
	)
	if err != nil {
		if IsDuplicateKey(err) {
			return domain.ErrSlugConflict
		}
		return fmt.Errorf("failed to update discount: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementUsage bumps used_count atomically; the ceiling is enforced in SQL
// so two concurrent redemptions cannot overshoot max_uses.
func (r *PostgresDiscountRepository) IncrementUsage(ctx context.Context, id, tenantID string) error {
	if err := requireTenant(tenantID); err != nil {
		return err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return err
	}

	query := `
		UPDATE discounts
		SET used_count = used_count + 1, updated_at = $1
		WHERE id = $2 AND tenant_id = $3 AND is_active = true
			AND (max_uses = 0 OR used_count < max_uses)
	`
	result, err := db.Pool().Exec(ctx, query, time.Now(), id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to increment discount usage: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsByCode checks for a code collision within the tenant's own namespace
func (r *PostgresDiscountRepository) ExistsByCode(ctx context.Context, tenantID, code, excludeID string) (bool, error) {
	if err := requireTenant(tenantID); err != nil {
		return false, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return false, err
	}

	query := `SELECT EXISTS (SELECT 1 FROM discounts WHERE tenant_id = $1 AND code = $2 AND ($3 = '' OR id != $3))`
	var exists bool
	if err := db.Pool().QueryRow(ctx, query, tenantID, code, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check discount code: %w", err)
	}
	return exists, nil
}
