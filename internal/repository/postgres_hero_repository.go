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

const heroColumns = `id, tenant_id, headline, COALESCE(subtitle, ''), COALESCE(image_url, ''),
	COALESCE(video_url, ''), COALESCE(cta_label, ''), COALESCE(cta_link, ''), is_active, created_at, updated_at`

// PostgresHeroRepository implements HeroRepository using pgx. A partial
// unique index on (tenant_id) WHERE is_active backs the single-active rule.
type PostgresHeroRepository struct {
	pools *database.TenantPools
}

// NewPostgresHeroRepository creates a new PostgreSQL hero settings repository
func NewPostgresHeroRepository(pools *database.TenantPools) *PostgresHeroRepository {
	return &PostgresHeroRepository{pools: pools}
}

func scanHero(row pgx.Row) (*domain.HeroSettings, error) {
	var h domain.HeroSettings
	err := row.Scan(
		&h.ID, &h.TenantID, &h.Headline, &h.Subtitle, &h.ImageURL,
		&h.VideoURL, &h.CTALabel, &h.CTALink, &h.IsActive, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan hero settings: %w", err)
	}
	return &h, nil
}

// Create inserts a new hero row. New rows start inactive; use Activate to
// promote one.
func (r *PostgresHeroRepository) Create(ctx context.Context, h *domain.HeroSettings) error {
	if err := requireTenant(h.TenantID); err != nil {
		return err
	}
	db, err := r.pools.ForTenant(ctx, h.TenantID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO hero_settings (id, tenant_id, headline, subtitle, image_url, video_url, cta_label, cta_link, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, $9, $10)
	`
	now := time.Now()
	h.CreatedAt = now
	h.UpdatedAt = now
	h.IsActive = false

	_, err = db.Pool().Exec(ctx, query,
		h.ID, h.TenantID, h.Headline,
		nullStringOrValue(h.Subtitle), nullStringOrValue(h.ImageURL), nullStringOrValue(h.VideoURL),
		nullStringOrValue(h.CTALabel), nullStringOrValue(h.CTALink),
		h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create hero settings: %w", err)
	}
	return nil
}

// GetByID retrieves a hero row owned by the given tenant
func (r *PostgresHeroRepository) GetByID(ctx context.Context, id, tenantID string) (*domain.HeroSettings, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + heroColumns + ` FROM hero_settings WHERE id = $1 AND tenant_id = $2`
	return scanHero(db.Pool().QueryRow(ctx, query, id, tenantID))
}

// GetActive returns the tenant's active hero, falling back to the default
// tenant's active hero when the tenant has none configured.
func (r *PostgresHeroRepository) GetActive(ctx context.Context, tenantID, defaultTenantID string) (*domain.HeroSettings, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	exact := `SELECT ` + heroColumns + ` FROM hero_settings WHERE tenant_id = $1 AND is_active = true`

	if defaultTenantID == "" || tenantID == defaultTenantID {
		return scanHero(db.Pool().QueryRow(ctx, exact, tenantID))
	}

	shared := r.pools.Shared()
	if db != shared {
		h, err := scanHero(db.Pool().QueryRow(ctx, exact, tenantID))
		if err != nil || h != nil {
			return h, err
		}
		return scanHero(shared.Pool().QueryRow(ctx, exact, defaultTenantID))
	}

	query := `SELECT ` + heroColumns + ` FROM hero_settings
		WHERE tenant_id IN ($1, $2) AND is_active = true
		ORDER BY CASE WHEN tenant_id = $1 THEN 0 ELSE 1 END
		LIMIT 1`
	return scanHero(db.Pool().QueryRow(ctx, query, tenantID, defaultTenantID))
}

// ListByTenant returns all hero rows configured for a tenant
func (r *PostgresHeroRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.HeroSettings, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + heroColumns + ` FROM hero_settings WHERE tenant_id = $1 ORDER BY created_at DESC`
	rows, err := db.Pool().Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hero settings: %w", err)
	}
	defer rows.Close()

	var heroes []*domain.HeroSettings
	for rows.Next() {
		h, err := scanHero(rows)
		if err != nil {
			return nil, err
		}
		heroes = append(heroes, h)
	}
	return heroes, rows.Err()
}

// Activate promotes one hero row and deactivates the tenant's others in a
// single transaction, keeping the partial unique index satisfied.
func (r *PostgresHeroRepository) Activate(ctx context.Context, id, tenantID string) error {
	if err := requireTenant(tenantID); err != nil {
		return err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return err
	}

	tx, err := db.Pool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	if _, err := tx.Exec(ctx,
		`UPDATE hero_settings SET is_active = false, updated_at = $1 WHERE tenant_id = $2 AND is_active = true AND id != $3`,
		now, tenantID, id,
	); err != nil {
		return fmt.Errorf("failed to deactivate hero settings: %w", err)
	}

	result, err := tx.Exec(ctx,
		`UPDATE hero_settings SET is_active = true, updated_at = $1 WHERE id = $2 AND tenant_id = $3`,
		now, id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to activate hero settings: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit(ctx)
}

// Update modifies a hero row's content fields, leaving activation state alone
func (r *PostgresHeroRepository) Update(ctx context.Context, h *domain.HeroSettings) error {
	if err := requireTenant(h.TenantID); err != nil {
		return err
	}
	db, err := r.pools.ForTenant(ctx, h.TenantID)
	if err != nil {
		return err
	}

	query := `
		UPDATE hero_settings
		SET headline = $1, subtitle = $2, image_url = $3, video_url = $4, cta_label = $5, cta_link = $6, updated_at = $7
		WHERE id = $8 AND tenant_id = $9
	`
	h.UpdatedAt = time.Now()

	result, err := db.Pool().Exec(ctx, query,
		h.Headline, nullStringOrValue(h.Subtitle), nullStringOrValue(h.ImageURL), nullStringOrValue(h.VideoURL),
		nullStringOrValue(h.CTALabel), nullStringOrValue(h.CTALink),
		h.UpdatedAt, h.ID, h.TenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to update hero settings: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a hero row
func (r *PostgresHeroRepository) Delete(ctx context.Context, id, tenantID string) error {
	if err := requireTenant(tenantID); err != nil {
		return err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return err
	}

	result, err := db.Pool().Exec(ctx, `DELETE FROM hero_settings WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete hero settings: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
