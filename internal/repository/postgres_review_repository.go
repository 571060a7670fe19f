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

const reviewColumns = `id, tenant_id, tour_id, author, rating, COALESCE(title, ''), COALESCE(body, ''),
	is_approved, created_at, updated_at`

// PostgresReviewRepository implements ReviewRepository using pgx.
// Reviews are strictly tenant-owned and never fall back to shared content.
type PostgresReviewRepository struct {
	pools *database.TenantPools
}

// NewPostgresReviewRepository creates a new PostgreSQL review repository
func NewPostgresReviewRepository(pools *database.TenantPools) *PostgresReviewRepository {
	return &PostgresReviewRepository{pools: pools}
}

func scanReview(row pgx.Row) (*domain.Review, error) {
	var rv domain.Review
	err := row.Scan(
		&rv.ID, &rv.TenantID, &rv.TourID, &rv.Author, &rv.Rating, &rv.Title, &rv.Body,
		&rv.IsApproved, &rv.CreatedAt, &rv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan review: %w", err)
	}
	return &rv, nil
}

// Create inserts a new review and refreshes the tour's rating aggregate in
// the same transaction.
func (r *PostgresReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	if err := requireTenant(rv.TenantID); err != nil {
		return err
	}
	db, err := r.pools.ForTenant(ctx, rv.TenantID)
	if err != nil {
		return err
	}

	now := time.Now()
	rv.CreatedAt = now
	rv.UpdatedAt = now

	tx, err := db.Pool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := `
		INSERT INTO reviews (id, tenant_id, tour_id, author, rating, title, body, is_approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = tx.Exec(ctx, insert,
		rv.ID, rv.TenantID, rv.TourID, rv.Author, rv.Rating,
		nullStringOrValue(rv.Title), nullStringOrValue(rv.Body),
		rv.IsApproved, rv.CreatedAt, rv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	if err := refreshTourRating(ctx, tx, rv.TourID, rv.TenantID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func refreshTourRating(ctx context.Context, tx pgx.Tx, tourID, tenantID string) error {
	query := `
		UPDATE tours SET
			rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE tour_id = $1 AND tenant_id = $2 AND is_approved = true), 0),
			review_count = (SELECT COUNT(*) FROM reviews WHERE tour_id = $1 AND tenant_id = $2 AND is_approved = true)
		WHERE id = $1 AND tenant_id = $2
	`
	if _, err := tx.Exec(ctx, query, tourID, tenantID); err != nil {
		return fmt.Errorf("failed to refresh tour rating: %w", err)
	}
	return nil
}

// ListByTour returns a tour's reviews within the tenant, newest first
func (r *PostgresReviewRepository) ListByTour(ctx context.Context, tourID, tenantID string, approvedOnly bool, page, limit int) ([]*domain.Review, int, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, 0, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return nil, 0, err
	}

	where := `WHERE tour_id = $1 AND tenant_id = $2`
	args := []interface{}{tourID, tenantID}
	if approvedOnly {
		where += ` AND is_approved = true`
	}

	var total int
	if err := db.Pool().QueryRow(ctx, `SELECT COUNT(*) FROM reviews `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	query := fmt.Sprintf(`SELECT %s FROM reviews %s ORDER BY created_at DESC LIMIT $3 OFFSET $4`, reviewColumns, where)
	args = append(args, limit, (page-1)*limit)

	rows, err := db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, total, rows.Err()
}

// SetApproved flips moderation state and refreshes the tour aggregate
func (r *PostgresReviewRepository) SetApproved(ctx context.Context, id, tenantID string, approved bool) error {
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

	var tourID string
	query := `UPDATE reviews SET is_approved = $1, updated_at = $2 WHERE id = $3 AND tenant_id = $4 RETURNING tour_id`
	if err := tx.QueryRow(ctx, query, approved, time.Now(), id, tenantID).Scan(&tourID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to moderate review: %w", err)
	}

	if err := refreshTourRating(ctx, tx, tourID, tenantID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Delete removes a review and refreshes the tour aggregate
func (r *PostgresReviewRepository) Delete(ctx context.Context, id, tenantID string) error {
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

	var tourID string
	query := `DELETE FROM reviews WHERE id = $1 AND tenant_id = $2 RETURNING tour_id`
	if err := tx.QueryRow(ctx, query, id, tenantID).Scan(&tourID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if err := refreshTourRating(ctx, tx, tourID, tenantID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
