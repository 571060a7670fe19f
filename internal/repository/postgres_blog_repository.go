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

const blogColumns = `id, tenant_id, title, slug, COALESCE(excerpt, ''), body, COALESCE(author, ''),
	COALESCE(cover_url, ''), COALESCE(tags, '{}'), is_published, published_at, created_at, updated_at, deleted_at`

// PostgresBlogRepository implements BlogRepository using pgx
type PostgresBlogRepository struct {
	pools *database.TenantPools
}

// NewPostgresBlogRepository creates a new PostgreSQL blog repository
func NewPostgresBlogRepository(pools *database.TenantPools) *PostgresBlogRepository {
	return &PostgresBlogRepository{pools: pools}
}

func scanBlog(row pgx.Row) (*domain.Blog, error) {
	var b domain.Blog
	err := row.Scan(
		&b.ID, &b.TenantID, &b.Title, &b.Slug, &b.Excerpt, &b.Body, &b.Author,
		&b.CoverURL, &b.Tags, &b.IsPublished, &b.PublishedAt, &b.CreatedAt, &b.UpdatedAt, &b.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan blog: %w", err)
	}
	return &b, nil
}

// Create inserts a new blog post into the tenant's database
func (r *PostgresBlogRepository) Create(ctx context.Context, b *domain.Blog) error {
	if err := requireTenant(b.TenantID); err != nil {
		return err
	}
	db, err := r.pools.ForTenant(ctx, b.TenantID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO blogs (id, tenant_id, title, slug, excerpt, body, author, cover_url, tags, is_published, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	if b.IsPublished && b.PublishedAt == nil {
		b.PublishedAt = &now
	}

	_, err = db.Pool().Exec(ctx, query,
		b.ID, b.TenantID, b.Title, b.Slug,
		nullStringOrValue(b.Excerpt), b.Body, nullStringOrValue(b.Author), nullStringOrValue(b.CoverURL),
		b.Tags, b.IsPublished, b.PublishedAt, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if IsDuplicateKey(err) {
			return domain.ErrSlugConflict
		}
		return fmt.Errorf("failed to create blog: %w", err)
	}
	return nil
}

// GetByID retrieves a blog post owned by the given tenant
func (r *PostgresBlogRepository) GetByID(ctx context.Context, id, tenantID string) (*domain.Blog, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + blogColumns + ` FROM blogs WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL`
	return scanBlog(db.Pool().QueryRow(ctx, query, id, tenantID))
}

// GetBySlug resolves a blog post for the tenant with default-tenant fallback
func (r *PostgresBlogRepository) GetBySlug(ctx context.Context, slug, tenantID, defaultTenantID string) (*domain.Blog, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	exact := `SELECT ` + blogColumns + ` FROM blogs WHERE slug = $1 AND tenant_id = $2 AND deleted_at IS NULL`

	if defaultTenantID == "" || tenantID == defaultTenantID {
		return scanBlog(db.Pool().QueryRow(ctx, exact, slug, tenantID))
	}

	shared := r.pools.Shared()
	if db != shared {
		b, err := scanBlog(db.Pool().QueryRow(ctx, exact, slug, tenantID))
		if err != nil || b != nil {
			return b, err
		}
		return scanBlog(shared.Pool().QueryRow(ctx, exact, slug, defaultTenantID))
	}

	query := `SELECT ` + blogColumns + ` FROM blogs
		WHERE slug = $1 AND tenant_id IN ($2, $3) AND deleted_at IS NULL` + fallbackOrder
	return scanBlog(db.Pool().QueryRow(ctx, query, slug, tenantID, defaultTenantID))
}

// List returns the tenant's own blog posts, newest first
func (r *PostgresBlogRepository) List(ctx context.Context, tenantID string, publishedOnly bool, page, limit int) ([]*domain.Blog, int, error) {
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
	if err := db.Pool().QueryRow(ctx, `SELECT COUNT(*) FROM blogs `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count blogs: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	query := fmt.Sprintf(`SELECT %s FROM blogs %s ORDER BY published_at DESC NULLS LAST, created_at DESC LIMIT $2 OFFSET $3`,
		blogColumns, where)
	args = append(args, limit, (page-1)*limit)

	rows, err := db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list blogs: %w", err)
	}
	defer rows.Close()

	var blogs []*domain.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, 0, err
		}
		blogs = append(blogs, b)
	}
	return blogs, total, rows.Err()
}

// Update modifies a blog post; the tenant id is matched, never written
func (r *PostgresBlogRepository) Update(ctx context.Context, b *domain.Blog) error {
	if err := requireTenant(b.TenantID); err != nil {
		return err
	}
	db, err := r.pools.ForTenant(ctx, b.TenantID)
	if err != nil {
		return err
	}

	query := `
		UPDATE blogs
		SET title = $1, slug = $2, excerpt = $3, body = $4, author = $5, cover_url = $6,
			tags = $7, is_published = $8, published_at = $9, updated_at = $10
		WHERE id = $11 AND tenant_id = $12 AND deleted_at IS NULL
	`
	b.UpdatedAt = time.Now()
	if b.IsPublished && b.PublishedAt == nil {
		b.PublishedAt = &b.UpdatedAt
	}

	result, err := db.Pool().Exec(ctx, query,
		b.Title, b.Slug, nullStringOrValue(b.Excerpt), b.Body, nullStringOrValue(b.Author),
		nullStringOrValue(b.CoverURL), b.Tags, b.IsPublished, b.PublishedAt,
		b.UpdatedAt, b.ID, b.TenantID,
	)
	if err != nil {
		if IsDuplicateKey(err) {
			return domain.ErrSlugConflict
		}
		return fmt.Errorf("failed to update blog: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marks a blog post as deleted
func (r *PostgresBlogRepository) SoftDelete(ctx context.Context, id, tenantID string) error {
	if err := requireTenant(tenantID); err != nil {
		return err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return err
	}

	query := `UPDATE blogs SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND tenant_id = $3 AND deleted_at IS NULL`
	result, err := db.Pool().Exec(ctx, query, time.Now(), id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsBySlug checks for a slug collision within the tenant's own namespace
func (r *PostgresBlogRepository) ExistsBySlug(ctx context.Context, tenantID, slug, excludeID string) (bool, error) {
	if err := requireTenant(tenantID); err != nil {
		return false, err
	}
	db, err := r.pools.ForTenant(ctx, tenantID)
	if err != nil {
		return false, err
	}

	query := `SELECT EXISTS (SELECT 1 FROM blogs WHERE tenant_id = $1 AND slug = $2 AND deleted_at IS NULL AND ($3 = '' OR id != $3))`
	var exists bool
	if err := db.Pool().QueryRow(ctx, query, tenantID, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check blog slug: %w", err)
	}
	return exists, nil
}
