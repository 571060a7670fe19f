package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/tripova/tourbase/internal/domain"
	"github.com/tripova/tourbase/internal/dto"
	"github.com/tripova/tourbase/internal/repository"
	"github.com/tripova/tourbase/internal/search"
	"github.com/tripova/tourbase/internal/slug"
)

// blogService implements the BlogService interface
type blogService struct {
	repo     repository.BlogRepository
	registry TenantRegistryService
	enforcer *slug.Enforcer
	search   search.Publisher
}

// NewBlogService creates a new BlogService
func NewBlogService(repo repository.BlogRepository, registry TenantRegistryService, publisher search.Publisher) BlogService {
	return &blogService{
		repo:     repo,
		registry: registry,
		enforcer: slug.NewEnforcer(),
		search:   publisher,
	}
}

func (s *blogService) slugExists(tenantID, excludeID string) slug.ExistsFunc {
	return func(ctx context.Context, candidate string) (bool, error) {
		return s.repo.ExistsBySlug(ctx, tenantID, candidate, excludeID)
	}
}

// CreateBlog creates a blog post with a generated unique slug
func (s *blogService) CreateBlog(ctx context.Context, req *dto.CreateBlogRequest) (*domain.Blog, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, errors.New(msg)
	}
	if req.TenantID == "" {
		return nil, domain.ErrTenantScopeRequired
	}

	blogSlug, err := s.enforcer.EnsureUnique(ctx, slug.Generate(req.Title), s.slugExists(req.TenantID, ""))
	if err != nil {
		return nil, err
	}

	b := &domain.Blog{
		ID:          uuid.New().String(),
		TenantID:    req.TenantID,
		Title:       req.Title,
		Slug:        blogSlug,
		Excerpt:     req.Excerpt,
		Body:        req.Body,
		Author:      req.Author,
		CoverURL:    req.CoverURL,
		Tags:        req.Tags,
		IsPublished: req.IsPublished,
	}

	err = s.repo.Create(ctx, b)
	if errors.Is(err, domain.ErrSlugConflict) {
		countSlugRetry(ctx, "blog")
		b.Slug, err = s.enforcer.EnsureUnique(ctx, slug.Generate(req.Title), s.slugExists(req.TenantID, ""))
		if err != nil {
			return nil, err
		}
		err = s.repo.Create(ctx, b)
	}
	if err != nil {
		return nil, err
	}

	s.search.PublishUpsert(ctx, b.TenantID, "blog", b.ID, b.Slug, b.Title)
	return b, nil
}

// GetBlogBySlug resolves a blog post with default-tenant fallback
func (s *blogService) GetBlogBySlug(ctx context.Context, tenantID, slugValue string) (*domain.Blog, error) {
	b, err := s.repo.GetBySlug(ctx, slugValue, tenantID, s.registry.DefaultTenantID(ctx))
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

// ListBlogs lists the tenant's own blog posts
func (s *blogService) ListBlogs(ctx context.Context, tenantID string, publishedOnly bool, page, limit int) ([]*domain.Blog, int, error) {
	return s.repo.List(ctx, tenantID, publishedOnly, page, limit)
}

// UpdateBlog updates a blog post; a title change regenerates the slug
func (s *blogService) UpdateBlog(ctx context.Context, tenantID, id string, req *dto.UpdateBlogRequest) (*domain.Blog, error) {
	b, err := s.repo.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}

	if req.Title != "" && req.Title != b.Title {
		b.Title = req.Title
		b.Slug, err = s.enforcer.EnsureUnique(ctx, slug.Generate(req.Title), s.slugExists(tenantID, id))
		if err != nil {
			return nil, err
		}
	}
	if req.Excerpt != nil {
		b.Excerpt = *req.Excerpt
	}
	if req.Body != nil {
		b.Body = *req.Body
	}
	if req.Author != nil {
		b.Author = *req.Author
	}
	if req.CoverURL != nil {
		b.CoverURL = *req.CoverURL
	}
	if req.Tags != nil {
		b.Tags = req.Tags
	}
	if req.IsPublished != nil {
		b.IsPublished = *req.IsPublished
	}

	err = s.repo.Update(ctx, b)
	if errors.Is(err, domain.ErrSlugConflict) {
		countSlugRetry(ctx, "blog")
		b.Slug, err = s.enforcer.EnsureUnique(ctx, slug.Generate(b.Title), s.slugExists(tenantID, id))
		if err != nil {
			return nil, err
		}
		err = s.repo.Update(ctx, b)
	}
	if err != nil {
		return nil, err
	}

	s.search.PublishUpsert(ctx, b.TenantID, "blog", b.ID, b.Slug, b.Title)
	return b, nil
}

// DeleteBlog soft deletes a blog post
func (s *blogService) DeleteBlog(ctx context.Context, tenantID, id string) error {
	if err := s.repo.SoftDelete(ctx, id, tenantID); err != nil {
		return err
	}
	s.search.PublishDelete(ctx, tenantID, "blog", id)
	return nil
}
