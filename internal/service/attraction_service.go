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

// attractionService implements the AttractionService interface
type attractionService struct {
	repo     repository.AttractionRepository
	registry TenantRegistryService
	enforcer *slug.Enforcer
	search   search.Publisher
}

// NewAttractionService creates a new AttractionService
func NewAttractionService(repo repository.AttractionRepository, registry TenantRegistryService, publisher search.Publisher) AttractionService {
	return &attractionService{
		repo:     repo,
		registry: registry,
		enforcer: slug.NewEnforcer(),
		search:   publisher,
	}
}

func (s *attractionService) slugExists(tenantID, excludeID string) slug.ExistsFunc {
	return func(ctx context.Context, candidate string) (bool, error) {
		return s.repo.ExistsBySlug(ctx, tenantID, candidate, excludeID)
	}
}

// CreateAttraction creates an attraction page with a generated unique slug
func (s *attractionService) CreateAttraction(ctx context.Context, req *dto.CreateAttractionRequest) (*domain.AttractionPage, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, errors.New(msg)
	}
	if req.TenantID == "" {
		return nil, domain.ErrTenantScopeRequired
	}

	pageSlug, err := s.enforcer.EnsureUnique(ctx, slug.Generate(req.Title), s.slugExists(req.TenantID, ""))
	if err != nil {
		return nil, err
	}

	a := &domain.AttractionPage{
		ID:          uuid.New().String(),
		TenantID:    req.TenantID,
		Title:       req.Title,
		Slug:        pageSlug,
		Heading:     req.Heading,
		Body:        req.Body,
		ImageURL:    req.ImageURL,
		IsPublished: req.IsPublished,
	}

	err = s.repo.Create(ctx, a)
	if errors.Is(err, domain.ErrSlugConflict) {
		countSlugRetry(ctx, "attraction")
		a.Slug, err = s.enforcer.EnsureUnique(ctx, slug.Generate(req.Title), s.slugExists(req.TenantID, ""))
		if err != nil {
			return nil, err
		}
		err = s.repo.Create(ctx, a)
	}
	if err != nil {
		return nil, err
	}

	s.search.PublishUpsert(ctx, a.TenantID, "attraction", a.ID, a.Slug, a.Title)
	return a, nil
}

// GetAttractionBySlug resolves an attraction page with default-tenant fallback
func (s *attractionService) GetAttractionBySlug(ctx context.Context, tenantID, slugValue string) (*domain.AttractionPage, error) {
	a, err := s.repo.GetBySlug(ctx, slugValue, tenantID, s.registry.DefaultTenantID(ctx))
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

// ListAttractions lists the tenant's own attraction pages
func (s *attractionService) ListAttractions(ctx context.Context, tenantID string, publishedOnly bool, page, limit int) ([]*domain.AttractionPage, int, error) {
	return s.repo.List(ctx, tenantID, publishedOnly, page, limit)
}

// UpdateAttraction updates an attraction page; a title change regenerates the slug
func (s *attractionService) UpdateAttraction(ctx context.Context, tenantID, id string, req *dto.UpdateAttractionRequest) (*domain.AttractionPage, error) {
	a, err := s.repo.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}

	if req.Title != "" && req.Title != a.Title {
		a.Title = req.Title
		a.Slug, err = s.enforcer.EnsureUnique(ctx, slug.Generate(req.Title), s.slugExists(tenantID, id))
		if err != nil {
			return nil, err
		}
	}
	if req.Heading != nil {
		a.Heading = *req.Heading
	}
	if req.Body != nil {
		a.Body = *req.Body
	}
	if req.ImageURL != nil {
		a.ImageURL = *req.ImageURL
	}
	if req.IsPublished != nil {
		a.IsPublished = *req.IsPublished
	}

	err = s.repo.Update(ctx, a)
	if errors.Is(err, domain.ErrSlugConflict) {
		countSlugRetry(ctx, "attraction")
		a.Slug, err = s.enforcer.EnsureUnique(ctx, slug.Generate(a.Title), s.slugExists(tenantID, id))
		if err != nil {
			return nil, err
		}
		err = s.repo.Update(ctx, a)
	}
	if err != nil {
		return nil, err
	}

	s.search.PublishUpsert(ctx, a.TenantID, "attraction", a.ID, a.Slug, a.Title)
	return a, nil
}

// DeleteAttraction soft deletes an attraction page
func (s *attractionService) DeleteAttraction(ctx context.Context, tenantID, id string) error {
	if err := s.repo.SoftDelete(ctx, id, tenantID); err != nil {
		return err
	}
	s.search.PublishDelete(ctx, tenantID, "attraction", id)
	return nil
}
