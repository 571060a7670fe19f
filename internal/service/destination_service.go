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

// destinationService implements the DestinationService interface
type destinationService struct {
	repo     repository.DestinationRepository
	registry TenantRegistryService
	enforcer *slug.Enforcer
	search   search.Publisher
}

// NewDestinationService creates a new DestinationService
func NewDestinationService(repo repository.DestinationRepository, registry TenantRegistryService, publisher search.Publisher) DestinationService {
	return &destinationService{
		repo:     repo,
		registry: registry,
		enforcer: slug.NewEnforcer(),
		search:   publisher,
	}
}

func (s *destinationService) slugExists(tenantID, excludeID string) slug.ExistsFunc {
	return func(ctx context.Context, candidate string) (bool, error) {
		return s.repo.ExistsBySlug(ctx, tenantID, candidate, excludeID)
	}
}

// CreateDestination creates a destination with a generated unique slug
func (s *destinationService) CreateDestination(ctx context.Context, req *dto.CreateDestinationRequest) (*domain.Destination, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, errors.New(msg)
	}
	if req.TenantID == "" {
		return nil, domain.ErrTenantScopeRequired
	}

	destSlug, err := s.enforcer.EnsureUnique(ctx, slug.Generate(req.Name), s.slugExists(req.TenantID, ""))
	if err != nil {
		return nil, err
	}

	d := &domain.Destination{
		ID:          uuid.New().String(),
		TenantID:    req.TenantID,
		Name:        req.Name,
		Slug:        destSlug,
		Country:     req.Country,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Highlights:  req.Highlights,
		IsFeatured:  req.IsFeatured,
		IsPublished: req.IsPublished,
	}

	err = s.repo.Create(ctx, d)
	if errors.Is(err, domain.ErrSlugConflict) {
		countSlugRetry(ctx, "destination")
		d.Slug, err = s.enforcer.EnsureUnique(ctx, slug.Generate(req.Name), s.slugExists(req.TenantID, ""))
		if err != nil {
			return nil, err
		}
		err = s.repo.Create(ctx, d)
	}
	if err != nil {
		return nil, err
	}

	s.search.PublishUpsert(ctx, d.TenantID, "destination", d.ID, d.Slug, d.Name)
	return d, nil
}

// GetDestinationBySlug resolves a destination with default-tenant fallback
func (s *destinationService) GetDestinationBySlug(ctx context.Context, tenantID, slugValue string) (*domain.Destination, error) {
	d, err := s.repo.GetBySlug(ctx, slugValue, tenantID, s.registry.DefaultTenantID(ctx))
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// ListDestinations lists the tenant's own destinations
func (s *destinationService) ListDestinations(ctx context.Context, tenantID string, publishedOnly bool, page, limit int) ([]*domain.Destination, int, error) {
	return s.repo.List(ctx, tenantID, publishedOnly, page, limit)
}

// UpdateDestination updates a destination; a name change regenerates the slug
func (s *destinationService) UpdateDestination(ctx context.Context, tenantID, id string, req *dto.UpdateDestinationRequest) (*domain.Destination, error) {
	d, err := s.repo.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != "" && req.Name != d.Name {
		d.Name = req.Name
		d.Slug, err = s.enforcer.EnsureUnique(ctx, slug.Generate(req.Name), s.slugExists(tenantID, id))
		if err != nil {
			return nil, err
		}
	}
	if req.Country != nil {
		d.Country = *req.Country
	}
	if req.Description != nil {
		d.Description = *req.Description
	}
	if req.ImageURL != nil {
		d.ImageURL = *req.ImageURL
	}
	if req.Highlights != nil {
		d.Highlights = req.Highlights
	}
	if req.IsFeatured != nil {
		d.IsFeatured = *req.IsFeatured
	}
	if req.IsPublished != nil {
		d.IsPublished = *req.IsPublished
	}

	err = s.repo.Update(ctx, d)
	if errors.Is(err, domain.ErrSlugConflict) {
		countSlugRetry(ctx, "destination")
		d.Slug, err = s.enforcer.EnsureUnique(ctx, slug.Generate(d.Name), s.slugExists(tenantID, id))
		if err != nil {
			return nil, err
		}
		err = s.repo.Update(ctx, d)
	}
	if err != nil {
		return nil, err
	}

	s.search.PublishUpsert(ctx, d.TenantID, "destination", d.ID, d.Slug, d.Name)
	return d, nil
}

// DeleteDestination soft deletes a destination
func (s *destinationService) DeleteDestination(ctx context.Context, tenantID, id string) error {
	if err := s.repo.SoftDelete(ctx, id, tenantID); err != nil {
		return err
	}
	s.search.PublishDelete(ctx, tenantID, "destination", id)
	return nil
}
