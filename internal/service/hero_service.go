package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/tripova/tourbase/internal/domain"
	"github.com/tripova/tourbase/internal/dto"
	"github.com/tripova/tourbase/internal/repository"
)

// heroService implements the HeroService interface
type heroService struct {
	repo     repository.HeroRepository
	registry TenantRegistryService
}

// NewHeroService creates a new HeroService
func NewHeroService(repo repository.HeroRepository, registry TenantRegistryService) HeroService {
	return &heroService{repo: repo, registry: registry}
}

// CreateHero adds an inactive hero configuration
func (s *heroService) CreateHero(ctx context.Context, req *dto.CreateHeroRequest) (*domain.HeroSettings, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, errors.New(msg)
	}
	if req.TenantID == "" {
		return nil, domain.ErrTenantScopeRequired
	}

	h := &domain.HeroSettings{
		ID:       uuid.New().String(),
		TenantID: req.TenantID,
		Headline: req.Headline,
		Subtitle: req.Subtitle,
		ImageURL: req.ImageURL,
		VideoURL: req.VideoURL,
		CTALabel: req.CTALabel,
		CTALink:  req.CTALink,
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// GetActiveHero resolves the hero with default-tenant fallback
func (s *heroService) GetActiveHero(ctx context.Context, tenantID string) (*domain.HeroSettings, error) {
	h, err := s.repo.GetActive(ctx, tenantID, s.registry.DefaultTenantID(ctx))
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, domain.ErrNotFound
	}
	return h, nil
}

// ListHeroes lists the tenant's hero configurations
func (s *heroService) ListHeroes(ctx context.Context, tenantID string) ([]*domain.HeroSettings, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}

// ActivateHero makes one configuration the tenant's active hero
func (s *heroService) ActivateHero(ctx context.Context, tenantID, id string) error {
	return s.repo.Activate(ctx, id, tenantID)
}

// UpdateHero updates a hero configuration's content fields
func (s *heroService) UpdateHero(ctx context.Context, tenantID, id string, req *dto.UpdateHeroRequest) (*domain.HeroSettings, error) {
	h, err := s.repo.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, domain.ErrNotFound
	}

	if req.Headline != "" {
		h.Headline = req.Headline
	}
	if req.Subtitle != nil {
		h.Subtitle = *req.Subtitle
	}
	if req.ImageURL != nil {
		h.ImageURL = *req.ImageURL
	}
	if req.VideoURL != nil {
		h.VideoURL = *req.VideoURL
	}
	if req.CTALabel != nil {
		h.CTALabel = *req.CTALabel
	}
	if req.CTALink != nil {
		h.CTALink = *req.CTALink
	}

	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// DeleteHero removes a hero configuration
func (s *heroService) DeleteHero(ctx context.Context, tenantID, id string) error {
	return s.repo.Delete(ctx, id, tenantID)
}
