package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tripova/tourbase/internal/domain"
	"github.com/tripova/tourbase/internal/dto"
	"github.com/tripova/tourbase/internal/repository"
	"github.com/tripova/tourbase/internal/search"
	"github.com/tripova/tourbase/internal/slug"
	"github.com/tripova/tourbase/pkg/logger"
)

// tourService implements the TourService interface
type tourService struct {
	repo     repository.TourRepository
	registry TenantRegistryService
	enforcer *slug.Enforcer
	search   search.Publisher
}

// NewTourService creates a new TourService
func NewTourService(repo repository.TourRepository, registry TenantRegistryService, publisher search.Publisher) TourService {
	return &tourService{
		repo:     repo,
		registry: registry,
		enforcer: slug.NewEnforcer(),
		search:   publisher,
	}
}

func (s *tourService) slugExists(tenantID, excludeID string) slug.ExistsFunc {
	return func(ctx context.Context, candidate string) (bool, error) {
		return s.repo.ExistsBySlug(ctx, tenantID, candidate, excludeID)
	}
}

// CreateTour creates a tour with a generated unique slug. The uniqueness
// pre-check races against concurrent creations, so a duplicate-key insert is
// retried once with a freshly derived slug.
func (s *tourService) CreateTour(ctx context.Context, req *dto.CreateTourRequest) (*domain.Tour, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, errors.New(msg)
	}
	if req.TenantID == "" {
		return nil, domain.ErrTenantScopeRequired
	}

	tourSlug, err := s.enforcer.EnsureUnique(ctx, slug.Generate(req.Title), s.slugExists(req.TenantID, ""))
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	t := &domain.Tour{
		ID:               uuid.New().String(),
		TenantID:         req.TenantID,
		Title:            req.Title,
		Slug:             tourSlug,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		ImageURL:         req.ImageURL,
		Gallery:          req.Gallery,
		DurationMinutes:  req.DurationMinutes,
		Price:            req.Price,
		DiscountPrice:    req.DiscountPrice,
		Currency:         currency,
		MaxGroupSize:     req.MaxGroupSize,
		IsFeatured:       req.IsFeatured,
		IsPublished:      req.IsPublished,
	}
	if req.DestinationID != "" {
		t.DestinationID = &req.DestinationID
	}
	if req.CategoryID != "" {
		t.CategoryID = &req.CategoryID
	}

	err = s.repo.Create(ctx, t)
	if errors.Is(err, domain.ErrSlugConflict) {
		// Lost the race: re-derive against current state and try once more.
		countSlugRetry(ctx, "tour")
		t.Slug, err = s.enforcer.EnsureUnique(ctx, slug.Generate(req.Title), s.slugExists(req.TenantID, ""))
		if err != nil {
			return nil, err
		}
		err = s.repo.Create(ctx, t)
	}
	if err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info("tour created",
		zap.String("tour_id", t.ID),
		zap.String("slug", t.Slug))
	s.search.PublishUpsert(ctx, t.TenantID, "tour", t.ID, t.Slug, t.Title)
	return t, nil
}

// GetTourByID retrieves a tour owned by the tenant
func (s *tourService) GetTourByID(ctx context.Context, tenantID, id string) (*domain.Tour, error) {
	t, err := s.repo.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

// GetTourBySlug resolves a tour detail page: the tenant's own tour wins over
// the default tenant's tour with the same slug.
func (s *tourService) GetTourBySlug(ctx context.Context, tenantID, slugValue string) (*domain.Tour, error) {
	t, err := s.repo.GetBySlug(ctx, slugValue, tenantID, s.registry.DefaultTenantID(ctx))
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

// ListTours lists the tenant's own tours with filters
func (s *tourService) ListTours(ctx context.Context, tenantID string, query *dto.TourListQuery, publishedOnly bool) ([]*domain.Tour, int, error) {
	filter := repository.TourFilter{
		DestinationID: query.DestinationID,
		CategoryID:    query.CategoryID,
		FeaturedOnly:  query.Featured,
		PublishedOnly: publishedOnly,
		Search:        query.Search,
		Page:          query.Page,
		Limit:         query.Limit,
	}
	return s.repo.List(ctx, tenantID, filter)
}

// UpdateTour updates a tour. A title change regenerates the slug; ownership
// never changes.
func (s *tourService) UpdateTour(ctx context.Context, tenantID, id string, req *dto.UpdateTourRequest) (*domain.Tour, error) {
	t, err := s.GetTourByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" && req.Title != t.Title {
		t.Title = req.Title
		t.Slug, err = s.enforcer.EnsureUnique(ctx, slug.Generate(req.Title), s.slugExists(tenantID, id))
		if err != nil {
			return nil, err
		}
	}
	if req.DestinationID != nil {
		if *req.DestinationID == "" {
			t.DestinationID = nil
		} else {
			t.DestinationID = req.DestinationID
		}
	}
	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			t.CategoryID = nil
		} else {
			t.CategoryID = req.CategoryID
		}
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.ShortDescription != nil {
		t.ShortDescription = *req.ShortDescription
	}
	if req.ImageURL != nil {
		t.ImageURL = *req.ImageURL
	}
	if req.Gallery != nil {
		t.Gallery = req.Gallery
	}
	if req.DurationMinutes != nil {
		t.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		t.Price = *req.Price
	}
	if req.DiscountPrice != nil {
		t.DiscountPrice = req.DiscountPrice
	}
	if req.Currency != "" {
		t.Currency = req.Currency
	}
	if req.MaxGroupSize != nil {
		t.MaxGroupSize = *req.MaxGroupSize
	}
	if req.IsFeatured != nil {
		t.IsFeatured = *req.IsFeatured
	}
	if req.IsPublished != nil {
		t.IsPublished = *req.IsPublished
	}

	err = s.repo.Update(ctx, t)
	if errors.Is(err, domain.ErrSlugConflict) {
		countSlugRetry(ctx, "tour")
		t.Slug, err = s.enforcer.EnsureUnique(ctx, slug.Generate(t.Title), s.slugExists(tenantID, id))
		if err != nil {
			return nil, err
		}
		err = s.repo.Update(ctx, t)
	}
	if err != nil {
		return nil, err
	}

	s.search.PublishUpsert(ctx, t.TenantID, "tour", t.ID, t.Slug, t.Title)
	return t, nil
}

// DeleteTour soft deletes a tour
func (s *tourService) DeleteTour(ctx context.Context, tenantID, id string) error {
	if err := s.repo.SoftDelete(ctx, id, tenantID); err != nil {
		return err
	}
	s.search.PublishDelete(ctx, tenantID, "tour", id)
	return nil
}
