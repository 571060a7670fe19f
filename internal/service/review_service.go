package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/tripova/tourbase/internal/domain"
	"github.com/tripova/tourbase/internal/dto"
	"github.com/tripova/tourbase/internal/repository"
)

// ReviewService errors
var (
	ErrReviewTourNotFound = errors.New("reviewed tour not found")
)

// reviewService implements the ReviewService interface. Reviews attach only
// to tours the tenant owns; a tour served via fallback from the default
// tenant cannot be reviewed on another tenant's storefront.
type reviewService struct {
	repo  repository.ReviewRepository
	tours repository.TourRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(repo repository.ReviewRepository, tours repository.TourRepository) ReviewService {
	return &reviewService{repo: repo, tours: tours}
}

// SubmitReview records a review for a tenant-owned tour. New reviews start
// unapproved and surface publicly only after moderation.
func (s *reviewService) SubmitReview(ctx context.Context, tenantID, tourID string, req *dto.CreateReviewRequest) (*domain.Review, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, errors.New(msg)
	}
	if tenantID == "" {
		return nil, domain.ErrTenantScopeRequired
	}

	t, err := s.tours.GetByID(ctx, tourID, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrReviewTourNotFound
	}

	rv := &domain.Review{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		TourID:     tourID,
		Author:     req.Author,
		Rating:     req.Rating,
		Title:      req.Title,
		Body:       req.Body,
		IsApproved: false,
	}
	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

// ListReviews lists a tour's reviews within the tenant
func (s *reviewService) ListReviews(ctx context.Context, tenantID, tourID string, approvedOnly bool, page, limit int) ([]*domain.Review, int, error) {
	return s.repo.ListByTour(ctx, tourID, tenantID, approvedOnly, page, limit)
}

// ModerateReview approves or rejects a review
func (s *reviewService) ModerateReview(ctx context.Context, tenantID, id string, approved bool) error {
	return s.repo.SetApproved(ctx, id, tenantID, approved)
}

// DeleteReview removes a review
func (s *reviewService) DeleteReview(ctx context.Context, tenantID, id string) error {
	return s.repo.Delete(ctx, id, tenantID)
}
