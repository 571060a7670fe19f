package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripova/tourbase/internal/domain"
	"github.com/tripova/tourbase/internal/dto"
)

type fakeReviewRepo struct {
	created  []*domain.Review
	approved map[string]bool
	deleted  []string
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{approved: make(map[string]bool)}
}

func (f *fakeReviewRepo) Create(ctx context.Context, r *domain.Review) error {
	f.created = append(f.created, r)
	return nil
}

func (f *fakeReviewRepo) ListByTour(ctx context.Context, tourID, tenantID string, approvedOnly bool, page, limit int) ([]*domain.Review, int, error) {
	out := make([]*domain.Review, 0)
	for _, r := range f.created {
		if r.TourID != tourID || r.TenantID != tenantID {
			continue
		}
		if approvedOnly && !r.IsApproved {
			continue
		}
		out = append(out, r)
	}
	return out, len(out), nil
}

func (f *fakeReviewRepo) SetApproved(ctx context.Context, id, tenantID string, approved bool) error {
	f.approved[id] = approved
	return nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, id, tenantID string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func TestSubmitReview_StartsUnapproved(t *testing.T) {
	tours := newFakeTourRepo()
	tours.put(&domain.Tour{ID: "t1", TenantID: "acme", Slug: "canal-cruise"})
	reviews := newFakeReviewRepo()
	svc := NewReviewService(reviews, tours)

	rv, err := svc.SubmitReview(context.Background(), "acme", "t1", &dto.CreateReviewRequest{
		Author: "Jo",
		Rating: 5,
	})
	require.NoError(t, err)
	assert.False(t, rv.IsApproved)
	assert.Equal(t, "acme", rv.TenantID)
	assert.Equal(t, "t1", rv.TourID)
}

func TestSubmitReview_RejectsFallbackTour(t *testing.T) {
	tours := newFakeTourRepo()
	// the tour belongs to the default tenant, served to acme only via fallback
	tours.put(&domain.Tour{ID: "t1", TenantID: "default", Slug: "canal-cruise"})
	svc := NewReviewService(newFakeReviewRepo(), tours)

	_, err := svc.SubmitReview(context.Background(), "acme", "t1", &dto.CreateReviewRequest{
		Author: "Jo",
		Rating: 4,
	})
	assert.ErrorIs(t, err, ErrReviewTourNotFound)
}

func TestSubmitReview_RequiresTenantScope(t *testing.T) {
	svc := NewReviewService(newFakeReviewRepo(), newFakeTourRepo())

	_, err := svc.SubmitReview(context.Background(), "", "t1", &dto.CreateReviewRequest{
		Author: "Jo",
		Rating: 3,
	})
	assert.ErrorIs(t, err, domain.ErrTenantScopeRequired)
}

func TestSubmitReview_InvalidRating(t *testing.T) {
	tours := newFakeTourRepo()
	tours.put(&domain.Tour{ID: "t1", TenantID: "acme", Slug: "canal-cruise"})
	svc := NewReviewService(newFakeReviewRepo(), tours)

	_, err := svc.SubmitReview(context.Background(), "acme", "t1", &dto.CreateReviewRequest{
		Author: "Jo",
		Rating: 6,
	})
	assert.Error(t, err)
}

func TestListReviews_ApprovedOnly(t *testing.T) {
	tours := newFakeTourRepo()
	tours.put(&domain.Tour{ID: "t1", TenantID: "acme", Slug: "canal-cruise"})
	reviews := newFakeReviewRepo()
	svc := NewReviewService(reviews, tours)

	rv, err := svc.SubmitReview(context.Background(), "acme", "t1", &dto.CreateReviewRequest{
		Author: "Jo",
		Rating: 5,
	})
	require.NoError(t, err)

	visible, _, err := svc.ListReviews(context.Background(), "acme", "t1", true, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, visible, "unmoderated review must not surface publicly")

	rv.IsApproved = true
	visible, _, err = svc.ListReviews(context.Background(), "acme", "t1", true, 1, 20)
	require.NoError(t, err)
	assert.Len(t, visible, 1)
}
