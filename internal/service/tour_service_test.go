package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripova/tourbase/internal/domain"
	"github.com/tripova/tourbase/internal/dto"
	"github.com/tripova/tourbase/internal/repository"
	"github.com/tripova/tourbase/internal/search"
)

// stubRegistry satisfies TenantRegistryService where only default-tenant
// resolution matters.
type stubRegistry struct {
	TenantRegistryService
	defaultID string
}

func (s *stubRegistry) DefaultTenantID(ctx context.Context) string { return s.defaultID }

type fakeTourRepo struct {
	// slug -> tour, keyed per tenant
	byTenantSlug map[string]map[string]*domain.Tour

	createErrs []error // popped per Create call, nil means success
	updateErrs []error // popped per Update call, nil means success
	creates    int
	updates    []*domain.Tour
	deletes    []string
}

func newFakeTourRepo() *fakeTourRepo {
	return &fakeTourRepo{byTenantSlug: make(map[string]map[string]*domain.Tour)}
}

func (f *fakeTourRepo) put(t *domain.Tour) {
	m, ok := f.byTenantSlug[t.TenantID]
	if !ok {
		m = make(map[string]*domain.Tour)
		f.byTenantSlug[t.TenantID] = m
	}
	m[t.Slug] = t
}

func (f *fakeTourRepo) Create(ctx context.Context, t *domain.Tour) error {
	f.creates++
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return err
		}
	}
	f.put(t)
	return nil
}

func (f *fakeTourRepo) GetByID(ctx context.Context, id, tenantID string) (*domain.Tour, error) {
	for _, t := range f.byTenantSlug[tenantID] {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTourRepo) GetBySlug(ctx context.Context, slug, tenantID, defaultTenantID string) (*domain.Tour, error) {
	if t, ok := f.byTenantSlug[tenantID][slug]; ok {
		return t, nil
	}
	if defaultTenantID != "" && defaultTenantID != tenantID {
		if t, ok := f.byTenantSlug[defaultTenantID][slug]; ok {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTourRepo) List(ctx context.Context, tenantID string, filter repository.TourFilter) ([]*domain.Tour, int, error) {
	out := make([]*domain.Tour, 0)
	for _, t := range f.byTenantSlug[tenantID] {
		out = append(out, t)
	}
	return out, len(out), nil
}

func (f *fakeTourRepo) Update(ctx context.Context, t *domain.Tour) error {
	f.updates = append(f.updates, t)
	if len(f.updateErrs) > 0 {
		err := f.updateErrs[0]
		f.updateErrs = f.updateErrs[1:]
		if err != nil {
			return err
		}
	}
	f.put(t)
	return nil
}

func (f *fakeTourRepo) SoftDelete(ctx context.Context, id, tenantID string) error {
	f.deletes = append(f.deletes, id)
	return nil
}

func (f *fakeTourRepo) ExistsBySlug(ctx context.Context, tenantID, slug, excludeID string) (bool, error) {
	t, ok := f.byTenantSlug[tenantID][slug]
	if !ok {
		return false, nil
	}
	return t.ID != excludeID, nil
}

func newTestTourService(repo *fakeTourRepo) TourService {
	return NewTourService(repo, &stubRegistry{defaultID: "default"}, search.NewNoopPublisher())
}

func TestCreateTour_GeneratesSlug(t *testing.T) {
	repo := newFakeTourRepo()
	svc := newTestTourService(repo)

	created, err := svc.CreateTour(context.Background(), &dto.CreateTourRequest{
		Title:    "Amsterdam Canal Cruise",
		Price:    29.50,
		TenantID: "acme",
	})
	require.NoError(t, err)
	assert.Equal(t, "amsterdam-canal-cruise", created.Slug)
	assert.Equal(t, "acme", created.TenantID)
	assert.Equal(t, "USD", created.Currency)
	assert.NotEmpty(t, created.ID)
}

func TestCreateTour_SuffixesTakenSlug(t *testing.T) {
	repo := newFakeTourRepo()
	repo.put(&domain.Tour{ID: "t1", TenantID: "acme", Slug: "canal-cruise"})
	svc := newTestTourService(repo)

	created, err := svc.CreateTour(context.Background(), &dto.CreateTourRequest{
		Title:    "Canal Cruise",
		Price:    10,
		TenantID: "acme",
	})
	require.NoError(t, err)
	assert.Equal(t, "canal-cruise-1", created.Slug)
}

func TestCreateTour_SameSlugDifferentTenants(t *testing.T) {
	repo := newFakeTourRepo()
	repo.put(&domain.Tour{ID: "t1", TenantID: "other", Slug: "canal-cruise"})
	svc := newTestTourService(repo)

	created, err := svc.CreateTour(context.Background(), &dto.CreateTourRequest{
		Title:    "Canal Cruise",
		Price:    10,
		TenantID: "acme",
	})
	require.NoError(t, err)
	assert.Equal(t, "canal-cruise", created.Slug)
}

func TestCreateTour_RetriesOnceOnDuplicateKey(t *testing.T) {
	repo := newFakeTourRepo()
	// the pre-check sees the slug as free, but the insert loses the race
	repo.createErrs = []error{domain.ErrSlugConflict, nil}
	svc := newTestTourService(repo)

	created, err := svc.CreateTour(context.Background(), &dto.CreateTourRequest{
		Title:    "Canal Cruise",
		Price:    10,
		TenantID: "acme",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.creates)
	assert.NotEmpty(t, created.Slug)
}

func TestCreateTour_SecondConflictSurfaces(t *testing.T) {
	repo := newFakeTourRepo()
	repo.createErrs = []error{domain.ErrSlugConflict, domain.ErrSlugConflict}
	svc := newTestTourService(repo)

	_, err := svc.CreateTour(context.Background(), &dto.CreateTourRequest{
		Title:    "Canal Cruise",
		Price:    10,
		TenantID: "acme",
	})
	assert.ErrorIs(t, err, domain.ErrSlugConflict)
	assert.Equal(t, 2, repo.creates)
}

func TestCreateTour_RequiresTenantScope(t *testing.T) {
	svc := newTestTourService(newFakeTourRepo())

	_, err := svc.CreateTour(context.Background(), &dto.CreateTourRequest{
		Title: "Canal Cruise",
		Price: 10,
	})
	assert.ErrorIs(t, err, domain.ErrTenantScopeRequired)
}

func TestCreateTour_DiscountMustBeBelowPrice(t *testing.T) {
	svc := newTestTourService(newFakeTourRepo())

	discount := 15.0
	_, err := svc.CreateTour(context.Background(), &dto.CreateTourRequest{
		Title:         "Canal Cruise",
		Price:         10,
		DiscountPrice: &discount,
		TenantID:      "acme",
	})
	assert.Error(t, err)
}

func TestGetTourBySlug_FallsBackToDefaultTenant(t *testing.T) {
	repo := newFakeTourRepo()
	repo.put(&domain.Tour{ID: "t1", TenantID: "default", Slug: "canal-cruise", Title: "Shared"})
	svc := newTestTourService(repo)

	got, err := svc.GetTourBySlug(context.Background(), "acme", "canal-cruise")
	require.NoError(t, err)
	assert.Equal(t, "t1", got.ID)
}

func TestGetTourBySlug_OwnTourWins(t *testing.T) {
	repo := newFakeTourRepo()
	repo.put(&domain.Tour{ID: "shared", TenantID: "default", Slug: "canal-cruise"})
	repo.put(&domain.Tour{ID: "own", TenantID: "acme", Slug: "canal-cruise"})
	svc := newTestTourService(repo)

	got, err := svc.GetTourBySlug(context.Background(), "acme", "canal-cruise")
	require.NoError(t, err)
	assert.Equal(t, "own", got.ID)
}

func TestGetTourBySlug_Miss(t *testing.T) {
	svc := newTestTourService(newFakeTourRepo())

	_, err := svc.GetTourBySlug(context.Background(), "acme", "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateTour_TitleChangeRegeneratesSlug(t *testing.T) {
	repo := newFakeTourRepo()
	repo.put(&domain.Tour{ID: "t1", TenantID: "acme", Slug: "old-title", Title: "Old Title"})
	svc := newTestTourService(repo)

	updated, err := svc.UpdateTour(context.Background(), "acme", "t1", &dto.UpdateTourRequest{
		Title: "Brand New Title",
	})
	require.NoError(t, err)
	assert.Equal(t, "brand-new-title", updated.Slug)
}

func TestUpdateTour_RetriesOnceOnDuplicateKey(t *testing.T) {
	repo := newFakeTourRepo()
	repo.put(&domain.Tour{ID: "t1", TenantID: "acme", Slug: "old-title", Title: "Old Title"})
	// the pre-check sees the slug as free, but the update loses the race
	repo.updateErrs = []error{domain.ErrSlugConflict, nil}
	svc := newTestTourService(repo)

	updated, err := svc.UpdateTour(context.Background(), "acme", "t1", &dto.UpdateTourRequest{
		Title: "Brand New Title",
	})
	require.NoError(t, err)
	assert.Equal(t, "brand-new-title", updated.Slug)
	assert.Len(t, repo.updates, 2)
}

func TestUpdateTour_SecondConflictSurfaces(t *testing.T) {
	repo := newFakeTourRepo()
	repo.put(&domain.Tour{ID: "t1", TenantID: "acme", Slug: "old-title", Title: "Old Title"})
	repo.updateErrs = []error{domain.ErrSlugConflict, domain.ErrSlugConflict}
	svc := newTestTourService(repo)

	_, err := svc.UpdateTour(context.Background(), "acme", "t1", &dto.UpdateTourRequest{
		Title: "Brand New Title",
	})
	assert.ErrorIs(t, err, domain.ErrSlugConflict)
	assert.Len(t, repo.updates, 2)
}

func TestUpdateTour_NotFound(t *testing.T) {
	svc := newTestTourService(newFakeTourRepo())

	_, err := svc.UpdateTour(context.Background(), "acme", "ghost", &dto.UpdateTourRequest{
		Title: "New",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteTour(t *testing.T) {
	repo := newFakeTourRepo()
	repo.put(&domain.Tour{ID: "t1", TenantID: "acme", Slug: "canal-cruise"})
	svc := newTestTourService(repo)

	require.NoError(t, svc.DeleteTour(context.Background(), "acme", "t1"))
	assert.Equal(t, []string{"t1"}, repo.deletes)
}
