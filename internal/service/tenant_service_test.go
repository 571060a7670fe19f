package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripova/tourbase/internal/domain"
	"github.com/tripova/tourbase/internal/dto"
)

type fakeTenantRepo struct {
	byID      map[string]*domain.Tenant
	byHost    map[string]*domain.Tenant
	defTenant *domain.Tenant

	failHost    bool
	failDefault bool
	failGetByID bool

	created     []*domain.Tenant
	updated     []*domain.Tenant
	softDeleted []string
	defaulted   []string
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{
		byID:   make(map[string]*domain.Tenant),
		byHost: make(map[string]*domain.Tenant),
	}
}

func (f *fakeTenantRepo) add(t *domain.Tenant) {
	f.byID[t.ID] = t
	if t.Domain != "" {
		f.byHost[t.Domain] = t
	}
	for _, d := range t.AltDomains {
		f.byHost[d] = t
	}
	if t.IsDefault {
		f.defTenant = t
	}
}

func (f *fakeTenantRepo) Create(ctx context.Context, t *domain.Tenant) error {
	f.created = append(f.created, t)
	f.add(t)
	return nil
}

func (f *fakeTenantRepo) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	if f.failGetByID {
		return nil, errors.New("connection refused")
	}
	return f.byID[id], nil
}

func (f *fakeTenantRepo) GetByHost(ctx context.Context, host string) (*domain.Tenant, error) {
	if f.failHost {
		return nil, errors.New("connection refused")
	}
	return f.byHost[host], nil
}

func (f *fakeTenantRepo) GetDefault(ctx context.Context) (*domain.Tenant, error) {
	if f.failDefault {
		return nil, errors.New("connection refused")
	}
	return f.defTenant, nil
}

func (f *fakeTenantRepo) List(ctx context.Context, page, limit int, isActive *bool, search string) ([]*domain.Tenant, int, error) {
	out := make([]*domain.Tenant, 0, len(f.byID))
	for _, t := range f.byID {
		if isActive != nil && t.IsActive != *isActive {
			continue
		}
		out = append(out, t)
	}
	return out, len(out), nil
}

func (f *fakeTenantRepo) Update(ctx context.Context, t *domain.Tenant) error {
	f.updated = append(f.updated, t)
	f.add(t)
	return nil
}

func (f *fakeTenantRepo) SetDefault(ctx context.Context, id string) error {
	f.defaulted = append(f.defaulted, id)
	if t, ok := f.byID[id]; ok {
		if f.defTenant != nil {
			f.defTenant.IsDefault = false
		}
		t.IsDefault = true
		f.defTenant = t
	}
	return nil
}

func (f *fakeTenantRepo) SoftDelete(ctx context.Context, id string) error {
	f.softDeleted = append(f.softDeleted, id)
	delete(f.byID, id)
	return nil
}

func (f *fakeTenantRepo) ExistsByDomain(ctx context.Context, dom, excludeID string) (bool, error) {
	t, ok := f.byHost[dom]
	if !ok {
		return false, nil
	}
	return t.ID != excludeID, nil
}

func newTestRegistry(t *testing.T, repo *fakeTenantRepo) TenantRegistryService {
	t.Helper()
	svc, err := NewTenantRegistryService(repo, nil, 1<<20, time.Minute)
	require.NoError(t, err)
	return svc
}

func defaultTenant() *domain.Tenant {
	return &domain.Tenant{
		ID:        "default",
		Name:      "Flagship",
		Domain:    "flagship.example.com",
		Currency:  "USD",
		IsActive:  true,
		IsDefault: true,
	}
}

func acmeTenant() *domain.Tenant {
	return &domain.Tenant{
		ID:         "acme",
		Name:       "Acme Tours",
		Domain:     "acme-tours.com",
		AltDomains: []string{"acme.example.com"},
		Currency:   "EUR",
		IsActive:   true,
	}
}

func TestResolveTenantID_KnownHost(t *testing.T) {
	repo := newFakeTenantRepo()
	repo.add(defaultTenant())
	repo.add(acmeTenant())
	svc := newTestRegistry(t, repo)

	assert.Equal(t, "acme", svc.ResolveTenantID(context.Background(), "acme-tours.com", ""))
	assert.Equal(t, "acme", svc.ResolveTenantID(context.Background(), "acme.example.com", ""))
}

func TestResolveTenantID_UnknownHostFallsBackToDefault(t *testing.T) {
	repo := newFakeTenantRepo()
	repo.add(defaultTenant())
	repo.add(acmeTenant())
	svc := newTestRegistry(t, repo)

	assert.Equal(t, "default", svc.ResolveTenantID(context.Background(), "nobody.example.com", ""))
}

func TestResolveTenantID_OverrideWins(t *testing.T) {
	repo := newFakeTenantRepo()
	repo.add(defaultTenant())
	repo.add(acmeTenant())
	svc := newTestRegistry(t, repo)

	got := svc.ResolveTenantID(context.Background(), "flagship.example.com", "acme")
	assert.Equal(t, "acme", got)
}

func TestResolveTenantID_InvalidOverrideIgnored(t *testing.T) {
	repo := newFakeTenantRepo()
	repo.add(defaultTenant())
	repo.add(acmeTenant())
	svc := newTestRegistry(t, repo)

	got := svc.ResolveTenantID(context.Background(), "acme-tours.com", "no-such-tenant")
	assert.Equal(t, "acme", got)
}

func TestResolveTenantID_InactiveOverrideIgnored(t *testing.T) {
	repo := newFakeTenantRepo()
	repo.add(defaultTenant())
	suspended := acmeTenant()
	suspended.IsActive = false
	repo.add(suspended)
	svc := newTestRegistry(t, repo)

	got := svc.ResolveTenantID(context.Background(), "flagship.example.com", "acme")
	assert.Equal(t, "default", got)
}

func TestResolveTenantID_HostLookupFailure(t *testing.T) {
	repo := newFakeTenantRepo()
	repo.add(defaultTenant())
	repo.failHost = true
	svc := newTestRegistry(t, repo)

	// a broken host lookup still scopes the request to the default tenant
	assert.Equal(t, "default", svc.ResolveTenantID(context.Background(), "acme-tours.com", ""))
}

func TestDefaultTenantID_DatabaseDown(t *testing.T) {
	repo := newFakeTenantRepo()
	repo.failDefault = true
	svc := newTestRegistry(t, repo)

	assert.Equal(t, domain.FallbackTenantID, svc.DefaultTenantID(context.Background()))
}

func TestGetPublicConfig_UnknownTenantDegrades(t *testing.T) {
	repo := newFakeTenantRepo()
	svc := newTestRegistry(t, repo)

	cfg, err := svc.GetPublicConfig(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, "ghost", cfg.TenantID)
	assert.Equal(t, "Tours & Activities", cfg.Name)
	assert.Equal(t, "USD", cfg.Currency)
}

func TestGetPublicConfig_LookupFailureDegrades(t *testing.T) {
	repo := newFakeTenantRepo()
	repo.add(acmeTenant())
	repo.failGetByID = true
	svc := newTestRegistry(t, repo)

	// a broken config lookup still renders a storefront
	cfg, err := svc.GetPublicConfig(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, "acme", cfg.TenantID)
	assert.Equal(t, "Tours & Activities", cfg.Name)
	assert.Equal(t, "USD", cfg.Currency)
}

func TestGetPublicConfig_OmitsSecrets(t *testing.T) {
	repo := newFakeTenantRepo()
	tenant := acmeTenant()
	tenant.Secrets = map[string]string{"stripe_key": "sk_live_123"}
	repo.add(tenant)
	svc := newTestRegistry(t, repo)

	cfg, err := svc.GetPublicConfig(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme Tours", cfg.Name)
	assert.Equal(t, "EUR", cfg.Currency)
}

func TestCreateTenant_DuplicateDomain(t *testing.T) {
	repo := newFakeTenantRepo()
	repo.add(acmeTenant())
	svc := newTestRegistry(t, repo)

	_, err := svc.CreateTenant(context.Background(), &dto.CreateTenantRequest{
		Name:   "Copycat",
		Domain: "acme-tours.com",
	})
	assert.ErrorIs(t, err, domain.ErrTenantAlreadyExists)
}

func TestCreateTenant_DefaultsApplied(t *testing.T) {
	repo := newFakeTenantRepo()
	svc := newTestRegistry(t, repo)

	created, err := svc.CreateTenant(context.Background(), &dto.CreateTenantRequest{
		Name:     "City Breaks",
		Domain:   "City-Breaks.COM",
		Currency: "eur",
		IsActive: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "city-breaks", created.Slug)
	assert.Equal(t, "city-breaks.com", created.Domain)
	assert.Equal(t, "EUR", created.Currency)
	assert.False(t, created.IsDefault)
}

func TestUpdateTenant_DomainConflict(t *testing.T) {
	repo := newFakeTenantRepo()
	repo.add(defaultTenant())
	repo.add(acmeTenant())
	svc := newTestRegistry(t, repo)

	_, err := svc.UpdateTenant(context.Background(), "acme", &dto.UpdateTenantRequest{
		Domain: "flagship.example.com",
	})
	assert.ErrorIs(t, err, domain.ErrTenantAlreadyExists)
}

func TestDeleteTenant_DefaultRefused(t *testing.T) {
	repo := newFakeTenantRepo()
	repo.add(defaultTenant())
	svc := newTestRegistry(t, repo)

	err := svc.DeleteTenant(context.Background(), "default")
	assert.ErrorIs(t, err, domain.ErrTenantImmutable)
	assert.Empty(t, repo.softDeleted)
}

func TestDeleteTenant_NonDefault(t *testing.T) {
	repo := newFakeTenantRepo()
	repo.add(defaultTenant())
	repo.add(acmeTenant())
	svc := newTestRegistry(t, repo)

	err := svc.DeleteTenant(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, []string{"acme"}, repo.softDeleted)
}
