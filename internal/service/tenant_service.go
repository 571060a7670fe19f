package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tripova/tourbase/internal/domain"
	"github.com/tripova/tourbase/internal/dto"
	"github.com/tripova/tourbase/internal/repository"
	"github.com/tripova/tourbase/internal/slug"
	"github.com/tripova/tourbase/pkg/logger"
	"github.com/tripova/tourbase/pkg/redis"
	"github.com/tripova/tourbase/pkg/telemetry"
)

const (
	hostCacheKeyPrefix = "tourbase:tenant:host:"
	defaultCacheKey    = "tourbase:tenant:default"
)

// tenantRegistryService implements the TenantRegistryService interface.
// Host lookups sit on the hot path of every request, so resolution runs
// through an in-process ristretto cache and, when configured, a shared
// Redis layer in front of PostgreSQL.
type tenantRegistryService struct {
	repo     repository.TenantRepository
	l1       *ristretto.Cache[string, string]
	shared   *redis.Client // nil when the shared cache layer is disabled
	cacheTTL time.Duration

	resolveCounter *telemetry.Counter
}

// NewTenantRegistryService creates a new TenantRegistryService. shared may be
// nil to run with the in-process cache only.
func NewTenantRegistryService(repo repository.TenantRepository, shared *redis.Client, cacheMaxBytes int64, cacheTTL time.Duration) (TenantRegistryService, error) {
	if cacheMaxBytes <= 0 {
		cacheMaxBytes = 1 << 20
	}
	l1, err := ristretto.NewCache(&ristretto.Config[string, string]{
		NumCounters: cacheMaxBytes / 100 * 10, // ~10x expected items
		MaxCost:     cacheMaxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	resolveCounter, err := telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "tenant_resolutions_total",
		Description: "Tenant resolutions by cache layer",
		Unit:        "1",
	})
	if err != nil {
		return nil, err
	}

	return &tenantRegistryService{
		repo:           repo,
		l1:             l1,
		shared:         shared,
		cacheTTL:       cacheTTL,
		resolveCounter: resolveCounter,
	}, nil
}

// ResolveTenantID maps a host to a tenant id. The override wins when it names
// an existing active tenant; otherwise the host is matched against registered
// domains, and anything unknown lands on the default tenant.
func (s *tenantRegistryService) ResolveTenantID(ctx context.Context, host, override string) string {
	if override != "" {
		if t, err := s.repo.GetByID(ctx, override); err == nil && t != nil && t.IsActive {
			return t.ID
		}
		// A bad override is ignored rather than rejected so a stale admin
		// cookie cannot take a storefront down.
		logger.WithContext(ctx).Debug("ignoring invalid tenant override", zap.String("override", override))
	}

	if host != "" {
		if id, ok := s.lookupHost(ctx, host); ok {
			return id
		}
	}

	return s.DefaultTenantID(ctx)
}

func (s *tenantRegistryService) lookupHost(ctx context.Context, host string) (string, bool) {
	key := hostCacheKeyPrefix + host

	if id, ok := s.l1.Get(key); ok {
		s.resolveCounter.Inc(ctx, telemetry.CacheLayerAttr("l1"))
		return id, true
	}

	if s.shared != nil {
		if id, ok, err := s.shared.Get(ctx, key); err == nil && ok {
			s.resolveCounter.Inc(ctx, telemetry.CacheLayerAttr("l2"))
			s.l1.SetWithTTL(key, id, int64(len(key)+len(id)), s.cacheTTL)
			return id, true
		}
	}

	t, err := s.repo.GetByHost(ctx, host)
	if err != nil {
		logger.WithContext(ctx).Error("tenant host lookup failed", zap.String("host", host), zap.Error(err))
		return "", false
	}
	if t == nil {
		return "", false
	}

	s.resolveCounter.Inc(ctx, telemetry.CacheLayerAttr("db"))
	s.cacheHost(ctx, key, t.ID)
	return t.ID, true
}

func (s *tenantRegistryService) cacheHost(ctx context.Context, key, id string) {
	s.l1.SetWithTTL(key, id, int64(len(key)+len(id)), s.cacheTTL)
	if s.shared != nil {
		if err := s.shared.Set(ctx, key, id, s.cacheTTL); err != nil {
			logger.WithContext(ctx).Warn("shared tenant cache write failed", zap.Error(err))
		}
	}
}

// DefaultTenantID returns the default tenant's id, caching it the same way
// host mappings are cached. When even the database lookup fails, the
// well-known fallback id keeps requests scoped rather than failing them.
func (s *tenantRegistryService) DefaultTenantID(ctx context.Context) string {
	if id, ok := s.l1.Get(defaultCacheKey); ok {
		return id
	}

	t, err := s.repo.GetDefault(ctx)
	if err != nil || t == nil {
		logger.WithContext(ctx).Error("default tenant lookup failed", zap.Error(err))
		return domain.FallbackTenantID
	}

	s.l1.SetWithTTL(defaultCacheKey, t.ID, int64(len(defaultCacheKey)+len(t.ID)), s.cacheTTL)
	return t.ID
}

// GetPublicConfig returns the tenant's storefront configuration. A missing
// tenant or a failed lookup degrades to a minimal branding rather than
// erroring, so the site still renders.
func (s *tenantRegistryService) GetPublicConfig(ctx context.Context, tenantID string) (*dto.PublicTenantConfig, error) {
	t, err := s.repo.GetByID(ctx, tenantID)
	if err != nil {
		logger.WithContext(ctx).Error("public config lookup failed",
			zap.String("tenant_id", tenantID), zap.Error(err))
	} else if t == nil {
		logger.WithContext(ctx).Warn("public config requested for unknown tenant", zap.String("tenant_id", tenantID))
	}
	if t == nil {
		return &dto.PublicTenantConfig{
			TenantID: tenantID,
			Name:     "Tours & Activities",
			Currency: "USD",
		}, nil
	}
	return dto.NewPublicTenantConfig(t), nil
}

// CreateTenant registers a new tenant site
func (s *tenantRegistryService) CreateTenant(ctx context.Context, req *dto.CreateTenantRequest) (*domain.Tenant, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, errors.New(msg)
	}

	domainName := strings.ToLower(strings.TrimSpace(req.Domain))
	exists, err := s.repo.ExistsByDomain(ctx, domainName, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrTenantAlreadyExists
	}

	tenantSlug := req.Slug
	if tenantSlug == "" {
		tenantSlug = slug.Generate(req.Name)
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	now := time.Now()
	t := &domain.Tenant{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Slug:         tenantSlug,
		Domain:       domainName,
		AltDomains:   normalizeDomains(req.AltDomains),
		Branding:     req.Branding,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Currency:     strings.ToUpper(currency),
		FeatureFlags: req.FeatureFlags,
		IsActive:     req.IsActive,
		IsDefault:    false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info("tenant created",
		zap.String("tenant_id", t.ID),
		zap.String("domain", t.Domain))
	return t, nil
}

func normalizeDomains(domains []string) []string {
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}

// GetTenant retrieves a tenant by id
func (s *tenantRegistryService) GetTenant(ctx context.Context, id string) (*domain.Tenant, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTenantNotFound
	}
	return t, nil
}

// ListTenants lists tenants with pagination
func (s *tenantRegistryService) ListTenants(ctx context.Context, filter *dto.TenantListFilter) ([]*domain.Tenant, int, error) {
	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var isActive *bool
	if filter.ActiveOnly {
		active := true
		isActive = &active
	}
	return s.repo.List(ctx, page, limit, isActive, filter.Search)
}

// UpdateTenant updates a tenant's settings and invalidates cached host
// mappings for it.
func (s *tenantRegistryService) UpdateTenant(ctx context.Context, id string, req *dto.UpdateTenantRequest) (*domain.Tenant, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, errors.New(msg)
	}

	t, err := s.GetTenant(ctx, id)
	if err != nil {
		return nil, err
	}

	oldHosts := append([]string{t.Domain}, t.AltDomains...)

	if req.Name != "" {
		t.Name = req.Name
	}
	if req.Domain != "" {
		domainName := strings.ToLower(strings.TrimSpace(req.Domain))
		if domainName != t.Domain {
			exists, err := s.repo.ExistsByDomain(ctx, domainName, id)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrTenantAlreadyExists
			}
			t.Domain = domainName
		}
	}
	if req.AltDomains != nil {
		t.AltDomains = normalizeDomains(req.AltDomains)
	}
	if req.Branding != nil {
		t.Branding = req.Branding
	}
	if req.ContactEmail != "" {
		t.ContactEmail = req.ContactEmail
	}
	if req.ContactPhone != "" {
		t.ContactPhone = req.ContactPhone
	}
	if req.Currency != "" {
		t.Currency = strings.ToUpper(req.Currency)
	}
	if req.FeatureFlags != nil {
		t.FeatureFlags = req.FeatureFlags
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.invalidateHosts(ctx, append(oldHosts, t.Domain))
	return t, nil
}

// SetDefaultTenant promotes a tenant to platform default. The previous
// default is demoted in the same transaction, so there is always exactly one.
func (s *tenantRegistryService) SetDefaultTenant(ctx context.Context, id string) error {
	if err := s.repo.SetDefault(ctx, id); err != nil {
		return err
	}
	s.l1.Del(defaultCacheKey)
	logger.WithContext(ctx).Info("default tenant changed", zap.String("tenant_id", id))
	return nil
}

// DeleteTenant soft deletes a tenant. The default tenant cannot be deleted;
// demote it first.
func (s *tenantRegistryService) DeleteTenant(ctx context.Context, id string) error {
	t, err := s.GetTenant(ctx, id)
	if err != nil {
		return err
	}
	if t.IsDefault {
		return domain.ErrTenantImmutable
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidateHosts(ctx, append([]string{t.Domain}, t.AltDomains...))
	return nil
}

func (s *tenantRegistryService) invalidateHosts(ctx context.Context, hosts []string) {
	for _, h := range hosts {
		if h == "" {
			continue
		}
		key := hostCacheKeyPrefix + h
		s.l1.Del(key)
		if s.shared != nil {
			if err := s.shared.Delete(ctx, key); err != nil {
				logger.WithContext(ctx).Warn("shared tenant cache invalidation failed",
					zap.String("host", h), zap.Error(err))
			}
		}
	}
}
