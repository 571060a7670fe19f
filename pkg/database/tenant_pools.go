package database

import (
	"context"
	"os"
	"strings"
	"sync"
)

// TenantPools routes a tenant id to its connection pool. Tenants normally
// share one database (row-level tenant_id scoping); a tenant can instead be
// given a fully separate database by setting <prefix><TENANT_KEY>, e.g.
// DATABASE_URI_ACME=postgres://... . Pools are created lazily and cached per
// resolved URI, so two tenant keys pointing at the same URI share one pool.
type TenantPools struct {
	shared *PostgresDB
	cfg    *PostgresConfig
	prefix string

	mu      sync.RWMutex
	byURI   map[string]*PostgresDB
	lookup  func(key string) string
}

// NewTenantPools creates a resolver backed by the shared pool. prefix is the
// environment variable prefix for dedicated tenant DSNs.
func NewTenantPools(shared *PostgresDB, cfg *PostgresConfig, prefix string) *TenantPools {
	if prefix == "" {
		prefix = "DATABASE_URI_"
	}
	return &TenantPools{
		shared: shared,
		cfg:    cfg,
		prefix: prefix,
		byURI:  make(map[string]*PostgresDB),
		lookup: os.Getenv,
	}
}

// envKey converts a tenant id to the env var suffix: "acme-tours" -> "ACME_TOURS".
func (tp *TenantPools) envKey(tenantID string) string {
	key := strings.ToUpper(tenantID)
	key = strings.NewReplacer("-", "_", ".", "_").Replace(key)
	return tp.prefix + key
}

// Shared returns the shared pool used by tenants without a dedicated database.
func (tp *TenantPools) Shared() *PostgresDB {
	return tp.shared
}

// ForTenant returns the pool serving the given tenant: the dedicated pool if
// a <prefix><TENANT_KEY> DSN is configured, otherwise the shared pool.
func (tp *TenantPools) ForTenant(ctx context.Context, tenantID string) (*PostgresDB, error) {
	if tenantID == "" {
		return tp.shared, nil
	}

	dsn := tp.lookup(tp.envKey(tenantID))
	if dsn == "" {
		return tp.shared, nil
	}

	tp.mu.RLock()
	db, ok := tp.byURI[dsn]
	tp.mu.RUnlock()
	if ok {
		return db, nil
	}

	tp.mu.Lock()
	defer tp.mu.Unlock()
	if db, ok := tp.byURI[dsn]; ok {
		return db, nil
	}

	db, err := NewPostgresFromDSN(ctx, dsn, tp.cfg)
	if err != nil {
		return nil, err
	}
	tp.byURI[dsn] = db
	return db, nil
}

// Close closes all dedicated pools. The shared pool is owned by the caller.
func (tp *TenantPools) Close() {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	for _, db := range tp.byURI {
		db.Close()
	}
	tp.byURI = make(map[string]*PostgresDB)
}
