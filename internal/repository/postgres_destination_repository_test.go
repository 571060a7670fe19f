package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tripova/tourbase/internal/domain"
	"github.com/tripova/tourbase/pkg/database"
)

func TestDestinationRepository_RequiresTenantScope(t *testing.T) {
	repo := NewPostgresDestinationRepository(database.NewTenantPools(nil, database.DefaultPostgresConfig(), ""))
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.Destination{ID: "x", Name: "X", Slug: "x"}); err != domain.ErrTenantScopeRequired {
		t.Errorf("Create without tenant: got %v, want ErrTenantScopeRequired", err)
	}
	if _, err := repo.GetBySlug(ctx, "x", "", "default"); err != domain.ErrTenantScopeRequired {
		t.Errorf("GetBySlug without tenant: got %v, want ErrTenantScopeRequired", err)
	}
	if _, _, err := repo.List(ctx, "", false, 1, 20); err != domain.ErrTenantScopeRequired {
		t.Errorf("List without tenant: got %v, want ErrTenantScopeRequired", err)
	}
}

// Integration tests - run only when database is available

func setupPools(t *testing.T) *database.TenantPools {
	t.Helper()
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run")
	}

	cfg := database.DefaultPostgresConfig()
	if host := os.Getenv("TEST_POSTGRES_HOST"); host != "" {
		cfg.Host = host
	}
	if user := os.Getenv("TEST_POSTGRES_USER"); user != "" {
		cfg.User = user
	}
	if password := os.Getenv("TEST_POSTGRES_PASSWORD"); password != "" {
		cfg.Password = password
	}
	if dbname := os.Getenv("TEST_POSTGRES_DATABASE"); dbname != "" {
		cfg.Database = dbname
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shared, err := database.NewPostgres(ctx, cfg)
	if err != nil {
		t.Skipf("Skipping test: database not available: %v", err)
	}
	t.Cleanup(shared.Close)

	_, err = shared.Pool().Exec(ctx, `
		CREATE TABLE IF NOT EXISTS destinations (
			id           TEXT PRIMARY KEY,
			tenant_id    TEXT NOT NULL,
			name         TEXT NOT NULL,
			slug         TEXT NOT NULL,
			country      TEXT,
			description  TEXT,
			image_url    TEXT,
			highlights   TEXT[],
			is_featured  BOOLEAN NOT NULL DEFAULT FALSE,
			is_published BOOLEAN NOT NULL DEFAULT FALSE,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			deleted_at   TIMESTAMPTZ
		);
		CREATE UNIQUE INDEX IF NOT EXISTS destinations_tenant_slug_key
			ON destinations (tenant_id, slug) WHERE deleted_at IS NULL;
	`)
	if err != nil {
		t.Fatalf("Failed to create destinations table: %v", err)
	}

	return database.NewTenantPools(shared, cfg, "DATABASE_URI_")
}

// fixtureTenants returns two unique tenant ids per test run so parallel runs
// never collide on slugs.
func fixtureTenants(t *testing.T, pools *database.TenantPools) (tenantA, tenantB string) {
	t.Helper()
	run := uuid.New().String()[:8]
	tenantA = "it-a-" + run
	tenantB = "it-b-" + run

	t.Cleanup(func() {
		ctx := context.Background()
		_, _ = pools.Shared().Pool().Exec(ctx,
			`DELETE FROM destinations WHERE tenant_id IN ($1, $2)`, tenantA, tenantB)
	})
	return tenantA, tenantB
}

func newDestination(tenantID, name, slug string) *domain.Destination {
	return &domain.Destination{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		Name:        name,
		Slug:        slug,
		Country:     "Netherlands",
		IsPublished: true,
	}
}

func TestDestinationRepository_SameSlugAcrossTenants_Integration(t *testing.T) {
	pools := setupPools(t)
	tenantA, tenantB := fixtureTenants(t, pools)
	repo := NewPostgresDestinationRepository(pools)
	ctx := context.Background()

	if err := repo.Create(ctx, newDestination(tenantA, "Amsterdam", "amsterdam")); err != nil {
		t.Fatalf("Create for tenant A failed: %v", err)
	}
	// same slug under a different tenant must coexist
	if err := repo.Create(ctx, newDestination(tenantB, "Amsterdam", "amsterdam")); err != nil {
		t.Fatalf("Create same slug for tenant B failed: %v", err)
	}
	// same slug under the same tenant must collide
	err := repo.Create(ctx, newDestination(tenantA, "Amsterdam Again", "amsterdam"))
	if err != domain.ErrSlugConflict {
		t.Errorf("Duplicate create: got %v, want ErrSlugConflict", err)
	}
}

func TestDestinationRepository_FallbackPrefersOwnRow_Integration(t *testing.T) {
	pools := setupPools(t)
	tenant, defaultTenant := fixtureTenants(t, pools)
	repo := NewPostgresDestinationRepository(pools)
	ctx := context.Background()

	defaultRow := newDestination(defaultTenant, "Amsterdam (shared)", "amsterdam")
	if err := repo.Create(ctx, defaultRow); err != nil {
		t.Fatalf("Create default row failed: %v", err)
	}

	// before the tenant has its own row, the default row resolves
	got, err := repo.GetBySlug(ctx, "amsterdam", tenant, defaultTenant)
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if got == nil || got.ID != defaultRow.ID {
		t.Fatalf("Expected fallback to default row, got %+v", got)
	}

	ownRow := newDestination(tenant, "Amsterdam (own)", "amsterdam")
	if err := repo.Create(ctx, ownRow); err != nil {
		t.Fatalf("Create own row failed: %v", err)
	}

	// after the tenant overrides the slug, its own row wins
	got, err = repo.GetBySlug(ctx, "amsterdam", tenant, defaultTenant)
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if got == nil || got.ID != ownRow.ID {
		t.Fatalf("Expected tenant-owned row to win, got %+v", got)
	}
}

func TestDestinationRepository_ListNeverFallsBack_Integration(t *testing.T) {
	pools := setupPools(t)
	tenant, defaultTenant := fixtureTenants(t, pools)
	repo := NewPostgresDestinationRepository(pools)
	ctx := context.Background()

	if err := repo.Create(ctx, newDestination(defaultTenant, "Shared City", "shared-city")); err != nil {
		t.Fatalf("Create default row failed: %v", err)
	}
	if err := repo.Create(ctx, newDestination(tenant, "Own City", "own-city")); err != nil {
		t.Fatalf("Create own row failed: %v", err)
	}

	list, total, err := repo.List(ctx, tenant, false, 1, 20)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Fatalf("Expected exactly the tenant's own row, got %d rows (total %d)", len(list), total)
	}
	if list[0].Slug != "own-city" {
		t.Errorf("Expected own-city, got %s", list[0].Slug)
	}
}

func TestDestinationRepository_SoftDeleteHidesAndFreesSlug_Integration(t *testing.T) {
	pools := setupPools(t)
	tenant, _ := fixtureTenants(t, pools)
	repo := NewPostgresDestinationRepository(pools)
	ctx := context.Background()

	d := newDestination(tenant, "Rotterdam", "rotterdam")
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.SoftDelete(ctx, d.ID, tenant); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	got, err := repo.GetByID(ctx, d.ID, tenant)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Error("Expected soft-deleted row to be hidden")
	}

	// the partial unique index frees the slug for reuse
	if err := repo.Create(ctx, newDestination(tenant, "Rotterdam", "rotterdam")); err != nil {
		t.Errorf("Create after soft delete failed: %v", err)
	}

	if err := repo.SoftDelete(ctx, d.ID, tenant); err != domain.ErrNotFound {
		t.Errorf("Second SoftDelete: got %v, want ErrNotFound", err)
	}
}

func TestDestinationRepository_UpdateScopedToTenant_Integration(t *testing.T) {
	pools := setupPools(t)
	tenantA, tenantB := fixtureTenants(t, pools)
	repo := NewPostgresDestinationRepository(pools)
	ctx := context.Background()

	d := newDestination(tenantA, "Utrecht", "utrecht")
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// an update presented under the wrong tenant must not touch the row
	stolen := *d
	stolen.TenantID = tenantB
	stolen.Name = "Hijacked"
	if err := repo.Update(ctx, &stolen); err != domain.ErrNotFound {
		t.Errorf("Cross-tenant update: got %v, want ErrNotFound", err)
	}

	got, err := repo.GetByID(ctx, d.ID, tenantA)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil || got.Name != "Utrecht" {
		t.Errorf("Expected original name to survive, got %+v", got)
	}
}
