package database

import (
	"context"
	"os"
	"testing"
	"time"
)

// getTestConfig returns config for testing, from env vars or defaults
func getTestConfig() *PostgresConfig {
	cfg := DefaultPostgresConfig()

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

	return cfg
}

func TestDefaultPostgresConfig(t *testing.T) {
	cfg := DefaultPostgresConfig()

	if cfg.Host != "localhost" {
		t.Errorf("Expected host 'localhost', got '%s'", cfg.Host)
	}
	if cfg.Port != 5432 {
		t.Errorf("Expected port 5432, got %d", cfg.Port)
	}
	if cfg.MaxConns != 25 {
		t.Errorf("Expected max conns 25, got %d", cfg.MaxConns)
	}
	if cfg.MinConns != 5 {
		t.Errorf("Expected min conns 5, got %d", cfg.MinConns)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("Expected max retries 3, got %d", cfg.MaxRetries)
	}
}

func TestPostgresConfig_DSN(t *testing.T) {
	cfg := &PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "testuser",
		Password: "testpass",
		Database: "testdb",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"

	if dsn != expected {
		t.Errorf("DSN mismatch:\nExpected: %s\nGot: %s", expected, dsn)
	}
}

func TestNewPostgres_InvalidConfig(t *testing.T) {
	cfg := &PostgresConfig{
		Host:           "invalid-host-that-does-not-exist",
		Port:           9999,
		User:           "invalid",
		Password:       "invalid",
		Database:       "invalid",
		SSLMode:        "disable",
		MaxRetries:     0,
		RetryInterval:  100 * time.Millisecond,
		ConnectTimeout: 1 * time.Second,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := NewPostgres(ctx, cfg)
	if err == nil {
		t.Error("Expected error for invalid config, got nil")
	}
}

func TestTenantPools_EnvKey(t *testing.T) {
	tp := NewTenantPools(nil, DefaultPostgresConfig(), "DATABASE_URI_")

	tests := []struct {
		tenantID string
		expected string
	}{
		{"acme", "DATABASE_URI_ACME"},
		{"acme-tours", "DATABASE_URI_ACME_TOURS"},
		{"city.breaks", "DATABASE_URI_CITY_BREAKS"},
	}

	for _, tt := range tests {
		if got := tp.envKey(tt.tenantID); got != tt.expected {
			t.Errorf("envKey(%q) = %q, want %q", tt.tenantID, got, tt.expected)
		}
	}
}

func TestTenantPools_DefaultPrefix(t *testing.T) {
	tp := NewTenantPools(nil, DefaultPostgresConfig(), "")
	if got := tp.envKey("acme"); got != "DATABASE_URI_ACME" {
		t.Errorf("envKey with empty prefix = %q, want %q", got, "DATABASE_URI_ACME")
	}
}

func TestTenantPools_SharedFallback(t *testing.T) {
	shared := &PostgresDB{}
	tp := NewTenantPools(shared, DefaultPostgresConfig(), "DATABASE_URI_")
	tp.lookup = func(key string) string { return "" }

	ctx := context.Background()

	db, err := tp.ForTenant(ctx, "acme")
	if err != nil {
		t.Fatalf("ForTenant failed: %v", err)
	}
	if db != shared {
		t.Error("Expected shared pool when no dedicated DSN is configured")
	}

	db, err = tp.ForTenant(ctx, "")
	if err != nil {
		t.Fatalf("ForTenant failed: %v", err)
	}
	if db != shared {
		t.Error("Expected shared pool for empty tenant id")
	}
}

// Integration tests - run only when database is available

func TestNewPostgres_Integration(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run")
	}

	cfg := getTestConfig()
	ctx := context.Background()

	db, err := NewPostgres(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer db.Close()

	if err := db.Ping(ctx); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
	if db.Pool() == nil {
		t.Error("Expected Pool() to return non-nil")
	}
}

func TestTenantPools_DedicatedPool_Integration(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run")
	}

	cfg := getTestConfig()
	ctx := context.Background()

	shared, err := NewPostgres(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer shared.Close()

	tp := NewTenantPools(shared, cfg, "DATABASE_URI_")
	tp.lookup = func(key string) string {
		if key == "DATABASE_URI_DEDI" {
			return cfg.DSN()
		}
		return ""
	}
	defer tp.Close()

	db, err := tp.ForTenant(ctx, "dedi")
	if err != nil {
		t.Fatalf("ForTenant failed: %v", err)
	}
	if db == shared {
		t.Error("Expected dedicated pool, got shared")
	}

	// same DSN resolves to the same cached pool
	again, err := tp.ForTenant(ctx, "dedi")
	if err != nil {
		t.Fatalf("ForTenant failed: %v", err)
	}
	if again != db {
		t.Error("Expected cached pool on second resolve")
	}
}
