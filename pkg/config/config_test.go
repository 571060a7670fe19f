package config

import (
	"os"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"APP_NAME", "APP_ENVIRONMENT", "APP_DEBUG", "APP_VERSION",
		"SERVER_HOST", "SERVER_PORT",
		"DATABASE_HOST", "DATABASE_PORT", "DATABASE_USER", "DATABASE_PASSWORD",
		"DATABASE_DBNAME", "DATABASE_MAX_CONNS", "DATABASE_MIN_CONNS",
		"DATABASE_TENANT_URI_PREFIX",
		"REDIS_ENABLED", "REDIS_HOST", "REDIS_PORT",
		"KAFKA_ENABLED", "KAFKA_BROKERS", "KAFKA_TOPIC",
		"JWT_SECRET",
		"RESOLVER_CACHE_TTL", "RESOLVER_CACHE_MAX_BYTES", "RESOLVER_USE_SHARED_CACHE",
		"OTEL_ENABLED",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.App.Name != "tourbase" {
		t.Errorf("App.Name = %q, want %q", cfg.App.Name, "tourbase")
	}
	if cfg.App.Environment != "development" {
		t.Errorf("App.Environment = %q, want %q", cfg.App.Environment, "development")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want %d", cfg.Database.Port, 5432)
	}
	if cfg.Database.TenantURIPrefix != "DATABASE_URI_" {
		t.Errorf("Database.TenantURIPrefix = %q, want %q", cfg.Database.TenantURIPrefix, "DATABASE_URI_")
	}
	if cfg.Redis.Enabled {
		t.Error("Redis.Enabled = true, want false by default")
	}
	if cfg.Kafka.Enabled {
		t.Error("Kafka.Enabled = true, want false by default")
	}
	if cfg.Kafka.Topic != "catalog.search-sync" {
		t.Errorf("Kafka.Topic = %q, want %q", cfg.Kafka.Topic, "catalog.search-sync")
	}
	if cfg.Resolver.CacheTTL != 60*time.Second {
		t.Errorf("Resolver.CacheTTL = %v, want %v", cfg.Resolver.CacheTTL, 60*time.Second)
	}
	if cfg.Resolver.CacheMaxBytes != 1<<20 {
		t.Errorf("Resolver.CacheMaxBytes = %d, want %d", cfg.Resolver.CacheMaxBytes, 1<<20)
	}
}

func TestLoad_MalformedEnvFile(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	if err := os.WriteFile(".env", []byte("this is not an env line\n"), 0o600); err != nil {
		t.Fatalf("writing .env: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("Load() = nil error, want a failure for a malformed .env")
	}
}

func TestLoad_MissingEnvFileIsFine(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	if _, err := Load(); err != nil {
		t.Fatalf("Load() failed without a .env file: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("RESOLVER_CACHE_TTL", "5m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "db.internal")
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "kafka-2:9092" {
		t.Errorf("Kafka.Brokers = %v, want two brokers", cfg.Kafka.Brokers)
	}
	if cfg.Resolver.CacheTTL != 5*time.Minute {
		t.Errorf("Resolver.CacheTTL = %v, want %v", cfg.Resolver.CacheTTL, 5*time.Minute)
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		DBName:   "tourbase",
		SSLMode:  "disable",
	}

	want := "host=localhost port=5432 user=postgres password=secret dbname=tourbase sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	if got := r.Addr(); got != "cache.internal:6380" {
		t.Errorf("Addr() = %q, want %q", got, "cache.internal:6380")
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	base := func() *Config {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() failed: %v", err)
		}
		return cfg
	}

	t.Run("valid defaults", func(t *testing.T) {
		if err := base().Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("invalid port", func(t *testing.T) {
		cfg := base()
		cfg.Server.Port = 0
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() = nil, want error for port 0")
		}
	})

	t.Run("missing database host", func(t *testing.T) {
		cfg := base()
		cfg.Database.Host = ""
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() = nil, want error for empty host")
		}
	})

	t.Run("max conns below min conns", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxConns = 1
		cfg.Database.MinConns = 5
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() = nil, want error for max < min")
		}
	})

	t.Run("negative cache TTL", func(t *testing.T) {
		cfg := base()
		cfg.Resolver.CacheTTL = -time.Second
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() = nil, want error for negative TTL")
		}
	})

	t.Run("default JWT secret in production", func(t *testing.T) {
		cfg := base()
		cfg.App.Environment = "production"
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() = nil, want error for default secret in production")
		}
	})
}

func TestIsProduction(t *testing.T) {
	cfg := &Config{}
	cfg.App.Environment = "production"
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}
	cfg.App.Environment = "development"
	if cfg.IsProduction() {
		t.Error("IsProduction() = true, want false")
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}
}
