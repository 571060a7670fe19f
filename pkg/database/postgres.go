package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConfig holds PostgreSQL connection pool settings
type PostgresConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
	MaxRetries      int
	RetryInterval   time.Duration
}

// DefaultPostgresConfig returns sensible defaults for local development
func DefaultPostgresConfig() *PostgresConfig {
	return &PostgresConfig{
		Host:            "localhost",
		Port:            5432,
		User:            "postgres",
		Password:        "postgres",
		Database:        "tourbase",
		SSLMode:         "disable",
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: 1 * time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   1 * time.Second,
	}
}

// DSN returns the connection string for this config
func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// PostgresDB wraps a pgx connection pool
type PostgresDB struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a connection pool and verifies connectivity,
// retrying up to MaxRetries times
func NewPostgres(ctx context.Context, cfg *PostgresConfig) (*PostgresDB, error) {
	if cfg == nil {
		cfg = DefaultPostgresConfig()
	}
	return NewPostgresFromDSN(ctx, cfg.DSN(), cfg)
}

// NewPostgresFromDSN creates a connection pool from an explicit DSN, applying
// the pool sizing from cfg. Used by the per-tenant connection resolver where
// the DSN comes from the environment rather than structured config.
func NewPostgresFromDSN(ctx context.Context, dsn string, cfg *PostgresConfig) (*PostgresDB, error) {
	if cfg == nil {
		cfg = DefaultPostgresConfig()
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	var pool *pgxpool.Pool
	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		pool, lastErr = pgxpool.NewWithConfig(ctx, poolCfg)
		if lastErr == nil {
			pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
			lastErr = pool.Ping(pingCtx)
			cancel()
			if lastErr == nil {
				return &PostgresDB{pool: pool}, nil
			}
			pool.Close()
		}
		if attempt < cfg.MaxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(cfg.RetryInterval):
			}
		}
	}
	return nil, fmt.Errorf("failed to connect to postgres after %d retries: %w", cfg.MaxRetries, lastErr)
}

// Pool returns the underlying pgx pool
func (db *PostgresDB) Pool() *pgxpool.Pool {
	return db.pool
}

// Ping verifies the database is reachable
func (db *PostgresDB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Close closes the connection pool
func (db *PostgresDB) Close() {
	db.pool.Close()
}
