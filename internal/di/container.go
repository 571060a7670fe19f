package di

import (
	"context"
	"fmt"

	"github.com/tripova/tourbase/internal/handler"
	"github.com/tripova/tourbase/internal/repository"
	"github.com/tripova/tourbase/internal/search"
	"github.com/tripova/tourbase/internal/service"
	"github.com/tripova/tourbase/pkg/config"
	"github.com/tripova/tourbase/pkg/database"
	"github.com/tripova/tourbase/pkg/middleware"
	"github.com/tripova/tourbase/pkg/redis"
)

// Container wires configuration, infrastructure, repositories, services
// and handlers together. Build it once at startup and Close it on the
// way down.
type Container struct {
	Config *config.Config

	DB     *database.PostgresDB
	Pools  *database.TenantPools
	Redis  *redis.Client // nil when disabled
	Search search.Publisher
	Audit  *middleware.AuditLogger

	Registry service.TenantRegistryService

	Router *handler.RouterDeps
}

// New builds the full dependency graph from config.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	pgCfg := postgresConfig(cfg)
	db, err := database.NewPostgres(ctx, pgCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	c.DB = db
	c.Pools = database.NewTenantPools(db, pgCfg, cfg.Database.TenantURIPrefix)

	if cfg.Redis.Enabled {
		rdb, err := redis.New(ctx, &redis.Config{
			Addr:         cfg.Redis.Addr(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.Redis = rdb
	}

	if cfg.Kafka.Enabled {
		pub, err := search.NewKafkaPublisher(&cfg.Kafka)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
		}
		c.Search = pub
	} else {
		c.Search = search.NewNoopPublisher()
	}

	c.Audit = middleware.NewAuditLogger(middleware.DefaultAuditConfig(db.Pool()))

	// Repositories. Tenant records always live in the shared database,
	// content repositories route through the per-tenant pool set.
	tenantRepo := repository.NewPostgresTenantRepository(db.Pool())
	destRepo := repository.NewPostgresDestinationRepository(c.Pools)
	tourRepo := repository.NewPostgresTourRepository(c.Pools)
	catRepo := repository.NewPostgresCategoryRepository(c.Pools)
	blogRepo := repository.NewPostgresBlogRepository(c.Pools)
	attrRepo := repository.NewPostgresAttractionRepository(c.Pools)
	discountRepo := repository.NewPostgresDiscountRepository(c.Pools)
	reviewRepo := repository.NewPostgresReviewRepository(c.Pools)
	heroRepo := repository.NewPostgresHeroRepository(c.Pools)

	// Services
	var sharedCache *redis.Client
	if cfg.Resolver.UseSharedCache {
		sharedCache = c.Redis
	}
	registry, err := service.NewTenantRegistryService(tenantRepo, sharedCache, cfg.Resolver.CacheMaxBytes, cfg.Resolver.CacheTTL)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to create tenant registry: %w", err)
	}
	c.Registry = registry

	tourSvc := service.NewTourService(tourRepo, registry, c.Search)
	destSvc := service.NewDestinationService(destRepo, registry, c.Search)
	catSvc := service.NewCategoryService(catRepo, registry)
	blogSvc := service.NewBlogService(blogRepo, registry, c.Search)
	attrSvc := service.NewAttractionService(attrRepo, registry, c.Search)
	discountSvc := service.NewDiscountService(discountRepo)
	reviewSvc := service.NewReviewService(reviewRepo, tourRepo)
	heroSvc := service.NewHeroService(heroRepo, registry)

	c.Router = &handler.RouterDeps{
		Health:       handler.NewHealthHandler(db, c.Redis, cfg.App.Version),
		Tenants:      handler.NewTenantHandler(registry),
		Tours:        handler.NewTourHandler(tourSvc),
		Destinations: handler.NewDestinationHandler(destSvc),
		Categories:   handler.NewCategoryHandler(catSvc),
		Blogs:        handler.NewBlogHandler(blogSvc),
		Attractions:  handler.NewAttractionHandler(attrSvc),
		Discounts:    handler.NewDiscountHandler(discountSvc),
		Reviews:      handler.NewReviewHandler(reviewSvc),
		Heroes:       handler.NewHeroHandler(heroSvc),
		Resolver:     registry,
		JWTSecret:    cfg.JWT.Secret,
		Audit:        c.Audit,
	}

	return c, nil
}

// Close releases all infrastructure in reverse dependency order.
func (c *Container) Close() {
	if c.Audit != nil {
		_ = c.Audit.Close()
	}
	if c.Search != nil {
		c.Search.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.Pools != nil {
		c.Pools.Close()
	}
	if c.DB != nil {
		c.DB.Close()
	}
}

func postgresConfig(cfg *config.Config) *database.PostgresConfig {
	pg := database.DefaultPostgresConfig()
	pg.Host = cfg.Database.Host
	pg.Port = cfg.Database.Port
	pg.User = cfg.Database.User
	pg.Password = cfg.Database.Password
	pg.Database = cfg.Database.DBName
	pg.SSLMode = cfg.Database.SSLMode
	pg.MaxConns = cfg.Database.MaxConns
	pg.MinConns = cfg.Database.MinConns
	pg.MaxConnLifetime = cfg.Database.ConnMaxLifetime
	pg.MaxConnIdleTime = cfg.Database.ConnMaxIdleTime
	pg.ConnectTimeout = cfg.Database.ConnectTimeout
	return pg
}
