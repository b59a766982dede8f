// Package app builds the dependency container shared by the server and routes.
package app

import (
	"context"
	"fmt"

	"internhub-api/config"
	"internhub-api/internal/api/middleware"
	"internhub-api/internal/auth"
	"internhub-api/internal/database"
	"internhub-api/internal/logger"
	"internhub-api/internal/notify"
	"internhub-api/internal/services"
	"internhub-api/internal/storage"
	"internhub-api/internal/storage/memory"
	"internhub-api/internal/storage/postgres"
	"internhub-api/internal/storage/rediscache"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Application holds core application dependencies.
type Application struct {
	Config      *config.Config
	Log         logger.Logger
	Store       *storage.Store
	DBPool      *pgxpool.Pool
	RedisClient *redis.Client
	Validator   *validator.Validate
	Resolver    auth.IdentityResolver
	Limiter     middleware.Limiter
	Notifier    notify.Publisher

	// MemoryCandidates is set for the memory driver so local runs and tests
	// can load candidate profiles.
	MemoryCandidates *memory.CandidateRepo

	Partners     services.PartnerService
	Jobs         services.JobService
	Applications services.ApplicationService
	Discovery    services.DiscoveryService
}

// New connects the configured backends and builds the services on top of them.
func New(ctx context.Context, cfg *config.Config, log logger.Logger, validate *validator.Validate) (*Application, error) {
	a := &Application{
		Config:    cfg,
		Log:       log,
		Validator: validate,
	}

	if err := a.openStore(ctx); err != nil {
		a.Close()
		return nil, err
	}

	a.Resolver = auth.NewRoleRecordResolver(auth.NewJWTResolver(cfg.JWT.Secret, cfg.JWT.Issuer), a.Store.Roles, log)

	if cfg.Redis.Addr != "" {
		client, err := database.NewRedisClient(ctx, cfg.Redis, log)
		if err != nil {
			// Redis only backs the cache and the limiter; run without both.
			log.Warn("Redis unavailable, continuing without cache", map[string]interface{}{"error": err.Error()})
		} else {
			a.RedisClient = client
			a.Store.Candidates = rediscache.NewCandidateCache(a.Store.Candidates, client, cfg.Discovery.CacheTTL, log)
		}
	}

	if limiter := middleware.NewRedisLimiter(a.RedisClient); limiter != nil {
		a.Limiter = limiter
	} else {
		a.Limiter = middleware.NewRateLimiter()
	}

	if cfg.Notifications.Enabled {
		publisher, err := notify.NewSNSPublisher(ctx, cfg.Notifications.Region, cfg.Notifications.TopicARN)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("creating SNS publisher: %w", err)
		}
		a.Notifier = publisher
	} else {
		a.Notifier = notify.NewLogPublisher(log)
	}

	stats := services.NewStatsAggregator(a.Store.Partners, a.Store.Jobs, log)
	a.Partners = services.NewPartnerService(a.Store, a.Notifier, log)
	a.Jobs = services.NewJobService(a.Store, a.Partners, stats, log)
	a.Applications = services.NewApplicationService(a.Store, a.Partners, stats, a.Notifier, log)
	a.Discovery = services.NewDiscoveryService(a.Store, a.Partners, cfg.Discovery.MaxPageSize, log)

	return a, nil
}

func (a *Application) openStore(ctx context.Context) error {
	switch a.Config.Storage.Driver {
	case "memory":
		a.Store, a.MemoryCandidates = memory.NewStore()
		a.Log.Info("Using in-memory storage", nil)
		return nil
	case "postgres":
		pool, err := database.NewConnectionPool(ctx, a.Config.DB, a.Log)
		if err != nil {
			return err
		}
		a.DBPool = pool
		if a.Config.DB.AutoMigrate {
			if err := database.EnsureSchema(ctx, pool); err != nil {
				return err
			}
		}
		a.Store = postgres.NewStore(pool)
		return nil
	default:
		return fmt.Errorf("unknown storage driver %q", a.Config.Storage.Driver)
	}
}

// Close releases the database pool and redis client.
func (a *Application) Close() {
	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Log.Warn("Closing redis client failed", map[string]interface{}{"error": err.Error()})
		}
	}
	if a.DBPool != nil {
		a.DBPool.Close()
	}
}
