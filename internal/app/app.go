// Package app assembles the catalog's dependencies from configuration. The
// HTTP server and planetctl share it so both talk to the same store.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"planets-catalog/internal/auth"
	"planets-catalog/internal/planet"
	serverHandlers "planets-catalog/internal/server/handlers"
	"planets-catalog/internal/shared/config"
	"planets-catalog/internal/shared/database"
	apperrors "planets-catalog/internal/shared/errors"
	"planets-catalog/internal/shared/redis"

	goredis "github.com/redis/go-redis/v9"
)

type App struct {
	Config  *config.Config
	DB      *database.DB
	Redis   *redis.Client
	Service *planet.Service
	// Tokens is nil when AUTH_ENABLED=false.
	Tokens *auth.TokenManager

	// redisErr is the startup failure of an enabled Redis.
	redisErr error
	logger   *slog.Logger
}

// New connects the configured backends. Redis failures only disable the
// cache; database failures are fatal.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := slog.With("component", "app")
	a := &App{Config: cfg, logger: logger}

	var store planet.Store
	switch cfg.Database.Backend {
	case config.BackendMemory:
		logger.Warn("Using in-memory storage, data is lost on exit")
		store = planet.NewMemoryStore()
	default:
		db, err := database.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.DB = db
		store = planet.NewRepository(db, logger)
	}

	rdb, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, continuing without planet cache", "error", err)
		a.redisErr = apperrors.WrapExternal("redis unavailable since startup", err)
	}
	a.Redis = rdb

	// A nil *redis.Client must not reach NewCache as a non-nil interface.
	var cacheClient goredis.Cmdable
	if rdb != nil {
		cacheClient = rdb.Client
	}
	cache := planet.NewCache(cacheClient, cfg.Cache.KeyPrefix, cfg.Cache.PlanetTTL, logger)

	a.Service = planet.NewService(store, cache, logger)

	if cfg.Auth.Enabled {
		tokens, err := auth.NewTokenManager(cfg.Auth)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.Tokens = tokens
	} else {
		logger.Warn("Authentication disabled, catalog writes are open")
	}

	return a, nil
}

// Migrate applies pending migrations and reports how many ran. It is a no-op
// for in-memory storage.
func (a *App) Migrate(ctx context.Context) (int, error) {
	if a.DB == nil {
		a.logger.Info("No database configured, skipping migrations")
		return 0, nil
	}
	return a.DB.RunMigrations(ctx, a.Config.Database.MigrationsPath)
}

// Dependencies lists what the health check reports on. An enabled Redis
// that failed to connect keeps reporting its startup error.
func (a *App) Dependencies() []serverHandlers.Dependency {
	deps := []serverHandlers.Dependency{{Name: "database"}, {Name: "redis"}}
	if a.DB != nil {
		deps[0].Ping = a.DB.PingContext
	}
	switch {
	case a.Redis != nil:
		deps[1].Ping = a.Redis.Ping
	case a.redisErr != nil:
		startupErr := a.redisErr
		deps[1].Ping = func(context.Context) error { return startupErr }
	}
	return deps
}

func (a *App) Close() error {
	var errs []error
	if err := a.Redis.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close redis: %w", err))
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
