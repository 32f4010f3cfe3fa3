// Package app wires the service together: storage backend, Redis mirror,
// auth, AI client, rate limiting, routes and the maintenance job.
package app

import (
	"context"
	"time"

	"uiforge/internal/ai"
	"uiforge/internal/auth"
	"uiforge/internal/cache"
	"uiforge/internal/common/logging"
	"uiforge/internal/config"
	"uiforge/internal/redis"
	"uiforge/internal/storage"

	"github.com/robfig/cron/v3"
)

// App holds all the application dependencies
type App struct {
	Config      *config.Config
	Storage     storage.Storage
	RedisClient *redis.Client
	Cache       *cache.SessionCache
	Auth        *auth.Auth
	AIClient    *ai.Client
	Logger      logging.Logger

	cron *cron.Cron
}

// New creates the application with all dependencies initialized in order.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logging.GetGlobalLogger().WithFields(logging.Field{Key: "component", Value: "app"}),
	}

	if err := app.initializeStorage(ctx); err != nil {
		return nil, err
	}

	if err := app.initializeRedis(); err != nil {
		// Redis only backs the cache mirror and distributed rate
		// limiting; the store stays authoritative without it.
		app.Logger.Warn("Redis initialization failed, continuing without the cache mirror",
			logging.Field{Key: "error", Value: err.Error()})
	}

	app.Cache = cache.NewSessionCache(app.RedisClient, cfg.SessionCacheTTL)
	app.initializeAuth()
	app.initializeAI()

	if err := app.startMaintenance(); err != nil {
		return nil, err
	}

	return app, nil
}

// Cleanup releases all resources
func (app *App) Cleanup() {
	if app.cron != nil {
		app.cron.Stop()
	}

	if app.RedisClient != nil {
		if err := app.RedisClient.Close(); err != nil {
			app.Logger.Warn("Error closing Redis client", logging.Field{Key: "error", Value: err.Error()})
		}
	}

	if app.Storage != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Storage.Close(ctx); err != nil {
			app.Logger.Warn("Error closing storage", logging.Field{Key: "error", Value: err.Error()})
		}
	}
}
