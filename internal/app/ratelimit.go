package app

import (
	"strconv"
	"time"

	"uiforge/internal/common/logging"
	"uiforge/internal/common/ratelimit"
)

// initializeRateLimiters builds the default API limiter and the stricter
// per-user limiter for the AI routes. When Redis is connected the budget
// is shared across instances.
func (app *App) initializeRateLimiters() (api, aiRoutes ratelimit.Limiter, err error) {
	maxRequests, _ := strconv.Atoi(app.Config.RateLimitDefault)
	window, parseErr := time.ParseDuration(app.Config.RateLimitWindow)
	if parseErr != nil {
		window = time.Minute
	}

	var redisBackend ratelimit.RedisInterface
	if app.RedisClient != nil {
		redisBackend = app.RedisClient
	}

	api, err = ratelimit.New(ratelimit.Config{
		Enabled:     app.Config.RateLimitEnabled,
		MaxRequests: maxRequests,
		Window:      window,
		KeyPrefix:   "ratelimit:api:",
	}, redisBackend)
	if err != nil {
		return nil, nil, err
	}

	// AI calls are expensive upstream, so they get their own budget per
	// minute regardless of the general API limit.
	aiRoutes, err = ratelimit.New(ratelimit.Config{
		Enabled:     app.Config.RateLimitEnabled,
		MaxRequests: app.Config.AIRateLimit,
		Window:      time.Minute,
		KeyPrefix:   "ratelimit:ai:",
	}, redisBackend)
	if err != nil {
		return nil, nil, err
	}

	if app.Config.RateLimitEnabled {
		app.Logger.Info("Rate limiting: Enabled",
			logging.Field{Key: "api_limit", Value: maxRequests},
			logging.Field{Key: "api_window", Value: window.String()},
			logging.Field{Key: "ai_limit_per_minute", Value: app.Config.AIRateLimit},
			logging.Field{Key: "backend", Value: api.Stats()["type"]})
	} else {
		app.Logger.Info("Rate limiting: Disabled")
	}
	return api, aiRoutes, nil
}
