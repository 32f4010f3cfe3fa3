// Package ratelimit provides request rate limiting with two backends: an
// in-memory token bucket built on golang.org/x/time/rate and a Redis
// sliding-window counter shared across instances. Limits are expressed as
// requests per window and applied per key, usually the authenticated user
// ID with the client IP as fallback.
package ratelimit

import (
	"fmt"
	"time"
)

// Limiter answers whether one more request under key fits the limit.
type Limiter interface {
	Allow(key string) bool
	Health() error
	Stats() map[string]interface{}
}

// Config describes a per-key limit of MaxRequests per Window.
type Config struct {
	Enabled     bool
	MaxRequests int
	Window      time.Duration

	// KeyPrefix namespaces Redis keys for the distributed backend.
	KeyPrefix string

	// MaxKeys and CleanupPeriod bound the local backend's key map.
	MaxKeys       int
	CleanupPeriod time.Duration
}

// Validate fills defaults and rejects unusable settings.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.MaxRequests < 1 {
		return fmt.Errorf("rate limit max requests must be positive")
	}
	if c.Window <= 0 {
		return fmt.Errorf("rate limit window must be positive")
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "ratelimit:"
	}
	if c.MaxKeys <= 0 {
		c.MaxKeys = 10000
	}
	if c.CleanupPeriod <= 0 {
		c.CleanupPeriod = 5 * time.Minute
	}
	return nil
}

// New builds a limiter for the config: Redis-backed when a client is
// given, in-memory otherwise.
func New(config Config, redisClient RedisInterface) (Limiter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if redisClient != nil {
		return NewDistributedLimiter(config, redisClient)
	}
	return NewLocalLimiter(config)
}
