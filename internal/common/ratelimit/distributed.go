package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// RedisInterface is the slice of the Redis client the distributed backend
// needs.
type RedisInterface interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error)
	Health() error
}

// distributedLimiter enforces the limit through a Redis sliding-window
// counter so all instances share one budget. A Redis failure admits the
// request rather than turning an outage into a full API outage.
type distributedLimiter struct {
	config Config
	redis  RedisInterface
}

// NewDistributedLimiter creates the Redis-backed backend.
func NewDistributedLimiter(config Config, redisClient RedisInterface) (Limiter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if redisClient == nil {
		return nil, fmt.Errorf("redis client is required for distributed rate limiting")
	}
	return &distributedLimiter{config: config, redis: redisClient}, nil
}

func (rl *distributedLimiter) Allow(key string) bool {
	if !rl.config.Enabled {
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	allowed, _, err := rl.redis.CheckRateLimit(ctx, rl.config.KeyPrefix+key, rl.config.MaxRequests, rl.config.Window)
	if err != nil {
		return true
	}
	return allowed
}

func (rl *distributedLimiter) Health() error {
	return rl.redis.Health()
}

func (rl *distributedLimiter) Stats() map[string]interface{} {
	return map[string]interface{}{
		"type":         "distributed",
		"enabled":      rl.config.Enabled,
		"max_requests": rl.config.MaxRequests,
		"window":       rl.config.Window.String(),
		"key_prefix":   rl.config.KeyPrefix,
	}
}

var _ Limiter = (*distributedLimiter)(nil)
