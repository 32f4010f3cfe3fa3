package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// localLimiter keeps one token bucket per key. The bucket refills at
// MaxRequests/Window and allows a full window's worth as burst, which
// approximates the sliding window the distributed backend enforces.
type localLimiter struct {
	mu          sync.Mutex
	config      Config
	perSecond   rate.Limit
	burst       int
	limiters    map[string]*limiterEntry
	lastCleanup time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastUsed time.Time
}

// NewLocalLimiter creates the in-memory backend.
func NewLocalLimiter(config Config) (Limiter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &localLimiter{
		config:      config,
		perSecond:   rate.Limit(float64(config.MaxRequests) / config.Window.Seconds()),
		burst:       config.MaxRequests,
		limiters:    make(map[string]*limiterEntry),
		lastCleanup: time.Now(),
	}, nil
}

func (rl *localLimiter) Allow(key string) bool {
	if !rl.config.Enabled {
		return true
	}
	return rl.limiterFor(key).Allow()
}

func (rl *localLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if time.Since(rl.lastCleanup) > rl.config.CleanupPeriod {
		rl.cleanup()
	}

	entry, exists := rl.limiters[key]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.perSecond, rl.burst)}
		rl.limiters[key] = entry
		if len(rl.limiters) > rl.config.MaxKeys {
			rl.cleanup()
		}
	}
	entry.lastUsed = time.Now()
	return entry.limiter
}

// cleanup drops buckets idle longer than the cleanup period. Callers hold
// the mutex.
func (rl *localLimiter) cleanup() {
	cutoff := time.Now().Add(-rl.config.CleanupPeriod)
	for key, entry := range rl.limiters {
		if entry.lastUsed.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
	rl.lastCleanup = time.Now()
}

func (rl *localLimiter) Health() error {
	return nil
}

func (rl *localLimiter) Stats() map[string]interface{} {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return map[string]interface{}{
		"type":         "local",
		"enabled":      rl.config.Enabled,
		"max_requests": rl.config.MaxRequests,
		"window":       rl.config.Window.String(),
		"active_keys":  len(rl.limiters),
	}
}

var _ Limiter = (*localLimiter)(nil)
