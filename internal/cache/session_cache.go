// Package cache provides the read-through/write-through session mirror.
//
// Session documents are cached under session:{id} with a fixed TTL: a local
// go-cache tier absorbs hot reads and Redis carries the shared tier. The
// document store stays authoritative - cache failures are logged and never
// surfaced to callers, and there is no eviction policy beyond the TTL.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"uiforge/internal/common/logging"
	"uiforge/internal/redis"
	"uiforge/internal/storage"
)

// localTTLCap keeps the in-process tier short-lived so Redis remains the
// shared source for cached documents across instances.
const localTTLCap = 5 * time.Minute

// SessionCache mirrors session documents from the store. The Redis client
// may be nil, which degrades to the local tier only.
type SessionCache struct {
	local  *gocache.Cache
	redis  *redis.Client
	ttl    time.Duration
	logger logging.Logger
}

// NewSessionCache creates a session cache with the given document TTL.
func NewSessionCache(redisClient *redis.Client, ttl time.Duration) *SessionCache {
	localTTL := ttl
	if localTTL > localTTLCap {
		localTTL = localTTLCap
	}
	return &SessionCache{
		local:  gocache.New(localTTL, 2*localTTL),
		redis:  redisClient,
		ttl:    ttl,
		logger: logging.GetGlobalLogger().WithFields(logging.Field{Key: "component", Value: "session_cache"}),
	}
}

func key(id string) string {
	return "session:" + id
}

// Get returns the cached session if present and owned by userID. An entry
// owned by a different user is reported as a miss so the cache can never
// leak a document across accounts.
func (c *SessionCache) Get(ctx context.Context, id, userID string) (*storage.Session, bool) {
	if cached, found := c.local.Get(key(id)); found {
		if session, ok := cached.(*storage.Session); ok && session.UserID == userID {
			return session, true
		}
		return nil, false
	}

	if c.redis == nil {
		return nil, false
	}

	var session storage.Session
	if err := c.redis.GetJSON(ctx, key(id), &session); err != nil {
		if !redis.IsMiss(err) {
			c.logger.Warn("Redis read failed", logging.Field{Key: "session_id", Value: id}, logging.Err(err))
		}
		return nil, false
	}

	if session.UserID != userID {
		return nil, false
	}

	// Back-fill the local tier
	c.local.Set(key(id), &session, gocache.DefaultExpiration)
	return &session, true
}

// Put stores the session in both tiers. Failures are logged only.
func (c *SessionCache) Put(ctx context.Context, session *storage.Session) {
	if session == nil || session.ID == "" {
		return
	}

	c.local.Set(key(session.ID), session, gocache.DefaultExpiration)

	if c.redis == nil {
		return
	}
	if err := c.redis.Set(ctx, key(session.ID), session, c.ttl); err != nil {
		c.logger.Warn("Redis write failed", logging.Field{Key: "session_id", Value: session.ID}, logging.Err(err))
	}
}

// Invalidate removes the session from both tiers.
func (c *SessionCache) Invalidate(ctx context.Context, id string) {
	c.local.Delete(key(id))

	if c.redis == nil {
		return
	}
	if err := c.redis.Delete(ctx, key(id)); err != nil {
		c.logger.Warn("Redis delete failed", logging.Field{Key: "session_id", Value: id}, logging.Err(err))
	}
}
