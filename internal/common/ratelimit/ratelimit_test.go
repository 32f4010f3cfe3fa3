package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uiforge/internal/auth"
	"uiforge/internal/redis"
)

func localTestLimiter(t *testing.T, max int, window time.Duration) Limiter {
	t.Helper()
	limiter, err := NewLocalLimiter(Config{Enabled: true, MaxRequests: max, Window: window})
	require.NoError(t, err)
	return limiter
}

func TestConfigValidate(t *testing.T) {
	t.Run("disabled skips validation", func(t *testing.T) {
		c := Config{Enabled: false}
		assert.NoError(t, c.Validate())
	})

	t.Run("rejects zero max requests", func(t *testing.T) {
		c := Config{Enabled: true, Window: time.Minute}
		assert.Error(t, c.Validate())
	})

	t.Run("rejects zero window", func(t *testing.T) {
		c := Config{Enabled: true, MaxRequests: 10}
		assert.Error(t, c.Validate())
	})

	t.Run("fills defaults", func(t *testing.T) {
		c := Config{Enabled: true, MaxRequests: 10, Window: time.Minute}
		require.NoError(t, c.Validate())
		assert.Equal(t, "ratelimit:", c.KeyPrefix)
		assert.Equal(t, 10000, c.MaxKeys)
		assert.Equal(t, 5*time.Minute, c.CleanupPeriod)
	})
}

func TestLocalLimiterAllows(t *testing.T) {
	limiter := localTestLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("u1"), "request %d should pass", i+1)
	}
	assert.False(t, limiter.Allow("u1"))
}

func TestLocalLimiterKeysAreIndependent(t *testing.T) {
	limiter := localTestLimiter(t, 1, time.Minute)

	assert.True(t, limiter.Allow("u1"))
	assert.False(t, limiter.Allow("u1"))
	assert.True(t, limiter.Allow("u2"))
}

func TestLocalLimiterDisabled(t *testing.T) {
	limiter, err := NewLocalLimiter(Config{Enabled: false})
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		assert.True(t, limiter.Allow("u1"))
	}
}

func TestDistributedLimiter(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := redis.NewClient(&redis.Config{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	limiter, err := NewDistributedLimiter(Config{Enabled: true, MaxRequests: 2, Window: time.Minute}, client)
	require.NoError(t, err)

	assert.True(t, limiter.Allow("u1"))
	assert.True(t, limiter.Allow("u1"))
	assert.False(t, limiter.Allow("u1"))
	assert.True(t, limiter.Allow("u2"))
	assert.NoError(t, limiter.Health())
}

func TestDistributedLimiterRequiresRedis(t *testing.T) {
	_, err := NewDistributedLimiter(Config{Enabled: true, MaxRequests: 1, Window: time.Minute}, nil)
	assert.Error(t, err)
}

func TestNewPicksBackend(t *testing.T) {
	local, err := New(Config{Enabled: true, MaxRequests: 1, Window: time.Minute}, nil)
	require.NoError(t, err)
	assert.Equal(t, "local", local.Stats()["type"])
}

func TestMiddleware(t *testing.T) {
	limiter := localTestLimiter(t, 1, time.Minute)
	handler := Middleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	req.RemoteAddr = "10.0.0.1:4242"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "rate_limit")
}

func TestMiddlewareKeysByUser(t *testing.T) {
	limiter := localTestLimiter(t, 1, time.Minute)
	handler := Middleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	request := func(userID string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
		req.RemoteAddr = "10.0.0.1:4242"
		req = req.WithContext(auth.ContextWithIdentity(req.Context(), &auth.Identity{UserID: userID}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, request("u1"))
	assert.Equal(t, http.StatusTooManyRequests, request("u1"))
	// A different account behind the same IP still gets through
	assert.Equal(t, http.StatusOK, request("u2"))
}

func TestCallerKey(t *testing.T) {
	t.Run("x-forwarded-for first hop", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		assert.Equal(t, "ip:203.0.113.9", CallerKey(req))
	})

	t.Run("remote addr fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.4:9999"
		assert.Equal(t, "ip:192.0.2.4", CallerKey(req))
	})

	t.Run("authenticated user wins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(auth.ContextWithIdentity(req.Context(), &auth.Identity{UserID: "u7"}))
		assert.Equal(t, "user:u7", CallerKey(req))
	})
}
