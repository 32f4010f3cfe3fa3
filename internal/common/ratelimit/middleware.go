package ratelimit

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"

	"uiforge/internal/auth"
	"uiforge/internal/common/errors"
)

// Middleware limits requests per caller. Authenticated requests are keyed
// by user ID so one account cannot starve another behind a shared NAT;
// anonymous requests fall back to the client IP.
func Middleware(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(CallerKey(r)) {
				if max, ok := limiter.Stats()["max_requests"].(int); ok {
					w.Header().Set("X-RateLimit-Limit", strconv.Itoa(max))
					w.Header().Set("X-RateLimit-Remaining", "0")
				}
				w.Header().Set("Retry-After", "1")
				writeLimited(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CallerKey identifies the caller: user ID when authenticated, IP
// otherwise.
func CallerKey(r *http.Request) string {
	if identity, ok := auth.IdentityFromContext(r.Context()); ok {
		return "user:" + identity.UserID
	}
	return "ip:" + ClientIP(r)
}

// ClientIP extracts the client address, honoring proxy headers.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// First hop is the original client
		for i := 0; i < len(forwarded); i++ {
			if forwarded[i] == ',' {
				return forwarded[:i]
			}
		}
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func writeLimited(w http.ResponseWriter) {
	appErr := errors.RateLimitError("api")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.HTTPStatus())
	json.NewEncoder(w).Encode(map[string]interface{}{"error": appErr})
}
