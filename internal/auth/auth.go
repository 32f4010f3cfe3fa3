// Package auth issues and verifies the JWTs behind the session API.
//
// Tokens are stateless HS256 JWTs carrying the user ID and username. Clients
// send them as an Authorization bearer header; browsers may instead rely on
// the HttpOnly cookie set at login. There is no server-side session state,
// so logout is purely a cookie clear.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"uiforge/internal/common/errors"
	"uiforge/internal/storage"
)

// TokenCookie is the cookie carrying the JWT for browser clients.
const TokenCookie = "uiforge_token"

type contextKey int

const userContextKey contextKey = iota

// Identity is the authenticated caller injected into the request context.
type Identity struct {
	UserID   string
	Username string
}

// Claims is the JWT payload for issued tokens.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Auth validates credentials against storage and mints tokens.
type Auth struct {
	storage  storage.Storage
	secret   []byte
	tokenTTL time.Duration
}

// New creates an Auth instance. The secret must already be validated by
// config (minimum length).
func New(store storage.Storage, secret string, tokenTTL time.Duration) *Auth {
	return &Auth{
		storage:  store,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// Register creates the account and returns a fresh token for it.
func (a *Auth) Register(ctx context.Context, username, email, password string) (string, *storage.User, error) {
	user, err := a.storage.CreateUser(ctx, username, email, password)
	if err != nil {
		return "", nil, err
	}

	token, err := a.IssueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login validates credentials and returns a fresh token.
func (a *Auth) Login(ctx context.Context, username, password string) (string, *storage.User, error) {
	user, err := a.storage.ValidateUser(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	token, err := a.IssueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// IssueToken mints a signed JWT for the user.
func (a *Auth) IssueToken(user *storage.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", errors.InternalError("failed to sign token", err)
	}
	return signed, nil
}

// VerifyToken checks signature and expiry and returns the claims.
func (a *Auth) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.AuthError("invalid or expired token")
	}
	if claims.Subject == "" {
		return nil, errors.AuthError("token missing subject")
	}
	return claims, nil
}

// TokenTTL returns the configured token lifetime, used for cookie expiry.
func (a *Auth) TokenTTL() time.Duration {
	return a.tokenTTL
}

// Middleware authenticates the request and injects the caller identity
// into the context. API paths always answer 401 JSON, never a redirect.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := extractToken(r)
		if tokenString == "" {
			writeUnauthorized(w, "authentication required")
			return
		}

		claims, err := a.VerifyToken(tokenString)
		if err != nil {
			writeUnauthorized(w, "invalid or expired token")
			return
		}

		identity := &Identity{
			UserID:   claims.Subject,
			Username: claims.Username,
		}
		ctx := context.WithValue(r.Context(), userContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromContext returns the authenticated caller, if any.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(userContextKey).(*Identity)
	return identity, ok
}

// ContextWithIdentity injects an identity; used by tests and middleware.
func ContextWithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, userContextKey, identity)
}

// extractToken pulls the JWT from the Authorization header or the cookie.
// The header wins when both are present.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := r.Cookie(TokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"type":    string(errors.ErrTypeAuth),
			"message": msg,
		},
	})
}
