// Package handlers implements the HTTP API: account registration and
// login, session CRUD, the AI proxy routes and the sandboxed preview.
// Every failure is shaped as a JSON error envelope with the status taken
// from the error type.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"uiforge/internal/ai"
	"uiforge/internal/auth"
	"uiforge/internal/cache"
	"uiforge/internal/common/errors"
	"uiforge/internal/common/logging"
	"uiforge/internal/config"
	"uiforge/internal/redis"
	"uiforge/internal/storage"
)

// maxBodyBytes caps request bodies; editor state and transcripts are small.
const maxBodyBytes = 1 << 20

type Handlers struct {
	storage storage.Storage
	cache   *cache.SessionCache
	ai      *ai.Client
	auth    *auth.Auth
	redis   *redis.Client
	config  *config.Config
	logger  logging.Logger
}

func New(store storage.Storage, sessionCache *cache.SessionCache, aiClient *ai.Client, authService *auth.Auth, redisClient *redis.Client, cfg *config.Config) *Handlers {
	return &Handlers{
		storage: store,
		cache:   sessionCache,
		ai:      aiClient,
		auth:    authService,
		redis:   redisClient,
		config:  cfg,
		logger:  logging.GetGlobalLogger().WithFields(logging.Field{Key: "component", Value: "handlers"}),
	}
}

// respondJSON writes v as the response body with the given status.
func (h *Handlers) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			h.logger.Error("failed to encode response", err)
		}
	}
}

// respondError shapes err as {"error": {...}}. Non-AppError values become
// opaque internal errors so storage details never reach clients.
func (h *Handlers) respondError(w http.ResponseWriter, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		h.logger.Error("unexpected handler error", err)
		appErr = errors.InternalError("internal server error", nil)
	}
	h.respondJSON(w, appErr.HTTPStatus(), map[string]interface{}{"error": appErr})
}

// decodeJSON reads the request body into dest with a size cap.
func decodeJSON(r *http.Request, dest interface{}) error {
	body := io.LimitReader(r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dest); err != nil {
		return errors.ValidationError("invalid JSON request body")
	}
	return nil
}

// identity returns the authenticated caller; the auth middleware guarantees
// it on protected routes.
func identity(r *http.Request) (*auth.Identity, error) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		return nil, errors.AuthError("authentication required")
	}
	return id, nil
}
