package app

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	"uiforge/internal/common/ratelimit"
	"uiforge/internal/handlers"
	"uiforge/internal/middleware"
)

// SetupRoutes configures all HTTP routes for the application
func SetupRoutes(router *mux.Router, h *handlers.Handlers, authMiddleware func(http.Handler) http.Handler, apiLimiter, aiLimiter ratelimit.Limiter) {
	// Every route gets request logging
	router.Use(middleware.Logging)

	// Auth routes (no auth required to register and log in)
	router.HandleFunc("/api/auth/register", h.Register).Methods("POST")
	router.HandleFunc("/api/auth/login", h.Login).Methods("POST")
	router.HandleFunc("/api/auth/logout", h.Logout).Methods("POST")

	// Health check (no auth required)
	router.HandleFunc("/health", h.Health).Methods("GET")

	// Swagger UI (no auth required)
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Protected routes require authentication and rate limiting
	protected := router.NewRoute().Subrouter()
	protected.Use(authMiddleware)
	if apiLimiter != nil {
		protected.Use(ratelimit.Middleware(apiLimiter))
	}

	api := protected.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/me", h.Me).Methods("GET")

	// Session endpoints
	api.HandleFunc("/sessions", h.ListSessions).Methods("GET")
	api.HandleFunc("/sessions", h.CreateSession).Methods("POST")
	api.HandleFunc("/sessions/{id}", h.GetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", h.UpdateSession).Methods("PUT")
	api.HandleFunc("/sessions/{id}", h.DeleteSession).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/messages", h.AppendMessage).Methods("POST")
	api.HandleFunc("/sessions/{id}/preview", h.Preview).Methods("GET")

	// AI proxy endpoints carry their own stricter per-user budget
	aiAPI := api.PathPrefix("/ai").Subrouter()
	if aiLimiter != nil {
		aiAPI.Use(ratelimit.Middleware(aiLimiter))
	}
	aiAPI.HandleFunc("/generate", h.Generate).Methods("POST")
	aiAPI.HandleFunc("/refine", h.Refine).Methods("POST")
	aiAPI.HandleFunc("/title", h.Title).Methods("POST")
}
