package app

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"uiforge/internal/handlers"
	"uiforge/internal/server"
)

// RunServer builds the router and wraps it in the HTTP server.
func (app *App) RunServer() (*server.Server, http.Handler, error) {
	h := handlers.New(
		app.Storage,
		app.Cache,
		app.AIClient,
		app.Auth,
		app.RedisClient,
		app.Config,
	)

	apiLimiter, aiLimiter, err := app.initializeRateLimiters()
	if err != nil {
		return nil, nil, err
	}

	router := mux.NewRouter()
	SetupRoutes(router, h, app.Auth.Middleware, apiLimiter, aiLimiter)

	// The write timeout must outlast an upstream AI call
	writeTimeout := app.Config.AITimeout + 30*time.Second

	srv := server.New(router, app.Config.Port, app.Config.TLSCert, app.Config.TLSKey, writeTimeout)
	return srv, router, nil
}
