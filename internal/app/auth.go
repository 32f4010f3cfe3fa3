package app

import (
	"uiforge/internal/auth"
)

func (app *App) initializeAuth() {
	app.Auth = auth.New(app.Storage, app.Config.JWTSecret, app.Config.TokenTTL)
	app.Logger.Info("Auth: JWT tokens enabled")
}
