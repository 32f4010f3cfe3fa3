package app

import (
	"uiforge/internal/ai"
	"uiforge/internal/common/logging"
)

func (app *App) initializeAI() {
	app.AIClient = ai.NewClient(&ai.Config{
		APIURL:    app.Config.AIAPIURL,
		APIKey:    app.Config.AIAPIKey,
		Model:     app.Config.AIModel,
		Timeout:   app.Config.AITimeout,
		MaxTokens: app.Config.AIMaxTokens,
	})
	app.Logger.Info("AI upstream: Configured",
		logging.Field{Key: "model", Value: app.Config.AIModel},
		logging.Field{Key: "timeout", Value: app.Config.AITimeout.String()})
}
