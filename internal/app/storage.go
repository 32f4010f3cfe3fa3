package app

import (
	"context"
	"fmt"

	"uiforge/internal/common/logging"
	"uiforge/internal/storage/mongo"
	"uiforge/internal/storage/sqlite"
)

// initializeStorage opens the configured document store backend.
func (app *App) initializeStorage(ctx context.Context) error {
	switch app.Config.StorageType {
	case "mongo", "mongodb":
		adapter, err := mongo.NewAdapter(ctx, &mongo.Config{
			URI:      app.Config.MongoURI,
			Database: app.Config.MongoDatabase,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		app.Storage = adapter
		app.Logger.Info("Storage: MongoDB", logging.Field{Key: "database", Value: app.Config.MongoDatabase})

	case "sqlite":
		adapter, err := sqlite.NewAdapter(&sqlite.Config{Path: app.Config.SQLitePath})
		if err != nil {
			return fmt.Errorf("failed to open SQLite database: %w", err)
		}
		app.Storage = adapter
		app.Logger.Info("Storage: SQLite", logging.Field{Key: "path", Value: app.Config.SQLitePath})

	default:
		return fmt.Errorf("unsupported storage type: %s", app.Config.StorageType)
	}
	return nil
}
