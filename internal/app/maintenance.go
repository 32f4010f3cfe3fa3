package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"uiforge/internal/common/logging"
)

// startMaintenance schedules the recurring maintenance job: purging
// sessions that have sat in the trash past the retention period and
// logging component health.
func (app *App) startMaintenance() error {
	app.cron = cron.New()

	_, err := app.cron.AddFunc(app.Config.MaintenanceSchedule, app.runMaintenance)
	if err != nil {
		return fmt.Errorf("invalid maintenance schedule %q: %w", app.Config.MaintenanceSchedule, err)
	}

	app.cron.Start()
	app.Logger.Info("Maintenance: Scheduled",
		logging.Field{Key: "schedule", Value: app.Config.MaintenanceSchedule},
		logging.Field{Key: "trash_retention_days", Value: app.Config.TrashRetentionDays})
	return nil
}

func (app *App) runMaintenance() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -app.Config.TrashRetentionDays)
	purged, err := app.Storage.PurgeDeletedSessions(ctx, cutoff)
	if err != nil {
		app.Logger.Error("Maintenance: failed to purge deleted sessions", err)
	} else if purged > 0 {
		app.Logger.Info("Maintenance: purged deleted sessions", logging.Field{Key: "count", Value: purged})
	}

	if err := app.Storage.Health(ctx); err != nil {
		app.Logger.Warn("Maintenance: storage health check failed", logging.Field{Key: "error", Value: err.Error()})
	}
	if app.RedisClient != nil {
		if err := app.RedisClient.Health(); err != nil {
			app.Logger.Warn("Maintenance: redis health check failed", logging.Field{Key: "error", Value: err.Error()})
		}
	}
}
