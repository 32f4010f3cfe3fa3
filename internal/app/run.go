package app

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"uiforge/internal/common/logging"
	"uiforge/internal/config"
)

// Run is the main entry point for the application
func Run() error {
	// Load environment variables
	_ = godotenv.Load()

	runtime.GOMAXPROCS(runtime.NumCPU())

	// Load and validate configuration before anything touches it
	cfg := config.Load()

	logging.InitGlobalLogger(cfg.LogLevel, cfg.LogFile)
	defer logging.MustSync()

	logging.Info("Starting uiforge",
		logging.Field{Key: "cpus", Value: runtime.NumCPU()},
		logging.Field{Key: "storage", Value: cfg.StorageType},
	)

	if err := cfg.Validate(); err != nil {
		logging.Error("Configuration validation failed", err)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	app, err := New(ctx, cfg)
	cancel()
	if err != nil {
		logging.Error("Failed to initialize application", err)
		return err
	}
	defer app.Cleanup()

	srv, _, err := app.RunServer()
	if err != nil {
		logging.Error("Failed to build server", err)
		return err
	}
	serveErr := srv.Start()
	logging.Info("Server listening", logging.Field{Key: "port", Value: cfg.Port})

	// Wait for interrupt signal or a listen failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		logging.Error("Server failed", err)
		return err
	case sig := <-quit:
		logging.Info("Shutting down", logging.Field{Key: "signal", Value: sig.String()})
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Server forced to shutdown", err)
		return err
	}

	logging.Info("Server exited")
	return nil
}
