package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timmy/movierec/internal/api"
	"github.com/timmy/movierec/internal/app"
	"github.com/timmy/movierec/internal/catalog"
	"github.com/timmy/movierec/internal/config"
	"github.com/timmy/movierec/internal/logger"
)

func main() {
	// Initialize logger first (LOG_LEVEL, LOG_FORMAT, APP_ENV, LOG_FILE)
	appLogger := logger.NewDefault()
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	// Build catalog, TF-IDF vectors and similarity matrix once
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.New(ctx, cfg, appLogger)
	if err != nil {
		var loadErr *catalog.LoadError
		if errors.As(err, &loadErr) {
			appLogger.WithError(err).WithField("source", loadErr.Source).Fatal("Failed to load movie catalog")
		}
		appLogger.WithError(err).Fatal("Failed to initialize recommender")
	}
	defer application.Close()

	// Setup router
	router := api.SetupRouter(application.Recommend, &cfg.Server, appLogger)

	// Create HTTP server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
