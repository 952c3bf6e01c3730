// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/salesboard/internal/api"
	"github.com/andresuchdata/salesboard/internal/cache"
	"github.com/andresuchdata/salesboard/internal/config"
	"github.com/andresuchdata/salesboard/internal/service"
	"github.com/andresuchdata/salesboard/internal/source"
	"github.com/andresuchdata/salesboard/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Log.Level)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	loader, err := source.NewLoaderFromConfig(ctx, cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Str("kind", cfg.Source.Kind).Msg("Failed to configure source")
	}

	reportCache, err := cache.NewReportCache(ctx, cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Report cache unavailable, continuing without cache")
		reportCache = cache.NewNoopReportCache()
	}
	defer reportCache.Close()

	// Initialize services
	reportService := service.NewReportService(loader, reportCache, cfg.Report)

	refresher, err := service.NewRefresher(reportService, cfg.Refresh.Schedule, cfg.Refresh.TimeZone)
	if err != nil {
		logger.Log.Fatal().Err(err).Str("schedule", cfg.Refresh.Schedule).Msg("Invalid refresh schedule")
	}
	if refresher != nil {
		refresher.Start()
		defer refresher.Stop()
	}

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{ReportService: reportService}, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Str("source", cfg.Source.Kind).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
