package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/andresuchdata/salesboard/internal/config"
	"github.com/andresuchdata/salesboard/internal/drive"
	"github.com/andresuchdata/salesboard/pkg/logger"
)

func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	logger.SetLevel(cfg.Log.Level)

	// Initialize Google Drive service
	driveService, err := drive.NewService(context.Background(), cfg.Drive.CredentialsJSON)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize Google Drive service")
	}

	// Create router
	r := mux.NewRouter()

	// Register routes
	previewService := drive.NewPreviewService(driveService)
	driveHandler := drive.NewHandler(driveService, driveService, previewService)
	driveHandler.RegisterRoutes(r)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Log.Info().Str("addr", addr).Msg("Drive API starting")
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Log.Fatal().Err(err).Msg("Drive API stopped")
	}
}
