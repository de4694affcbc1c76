package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timmy/pixgallery/internal/api"
	"github.com/timmy/pixgallery/internal/api/middleware"
	"github.com/timmy/pixgallery/internal/config"
	"github.com/timmy/pixgallery/internal/logger"
	"github.com/timmy/pixgallery/internal/pixabay"
	"github.com/timmy/pixgallery/internal/repository"
	"github.com/timmy/pixgallery/internal/service"
	"github.com/timmy/pixgallery/internal/view"
)

func main() {
	// Initialize logger from environment (LOG_LEVEL, LOG_FORMAT, LOG_FILE, ...)
	appLogger := logger.NewFromEnv(logger.LoadFromEnv("pixgallery-api"))
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		appLogger.WithError(err).Fatal("Invalid config")
	}

	// Initialize search history
	var (
		history       service.HistoryRecorder
		historyReader *repository.SearchRecordRepository
	)
	if cfg.Gallery.RecordHistory {
		db, err := repository.InitDB(&cfg.Database)
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to initialize database")
		}
		historyReader = repository.NewSearchRecordRepository(db)
		history = historyReader
	}

	// Initialize services
	searcher := pixabay.NewClient(pixabay.ConfigFrom(&cfg.Pixabay))
	gallery := service.NewGalleryService(searcher, history, appLogger, &service.GalleryConfig{
		PerPage: cfg.Pixabay.PerPage,
	})

	sessions := service.NewSessionStore(cfg.Gallery.SessionTTL, func() view.View {
		return view.NewPage()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sessions.RunJanitor(ctx, time.Minute)

	deps := &api.Dependencies{
		Searcher:     searcher,
		Gallery:      gallery,
		Sessions:     sessions,
		HistoryLimit: cfg.Gallery.HistoryLimit,
		Logger:       appLogger,
	}
	if historyReader != nil {
		deps.History = historyReader
	}

	// Setup router
	router := api.SetupRouter(deps, api.RouterOptions{
		Mode: cfg.Server.Mode,
		CORS: middleware.CORSConfig{
			AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
			AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
		},
	})

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
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
