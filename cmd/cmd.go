package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weight-tracker-backend/internal/blob"
	"weight-tracker-backend/internal/config"
	"weight-tracker-backend/internal/handlers"
	"weight-tracker-backend/internal/repository"
	"weight-tracker-backend/internal/services"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Run wires the application together and serves until interrupted.
func Run() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Open database
	db, err := repository.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("Database connection established")

	// Open blob store
	blobs, err := openBlobStore(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open blob store")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	weightRepo := repository.NewWeightRepository(db)
	photoRepo := repository.NewPhotoRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo, blobs)
	weightService := services.NewWeightService(userRepo, weightRepo)
	photoService := services.NewPhotoService(userRepo, photoRepo, blobs)

	// Initialize handlers and router
	r := handlers.NewRouter(
		handlers.NewUserHandler(userService),
		handlers.NewWeightHandler(weightService),
		handlers.NewPhotoHandler(photoService),
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// openBlobStore builds the configured photo storage backend
func openBlobStore(cfg config.StorageConfig) (blob.Store, error) {
	switch cfg.Type {
	case "", "disk":
		return blob.NewDiskStore(cfg.Dir)
	case "s3":
		return blob.NewS3Store(context.Background(), cfg.S3)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Type)
	}
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
