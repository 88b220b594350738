package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/config"
	"github.com/Dosada05/swiss-tournament/db"
	"github.com/Dosada05/swiss-tournament/handlers"
	"github.com/Dosada05/swiss-tournament/repositories"
	api "github.com/Dosada05/swiss-tournament/routes"
	"github.com/Dosada05/swiss-tournament/services"
	"github.com/Dosada05/swiss-tournament/storage"
	"github.com/go-chi/chi/v5"
)

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level, AddSource: level == slog.LevelDebug}
	if strings.EqualFold(cfg.LogFormat, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("tournament", cfg.TournamentName))

	dbConn, dialect, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established", slog.String("dialect", string(dialect)))

	schemaCtx, cancelSchema := context.WithTimeout(context.Background(), 10*time.Second)
	err = db.EnsureSchema(schemaCtx, dbConn, dialect)
	cancelSchema()
	if err != nil {
		logger.Error("failed to apply database schema", slog.Any("error", err))
		os.Exit(1)
	}

	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	wsHub := brackets.NewHub(logger)
	go wsHub.Run(appCtx)
	logger.Info("WebSocket Hub started")

	playerRepo := repositories.NewPlayerRepository(dbConn)
	matchRepo := repositories.NewMatchRepository(dbConn)

	pairingGenerator := brackets.NewSwissGenerator()
	tournamentService := services.NewTournamentService(
		playerRepo,
		matchRepo,
		pairingGenerator,
		wsHub,
		logger,
	)
	authService := services.NewAuthService(cfg.OrganizerPasswordHash, cfg.JWTSecretKey, 24*time.Hour)
	if cfg.OrganizerPasswordHash == "" {
		logger.Warn("ORGANIZER_PASSWORD_HASH is not set, organizer login is disabled")
	}

	var uploader storage.FileUploader
	if cfg.StorageEnabled() {
		u, err := storage.NewS3Uploader(appCtx, storage.S3UploaderConfig{
			AccountID:       cfg.R2AccountID,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize snapshot storage", slog.Any("error", err))
			os.Exit(1)
		}
		uploader = u
		logger.Info("snapshot storage initialized", slog.String("bucket", cfg.R2BucketName))
	}
	snapshotService := services.NewSnapshotService(tournamentService, pairingGenerator, uploader, cfg.TournamentName, logger)

	if cfg.SnapshotInterval > 0 {
		if uploader == nil {
			logger.Warn("SNAPSHOT_INTERVAL is set but snapshot storage is not configured, scheduler not started")
		} else {
			sched, err := services.StartSnapshotScheduler(snapshotService, cfg.SnapshotInterval, logger)
			if err != nil {
				logger.Error("failed to start snapshot scheduler", slog.Any("error", err))
				os.Exit(1)
			}
			defer func() {
				if err := sched.Shutdown(); err != nil {
					logger.Error("failed to stop snapshot scheduler", slog.Any("error", err))
				}
			}()
		}
	}
	logger.Info("Services initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		logger,
		cfg.JWTSecretKey,
		cfg.CORSAllowedOrigins,
		handlers.NewTournamentHandler(tournamentService),
		handlers.NewAuthHandler(authService),
		handlers.NewSnapshotHandler(snapshotService),
		handlers.NewWebSocketHandler(wsHub, cfg.CORSAllowedOrigins),
	)
	logger.Info("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			stopApp()
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		stopApp()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
