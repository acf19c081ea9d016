package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/robinhio12/rockbrakel/brackets"
	"github.com/robinhio12/rockbrakel/config"
	"github.com/robinhio12/rockbrakel/db"
	"github.com/robinhio12/rockbrakel/handlers"
	"github.com/robinhio12/rockbrakel/repositories"
	api "github.com/robinhio12/rockbrakel/routes"
	"github.com/robinhio12/rockbrakel/services"
	"github.com/robinhio12/rockbrakel/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
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
	logger.Info("database connection established")

	// Player pictures are optional; without R2 credentials registration
	// simply skips the upload.
	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("R2 storage not configured, picture uploads disabled")
	}

	wsHub := brackets.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	resultRepo := repositories.NewPostgresResultRepository(dbConn)
	answerKeyRepo := repositories.NewPostgresAnswerKeyRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	dopingRepo := repositories.NewPostgresDopingRepository(dbConn)
	logger.Info("Repositories initialized")

	jwtSecret := []byte(cfg.JWTSecretKey)

	authService := services.NewAuthService(cfg.AdminPasswordHash, jwtSecret)
	playerService := services.NewPlayerService(playerRepo, uploader)
	dopingService := services.NewDopingService(dopingRepo)
	resultService := services.NewResultService(
		dbConn,
		resultRepo,
		answerKeyRepo,
		dopingRepo,
		playerRepo,
		tournamentRepo,
		wsHub,
		logger,
	)
	tournamentService := services.NewTournamentService(
		dbConn,
		tournamentRepo,
		dopingRepo,
		playerRepo,
		wsHub,
		logger,
	)
	rankingService := services.NewRankingService(
		playerRepo,
		resultRepo,
		answerKeyRepo,
		tournamentRepo,
		dopingRepo,
		playerService,
	)
	adminService := services.NewAdminService(answerKeyRepo, resultRepo, logger)
	logger.Info("Services initialized")

	authHandler := handlers.NewAuthHandler(authService)
	playerHandler := handlers.NewPlayerHandler(playerService)
	resultHandler := handlers.NewResultHandler(resultService, dopingService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	rankingHandler := handlers.NewRankingHandler(rankingService)
	adminHandler := handlers.NewAdminHandler(adminService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		jwtSecret,
		authHandler,
		playerHandler,
		resultHandler,
		tournamentHandler,
		rankingHandler,
		adminHandler,
		webSocketHandler,
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
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
