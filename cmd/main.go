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

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/mateus/app-pelada/config"
	"github.com/mateus/app-pelada/db"
	"github.com/mateus/app-pelada/draw"
	"github.com/mateus/app-pelada/handlers"
	"github.com/mateus/app-pelada/metrics"
	"github.com/mateus/app-pelada/report"
	"github.com/mateus/app-pelada/repositories"
	api "github.com/mateus/app-pelada/routes"
	"github.com/mateus/app-pelada/services"
	"github.com/mateus/app-pelada/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.Bool("storage", cfg.StorageEnabled()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключение к базе данных
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

	if err := db.Migrate(ctx, dbConn); err != nil {
		logger.Error("failed to apply schema", slog.Any("error", err))
		os.Exit(1)
	}

	// Инициализация загрузчика файлов (Cloudflare R2), если настроен
	var uploader storage.FileUploader
	if cfg.StorageEnabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
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
		logger.Warn("object storage not configured, ranking publishing disabled")
	}

	// Инициализация WebSocket Hub
	wsHub := draw.NewHub(logger)
	go wsHub.Run(ctx)

	metricsManager := metrics.NewManager()

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	peladaRepo := repositories.NewPostgresPeladaRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	rankingRepo := repositories.NewPostgresRankingRepository(dbConn)
	transactor := repositories.NewTransactor(dbConn)

	// Инициализация сервисов
	tokenService := services.NewTokenService(cfg.JWTSecretKey, cfg.TokenTTL())
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, peladaRepo)
	peladaService := services.NewPeladaService(peladaRepo, playerRepo)
	playerService := services.NewPlayerService(peladaRepo, playerRepo)
	drawService := services.NewDrawService(peladaRepo, playerRepo, draw.NewDrawer(nil), wsHub, metricsManager, logger)
	matchService := services.NewMatchService(transactor, peladaRepo, playerRepo, matchRepo, wsHub, logger)
	rankingService := services.NewRankingService(peladaRepo, rankingRepo, report.NewPDFRenderer(), uploader, logger)

	// Инициализация обработчиков HTTP и маршрутов
	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Auth:      handlers.NewAuthHandler(authService, tokenService),
		User:      handlers.NewUserHandler(userService),
		Pelada:    handlers.NewPeladaHandler(peladaService),
		Player:    handlers.NewPlayerHandler(playerService),
		Draw:      handlers.NewDrawHandler(drawService),
		Match:     handlers.NewMatchHandler(matchService),
		Ranking:   handlers.NewRankingHandler(rankingService),
		WebSocket: handlers.NewWebSocketHandler(wsHub, peladaService, cfg.AllowedOrigins()),
		Health:    handlers.NewHealthHandler(dbConn),
	}, api.Options{
		Tokens:         tokenService,
		HTTPObserver:   metricsManager,
		MetricsHandler: metricsManager.Handler(),
		AllowedOrigins: cfg.AllowedOrigins(),
	})

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
