package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giannis84/movie-hub/internal"
	"github.com/giannis84/movie-hub/internal/config"
	"github.com/giannis84/movie-hub/internal/database"
	"github.com/giannis84/movie-hub/internal/favorites"
	"github.com/giannis84/movie-hub/internal/logging"
	"github.com/giannis84/movie-hub/internal/metrics"
	"github.com/giannis84/movie-hub/internal/routes"
	"github.com/giannis84/movie-hub/internal/session"
)

func main() {
	// Initialize shared dependencies
	logger := logging.NewLogger()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String(logging.ErrorKey, err.Error()))
		os.Exit(1)
	}
	if cfg.LogLevel != "" {
		logger = logging.NewLoggerWithLevel(logging.ParseLevel(cfg.LogLevel))
	}
	logger.Info("configuration loaded",
		slog.String("api_addr", cfg.APIAddr()),
		slog.String("health_addr", cfg.HealthAddr()),
		slog.String("favorites_backend", cfg.FavoritesBackend),
	)

	// Connect to PostgreSQL and initialise schema
	db, err := database.Connect(cfg.PostgresConnString())
	if err != nil {
		logger.Error("failed to initialise database", slog.String(logging.ErrorKey, err.Error()))
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("database ready")

	storage, readiness, closeStorage, err := openFavoritesStorage(cfg, db)
	if err != nil {
		logger.Error("failed to initialise favorites storage", slog.String(logging.ErrorKey, err.Error()))
		os.Exit(1)
	}
	defer closeStorage()

	m := metrics.New()
	sessions := session.NewProvider()
	store := favorites.NewStore(favorites.Config{
		Storage:   storage,
		Sessions:  sessions,
		KeyPrefix: cfg.FavoritesKeyPrefix,
		Logger:    logger,
		Metrics:   m,
	})

	api := routes.API{
		Movies:    database.NewPostgresMovieRepository(db),
		Sessions:  sessions,
		Favorites: store,
	}

	// Create health check and movie hub http services
	healthService := internal.NewService(internal.ServiceConfig{
		Addr:   cfg.HealthAddr(),
		Logger: logger,
		Routes: routes.RegisterHealthRoutes(m, readiness...),
	})
	apiService := internal.NewService(internal.ServiceConfig{
		Addr:         cfg.APIAddr(),
		Logger:       logger,
		Routes:       routes.RegisterAPIRoutes(api, cfg.AuthConfig(), cfg.RateLimitConfig()),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		CORSOrigins:  cfg.CORSAllowedOrigins,
	})

	// Start http service threads
	go func() {
		if err := healthService.ListenAndServeWrapper("health check api"); err != nil && err != http.ErrServerClosed {
			logger.Error("health check service failed", slog.String(logging.ErrorKey, err.Error()))
			os.Exit(1)
		}
	}()
	go func() {
		if err := apiService.ListenAndServeWrapper("movie hub api"); err != nil && err != http.ErrServerClosed {
			logger.Error("movie hub service failed", slog.String(logging.ErrorKey, err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit

	// Shutdown http service threads gracefully
	logger.Info("shutting down service", slog.String("signal", receivedSignal.String()))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiService.Shutdown(ctx); err != nil {
		logger.Error("API service shutdown error", slog.String(logging.ErrorKey, err.Error()))
	}
	// Let background favorite writes land before storage closes.
	if err := store.Close(ctx); err != nil {
		logger.Error("favorites store shutdown error", slog.String(logging.ErrorKey, err.Error()))
	}
	if err := healthService.Shutdown(ctx); err != nil {
		logger.Error("health service shutdown error", slog.String(logging.ErrorKey, err.Error()))
	}
	logger.Info("exiting...")
}

// openFavoritesStorage returns the key-value store for the configured backend,
// the dependencies readiness should ping, and a cleanup function.
func openFavoritesStorage(cfg *config.Config, db *sql.DB) (database.KeyValueStore, []database.Pinger, func(), error) {
	switch cfg.FavoritesBackend {
	case config.BackendRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		kv, err := database.ConnectRedis(ctx, cfg.RedisOptions())
		if err != nil {
			return nil, nil, nil, err
		}
		return kv, []database.Pinger{db, kv}, func() { kv.Close() }, nil
	case config.BackendMemory:
		return database.NewMemoryKV(), []database.Pinger{db}, func() {}, nil
	case config.BackendPostgres:
		return database.NewPostgresKV(db), []database.Pinger{db}, func() {}, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown favorites backend %q", cfg.FavoritesBackend)
	}
}
