package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"chat-assistant/backend/internal/api"
	"chat-assistant/backend/internal/cache"
	"chat-assistant/backend/internal/config"
	"chat-assistant/backend/internal/database"
	"chat-assistant/backend/internal/llm"
	"chat-assistant/backend/internal/repository"
	"chat-assistant/backend/internal/service"
)

const shutdownTimeout = 15 * time.Second

// App holds the long-lived resources of a running server.
type App struct {
	Server *http.Server
	DB     *sql.DB
	Cache  *cache.RedisCache
	Titles *service.TitleWorker
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer app.Close()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.AppPort)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			slog.Error("Server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
		return 1
	}
	return 0
}

// NewApp connects to Postgres and Redis and wires the HTTP server. Redis is
// optional at start-up; the inference service is probed but never required.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.InitDB(ctx, cfg.DatabaseURL, database.PoolOptions{
		MaxConns:    cfg.DatabaseMaxConns,
		IdleTimeout: cfg.DatabaseIdleTimeout,
	})
	if err != nil {
		return nil, err
	}
	slog.Info("Successfully connected to Postgres database.")

	redisCache := cache.NewRedisCache(cache.RedisOptions{
		Addr:     cfg.RedisAddr(),
		Username: cfg.RedisUsername,
		Password: cfg.RedisPassword,
		TLS:      cfg.RedisTLS,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	if err := redisCache.Ping(pingCtx); err != nil {
		slog.Warn("Redis unavailable, serving reads from Postgres until it recovers", "addr", cfg.RedisAddr(), "error", err)
	} else {
		slog.Info("Successfully connected to Redis.", "addr", cfg.RedisAddr())
	}
	cancel()

	provider := llm.NewHTTPProvider(cfg.BackendURL, cfg.GeneratePath)
	waitForBackend(ctx, provider, cfg.BackendURL, 3, 2*time.Second)

	return assemble(cfg, db, repository.NewPostgresRepository(db), redisCache, provider), nil
}

// assemble builds the service graph on top of already-open resources.
func assemble(cfg *config.Config, db *sql.DB, store repository.Store, redisCache *cache.RedisCache, provider llm.Provider) *App {
	repo := repository.NewCachedRepository(store, redisCache)

	titles := service.NewTitleWorker(provider, repo, service.TitleWorkerConfig{
		Timeout:    cfg.TitleTimeout,
		MaxRetries: cfg.TitleMaxRetries,
		RetryDelay: cfg.TitleRetryDelay,
	})
	chatService := service.NewChatService(repo, titles)
	relayService := service.NewRelayService(provider)

	router := api.NewRouter(
		api.RouterConfig{AllowedOrigins: cfg.AllowedOrigins(), DefaultUserID: cfg.DefaultUserID},
		api.NewChatHandler(chatService),
		api.NewRelayHandler(relayService),
		api.NewHealthHandler(repo, redisCache),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}

	return &App{Server: server, DB: db, Cache: redisCache, Titles: titles}
}

// Shutdown stops accepting requests, lets in-flight ones finish, then waits
// for pending title jobs.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.Server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http server: %w", err))
	}
	if err := a.Titles.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("title worker: %w", err))
	}
	return errors.Join(errs...)
}

// Close releases the cache and database connections.
func (a *App) Close() {
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			slog.Error("Failed to close Redis connection", "error", err)
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func parseLevel(logLevel string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(logLevel)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func setupLogger(logLevel string) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(logLevel),
	}))
	slog.SetDefault(logger)
}

// waitForBackend probes the inference service a bounded number of times. The
// server starts regardless; relay calls fail on their own if it stays down.
func waitForBackend(ctx context.Context, provider llm.Provider, url string, attempts int, interval time.Duration) bool {
	slog.Info("Waiting for inference service to be ready...", "url", url)
	for i := 1; i <= attempts; i++ {
		probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := provider.Ping(probeCtx)
		cancel()
		if err == nil {
			slog.Info("Inference service is ready.")
			return true
		}
		slog.Debug("Inference service not ready yet", "attempt", i, "error", err)
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(interval):
		}
	}
	slog.Warn("Inference service did not answer; starting anyway", "url", url, "attempts", attempts)
	return false
}
