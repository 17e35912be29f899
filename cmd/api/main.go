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

	"github.com/gin-gonic/gin"

	"github.com/greenleaf/garden-api/internal/cache"
	"github.com/greenleaf/garden-api/internal/config"
	"github.com/greenleaf/garden-api/internal/handlers"
	"github.com/greenleaf/garden-api/internal/logging"
	"github.com/greenleaf/garden-api/internal/middleware"
	"github.com/greenleaf/garden-api/internal/seed"
	"github.com/greenleaf/garden-api/internal/services"
	"github.com/greenleaf/garden-api/internal/storage"
	"github.com/greenleaf/garden-api/internal/utils"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.IsProduction())
	slog.SetDefault(logger)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Database ---
	var driver storage.Driver
	switch cfg.StorageDriver {
	case config.DriverMemory:
		logger.Warn("using in-memory storage, data will not survive a restart")
		driver = storage.NewMemoryDriver()
	default:
		driver = storage.NewMongoDriver(cfg.MongoURL(), cfg.MongoDatabase)
	}
	store := storage.New(driver, logger)

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := store.Connect(connectCtx); err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Error("closing database", "error", err)
		}
	}()
	if err := store.EnsureIndexes(connectCtx); err != nil {
		return fmt.Errorf("creating indexes: %w", err)
	}
	logger.Info("connected to database", "driver", cfg.StorageDriver, "database", cfg.MongoDatabase)

	if cfg.Seed {
		if err := seed.Run(connectCtx, store, seed.Options{
			AdminEmail:    cfg.SeedAdminEmail,
			AdminPassword: cfg.SeedAdminPassword,
		}, logger); err != nil {
			return err
		}
	}

	// --- Services ---
	tokens, err := utils.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL(), logger)
	if err != nil {
		return err
	}

	var responseCache cache.Cache
	if cfg.UseRedisCache() {
		responseCache, err = cache.NewRedisCache(connectCtx, cfg.RedisURL, cfg.CachePrefix, cfg.CacheTTL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		logger.Info("caching public responses in redis")
	} else {
		responseCache = cache.NewMemoryCache(cfg.CacheTTL)
	}
	defer responseCache.Close()

	notifications := services.NewNotificationService(cfg.TextbeltKey, cfg.TextbeltURL, logger)
	if !notifications.Enabled() {
		logger.Info("TEXTBELT_API_KEY not set, appointment texts are disabled")
	}

	h := handlers.NewHandler(store, tokens, responseCache, notifications, logger)
	router := handlers.NewRouter(h, handlers.RouterOptions{
		CORSOrigins:  cfg.CORSOrigins,
		LoginLimiter: middleware.NewIPRateLimiter(cfg.LoginRateLimit, cfg.LoginBurst, logger),
	})

	// --- HTTP server ---
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
