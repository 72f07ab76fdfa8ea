package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/slayscreens/showdesk/internal/api"
	"github.com/slayscreens/showdesk/internal/backup"
	"github.com/slayscreens/showdesk/internal/catalog"
	"github.com/slayscreens/showdesk/internal/config"
	"github.com/slayscreens/showdesk/internal/events"
	"github.com/slayscreens/showdesk/internal/logging"
	"github.com/slayscreens/showdesk/internal/metrics"
	"github.com/slayscreens/showdesk/internal/storage"
	"github.com/slayscreens/showdesk/internal/worker"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	redisClient := initRedis(cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	backend, cleanup, err := initBackend(cfg, redisClient, &logger)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	bus := events.NewEventBus()

	cat, err := catalog.New(backend, bus, catalog.AdminSeed{
		Name:     cfg.Seed.AdminName,
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
	}, &logger)
	if err != nil {
		return fmt.Errorf("init catalog: %w", err)
	}

	if !cfg.API.Enabled {
		logger.Warn().Msg("API is disabled in config, but starting API application. Check your config.")
	}

	httpServer := api.NewHTTPServer(cfg.API, cat, cfg.Exports.Path, &logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startMetrics(ctx, cfg, &logger)
	startBackup(ctx, backend, cfg, &logger)
	startChangeFeed(ctx, bus, redisClient, cfg, &logger)

	return startServer(ctx, httpServer, cfg, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "showdesk-main").Logger()

	return cfg, logger, closer, nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Storage.Redis.Address == "" {
		return nil
	}

	redisClient := storage.NewRedisClient(storage.RedisOptions{
		Address:  cfg.Storage.Redis.Address,
		Password: cfg.Storage.Redis.Password,
		DB:       cfg.Storage.Redis.DB,
		PoolSize: cfg.Storage.Redis.PoolSize,
	})

	if err := storage.Ping(context.Background(), redisClient); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		return nil
	}

	logger.Info().Str("addr", cfg.Storage.Redis.Address).Msg("redis connected")
	return redisClient
}

// initBackend picks the driver from config. Persistent drivers are
// wrapped in a failover that falls back to an in-memory backend so the
// admin panel keeps serving reads when the store goes down.
func initBackend(cfg *config.Config, redisClient *redis.Client, logger *zerolog.Logger) (storage.Backend, func(), error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		db, err := storage.NewSQLite(cfg.Storage.Path, logger)
		if err != nil {
			logger.Error().Err(err).Str("path", cfg.Storage.Path).Msg("init sqlite")
			return nil, nil, err
		}
		cleanup := func() { _ = db.Close() }
		return storage.NewFailover(db, storage.NewMemory(), logger), cleanup, nil
	case "redis":
		if redisClient == nil {
			return nil, nil, fmt.Errorf("redis driver selected but redis is unreachable at %s", cfg.Storage.Redis.Address)
		}
		return storage.NewFailover(storage.NewRedis(redisClient), storage.NewMemory(), logger), nil, nil
	case "memory":
		return storage.NewMemory(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startBackup(ctx context.Context, backend storage.Backend, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Backup.Enabled {
		return
	}
	svc := backup.NewService(backend, cfg.Backup, logger)
	go svc.Start(ctx)
}

func startChangeFeed(ctx context.Context, bus *events.EventBus, redisClient *redis.Client, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.ChangeFeed.Enabled {
		return
	}
	if redisClient == nil {
		logger.Warn().Msg("change feed is enabled but redis is unavailable, feed disabled")
		return
	}

	w := worker.NewChangeFeedWorker(redisClient, cfg.ChangeFeed.QueueKey, cfg.ChangeFeed.DeadLetterKey, worker.RetryPolicy{}, logger)
	w.Register(bus)
	go w.Start(ctx)
}

func startServer(ctx context.Context, httpServer *api.HTTPServer, cfg *config.Config, logger *zerolog.Logger) error {
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	logger.Info().Int("http_port", cfg.API.HTTP.Port).Msg("Admin API started")

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = httpServer.Shutdown(shutdownCtx)

	logger.Info().Msg("Admin API stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
