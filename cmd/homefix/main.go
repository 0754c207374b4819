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

	"homefix/internal/api"
	"homefix/internal/backend"
	"homefix/internal/config"
	"homefix/internal/domain"
	"homefix/internal/events"
	"homefix/internal/logging"
	"homefix/internal/metrics"
	"homefix/internal/repository"
	"homefix/internal/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
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
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache, cleanup, err := initCache(ctx, cfg, &logger)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	backendClient := backend.NewClient(cfg.Backend, &logger)

	eventBus := events.NewEventBus()
	subscribeEvents(eventBus, &logger)

	sessions := service.NewSessionService(backendClient, cache, eventBus, &logger)
	backendClient.SetTokenSource(sessions.Token)

	bookings := service.NewBookingService(backendClient, cache, eventBus, &logger)
	catalog := service.NewCatalogService(backendClient, &logger)

	sessions.Restore(ctx)

	metrics.Register()
	startMetrics(ctx, cfg, &logger)

	apiServer := api.NewHTTPServer(cfg.API, bookings, catalog, sessions, &logger)
	errCh := make(chan error, 1)
	go func() {
		errCh <- apiServer.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return apiServer.Shutdown(shutdownCtx)
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
	logger := baseLogger.With().Str("component", "main").Logger()

	return cfg, logger, closer, nil
}

// initCache builds the configured cache backend. Redis and SQLite are
// wrapped in a failover to an in-memory cache so a storage outage degrades
// to session-local state instead of failing requests.
func initCache(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (domain.CacheStore, func(), error) {
	switch cfg.Cache.Backend {
	case "redis":
		client := repository.NewRedisClient(cfg.Cache.Redis)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := repository.Ping(pingCtx, client); err != nil {
			logger.Warn().Err(err).Msg("redis unreachable at startup, failover will cover it")
		}
		primary := repository.NewRedisCache(client)
		cache := repository.NewFailoverCache(primary, repository.NewMemoryCache(), logger)
		return cache, func() { _ = repository.Close(client) }, nil

	case "sqlite":
		primary, err := repository.NewSQLiteCache(cfg.Cache.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("init sqlite cache: %w", err)
		}
		cache := repository.NewFailoverCache(primary, repository.NewMemoryCache(), logger)
		return cache, func() { _ = primary.Close() }, nil

	default:
		return repository.NewMemoryCache(), nil, nil
	}
}

func subscribeEvents(bus *events.EventBus, logger *zerolog.Logger) {
	logEvent := func(event *events.Event) error {
		logger.Info().
			Str("event_type", event.Type).
			RawJSON("payload", event.Payload).
			Msg("booking event")
		return nil
	}

	bus.Subscribe(events.EventBookingCreated, logEvent)
	bus.Subscribe(events.EventBookingCompleted, logEvent)
	bus.Subscribe(events.EventBookingsPruned, logEvent)
	bus.Subscribe(events.EventSessionChanged, logEvent)
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Monitoring.PrometheusPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("metrics listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("metrics server error")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}
