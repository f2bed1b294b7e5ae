// Package app wires together all dependencies and runs the wishlist service.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MiSArch/wishlist/internal/config"
	"github.com/MiSArch/wishlist/internal/event"
	handler "github.com/MiSArch/wishlist/internal/handler/http"
	"github.com/MiSArch/wishlist/internal/repository/postgres"
	"github.com/MiSArch/wishlist/internal/service"
	"github.com/MiSArch/wishlist/migrations"
	"github.com/MiSArch/wishlist/pkg/database"
	"github.com/MiSArch/wishlist/pkg/health"
	pkgkafka "github.com/MiSArch/wishlist/pkg/kafka"
	"github.com/MiSArch/wishlist/pkg/tracing"
)

// App holds the long-lived components of the running service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	consumers      []*pkgkafka.Consumer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "wishlist",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Initialize PostgreSQL connection pool.
	pgCfg := cfg.Postgres()
	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)

	// Run database migrations.
	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Build the dependency graph.
	wishlistRepo := postgres.NewWishlistRepository(pool)
	userProjectionRepo := postgres.NewUserProjectionRepository(pool)
	variantProjectionRepo := postgres.NewProductVariantProjectionRepository(pool)
	wishlistService := service.NewWishlistService(wishlistRepo, userProjectionRepo, variantProjectionRepo, logger)

	// Projection consumers, one reader per topic within a shared group.
	projectionConsumer := event.NewConsumer(userProjectionRepo, variantProjectionRepo, logger)
	consumers := make([]*pkgkafka.Consumer, 0, len(event.Topics()))
	for _, topic := range event.Topics() {
		consumerCfg := pkgkafka.DefaultConsumerConfig(cfg.KafkaBrokers, cfg.KafkaGroupID, topic)
		consumers = append(consumers, pkgkafka.NewConsumer(consumerCfg, projectionConsumer.Handle, logger))
	}
	logger.Info("kafka consumers initialized",
		slog.Any("brokers", cfg.KafkaBrokers),
		slog.Any("topics", event.Topics()),
	)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})

	// HTTP router.
	router := handler.NewRouter(wishlistService, healthHandler, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		consumers:      consumers,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and the projection consumers and blocks until
// the context is canceled or a component fails.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1+len(a.consumers))

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	consumerCtx, cancelConsumers := context.WithCancel(ctx)
	defer cancelConsumers()
	for _, consumer := range a.consumers {
		go func(c *pkgkafka.Consumer) {
			if err := c.Start(consumerCtx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- fmt.Errorf("kafka consumer: %w", err)
			}
		}(consumer)
	}

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		a.shutdown()
		return err
	}

	return a.shutdown()
}

// shutdown stops all components in order: the HTTP server drains in-flight
// requests first, the tracer flushes their spans, then the consumers and the
// pool are released.
func (a *App) shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	for _, consumer := range a.consumers {
		if err := consumer.Close(); err != nil {
			a.logger.Error("kafka consumer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.pool.Close()
	a.logger.Info("application stopped")

	return errors.Join(errs...)
}
