package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/mitiledger/internal/adapter/http"
	"github.com/iho/mitiledger/internal/adapter/http/handler"
	apimiddleware "github.com/iho/mitiledger/internal/adapter/http/middleware"
	"github.com/iho/mitiledger/internal/adapter/repository/instrumented"
	memoryRepo "github.com/iho/mitiledger/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/mitiledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/mitiledger/internal/adapter/repository/redis"
	sqliteRepo "github.com/iho/mitiledger/internal/adapter/repository/sqlite"
	"github.com/iho/mitiledger/internal/adapter/webhook"
	"github.com/iho/mitiledger/internal/infrastructure/config"
	"github.com/iho/mitiledger/internal/infrastructure/dispatcher"
	"github.com/iho/mitiledger/internal/infrastructure/idgen"
	"github.com/iho/mitiledger/internal/infrastructure/logger"
	"github.com/iho/mitiledger/internal/infrastructure/metrics"
	"github.com/iho/mitiledger/internal/infrastructure/postgres"
	"github.com/iho/mitiledger/internal/infrastructure/redis"
	"github.com/iho/mitiledger/internal/infrastructure/sqlite"
	"github.com/iho/mitiledger/internal/usecase"
)

func main() {
	// Used only until the configured logger exists
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logg := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := cfg.Validate(); err != nil {
		logg.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Fatal().Err(err).Msg("server failed")
	}

	logg.Info().Msg("server stopped")
}

// run serves until ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, cfg *config.Config, logg zerolog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a, err := newApp(ctx, cfg, logg, reg)
	if err != nil {
		return err
	}
	defer a.close()

	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		_ = a.dispatcher.Start(workerCtx)
	}()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      a.router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		stopWorker()
		<-workerDone
		return err
	}

	logg.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	// In-flight requests finish before the worker stops.
	err = server.Shutdown(shutdownCtx)

	stopWorker()
	<-workerDone

	if err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// app is the wired object graph of the service.
type app struct {
	router     http.Handler
	dispatcher *dispatcher.Dispatcher
	closers    []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// newApp connects the stores and wires use cases, dispatcher and router.
func newApp(ctx context.Context, cfg *config.Config, logg zerolog.Logger, reg *prometheus.Registry) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	m := metrics.NewWithRegistry(reg)
	checks := map[string]handler.Checker{}

	pair, err := cfg.Participants()
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE: %w", err)
	}

	ledgerRepo, err := openLedgerStore(ctx, cfg, logg, a, checks)
	if err != nil {
		return nil, err
	}
	repo := instrumented.NewLedgerRepository(ledgerRepo, m, cfg.StoreDriver)

	initCtx, cancel := context.WithTimeout(ctx, cfg.DatabaseTimeout)
	defer cancel()
	if err := repo.Init(initCtx); err != nil {
		return nil, fmt.Errorf("failed to initialize ledger store: %w", err)
	}
	logg.Info().Str("driver", cfg.StoreDriver).Msg("ledger store ready")

	pendingStore, dedup, err := openPendingStore(ctx, cfg, a, checks)
	if err != nil {
		return nil, err
	}
	pending := instrumented.NewPendingStore(pendingStore, m, cfg.PendingDriver)
	logg.Info().Str("driver", cfg.PendingDriver).Msg("pending store ready")

	// Initialize use cases
	formatter := usecase.NewFormatter(pair).WithLocation(loc)
	ledgerUC := usecase.NewLedgerUseCase(repo, pair, idgen.NewULIDGenerator())
	conversationUC := usecase.NewConversationUseCase(ledgerUC, pending, formatter, pair, m, logg, usecase.ConversationConfig{
		TargetConversationID: cfg.TargetConversationID,
		PendingTTL:           cfg.PendingTTL,
	})

	if cfg.ReplyWebhookURL != "" {
		conversationUC.WithSender(webhook.NewSender(webhook.Config{
			URL:        cfg.ReplyWebhookURL,
			Timeout:    cfg.ReplyWebhookTimeout,
			MaxRetries: 3,
			Logger:     logg,
		}))
	}

	a.dispatcher = dispatcher.New(dispatcher.Config{
		Handler:   conversationUC,
		Logger:    logg,
		QueueSize: cfg.DispatchQueueSize,
	})
	m.RegisterQueueDepth(a.dispatcher.Len)

	var limiter *apimiddleware.RateLimiter
	if cfg.HTTPRateLimit > 0 {
		limiter = apimiddleware.NewRateLimiter(cfg.HTTPRateLimit, cfg.HTTPRateBurst)
		go sweepLimiter(ctx, limiter)
	}

	a.router = httpAdapter.NewRouter(httpAdapter.RouterConfig{
		MessageHandler: handler.NewMessageHandler(handler.MessageHandlerConfig{
			Submitter:            a.dispatcher,
			Deduplicator:         dedup,
			DedupTTL:             cfg.DedupTTL,
			TargetConversationID: cfg.TargetConversationID,
			Duplicates:           m.DuplicateMessages,
			Logger:               logg,
		}),
		BalanceHandler: handler.NewBalanceHandler(ledgerUC, formatter, pair),
		HealthHandler:  handler.NewHealthHandler(checks),
		HTTPMetrics:    apimiddleware.NewHTTPMetrics(reg),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		RateLimiter:    limiter,
		Logger:         logg,
	})

	return a, nil
}

func openLedgerStore(ctx context.Context, cfg *config.Config, logg zerolog.Logger, a *app, checks map[string]handler.Checker) (usecase.LedgerRepository, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		a.closers = append(a.closers, func() { db.Close() })
		checks["sqlite"] = handler.CheckFunc(db.PingContext)

		return sqliteRepo.NewLedgerRepository(db), nil

	default:
		pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
			DatabaseURL:    cfg.DatabaseURL,
			MaxConns:       cfg.DatabaseMaxConns,
			MinConns:       cfg.DatabaseMinConns,
			ConnectTimeout: cfg.DatabaseTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		checks["postgres"] = pool

		txManager := postgresRepo.NewTxManager(pool, postgresRepo.NewRetrier(postgresRepo.DefaultRetryConfig(), logg))
		migrator := postgres.NewMigrator(cfg.DatabaseURL, logg)

		return postgresRepo.NewLedgerRepository(pool, txManager, migrator), nil
	}
}

func openPendingStore(ctx context.Context, cfg *config.Config, a *app, checks map[string]handler.Checker) (usecase.PendingStore, usecase.MessageDeduplicator, error) {
	if cfg.PendingDriver != config.PendingDriverRedis {
		return memoryRepo.NewPendingStore(), memoryRepo.NewMessageDeduplicator(), nil
	}

	client, err := redis.NewClient(ctx, redis.Config{URL: cfg.RedisURL})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	a.closers = append(a.closers, func() { client.Close() })
	checks["redis"] = redis.NewPinger(client)

	return redisRepo.NewPendingStore(client, cfg.PendingTTL), redisRepo.NewMessageDeduplicator(client), nil
}

func sweepLimiter(ctx context.Context, limiter *apimiddleware.RateLimiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.Sweep(10 * time.Minute)
		}
	}
}
