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

	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/walletledger/internal/adapter/http"
	"github.com/iho/walletledger/internal/adapter/http/handler"
	"github.com/iho/walletledger/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/walletledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/walletledger/internal/adapter/repository/redis"
	"github.com/iho/walletledger/internal/infrastructure/config"
	"github.com/iho/walletledger/internal/infrastructure/eventpublisher"
	"github.com/iho/walletledger/internal/infrastructure/logger"
	"github.com/iho/walletledger/internal/infrastructure/logging"
	"github.com/iho/walletledger/internal/infrastructure/metrics"
	"github.com/iho/walletledger/internal/infrastructure/postgres"
	"github.com/iho/walletledger/internal/infrastructure/redis"
	"github.com/iho/walletledger/internal/usecase"
)

const (
	limiterCleanupInterval = time.Minute
	limiterIdleTimeout     = 10 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	slogger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat).Logger

	if cfg.MigrateOnStart {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		log.Info().Str("path", cfg.MigrationsPath).Msg("migrations applied")
	}

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Redis only backs the fast paths; the ledger keeps working without it.
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, idempotency cache and event channel disabled")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("connected to redis")
	}

	converter, err := newConverter(cfg)
	if err != nil {
		return err
	}

	m := metrics.New()

	var outboxRepo usecase.OutboxRepository = postgresRepo.NewOutboxRepository(pool)
	if !cfg.OutboxEnabled {
		outboxRepo = postgresRepo.NewNullOutboxRepository()
	}

	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrierWithConfig(postgresRepo.RetrierConfig{
		MaxRetries:      cfg.TxMaxRetries,
		InitialInterval: cfg.TxRetryInitialInterval,
		MaxInterval:     cfg.TxRetryMaxInterval,
		MaxElapsedTime:  cfg.TxRetryMaxElapsed,
		Logger:          slogger,
	})

	txCfg := usecase.TransactionUseCaseConfig{
		TxManager:       txManager,
		AccountRepo:     accountRepo,
		TransactionRepo: postgresRepo.NewTransactionRepository(),
		EntryRepo:       postgresRepo.NewLedgerEntryRepository(),
		TypeRepo:        postgresRepo.NewTransactionTypeRepository(),
		OutboxRepo:      outboxRepo,
		Converter:       converter,
		Retrier:         retrier,
		IDGen:           idGen,
		Metrics:         m,
		Logger:          log,
		TxTimeout:       cfg.TxTimeout,
		ResultCacheTTL:  cfg.ResultCacheTTL,
	}
	if redisClient != nil {
		txCfg.ResultCache = redisRepo.NewCache(redisClient)
	}

	transactionUC := usecase.NewTransactionUseCase(txCfg)
	accountUC := usecase.NewAccountUseCase(usecase.AccountUseCaseConfig{
		TxManager:   txManager,
		AccountRepo: accountRepo,
		SoftDeleter: postgresRepo.NewSoftDeleter(),
		OutboxRepo:  outboxRepo,
		IDGen:       idGen,
		Metrics:     m,
	})
	ledgerUC := usecase.NewLedgerUseCase(postgresRepo.NewLedgerRepository(pool))

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	limiter.OnLimited = m.RateLimited
	go limiter.RunCleanup(ctx, limiterCleanupInterval, limiterIdleTimeout)

	routerCfg := httpAdapter.RouterConfig{
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		AccountHandler:     handler.NewAccountHandler(accountUC),
		LedgerHandler:      handler.NewLedgerHandler(ledgerUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		IdempotencyTTL:     cfg.IdempotencyTTL,
		RateLimiter:        limiter,
		MetricsHandler:     promhttp.Handler(),
		Logger:             log,
	}
	if redisClient != nil {
		routerCfg.IdempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
	}

	if cfg.OutboxEnabled {
		relay := eventpublisher.NewEventPublisher(eventpublisher.Config{
			OutboxRepo: outboxRepo,
			Publisher:  newPublisher(redisClient, cfg.OutboxChannel, slogger),
			Logger:     slogger,
			BatchSize:  cfg.OutboxBatchSize,
			Interval:   cfg.OutboxPollInterval,
			Retention:  cfg.OutboxRetention,
			Metrics:    m,
		})
		go func() {
			if err := relay.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("event publisher stopped")
			}
		}()
	}

	server := newServer(cfg, httpAdapter.NewRouter(routerCfg))

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

func newConverter(cfg *config.Config) (*usecase.CurrencyConverter, error) {
	rates := cfg.CurrencyRates
	if len(rates) == 0 {
		rates = usecase.DefaultRates()
	}

	converter, err := usecase.NewCurrencyConverter(cfg.BaseCurrency, rates)
	if err != nil {
		return nil, fmt.Errorf("currency rates: %w", err)
	}
	return converter, nil
}

func newPublisher(client *goredis.Client, channel string, slogger *slog.Logger) eventpublisher.Publisher {
	if client == nil {
		return eventpublisher.NewLogPublisher(slogger)
	}
	return eventpublisher.NewRedisPublisher(client, channel)
}

func newServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      h,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
}
