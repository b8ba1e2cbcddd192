package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/iho/gobalance/internal/adapter/consumer"
	httpAdapter "github.com/iho/gobalance/internal/adapter/http"
	"github.com/iho/gobalance/internal/adapter/http/handler"
	"github.com/iho/gobalance/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/gobalance/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/gobalance/internal/adapter/repository/redis"
	"github.com/iho/gobalance/internal/infrastructure/config"
	"github.com/iho/gobalance/internal/infrastructure/eventpublisher"
	"github.com/iho/gobalance/internal/infrastructure/logger"
	"github.com/iho/gobalance/internal/infrastructure/metrics"
	"github.com/iho/gobalance/internal/infrastructure/postgres"
	"github.com/iho/gobalance/internal/infrastructure/redis"
	"github.com/iho/gobalance/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns, cfg.DatabaseTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis. The cache is optional: without it every read goes
	// to the store, correctness is unaffected.
	var cache usecase.Cache
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, running without cache")
		redisClient = nil
	} else {
		defer redisClient.Close()
		cache = redisRepo.NewCache(redisClient)
		log.Info().Msg("connected to redis")
	}

	m := metrics.New()

	// Repositories
	entryRepo := postgresRepo.NewEntryRepository(pool)
	balanceRepo := postgresRepo.NewBalanceRepository(pool)
	snapshotRepo := postgresRepo.NewSnapshotRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()

	// Event publishing
	publisher := eventpublisher.NewKafkaPublisher(eventpublisher.Config{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
		Logger:  log,
	})
	defer publisher.Close()

	// Use cases
	consolidationUC := usecase.NewConsolidationUseCase(usecase.ConsolidationConfig{
		EntryRepo:          entryRepo,
		BalanceRepo:        balanceRepo,
		Cache:              cache,
		Logger:             log,
		Metrics:            m,
		Environment:        cfg.Environment,
		BalanceTTL:         cfg.BalanceCacheTTL,
		CascadeDays:        cfg.CascadeMaxDays,
		PropagateEmptyDays: cfg.CascadePropagateGaps,
	})
	reportUC := usecase.NewReportUseCase(usecase.ReportConfig{
		Balances:    consolidationUC,
		Cache:       cache,
		Snapshots:   snapshotRepo,
		Logger:      log,
		Metrics:     m,
		Environment: cfg.Environment,
		ReportTTL:   cfg.ReportCacheTTL,
	})
	entryUC := usecase.NewEntryUseCase(entryRepo, idGen, publisher, log, m)

	// Event consumer
	entryConsumer := consumer.New(consumer.Config{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
		GroupID: cfg.KafkaGroupID,
		Handler: consolidationUC,
		Logger:  log,
		Metrics: m,
	})
	defer entryConsumer.Close()

	consumerCtx, stopConsumer := context.WithCancel(ctx)
	defer stopConsumer()
	go func() {
		if err := entryConsumer.Run(consumerCtx); err != nil && consumerCtx.Err() == nil {
			log.Error().Err(err).Msg("consumer stopped")
		}
	}()

	// HTTP surface
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		BalanceHandler: handler.NewBalanceHandler(consolidationUC),
		ReportHandler:  handler.NewReportHandler(reportUC),
		EntryHandler:   handler.NewEntryHandler(entryUC),
		HealthHandler:  handler.NewHealthHandler(pool, redisClient),
		Logging:        middleware.NewLoggingMiddleware(log),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	stopConsumer()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
