package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-lifecycle-bridge/internal/adapter"
	"github.com/feral-file/ff-lifecycle-bridge/internal/config"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger/schema"
	"github.com/feral-file/ff-lifecycle-bridge/internal/logger"
	"github.com/feral-file/ff-lifecycle-bridge/internal/metrics"
	"github.com/feral-file/ff-lifecycle-bridge/internal/store"
	"github.com/feral-file/ff-lifecycle-bridge/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Service:         "lifecycle-sweeper",
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Sweeper")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), store.GormConfig(nil))
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)
	dataStore := store.NewPGStore(db)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	clock := adapter.NewClock()
	ledgerClient := mustLedgerClient(ctx, &cfg.Ledger, clock, m)
	defer ledgerClient.Close()

	sweepers := []sweeper.Sweeper{
		sweeper.NewOrphanSweeper(&sweeper.OrphanSweeperConfig{
			BatchSize:      cfg.OrphanSweeper.BatchSize,
			WorkerPoolSize: cfg.OrphanSweeper.Worker.WorkerPoolSize,
			MaxAttempts:    cfg.OrphanSweeper.MaxAttempts,
			Interval:       cfg.OrphanSweeper.Interval,
			RetryInterval:  time.Second,
		}, dataStore, ledgerClient, clock, m),
	}
	logger.InfoCtx(ctx, "Initialized ledger orphan sweeper",
		zap.Int("batch_size", cfg.OrphanSweeper.BatchSize),
		zap.Int("worker_pool_size", cfg.OrphanSweeper.Worker.WorkerPoolSize),
		zap.Int("max_attempts", cfg.OrphanSweeper.MaxAttempts),
	)

	if cfg.DriftSweeper.Enabled {
		sweepers = append(sweepers, sweeper.NewDriftSweeper(&sweeper.DriftSweeperConfig{
			BatchSize: cfg.DriftSweeper.BatchSize,
			Interval:  cfg.DriftSweeper.Interval,
		}, dataStore, ledgerClient, clock, m))
		logger.InfoCtx(ctx, "Initialized index drift sweeper",
			zap.Int("batch_size", cfg.DriftSweeper.BatchSize),
			zap.Duration("interval", cfg.DriftSweeper.Interval),
		)
	}

	// Metrics endpoint
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, len(sweepers)+1)
	go func() {
		logger.InfoCtx(ctx, "Metrics server listening", zap.String("address", cfg.MetricsAddress))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("metrics server: %w", err)
		}
	}()

	var wg sync.WaitGroup
	for _, s := range sweepers {
		wg.Add(1)
		go func(s sweeper.Sweeper) {
			defer wg.Done()
			if err := s.Start(ctx); err != nil {
				errChan <- fmt.Errorf("%s: %w", s.Name(), err)
			}
		}(s)
	}

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop the sweepers
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Ledger.ConfirmationTimeout)
	defer shutdownCancel()

	for _, s := range sweepers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.ErrorCtx(shutdownCtx, err, zap.String("sweeper", s.Name()))
		}
	}
	wg.Wait()

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", "metrics"))
	}

	logger.InfoCtx(shutdownCtx, "Sweeper stopped")
}

func mustLedgerClient(ctx context.Context, cfg *config.LedgerConfig, clock adapter.Clock, m *metrics.Metrics) ledger.Client {
	addresses, err := cfg.ContractAddresses()
	if err != nil {
		logger.FatalCtx(ctx, "Invalid contract addresses", zap.Error(err))
	}
	registry, err := schema.Load(addresses)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load contract schemas", zap.Error(err))
	}

	eth, err := adapter.NewEthClientDialer().Dial(ctx, cfg.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to ledger", zap.Error(err), zap.String("rpc_url", cfg.RPCURL))
	}

	client, err := ledger.NewClient(ledger.Config{
		ChainID:             cfg.ChainID,
		PrivateKey:          cfg.PrivateKey,
		ConfirmationTimeout: cfg.ConfirmationTimeout,
		PollInterval:        cfg.PollInterval,
	}, eth, registry, clock, m)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create ledger client", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to ledger", zap.String("signer", client.Address().Hex()))

	return client
}
