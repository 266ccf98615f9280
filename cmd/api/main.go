package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-lifecycle-bridge/internal/adapter"
	"github.com/feral-file/ff-lifecycle-bridge/internal/api/rest"
	"github.com/feral-file/ff-lifecycle-bridge/internal/api/server"
	"github.com/feral-file/ff-lifecycle-bridge/internal/auth"
	"github.com/feral-file/ff-lifecycle-bridge/internal/config"
	"github.com/feral-file/ff-lifecycle-bridge/internal/identity"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger/schema"
	"github.com/feral-file/ff-lifecycle-bridge/internal/lifecycle"
	"github.com/feral-file/ff-lifecycle-bridge/internal/logger"
	"github.com/feral-file/ff-lifecycle-bridge/internal/messaging"
	"github.com/feral-file/ff-lifecycle-bridge/internal/metrics"
	"github.com/feral-file/ff-lifecycle-bridge/internal/providers/jetstream"
	"github.com/feral-file/ff-lifecycle-bridge/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Service:         "lifecycle-api",
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting lifecycle API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), store.GormConfig(nil))
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	if err := store.Migrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)
	dataStore := store.NewPGStore(db)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Connect to the ledger
	clock := adapter.NewClock()
	ledgerClient := mustLedgerClient(ctx, &cfg.Ledger, clock, m)
	defer ledgerClient.Close()

	// Publisher; an empty URL disables event publishing
	var publisher messaging.Publisher = messaging.NopPublisher{}
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), adapter.NewJSON())
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("stream", cfg.NATS.StreamName))
	} else {
		logger.WarnCtx(ctx, "NATS URL not configured, lifecycle events will not be published")
	}
	defer publisher.Close()

	// Identity
	verifier, err := auth.NewJWTVerifier(auth.Config{
		JWTPublicKey: cfg.Auth.JWTPublicKey,
		Issuer:       cfg.Auth.Issuer,
		Audience:     cfg.Auth.Audience,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create credential verifier", zap.Error(err))
	}
	authorizer, err := auth.NewAuthorizer()
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create authorizer", zap.Error(err))
	}
	allocator := identity.NewAllocator(identity.Config{
		MaxAttempts: cfg.Identity.MaxAttempts,
		ChainID:     cfg.Ledger.ChainID,
	}, dataStore, nil)

	svc := lifecycle.NewService(lifecycle.Config{
		ChunkSize:       cfg.Lifecycle.ChunkSize,
		ListConcurrency: cfg.Lifecycle.ListConcurrency,
	}, ledgerClient, dataStore, verifier, authorizer, publisher, clock, m)

	handler := rest.NewHandler(svc, allocator, verifier, authorizer, dataStore)

	srv := server.New(server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, handler, registry)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// In-flight sagas may be waiting on ledger confirmations
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Ledger.ConfirmationTimeout)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, fmt.Errorf("server forced to shutdown: %w", err))
	}

	logger.Info("Lifecycle API stopped")
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
	chainID, err := eth.ChainID(ctx)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to get ledger chain id", zap.Error(err))
	}
	if chainID.Int64() != cfg.ChainID {
		logger.FatalCtx(ctx, "Ledger chain id mismatch",
			zap.Int64("configured", cfg.ChainID),
			zap.Int64("node", chainID.Int64()))
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
	logger.InfoCtx(ctx, "Connected to ledger",
		zap.String("rpc_url", cfg.RPCURL),
		zap.String("signer", client.Address().Hex()))

	return client
}
