package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"custody-broker/config"
	"custody-broker/internal/adapter/custodian"
	"custody-broker/internal/adapter/custodian/anchorage"
	"custody-broker/internal/adapter/custodian/bitgo"
	"custody-broker/internal/adapter/custodian/fireblocks"
	httpHandler "custody-broker/internal/adapter/http/handler"
	pgStorage "custody-broker/internal/adapter/storage/postgres"
	redisStorage "custody-broker/internal/adapter/storage/redis"
	"custody-broker/internal/core/domain"
	"custody-broker/internal/core/ports"
	"custody-broker/internal/service"
	"custody-broker/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Custody Broker")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// Initialize repositories
	connRepo := pgStorage.NewConnectionRepo(pool)
	walletRepo := pgStorage.NewWalletRepo(pool)
	accountRepo := pgStorage.NewAccountRepo(pool)
	addressRepo := pgStorage.NewAddressRepo(pool)
	kdRepo := pgStorage.NewKnownDestinationRepo(pool)
	transferRepo := pgStorage.NewTransferRepo(pool)
	syncRepo := pgStorage.NewSyncRepo(pool)
	idempStore := redisStorage.NewIdempotencyStore(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize provider adapters over a shared outbound transport
	httpClient := &http.Client{Timeout: cfg.Providers.HTTPTimeout}
	syncWidth := cfg.Providers.SyncWidth

	anchorageAdapter := anchorage.NewAdapter(anchorage.NewClient(httpClient), syncWidth)
	fireblocksAdapter := fireblocks.NewAdapter(fireblocks.NewClient(httpClient), syncWidth)
	bitgoAdapter := bitgo.NewAdapter(bitgo.NewClient(httpClient), syncWidth)

	adapters := custodian.NewRegistry()
	adapters.Register(domain.ProviderAnchorage, custodian.Capabilities{
		Sync:              anchorageAdapter,
		Transfer:          anchorageAdapter,
		KnownDestinations: anchorageAdapter,
		Proxy:             anchorageAdapter,
	})
	adapters.Register(domain.ProviderFireblocks, custodian.Capabilities{
		Sync:              fireblocksAdapter,
		Transfer:          fireblocksAdapter,
		KnownDestinations: fireblocksAdapter,
		Proxy:             fireblocksAdapter,
	})
	// BitGo has no raw-request surface; Proxy stays nil.
	adapters.Register(domain.ProviderBitGo, custodian.Capabilities{
		Sync:              bitgoAdapter,
		Transfer:          bitgoAdapter,
		KnownDestinations: bitgoAdapter,
	})

	// Initialize core services
	cipher, err := service.NewAESCredentialCipher(cfg.Cipher.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize credential cipher")
	}
	registry := service.NewConnectionService(connRepo, cipher, map[domain.Provider]string{
		domain.ProviderAnchorage:  cfg.Providers.Anchorage.BaseURL,
		domain.ProviderFireblocks: cfg.Providers.Fireblocks.BaseURL,
		domain.ProviderBitGo:      cfg.Providers.BitGo.BaseURL,
	})
	syncSvc := service.NewSyncService(registry, adapters, walletRepo, accountRepo, addressRepo, kdRepo, syncRepo, log)
	transferSvc := service.NewTransferService(registry, adapters, walletRepo, accountRepo, addressRepo, transferRepo, idempStore, log)
	destSvc := service.NewKnownDestinationService(registry, adapters)
	proxySvc := service.NewProxyService(registry, adapters, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Registry:       registry,
		SyncSvc:        syncSvc,
		TransferSvc:    transferSvc,
		DestinationSvc: destSvc,
		ProxySvc:       proxySvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
