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

	"agent-payment-engine/config"
	"agent-payment-engine/internal/adapter/chain"
	httpHandler "agent-payment-engine/internal/adapter/http/handler"
	memStorage "agent-payment-engine/internal/adapter/storage/memory"
	pgStorage "agent-payment-engine/internal/adapter/storage/postgres"
	redisStorage "agent-payment-engine/internal/adapter/storage/redis"
	"agent-payment-engine/internal/core/ports"
	"agent-payment-engine/internal/metrics"
	"agent-payment-engine/internal/service"
	"agent-payment-engine/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	sessionSweepInterval = time.Minute
	noncePruneInterval   = 5 * time.Minute
	poolStatsInterval    = 15 * time.Second
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("AGP_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Int64("chain_id", cfg.Chain.ChainID).
		Str("ledger", cfg.Ledger.Driver).
		Msg("Starting Agent Payment Engine")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("jwt.secret must be set")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var checkers []ports.HealthChecker

	// Ledger Store: PostgreSQL, or in-memory when configured or unreachable.
	var (
		ledger    ports.LedgerStore
		auditRepo ports.AuditRepository
		poolStats metrics.PoolStater
	)
	if cfg.Ledger.Driver == "postgres" {
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Warn().Err(err).Msg("PostgreSQL unavailable, falling back to in-memory ledger")
		} else {
			defer pool.Close()
			if err := pgStorage.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("Failed to apply database schema")
			}
			ledger = pgStorage.NewLedgerStore(pool)
			auditRepo = pgStorage.NewAuditRepository(pool)
			poolStats = pool
			checkers = append(checkers, pgStorage.NewHealthCheck(pool))
		}
	}
	if ledger == nil {
		ledger = memStorage.NewLedgerStore()
		log.Warn().Msg("Using in-memory ledger; payment history will not survive a restart")
	}

	// Replay protection and rate limiting: Redis, or process-local nonces.
	var (
		nonceStore  ports.NonceStore
		rateLimiter ports.RateLimiter
	)
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, using in-memory nonce store and disabling rate limits")
		memNonces := memStorage.NewNonceStore()
		go pruneNonces(ctx, memNonces, log)
		nonceStore = memNonces
	} else {
		defer rdb.Close()
		nonceStore = redisStorage.NewNonceStore(rdb)
		rateLimiter = redisStorage.NewRateLimitStore(rdb)
		checkers = append(checkers, redisStorage.NewHealthCheck(rdb))
	}

	// Chain gateway and dispatcher
	signer, err := service.NewSignatureService(cfg.Chain.SignerKey, cfg.Payment.IntentTTL, logger.Component(log, "signature"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load signer key")
	}
	ethClient, err := chain.Dial(ctx, cfg.Chain.RPCURL)
	if err != nil {
		log.Fatal().Err(err).Str("rpc_url", cfg.Chain.RPCURL).Msg("Failed to connect to chain RPC")
	}
	defer ethClient.Close()

	gateway := chain.NewGateway(ethClient, logger.Component(log, "chain"))
	dispatcher, err := chain.NewDispatcher(ethClient, gateway, signer.PrivateKey(), chain.DispatcherConfig{
		ChainID:             cfg.Chain.ChainID,
		SwapRouter:          cfg.Chain.SwapRouter,
		ConfirmationTimeout: cfg.Chain.ConfirmationTimeout,
	}, logger.Component(log, "dispatcher"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize action dispatcher")
	}

	// Core services
	policySvc := service.NewPolicyService(ledger, gateway, logger.Component(log, "policy"))
	riskSvc := service.NewRiskAssessmentService(ledger, gateway, policySvc, logger.Component(log, "risk"))
	paymentSvc := service.NewPaymentService(
		policySvc,
		signer,
		riskSvc,
		gateway,
		dispatcher,
		ledger,
		nonceStore,
		cfg.Payment.SessionTTL,
		cfg.Chain.ExecutionTimeout,
		logger.Component(log, "payment"),
	)
	historySvc := service.NewHistoryService(ledger)
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	authSvc := service.NewAuthService(tokenSvc, nonceStore, logger.Component(log, "auth"))
	auditSvc := service.NewAuditService(auditRepo, logger.Component(log, "audit"))

	log.Info().Str("agent", signer.SignerAddress()).Msg("Payment signer ready")

	// Background sweeps
	go policySvc.RunTrackingSweeper(ctx, cfg.Policy.SweepInterval)
	go paymentSvc.RunSessionSweeper(ctx, sessionSweepInterval)
	go metrics.StartPoolStatsCollector(ctx, poolStats, poolStatsInterval)

	openAPI, err := os.ReadFile("docs/api/openapi.yaml")
	if err != nil {
		log.Warn().Err(err).Msg("OpenAPI document not found, /swagger disabled")
	}

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		PaymentSvc:     paymentSvc,
		SignatureSvc:   signer,
		PolicySvc:      policySvc,
		RiskSvc:        riskSvc,
		HistorySvc:     historySvc,
		TokenSvc:       tokenSvc,
		RateLimiter:    rateLimiter,
		HealthCheckers: checkers,
		AuditSvc:       auditSvc,
		AdminAddresses: cfg.Admin.Addresses,
		OpenAPISpec:    openAPI,
		Logger:         logger.Component(log, "http"),
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")
	stop()

	// In-flight executions may wait on chain confirmation.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Chain.ExecutionTimeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func pruneNonces(ctx context.Context, store *memStorage.NonceStore, log zerolog.Logger) {
	ticker := time.NewTicker(noncePruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Prune(); n > 0 {
				log.Debug().Int("removed", n).Msg("pruned expired nonces")
			}
		}
	}
}
