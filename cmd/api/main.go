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

	"secure-bank-console/config"
	"secure-bank-console/internal/adapter/bankapi"
	httpHandler "secure-bank-console/internal/adapter/http/handler"
	"secure-bank-console/internal/adapter/identity"
	pgStorage "secure-bank-console/internal/adapter/storage/postgres"
	redisStorage "secure-bank-console/internal/adapter/storage/redis"
	"secure-bank-console/internal/core/ports"
	"secure-bank-console/internal/service"
	"secure-bank-console/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("SBC_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("backend", cfg.Backend.BaseURL).
		Msg("Starting Secure Bank Console")

	ctx := context.Background()

	// PostgreSQL holds the audit trail only.
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	if err := pgStorage.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare audit schema")
	}
	log.Info().Msg("PostgreSQL connected")

	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Stores
	wizardStore := redisStorage.NewWizardStore(rdb, cfg.Wizard.TTL)
	revocationStore := redisStorage.NewRevocationStore(rdb)
	auditRepo := pgStorage.NewAuditRepository(pool)

	var rateLimitStore *redisStorage.RateLimitStore
	if cfg.Server.RateLimit {
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
	}

	// Outbound adapters
	bank := bankapi.NewClient(cfg.Backend, logger.Component(log, "bankapi"))
	idp, err := identity.NewKeycloakProvider(cfg.Identity, revocationStore, logger.Component(log, "identity"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize identity provider")
	}

	// Services
	svcLog := logger.Component(log, "service")
	auditSvc := service.NewAuditService(auditRepo, svcLog)
	wizardSvc := service.NewWizardService(wizardStore, bank, bank, cfg.Wizard, svcLog)
	customerSvc := service.NewCustomerService(bank, svcLog)
	accountSvc := service.NewAccountService(bank, bank, svcLog)
	freezeSvc := service.NewFreezeService(bank, svcLog)
	reportSvc := service.NewReportService(bank, svcLog)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Identity:       idp,
		WizardSvc:      wizardSvc,
		CustomerSvc:    customerSvc,
		AccountSvc:     accountSvc,
		FreezeSvc:      freezeSvc,
		ReportSvc:      reportSvc,
		AuditSvc:       auditSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{
			pgStorage.NewHealthCheck(pool),
			redisStorage.NewHealthCheck(rdb),
			bankapi.NewHealthCheck(bank),
		},
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Mode:         cfg.Server.Mode,
		Logger:       log,
	})

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

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
