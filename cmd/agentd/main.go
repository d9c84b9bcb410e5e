package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arogyalabs/clinicflow/internal/agent"
	"github.com/arogyalabs/clinicflow/internal/api/router"
	"github.com/arogyalabs/clinicflow/internal/capability"
	"github.com/arogyalabs/clinicflow/internal/clinicdata"
	"github.com/arogyalabs/clinicflow/internal/compliance"
	"github.com/arogyalabs/clinicflow/internal/config"
	"github.com/arogyalabs/clinicflow/internal/http/handlers"
	httpmiddleware "github.com/arogyalabs/clinicflow/internal/http/middleware"
	"github.com/arogyalabs/clinicflow/internal/llm"
	"github.com/arogyalabs/clinicflow/internal/observability/metrics"
	"github.com/arogyalabs/clinicflow/pkg/logging"
)

func main() {
	// Load .env file; absence is fine in deployed environments.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clinicflow API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	store := clinicdata.NewStore()
	if cfg.SeedEnabled {
		if err := clinicdata.Seed(store, clinicdata.SeedOptions{
			Seed:         int64(cfg.SeedValue),
			PatientCount: cfg.PatientCount,
		}); err != nil {
			logger.Error("failed to seed demo data", "error", err)
			os.Exit(1)
		}
		stats := store.Stats()
		logger.Info("demo data seeded",
			"patients", stats.Patients,
			"available_slots", stats.AvailableSlots,
		)
	}

	registry := prometheus.NewRegistry()
	engineMetrics := metrics.NewEngineMetrics(registry)

	recorder := compliance.NewRecorder()
	caps := capability.NewService(store, logger, engineMetrics)
	engine := agent.New(agent.Options{
		Capabilities: caps,
		Audit:        recorder,
		Logger:       logger,
		Metrics:      engineMetrics,
	})

	var advisor handlers.Advisor
	if cfg.LLMEndpoint != "" {
		client, err := llm.NewAdvisorClient(llm.Config{
			Endpoint:  cfg.LLMEndpoint,
			AuthToken: cfg.LLMAuthToken,
			Timeout:   cfg.LLMTimeout,
		})
		if err != nil {
			logger.Warn("advisory client disabled", "error", err)
		} else {
			advisor = client
			logger.Info("advisory client enabled", "endpoint", cfg.LLMEndpoint)
		}
	}

	r := router.New(&router.Config{
		Logger:            logger,
		AgentHandler:      handlers.NewAgentHandler(engine, advisor, compliance.DisclaimerMedium, logger),
		CapabilityHandler: handlers.NewCapabilityHandler(caps, logger),
		AuditHandler:      handlers.NewAuditHandler(recorder),
		StatsHandler:      handlers.NewStatsHandler(store),
		AdminAuthSecret:   cfg.AdminJWTSecret,
		MetricsHandler:    promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		AgentRateLimit: httpmiddleware.Limit{
			PerMinute: cfg.RateLimitPerMinute,
			Burst:     cfg.RateLimitBurst,
		},
		CapabilityRateLimit: httpmiddleware.Limit{
			PerMinute: cfg.CapabilityRateLimitPerMinute,
		},
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
