package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LLM_ENDPOINT", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level, got %s", cfg.LogLevel)
	}
	if cfg.LLMEndpoint != "" {
		t.Fatalf("expected default llm endpoint empty, got %s", cfg.LLMEndpoint)
	}
	if cfg.LLMTimeout != 10*time.Second {
		t.Fatalf("expected default llm timeout, got %s", cfg.LLMTimeout)
	}
	if !cfg.SeedEnabled {
		t.Fatalf("expected demo seeding enabled by default")
	}
	if cfg.PatientCount != 35 {
		t.Fatalf("expected default patient count, got %d", cfg.PatientCount)
	}
	if cfg.RateLimitPerMinute != 60 {
		t.Fatalf("expected default rate limit, got %d", cfg.RateLimitPerMinute)
	}
	if cfg.CapabilityRateLimitPerMinute != 240 {
		t.Fatalf("expected default capability rate limit, got %d", cfg.CapabilityRateLimitPerMinute)
	}
	if cfg.DryRunDefault {
		t.Fatalf("expected dry run disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ADMIN_JWT_SECRET", "topsecret")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "120")
	t.Setenv("SEED_DEMO_DATA", "false")
	t.Setenv("SEED_PATIENT_COUNT", "10")
	t.Setenv("LLM_ENDPOINT", "https://llm.internal/generate")
	t.Setenv("LLM_TIMEOUT", "30s")
	t.Setenv("DRY_RUN_DEFAULT", "true")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected env override, got %s", cfg.Env)
	}
	if cfg.AdminJWTSecret != "topsecret" {
		t.Fatalf("expected admin secret override, got %s", cfg.AdminJWTSecret)
	}
	if cfg.RateLimitPerMinute != 120 {
		t.Fatalf("expected rate limit override, got %d", cfg.RateLimitPerMinute)
	}
	if cfg.SeedEnabled {
		t.Fatalf("expected seeding disabled")
	}
	if cfg.PatientCount != 10 {
		t.Fatalf("expected patient count override, got %d", cfg.PatientCount)
	}
	if cfg.LLMEndpoint != "https://llm.internal/generate" {
		t.Fatalf("expected llm endpoint override, got %s", cfg.LLMEndpoint)
	}
	if cfg.LLMTimeout != 30*time.Second {
		t.Fatalf("expected llm timeout override, got %s", cfg.LLMTimeout)
	}
	if !cfg.DryRunDefault {
		t.Fatalf("expected dry run default enabled")
	}
}
