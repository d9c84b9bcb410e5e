package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Admin API authentication
	AdminJWTSecret string

	// Per-IP rate limits. The agent endpoint gets its own budget;
	// capability endpoints get a higher one since each agent request
	// translates to several capability calls.
	RateLimitPerMinute           int
	RateLimitBurst               int
	CapabilityRateLimitPerMinute int

	// Demo dataset seeding
	SeedEnabled  bool
	SeedValue    int
	PatientCount int

	// Advisory language model endpoint. Optional; the engine runs
	// deterministically without it.
	LLMEndpoint  string
	LLMAuthToken string
	LLMTimeout   time.Duration

	// Engine behavior
	DryRunDefault bool
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:                         getEnv("PORT", "8080"),
		Env:                          getEnv("ENV", "development"),
		LogLevel:                     getEnv("LOG_LEVEL", "info"),
		AdminJWTSecret:               getEnv("ADMIN_JWT_SECRET", ""),
		RateLimitPerMinute:           getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		RateLimitBurst:               getEnvAsInt("RATE_LIMIT_BURST", 10),
		CapabilityRateLimitPerMinute: getEnvAsInt("CAPABILITY_RATE_LIMIT_PER_MINUTE", 240),
		SeedEnabled:                  getEnvAsBool("SEED_DEMO_DATA", true),
		SeedValue:                    getEnvAsInt("SEED_VALUE", 1),
		PatientCount:                 getEnvAsInt("SEED_PATIENT_COUNT", 35),
		LLMEndpoint:                  getEnv("LLM_ENDPOINT", ""),
		LLMAuthToken:                 getEnv("LLM_AUTH_TOKEN", ""),
		LLMTimeout:                   getEnvAsDuration("LLM_TIMEOUT", 10*time.Second),
		DryRunDefault:                getEnvAsBool("DRY_RUN_DEFAULT", false),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
