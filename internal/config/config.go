package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Storyreel backend
	BackendBaseURL string
	BackendToken   string

	// Supabase (project metadata + seed image uploads)
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseProjectTable   string
	SupabaseSeedBucket     string

	// Recovery
	ResyncInterval time.Duration

	Environment string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// No .env file is fine; plain env vars still apply.
		Log.Debug("no .env file found")
	}

	resync, err := time.ParseDuration(getEnv("STORYREEL_RESYNC_INTERVAL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORYREEL_RESYNC_INTERVAL: %w", err)
	}

	cfg := &Config{
		BackendBaseURL: getEnv("STORYREEL_API_URL", "http://localhost:8080"),
		BackendToken:   getEnv("STORYREEL_API_TOKEN", ""),

		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseProjectTable:   getEnv("SUPABASE_PROJECT_TABLE", "projects"),
		SupabaseSeedBucket:     getEnv("SUPABASE_SEED_BUCKET", "seed-images"),

		ResyncInterval: resync,

		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.BackendBaseURL == "" {
		return fmt.Errorf("STORYREEL_API_URL is required")
	}
	if c.BackendToken == "" {
		return fmt.Errorf("STORYREEL_API_TOKEN is required")
	}
	if c.ResyncInterval < time.Second {
		return fmt.Errorf("STORYREEL_RESYNC_INTERVAL must be at least 1s")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
