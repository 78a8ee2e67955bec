package config

import (
	"os"
	"strings"
	"time"
)

// Config keeps runtime settings for the worker.
type Config struct {
	DatabaseURL    string
	BaseURL        string
	ClientTimezone string
	SweepInterval  time.Duration
	Email          EmailConfig
}

// EmailConfig holds SMTP delivery settings.
type EmailConfig struct {
	Host      string
	Port      string
	User      string
	Pass      string
	FromEmail string
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		BaseURL:        strings.TrimSpace(os.Getenv("BASE_URL")),
		ClientTimezone: strings.TrimSpace(os.Getenv("CLIENT_TIMEZONE")),
		SweepInterval:  parseMinutes(strings.TrimSpace(os.Getenv("SWEEP_INTERVAL_MINUTES"))),
		Email: EmailConfig{
			Host:      strings.TrimSpace(os.Getenv("SMTP_HOST")),
			Port:      getEnv("SMTP_PORT", "587"),
			User:      strings.TrimSpace(os.Getenv("SMTP_USER")),
			Pass:      os.Getenv("SMTP_PASS"),
			FromEmail: strings.TrimSpace(os.Getenv("FROM_EMAIL")),
		},
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "taskboard.db"
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}

	// Client timestamps arrive without timezone context; this is the fixed
	// interpretation applied at every entry point.
	if cfg.ClientTimezone == "" {
		cfg.ClientTimezone = "Asia/Jakarta"
	}

	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = 5 * time.Minute
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseMinutes(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	minutes, err := time.ParseDuration(raw + "m")
	if err != nil || minutes <= 0 {
		return 0
	}
	return minutes
}
