package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Storage driver constants.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all runtime settings, read from the environment with an
// optional .env overlay.
type Config struct {
	Addr        string
	Env         string // development, production
	DBDriver    string // sqlite, postgres
	SQLitePath  string
	PostgresDSN string

	AdminEmail    string
	AdminPassword string

	ResendKey  string
	EmailFrom  string
	EmailReply string

	CSRFKeyHex string
	JWTSecret  string
	BaseURL    string // external URL used in emailed links
}

// Load reads configuration from .env (when present) and the environment.
// PRE: process environment is accessible
// POST: Returns a Config with defaults applied, or an error for missing
// required settings
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err == nil {
		slog.Info("config_loaded", "source", ".env")
	}

	cfg := &Config{
		Addr:        envOrDefault("ADVISORY_ADDR", ":8080"),
		Env:         envOrDefault("ADVISORY_ENV", "development"),
		DBDriver:    envOrDefault("ADVISORY_DB_DRIVER", DriverSQLite),
		SQLitePath:  envOrDefault("ADVISORY_SQLITE_PATH", "advisory.db"),
		PostgresDSN: os.Getenv("ADVISORY_POSTGRES_DSN"),

		AdminEmail:    envOrDefault("ADVISORY_ADMIN_EMAIL", "admin@advisoria.local"),
		AdminPassword: envOrDefault("ADVISORY_ADMIN_PASSWORD", "cambiame"),

		ResendKey:  os.Getenv("ADVISORY_RESEND_KEY"),
		EmailFrom:  envOrDefault("ADVISORY_RESEND_FROM", "Plataforma Estudiantil <noreply@advisoria.local>"),
		EmailReply: envOrDefault("ADVISORY_REPLY_TO", "soporte@advisoria.local"),

		CSRFKeyHex: os.Getenv("ADVISORY_CSRF_KEY"),
		JWTSecret:  os.Getenv("ADVISORY_JWT_SECRET"),
		BaseURL:    envOrDefault("ADVISORY_BASE_URL", "http://localhost:8080"),
	}

	if cfg.DBDriver != DriverSQLite && cfg.DBDriver != DriverPostgres {
		return nil, fmt.Errorf("ADVISORY_DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, cfg.DBDriver)
	}
	if cfg.DBDriver == DriverPostgres && cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("ADVISORY_POSTGRES_DSN is required when ADVISORY_DB_DRIVER=postgres")
	}
	if cfg.IsProduction() && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("ADVISORY_JWT_SECRET is required in production")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production hardening.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
