package config_test

import (
	"testing"

	"advisory/internal/config"
)

// TestLoad_Defaults tests that defaults apply when the environment is empty.
func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.DBDriver != config.DriverSQLite {
		t.Errorf("DBDriver = %q, want sqlite", cfg.DBDriver)
	}
	if cfg.IsProduction() {
		t.Error("IsProduction() = true for default env")
	}
}

// TestLoad_InvalidDriver tests driver validation.
func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("ADVISORY_DB_DRIVER", "oracle")
	if _, err := config.Load(); err == nil {
		t.Error("Load() accepted an unknown driver")
	}
}

// TestLoad_PostgresRequiresDSN tests the postgres precondition.
func TestLoad_PostgresRequiresDSN(t *testing.T) {
	t.Setenv("ADVISORY_DB_DRIVER", config.DriverPostgres)
	t.Setenv("ADVISORY_POSTGRES_DSN", "")
	if _, err := config.Load(); err == nil {
		t.Error("Load() accepted postgres driver without a DSN")
	}

	t.Setenv("ADVISORY_POSTGRES_DSN", "postgres://localhost/advisory")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DBDriver != config.DriverPostgres {
		t.Errorf("DBDriver = %q", cfg.DBDriver)
	}
}

// TestLoad_ProductionRequiresJWTSecret tests production hardening.
func TestLoad_ProductionRequiresJWTSecret(t *testing.T) {
	t.Setenv("ADVISORY_ENV", "production")
	t.Setenv("ADVISORY_JWT_SECRET", "")
	if _, err := config.Load(); err == nil {
		t.Error("Load() accepted production without a JWT secret")
	}
	t.Setenv("ADVISORY_JWT_SECRET", "s3cr3t")
	if _, err := config.Load(); err != nil {
		t.Errorf("Load() error = %v", err)
	}
}
