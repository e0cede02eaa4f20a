package config_test

import (
	"testing"
	"time"

	"github.com/iho/walletledger/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.BaseCurrency != "EGP" {
		t.Fatalf("expected base currency EGP, got %s", cfg.BaseCurrency)
	}

	if cfg.CurrencyRates["USD"] != "48.17" || cfg.CurrencyRates["EUR"] != "56.55" {
		t.Fatalf("unexpected default rates: %v", cfg.CurrencyRates)
	}

	if cfg.TxMaxRetries != 3 {
		t.Fatalf("expected 3 retries by default, got %d", cfg.TxMaxRetries)
	}

	if cfg.MigrationsPath != "internal/infrastructure/postgres/migrations" {
		t.Fatalf("unexpected migrations path %q", cfg.MigrationsPath)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("CURRENCY_RATES", "USD:50,GBP:61.2")
	t.Setenv("TX_MAX_RETRIES", "5")
	t.Setenv("TX_RETRY_INITIAL_INTERVAL", "10ms")
	t.Setenv("OUTBOX_ENABLED", "false")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if len(cfg.CurrencyRates) != 2 || cfg.CurrencyRates["GBP"] != "61.2" {
		t.Fatalf("expected rate table override, got %v", cfg.CurrencyRates)
	}

	if cfg.TxMaxRetries != 5 || cfg.TxRetryInitialInterval != 10*time.Millisecond {
		t.Fatalf("expected retry overrides, got %d %s", cfg.TxMaxRetries, cfg.TxRetryInitialInterval)
	}

	if cfg.OutboxEnabled {
		t.Fatalf("expected outbox to be disabled")
	}

	if cfg.RateLimitRPS != 2.5 {
		t.Fatalf("expected rate limit override, got %v", cfg.RateLimitRPS)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestLoadInvalidRetries(t *testing.T) {
	t.Setenv("TX_MAX_RETRIES", "many")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for non-numeric retries")
	}
}
