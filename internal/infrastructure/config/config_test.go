package config_test

import (
	"testing"
	"time"

	"github.com/iho/gobalance/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.Environment != "dev" {
		t.Fatalf("expected default environment dev, got %q", cfg.Environment)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.BalanceCacheTTL != time.Hour || cfg.ReportCacheTTL != 2*time.Hour {
		t.Fatalf("expected cache TTL defaults 1h/2h, got %s/%s", cfg.BalanceCacheTTL, cfg.ReportCacheTTL)
	}

	if cfg.CascadeMaxDays != 30 || cfg.CascadePropagateGaps {
		t.Fatalf("expected cascade defaults, got days=%d propagate=%v", cfg.CascadeMaxDays, cfg.CascadePropagateGaps)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("CASCADE_MAX_DAYS", "7")

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

	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "kafka-2:9092" {
		t.Fatalf("expected broker list parsed, got %v", cfg.KafkaBrokers)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if cfg.Environment != "prod" || cfg.CascadeMaxDays != 7 {
		t.Fatalf("expected consolidation overrides, got env=%s days=%d", cfg.Environment, cfg.CascadeMaxDays)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
