package config_test

import (
	"testing"
	"time"

	"github.com/iho/txreplay/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.HistoryScope != "client" {
		t.Fatalf("expected default history scope client, got %q", cfg.HistoryScope)
	}

	if cfg.Shards != 1 {
		t.Fatalf("expected default shard count 1, got %d", cfg.Shards)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HISTORY_SCOPE", "global")
	t.Setenv("SHARDS", "8")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.HistoryScope != "global" {
		t.Fatalf("expected history scope override, got %s", cfg.HistoryScope)
	}

	if cfg.Shards != 8 {
		t.Fatalf("expected shard count override, got %d", cfg.Shards)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.HTTPShutdownTimeout != 5*time.Second {
		t.Fatalf("expected shutdown timeout override, got %s", cfg.HTTPShutdownTimeout)
	}

	if cfg.LogFormat != "json" {
		t.Fatalf("expected log format override, got %s", cfg.LogFormat)
	}
}
