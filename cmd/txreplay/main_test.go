package main

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestLoadConfigFlagOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("SHARDS", "1")

	logLevel = "debug"
	historyScope = "global"
	shards = 4
	defer func() {
		logLevel, logFormat, historyScope, shards = "", "", "", 0
	}()

	cfg, log, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Fatalf("expected flag to override log level, got %s", cfg.LogLevel)
	}

	if cfg.HistoryScope != "global" {
		t.Fatalf("expected flag to override history scope, got %s", cfg.HistoryScope)
	}

	if cfg.Shards != 4 {
		t.Fatalf("expected flag to override shard count, got %d", cfg.Shards)
	}

	if log.GetLevel() != zerolog.DebugLevel {
		t.Fatalf("expected debug logger, got %s", log.GetLevel())
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, _, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.HistoryScope != "client" {
		t.Fatalf("expected default history scope client, got %s", cfg.HistoryScope)
	}

	if cfg.Shards != 1 {
		t.Fatalf("expected default shard count 1, got %d", cfg.Shards)
	}
}
