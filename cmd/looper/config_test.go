package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danmuck/looper/internal/runner"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "looper.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadRunnerConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadRunnerConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg != runner.DefaultConfig() {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Interval != time.Second || cfg.StartupMessage != "running..." || cfg.TickMessage != "loop" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadRunnerConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
interval = "250ms"
startup_message = "booting"
tick_message = "tick"
`)
	cfg, err := loadRunnerConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Interval != 250*time.Millisecond {
		t.Fatalf("unexpected interval: %v", cfg.Interval)
	}
	if cfg.StartupMessage != "booting" || cfg.TickMessage != "tick" {
		t.Fatalf("unexpected messages: %+v", cfg)
	}
}

func TestLoadRunnerConfigIntervalMSWins(t *testing.T) {
	path := writeConfig(t, `
interval = "5s"
interval_ms = 1500
`)
	cfg, err := loadRunnerConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Interval != 1500*time.Millisecond {
		t.Fatalf("unexpected interval: %v", cfg.Interval)
	}
	if cfg.TickMessage != "loop" {
		t.Fatalf("undefined key changed default: %q", cfg.TickMessage)
	}
}

func TestLoadRunnerConfigBadInterval(t *testing.T) {
	path := writeConfig(t, `interval = "soon"`)
	if _, err := loadRunnerConfig(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadRunnerConfigBadToml(t *testing.T) {
	path := writeConfig(t, `interval = `)
	if _, err := loadRunnerConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}
