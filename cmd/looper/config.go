package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/looper/internal/runner"
)

const defaultConfigPath = "looper.toml"

type fileConfig struct {
	Interval       string `toml:"interval"`
	IntervalMS     int64  `toml:"interval_ms"`
	StartupMessage string `toml:"startup_message"`
	TickMessage    string `toml:"tick_message"`
}

// loadRunnerConfig overlays path onto the runner defaults. A missing file
// yields the defaults unchanged.
func loadRunnerConfig(path string) (runner.Config, error) {
	cfg := runner.DefaultConfig()

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return runner.Config{}, fmt.Errorf("stat looper config: %w", err)
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return runner.Config{}, fmt.Errorf("load looper config: %w", err)
	}

	if meta.IsDefined("interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Interval))
		if err != nil {
			return runner.Config{}, fmt.Errorf("parse interval: %w", err)
		}
		cfg.Interval = d
	}

	if meta.IsDefined("interval_ms") {
		cfg.Interval = time.Duration(raw.IntervalMS) * time.Millisecond
	}

	if meta.IsDefined("startup_message") {
		cfg.StartupMessage = raw.StartupMessage
	}

	if meta.IsDefined("tick_message") {
		cfg.TickMessage = raw.TickMessage
	}

	return cfg, nil
}
