// File: sched/config.go
// Package sched configuration, loadable from TOML.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package sched

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds scheduler parameters immutable per run.
type Config struct {
	// MaxPollEvents caps how many readiness events one poll tick handles.
	// Polling is level-triggered, so the remainder surfaces next tick.
	MaxPollEvents int `toml:"max_poll_events"`

	// PropagateFaults restores the harsh reference behavior: the first
	// unhandled panic in any task aborts the whole run. When false
	// (default) a fault terminates only the offending task.
	PropagateFaults bool `toml:"propagate_faults"`

	// LogLevel is the zerolog level used by the facade-built logger.
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxPollEvents:   128,
		PropagateFaults: false,
		LogLevel:        "info",
	}
}

// LoadConfig reads a TOML file over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("sched: load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unusable parameter combinations.
func (c *Config) Validate() error {
	if c.MaxPollEvents <= 0 {
		return fmt.Errorf("sched: max_poll_events must be positive, got %d", c.MaxPollEvents)
	}
	return nil
}
