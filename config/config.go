// Package config holds the runtime tunables that in the original server
// live in the mushconf block, loadable from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration
type Config struct {
	// LockNestLim bounds how deeply @-indirection in locks may chain
	// before the evaluator gives up.
	LockNestLim int `yaml:"lock_nest_lim"`

	// LogLocation adds the actor's location to lock diagnostics
	LogLocation bool `yaml:"log_location"`

	// FuncInvkLim bounds softcode function invocations per evaluation
	FuncInvkLim int `yaml:"func_invk_lim"`

	// FuncNestLim bounds softcode bracket/function nesting
	FuncNestLim int `yaml:"func_nest_lim"`
}

// Default returns the stock configuration
func Default() *Config {
	return &Config{
		LockNestLim: 20,
		LogLocation: true,
		FuncInvkLim: 2500,
		FuncNestLim: 50,
	}
}

// LoadFile reads a YAML config file over the defaults
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.LockNestLim < 1 {
		return nil, fmt.Errorf("lock_nest_lim must be positive, got %d", cfg.LockNestLim)
	}
	return cfg, nil
}
