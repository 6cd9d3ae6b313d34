// Copyright (c) 2026 Niramaya. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, Session Authority) via constructors.
  - Zero Hidden State: No global variables are used to store config.

The backend mode (live vs local) is decided exactly once, at load time, by
configuration presence. There is no runtime switch.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Mode selects which backend the session authority talks to.
type Mode string

const (
	// ModeLive delegates identity and session storage to PostgreSQL + Redis.
	ModeLive Mode = "live"

	// ModeLocal emulates the same contract against a durable local JSON
	// store with plaintext credential matching. Development/testing only —
	// it is never selected when the live connection parameters are present.
	ModeLocal Mode = "local"
)

// # Configuration Schema

// Config holds all runtime configuration for the Niramaya API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL). Optional: absence selects local mode.
	DatabaseURL string `env:"DATABASE_URL"`

	// Key-Value Cache (Redis). Optional: absence selects local mode.
	RedisURL string `env:"REDIS_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// LocalDataDir is where the local-mode document store keeps its records.
	LocalDataDir string `env:"LOCAL_DATA_DIR" envDefault:"./data/local"`

	// SessionSecret signs bearer tokens. The default exists only so that
	// local mode runs with zero configuration; live mode requires a real value.
	SessionSecret string `env:"SESSION_SECRET" envDefault:"niramaya-dev-secret"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// Live mode must never run on the baked-in development secret.
	if cfg.Mode() == ModeLive && cfg.SessionSecret == "niramaya-dev-secret" {
		return nil, fmt.Errorf("config: SESSION_SECRET is required when DATABASE_URL is set")
	}

	return cfg, nil
}

// Mode reports which backend variant the process runs with.
//
// # Selection Rule
//
// Live mode requires BOTH connection parameters. A partially configured
// environment (one of the two set) is treated as local mode — there is no
// partial-configuration state.
func (c *Config) Mode() Mode {
	if c.DatabaseURL != "" && c.RedisURL != "" {
		return ModeLive
	}
	return ModeLocal
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
