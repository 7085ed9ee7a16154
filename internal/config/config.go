// Package config provides environment-backed configuration for the pipeline.
package config

import (
	"fmt"
	"os"
)

// Environment variable names read by FromEnv.
const (
	EnvAPIKey      = "GEMINI_API_KEY"
	EnvDatabaseURL = "DATABASE_URL"
	EnvCacheDir    = "CAREERGRAPH_CACHE_DIR"
	EnvLogMode     = "LOG_MODE"
)

// DefaultCacheDir is used when CAREERGRAPH_CACHE_DIR is unset.
const DefaultCacheDir = ".careergraph-cache"

// Config holds everything the pipeline needs from its environment.
type Config struct {
	APIKey      string // Gemini API key
	DatabaseURL string // PostgreSQL connection URL
	CacheDir    string // Directory for generation cache artifacts
	LogMode     string // "dev" (default) or "prod"
}

// Resolve fills empty fields from the process environment and applies
// defaults. Fields already set (for example from command-line flags) win over
// the environment. Required-field checks are left to the caller, since not
// every command needs the provider credential.
func (c *Config) Resolve() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv(EnvAPIKey)
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv(EnvDatabaseURL)
	}
	if c.CacheDir == "" {
		c.CacheDir = os.Getenv(EnvCacheDir)
	}
	if c.CacheDir == "" {
		c.CacheDir = DefaultCacheDir
	}
	if c.LogMode == "" {
		c.LogMode = os.Getenv(EnvLogMode)
	}
	if c.LogMode == "" {
		c.LogMode = "dev"
	}
}

// FromEnv reads configuration from process environment values.
// A missing provider credential or store connection string is a fatal
// startup error; everything else has a default.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	cfg.Resolve()

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s is required", EnvAPIKey)
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("%s is required", EnvDatabaseURL)
	}
	return cfg, nil
}
