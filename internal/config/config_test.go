package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("missing API key is fatal", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "")
		t.Setenv(EnvDatabaseURL, "postgres://localhost/careergraph")

		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvAPIKey)
	})

	t.Run("missing database URL is fatal", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "test-key")
		t.Setenv(EnvDatabaseURL, "")

		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvDatabaseURL)
	})

	t.Run("defaults applied", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "test-key")
		t.Setenv(EnvDatabaseURL, "postgres://localhost/careergraph")
		t.Setenv(EnvCacheDir, "")
		t.Setenv(EnvLogMode, "")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, DefaultCacheDir, cfg.CacheDir)
		assert.Equal(t, "dev", cfg.LogMode)
	})

	t.Run("preset fields win over the environment", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "env-key")
		t.Setenv(EnvDatabaseURL, "postgres://env")
		t.Setenv(EnvCacheDir, "")
		t.Setenv(EnvLogMode, "")

		cfg := &Config{APIKey: "flag-key"}
		cfg.Resolve()

		assert.Equal(t, "flag-key", cfg.APIKey)
		assert.Equal(t, "postgres://env", cfg.DatabaseURL)
		assert.Equal(t, DefaultCacheDir, cfg.CacheDir)
		assert.Equal(t, "dev", cfg.LogMode)
	})

	t.Run("explicit values win", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "test-key")
		t.Setenv(EnvDatabaseURL, "postgres://localhost/careergraph")
		t.Setenv(EnvCacheDir, "/tmp/kg-cache")
		t.Setenv(EnvLogMode, "prod")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/kg-cache", cfg.CacheDir)
		assert.Equal(t, "prod", cfg.LogMode)
	})
}
