package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnvVars(t *testing.T) {
	t.Helper()
	vars := []string{
		"PORT", "ENVIRONMENT", "VERSION", "SERVICE_NAME",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_DIR", "API_KEY",
		"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME",
		"TRUSTED_PROXIES", "CASES_PATH", "MIGRATIONS_DIR",
		"DEAD_LETTER_PATH", "CAS_MAX_RETRIES", "STORE_TIMEOUT_MS",
		"EVENT_RETENTION_DAYS",
	}
	for _, v := range vars {
		// t.Setenv registers the restore, Unsetenv gives Load a clean slate
		t.Setenv(v, "")
		os.Unsetenv(v)
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads config with defaults when no env vars set", func(t *testing.T) {
		clearEnvVars(t)
		// API_KEY is mandatory
		t.Setenv("API_KEY", "test-key")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, DefaultPort, cfg.Port)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, "postgres", cfg.DBUser)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "test-key", cfg.APIKey)
		assert.Equal(t, DefaultCASMaxRetries, cfg.CASMaxRetries)
		assert.Equal(t, time.Duration(DefaultStoreTimeoutMs)*time.Millisecond, cfg.StoreTimeout)
		assert.Equal(t, "configs/cases.json", cfg.CasesPath)
		assert.Equal(t, "migrations", cfg.MigrationsDir)
		assert.Equal(t, DefaultEventRetentionDays, cfg.EventRetentionDays)
		assert.Empty(t, cfg.TrustedProxies)
	})

	t.Run("loads config from environment variables", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("PORT", "3000")
		t.Setenv("API_KEY", "custom-api-key")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("CAS_MAX_RETRIES", "7")
		t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 10.0.0.2")
		t.Setenv("EVENT_RETENTION_DAYS", "30")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "custom-api-key", cfg.APIKey)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 7, cfg.CASMaxRetries)
		assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)
		assert.Equal(t, 30, cfg.EventRetentionDays)
	})

	t.Run("fails without API key", func(t *testing.T) {
		clearEnvVars(t)

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects invalid port", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("PORT", "not-a-number")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects zero retry budget", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("CAS_MAX_RETRIES", "0")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "app",
		DBPassword: "pw",
		DBHost:     "db.internal",
		DBPort:     "5433",
		DBName:     "linkup",
	}
	assert.Equal(t, "postgres://app:pw@db.internal:5433/linkup?sslmode=disable", cfg.GetDBConnString())
}
