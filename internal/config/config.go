package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	Environment string
	Version     string
	ServiceName string
	LogLevel    string
	LogFormat   string
	LogDir      string
	APIKey      string // API key for authentication

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// TrustedProxies lists proxy IPs whose X-Forwarded-For header is honoured.
	TrustedProxies []string

	// CasesPath points at the JSON case catalog loaded on startup.
	CasesPath string

	// MigrationsDir holds the goose SQL migrations applied on startup.
	MigrationsDir string

	// DeadLetterPath receives events that failed publishing after all retries.
	DeadLetterPath string

	// EventRetentionDays bounds how long processed events stay queryable.
	EventRetentionDays int

	// CASMaxRetries bounds the optimistic-write retry loop before a
	// conflict error is surfaced to the caller.
	CASMaxRetries int

	// StoreTimeout bounds every storage round trip.
	StoreTimeout time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment:    getEnv("ENVIRONMENT", "dev"),
		Version:        getEnv("VERSION", "dev"),
		ServiceName:    getEnv("SERVICE_NAME", "linkup-engine"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		LogDir:         getEnv("LOG_DIR", "logs"),
		APIKey:         getEnv("API_KEY", ""),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBName:         getEnv("DB_NAME", "linkup"),
		CasesPath:      getEnv("CASES_PATH", "configs/cases.json"),
		MigrationsDir:  getEnv("MIGRATIONS_DIR", "migrations"),
		DeadLetterPath: getEnv("DEAD_LETTER_PATH", "logs/dead_letter_events.jsonl"),
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, trimmed)
			}
		}
	}

	port, err := getEnvInt("PORT", DefaultPort)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	retries, err := getEnvInt("CAS_MAX_RETRIES", DefaultCASMaxRetries)
	if err != nil {
		return nil, fmt.Errorf("invalid CAS_MAX_RETRIES value: %w", err)
	}
	if retries < 1 {
		return nil, fmt.Errorf("CAS_MAX_RETRIES must be at least 1")
	}
	cfg.CASMaxRetries = retries

	timeoutMs, err := getEnvInt("STORE_TIMEOUT_MS", DefaultStoreTimeoutMs)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_TIMEOUT_MS value: %w", err)
	}
	cfg.StoreTimeout = time.Duration(timeoutMs) * time.Millisecond

	retention, err := getEnvInt("EVENT_RETENTION_DAYS", DefaultEventRetentionDays)
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_RETENTION_DAYS value: %w", err)
	}
	cfg.EventRetentionDays = retention

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	return strconv.Atoi(value)
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
