package config

// Default values for optional environment variables
const (
	DefaultPort               = 8080
	DefaultCASMaxRetries      = 3
	DefaultStoreTimeoutMs     = 3000
	DefaultEventRetentionDays = 90
)

// Database pool settings
const (
	DefaultDBMaxConns       = 10
	DefaultDBMaxIdleMinutes = 5
	DefaultDBMaxLifeMinutes = 30
)
