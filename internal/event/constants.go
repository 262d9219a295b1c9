package event

import "time"

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Retry configuration constants
const (
	// RetryMaxAttempts is the default maximum number of retry attempts
	RetryMaxAttempts = 5

	// RetryInitialDelay is the base delay between retry attempts
	RetryInitialDelay = 2 * time.Second
)

// Dead letter file configuration
const (
	// DeadLetterFilePermissions is the file permission mode for dead-letter files
	DeadLetterFilePermissions = 0644
)

// Log message constants
const (
	LogMsgEventPublishFailed    = "event publish failed, initiating async retry"
	LogMsgEventRetrySucceeded   = "event retry succeeded"
	LogMsgEventRetryFailed      = "event retry failed"
	LogMsgEventDeadLettered     = "event written to dead-letter file"
	LogMsgDeadLetterOpenFailed  = "failed to open dead-letter file"
	LogMsgDeadLetterWriteFailed = "failed to write to dead-letter file"

	// Log message for handler errors
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)

// CalculateRetryDelay calculates the exponential backoff delay for retry attempts.
// Formula: baseDelay * 2^(attempt-1), so 2s, 4s, 8s, 16s, 32s.
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	return baseDelay * time.Duration(1<<(attempt-1))
}
