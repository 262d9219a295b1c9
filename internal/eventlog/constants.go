package eventlog

import "time"

// Retention defaults
const (
	DefaultRetentionDays   = 90
	DefaultCleanupInterval = 24 * time.Hour
)

// History query limits
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

// Log message constants
const (
	LogMsgPayloadNotDecodable = "event payload not decodable, skipping log"
	LogMsgLogEventFailed      = "failed to log event"
	LogMsgEventLogged         = "event logged"
	LogMsgCleanupCompleted    = "event log cleanup completed"
	LogMsgCleanupFailed       = "event log cleanup failed"
	LogMsgCleanupJobStarted   = "event log cleanup job started"
	LogMsgCleanupJobStopped   = "event log cleanup job stopped"
)
