package streak

import "time"

// Same-day cache settings. The cache only short-circuits repeat check-ins
// within one day; correctness never depends on it, the record's last_check_in
// remains the source of truth.
const (
	CheckInCacheSize = 10_000
	CheckInCacheTTL  = 24 * time.Hour
)

// Log message constants
const (
	LogMsgCheckedIn        = "daily check-in completed"
	LogMsgAlreadyCheckedIn = "already checked in today"
	LogMsgCheckInConflict  = "version conflict during check-in, retrying"
	LogMsgRetriesExhausted = "check-in retries exhausted"
)

// MetricOpCheckIn labels CAS conflict metrics for this service
const MetricOpCheckIn = "check_in"
