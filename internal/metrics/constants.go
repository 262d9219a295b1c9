package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameXPGranted            = "xp_granted_total"
	MetricNameLevelUps             = "level_ups_total"
	MetricNameAchievementsUnlocked = "achievements_unlocked_total"
	MetricNameCaseDraws            = "case_draws_total"
	MetricNameCheckIns             = "check_ins_total"
	MetricNameVersionConflicts     = "version_conflicts_total"
	MetricNameCASRetriesExhausted  = "cas_retries_exhausted_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextXPGranted            = "Total XP granted, by action type"
	HelpTextLevelUps             = "Total number of level-ups"
	HelpTextAchievementsUnlocked = "Total achievements unlocked, by rarity"
	HelpTextCaseDraws            = "Total case draws, by case id"
	HelpTextCheckIns             = "Total daily check-ins"
	HelpTextVersionConflicts     = "Total compare-and-swap version conflicts"
	HelpTextCASRetriesExhausted  = "Total operations that exhausted their CAS retry budget"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelAction = "action"
	LabelRarity = "rarity"
	LabelCase   = "case"
	LabelOp     = "op"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, ranging from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
