package lootcase

// Draw weighting constants. An item's weight is 1/(value+WeightEpsilon)^2,
// so cheaper items are more likely; items cheaper than the case price get a
// further CheapBoost multiplier to keep perceived value balanced.
const (
	WeightEpsilon = 1.0
	CheapBoost    = 2.2
)

// Log message constants
const (
	LogMsgCaseOpened        = "case opened"
	LogMsgOpenCaseConflict  = "version conflict during case open, retrying"
	LogMsgRetriesExhausted  = "case open retries exhausted"
	LogMsgInsufficientFunds = "insufficient balance for case"
)

// MetricOpOpenCase labels CAS conflict metrics for this service
const MetricOpOpenCase = "open_case"
