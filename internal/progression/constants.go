package progression

// Log message constants
const (
	LogMsgUnknownActionType = "unknown action type, granting zero XP"
	LogMsgXPGranted         = "xp granted"
	LogMsgLevelUp           = "level up"
	LogMsgGiveXPConflict    = "version conflict during xp grant, retrying"
	LogMsgRetriesExhausted  = "xp grant retries exhausted"
	LogMsgUserCreated       = "progression record created"
)

// MetricOpGiveXP labels CAS conflict metrics for this service
const MetricOpGiveXP = "give_xp"
