package achievement

// Log message constants
const (
	LogMsgAchievementUnlocked = "achievement unlocked"
	LogMsgEvaluationConflict  = "version conflict during achievement evaluation, retrying"
	LogMsgRetriesExhausted    = "achievement evaluation retries exhausted"
)

// MetricOpCheckAchievements labels CAS conflict metrics for this service
const MetricOpCheckAchievements = "check_achievements"
