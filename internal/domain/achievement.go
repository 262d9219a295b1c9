package domain

import "time"

// AchievementID identifies an achievement definition.
type AchievementID string

// Rarity represents how hard an achievement is to earn.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// ConditionType enumerates the supported unlock condition kinds.
type ConditionType string

const (
	// ConditionActionCount unlocks once the user's total count of a given
	// action type reaches a threshold. The condition is monotone: once
	// satisfied it stays satisfied.
	ConditionActionCount ConditionType = "action_count"
)

// AchievementCondition describes when an achievement unlocks.
type AchievementCondition struct {
	Type   ConditionType `json:"type"`
	Action ActionType    `json:"action_type"`
	Count  int64         `json:"count"`
}

// Achievement is a one-time-unlockable milestone with a condition and a reward.
type Achievement struct {
	ID        AchievementID        `json:"id"`
	Name      string               `json:"name"`
	Icon      string               `json:"icon"`
	Category  SkillCategory        `json:"category"`
	Rarity    Rarity               `json:"rarity"`
	Condition AchievementCondition `json:"condition"`
	XPReward  int64                `json:"xp_reward"`
}

// UnlockedAchievement records when a user unlocked an achievement.
type UnlockedAchievement struct {
	UserID        string        `json:"user_id"`
	AchievementID AchievementID `json:"achievement_id"`
	UnlockedAt    time.Time     `json:"unlocked_at"`
}
