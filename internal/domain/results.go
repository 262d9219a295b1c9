package domain

import "time"

// XPGainResult is the outcome of a single GiveXP call.
type XPGainResult struct {
	UserID string     `json:"user_id"`
	Action ActionType `json:"action"`
	// XPGained is the action's own delta; achievement XP rewards merged
	// during the same call are reported separately via AchievementXP.
	XPGained      int64           `json:"xp_gained"`
	AchievementXP int64           `json:"achievement_xp,omitempty"`
	OldLevel      int             `json:"old_level"`
	NewLevel      int             `json:"new_level"`
	LeveledUp     bool            `json:"leveled_up"`
	TotalXP       int64           `json:"total_xp"`
	Skill         SkillCategory   `json:"skill,omitempty"`
	SkillXP       int64           `json:"skill_xp,omitempty"`
	RewardPoints  int64           `json:"reward_points"`
	Unlocked      []AchievementID `json:"achievements_unlocked,omitempty"`
}

// DrawResult is the outcome of opening a case.
type DrawResult struct {
	UserID  string        `json:"user_id"`
	CaseID  string        `json:"case_id"`
	Item    InventoryItem `json:"item"`
	Balance int64         `json:"balance"`
}

// CheckInResult is the outcome of a daily check-in.
type CheckInResult struct {
	UserID           string          `json:"user_id"`
	Streak           int             `json:"streak"`
	AlreadyCheckedIn bool            `json:"already_checked_in"`
	Reward           Reward          `json:"reward"`
	CheckedInAt      time.Time       `json:"checked_in_at"`
	Unlocked         []AchievementID `json:"achievements_unlocked,omitempty"`
}

// ProgressionSnapshot is the read-model returned to the UI layer.
type ProgressionSnapshot struct {
	UserID        string                  `json:"user_id"`
	Username      string                  `json:"username"`
	TotalXP       int64                   `json:"total_xp"`
	Level         int                     `json:"level"`
	XPToNextLevel int64                   `json:"xp_to_next_level"`
	Balance       int64                   `json:"balance"`
	Skills        map[SkillCategory]int64 `json:"skills"`
	CheckInStreak int                     `json:"check_in_streak"`
	LastCheckIn   *time.Time              `json:"last_check_in,omitempty"`
	Inventory     []InventoryItem         `json:"inventory"`
	Achievements  []AchievementID         `json:"achievements"`
}
