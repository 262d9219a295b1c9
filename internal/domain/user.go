package domain

import "time"

// User represents a registered mini-app user
type User struct {
	ID        string    `json:"user_id"`
	TgID      int64     `json:"tg_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// SkillCategory is a named bucket that XP from certain action types accrues into,
// independent of the overall level.
type SkillCategory string

const (
	SkillSocial    SkillCategory = "social"
	SkillAdventure SkillCategory = "adventure"
	SkillEconomy   SkillCategory = "economy"
	SkillKnowledge SkillCategory = "knowledge"
)

// AllSkillCategories lists every defined skill category in stable order.
var AllSkillCategories = []SkillCategory{SkillSocial, SkillAdventure, SkillEconomy, SkillKnowledge}

// ProgressionRecord is the per-user progression state mutated exclusively
// through the engine's entry points.
//
// TotalXP, Level and Balance are monotonically non-decreasing.
// UnlockedAchievements is append-only; each id appears at most once.
// Version supports optimistic compare-and-swap writes: every successful
// write increments it, and a write only applies if the version read is
// still current.
type ProgressionRecord struct {
	UserID               string                  `json:"user_id"`
	Username             string                  `json:"username"`
	TotalXP              int64                   `json:"total_xp"`
	Level                int                     `json:"level"`
	Balance              int64                   `json:"balance"`
	Skills               map[SkillCategory]int64 `json:"skills"`
	UnlockedAchievements map[AchievementID]bool  `json:"unlocked_achievements"`
	CheckInStreak        int                     `json:"check_in_streak"`
	LastCheckIn          *time.Time              `json:"last_check_in,omitempty"`
	Inventory            []InventoryItem         `json:"inventory"`
	Version              int64                   `json:"-"`
}

// NewProgressionRecord returns a fresh record as created on first login.
func NewProgressionRecord(userID, username string) *ProgressionRecord {
	return &ProgressionRecord{
		UserID:               userID,
		Username:             username,
		Level:                1,
		Skills:               make(map[SkillCategory]int64),
		UnlockedAchievements: make(map[AchievementID]bool),
		Version:              1,
	}
}

// Clone returns a deep copy of the record. Engine retry loops mutate a copy
// so a failed compare-and-swap never leaks partial updates.
func (r *ProgressionRecord) Clone() *ProgressionRecord {
	cp := *r
	cp.Skills = make(map[SkillCategory]int64, len(r.Skills))
	for k, v := range r.Skills {
		cp.Skills[k] = v
	}
	cp.UnlockedAchievements = make(map[AchievementID]bool, len(r.UnlockedAchievements))
	for k, v := range r.UnlockedAchievements {
		cp.UnlockedAchievements[k] = v
	}
	cp.Inventory = make([]InventoryItem, len(r.Inventory))
	copy(cp.Inventory, r.Inventory)
	return &cp
}

// InventoryItem is an item gained from a case draw or a daily reward.
type InventoryItem struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Value      int64     `json:"value"`
	CaseID     string    `json:"case_id,omitempty"`
	IsActive   bool      `json:"is_active"`
	ObtainedAt time.Time `json:"obtained_at"`
}
