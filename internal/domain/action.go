package domain

import "time"

// ActionType is a closed enumeration of user actions that the engine converts
// into XP. Unknown action types are a configuration gap, not an error: they
// degrade to zero XP with a logged warning so unrelated flows never break.
type ActionType string

const (
	ActionQuestCompleted   ActionType = "quest_completed"
	ActionMeetingCreated   ActionType = "meeting_created"
	ActionMeetingJoined    ActionType = "meeting_joined"
	ActionFriendAdded      ActionType = "friend_added"
	ActionProfileCompleted ActionType = "profile_completed"
	ActionItemSold         ActionType = "item_sold"
	ActionCaseOpened       ActionType = "case_opened"
	ActionDailyCheckIn     ActionType = "daily_check_in"
)

// ActionContext carries the flags that scale an action's base XP.
// Multipliers combine multiplicatively.
type ActionContext struct {
	WithFriend bool `json:"with_friend,omitempty"`
	FirstTime  bool `json:"first_time,omitempty"`
}

// ActionEntry is one appended row of the action log. The log is the source of
// truth for action_count achievement conditions, so the append happens in the
// same atomic unit as the XP update it belongs to.
type ActionEntry struct {
	UserID    string     `json:"user_id"`
	Action    ActionType `json:"action"`
	CreatedAt time.Time  `json:"created_at"`
}

// ProgressionChange bundles the side effects that must commit atomically with
// a compare-and-swap write of a ProgressionRecord.
type ProgressionChange struct {
	// Action, when non-nil, is appended to the action log.
	Action *ActionEntry
	// Unlocked achievement ids are inserted subject to the storage-level
	// uniqueness constraint on (user_id, achievement_id).
	Unlocked []AchievementID
	// NewItems are appended to the user's inventory.
	NewItems []InventoryItem
}
