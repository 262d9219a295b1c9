package catalog

// XP multipliers applied by XPForAction. Multipliers combine
// multiplicatively and the final XP is rounded down to an integer.
const (
	WithFriendMultiplier = 1.5
	FirstTimeMultiplier  = 2.0
)

// Log message constants
const (
	LogMsgUnknownActionType = "unknown action type, granting zero XP"
	LogMsgCasesLoaded       = "case catalog loaded"
)

// Error message constants
const (
	ErrMsgLevelTableNotIncreasing = "level table XP thresholds must be strictly increasing"
	ErrMsgLevelTableBase          = "level 1 must require 0 XP"
	ErrMsgCaseEmptyItems          = "case has no items"
	ErrMsgCaseNegativeValue       = "case item has negative value"
	ErrMsgCaseDuplicateID         = "duplicate case id"
)
