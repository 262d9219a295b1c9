package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/linkup-app/linkup-engine/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Common event types
const (
	XPAwarded           Type = "xp.awarded"
	LevelUp             Type = "level.up"
	AchievementUnlocked Type = "achievement.unlocked"
	CheckInCompleted    Type = "checkin.completed"
	CaseOpened          Type = "case.opened"
)

// Typed event payloads for type safety

// XPAwardedPayloadV1 is the typed payload for XP award events
type XPAwardedPayloadV1 struct {
	UserID    string               `json:"user_id"`
	Action    domain.ActionType    `json:"action"`
	XPGained  int64                `json:"xp_gained"`
	TotalXP   int64                `json:"total_xp"`
	Skill     domain.SkillCategory `json:"skill,omitempty"`
	Timestamp int64                `json:"timestamp"`
}

// LevelUpPayloadV1 is the typed payload for level-up events
type LevelUpPayloadV1 struct {
	UserID       string `json:"user_id"`
	OldLevel     int    `json:"old_level"`
	NewLevel     int    `json:"new_level"`
	RewardPoints int64  `json:"reward_points"`
	Timestamp    int64  `json:"timestamp"`
}

// AchievementUnlockedPayloadV1 is the typed payload for achievement unlock events
type AchievementUnlockedPayloadV1 struct {
	UserID        string               `json:"user_id"`
	AchievementID domain.AchievementID `json:"achievement_id"`
	Rarity        domain.Rarity        `json:"rarity"`
	XPReward      int64                `json:"xp_reward"`
	Timestamp     int64                `json:"timestamp"`
}

// CheckInCompletedPayloadV1 is the typed payload for daily check-in events
type CheckInCompletedPayloadV1 struct {
	UserID     string            `json:"user_id"`
	Streak     int               `json:"streak"`
	RewardType domain.RewardType `json:"reward_type"`
	Value      int64             `json:"value"`
	Timestamp  int64             `json:"timestamp"`
}

// CaseOpenedPayloadV1 is the typed payload for case-opening events
type CaseOpenedPayloadV1 struct {
	UserID    string `json:"user_id"`
	CaseID    string `json:"case_id"`
	ItemType  string `json:"item_type"`
	ItemValue int64  `json:"item_value"`
	Timestamp int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewXPAwardedEvent creates a new XP awarded event with type-safe payload
func NewXPAwardedEvent(userID string, action domain.ActionType, xpGained, totalXP int64, skill domain.SkillCategory) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    XPAwarded,
		Payload: XPAwardedPayloadV1{
			UserID:    userID,
			Action:    action,
			XPGained:  xpGained,
			TotalXP:   totalXP,
			Skill:     skill,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewLevelUpEvent creates a new level-up event
func NewLevelUpEvent(userID string, oldLevel, newLevel int, rewardPoints int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LevelUp,
		Payload: LevelUpPayloadV1{
			UserID:       userID,
			OldLevel:     oldLevel,
			NewLevel:     newLevel,
			RewardPoints: rewardPoints,
			Timestamp:    time.Now().Unix(),
		},
	}
}

// NewAchievementUnlockedEvent creates a new achievement unlocked event
func NewAchievementUnlockedEvent(userID string, def domain.Achievement) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AchievementUnlocked,
		Payload: AchievementUnlockedPayloadV1{
			UserID:        userID,
			AchievementID: def.ID,
			Rarity:        def.Rarity,
			XPReward:      def.XPReward,
			Timestamp:     time.Now().Unix(),
		},
	}
}

// NewCheckInCompletedEvent creates a new check-in completed event
func NewCheckInCompletedEvent(userID string, streak int, reward domain.Reward) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CheckInCompleted,
		Payload: CheckInCompletedPayloadV1{
			UserID:     userID,
			Streak:     streak,
			RewardType: reward.Type,
			Value:      reward.Value,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewCaseOpenedEvent creates a new case opened event
func NewCaseOpenedEvent(userID, caseID string, item domain.InventoryItem) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CaseOpened,
		Payload: CaseOpenedPayloadV1{
			UserID:    userID,
			CaseID:    caseID,
			ItemType:  item.Type,
			ItemValue: item.Value,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
