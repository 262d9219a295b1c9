package event

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkup-app/linkup-engine/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()

	var received atomic.Int32
	bus.Subscribe(XPAwarded, func(ctx context.Context, e Event) error {
		received.Add(1)
		return nil
	})

	ev := NewXPAwardedEvent("user-1", domain.ActionQuestCompleted, 50, 50, domain.SkillAdventure)
	err := bus.Publish(context.Background(), ev)

	require.NoError(t, err)
	assert.Equal(t, int32(1), received.Load())
}

func TestMemoryBus_NoSubscribersIsNoop(t *testing.T) {
	bus := NewMemoryBus()
	err := bus.Publish(context.Background(), NewLevelUpEvent("user-1", 1, 2, 50))
	assert.NoError(t, err)
}

func TestMemoryBus_HandlerErrorsAggregated(t *testing.T) {
	bus := NewMemoryBus()
	bus.Subscribe(CaseOpened, func(ctx context.Context, e Event) error {
		return errors.New("boom")
	})
	bus.Subscribe(CaseOpened, func(ctx context.Context, e Event) error {
		return nil
	})

	err := bus.Publish(context.Background(), NewCaseOpenedEvent("user-1", "starter", domain.InventoryItem{Type: "sticker"}))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestDecodePayload_TypeAssertionFastPath(t *testing.T) {
	ev := NewXPAwardedEvent("user-1", domain.ActionMeetingJoined, 25, 125, domain.SkillSocial)

	payload, err := DecodePayload[XPAwardedPayloadV1](ev.Payload)
	require.NoError(t, err)
	assert.Equal(t, "user-1", payload.UserID)
	assert.Equal(t, int64(25), payload.XPGained)
}

func TestDecodePayload_JSONFallback(t *testing.T) {
	raw := map[string]interface{}{
		"user_id":        "user-2",
		"achievement_id": "first_quest",
		"xp_reward":      float64(25),
	}

	payload, err := DecodePayload[AchievementUnlockedPayloadV1](raw)
	require.NoError(t, err)
	assert.Equal(t, domain.AchievementID("first_quest"), payload.AchievementID)
	assert.Equal(t, int64(25), payload.XPReward)
}

func TestCalculateRetryDelay_ExponentialBackoff(t *testing.T) {
	base := RetryInitialDelay
	assert.Equal(t, base, CalculateRetryDelay(base, 1))
	assert.Equal(t, 2*base, CalculateRetryDelay(base, 2))
	assert.Equal(t, 4*base, CalculateRetryDelay(base, 3))
}
