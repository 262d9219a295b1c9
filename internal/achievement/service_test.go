package achievement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkup-app/linkup-engine/internal/catalog"
	"github.com/linkup-app/linkup-engine/internal/domain"
	"github.com/linkup-app/linkup-engine/internal/event"
	"github.com/linkup-app/linkup-engine/internal/memstore"
)

const testMaxRetries = 3

func seedUserWithActions(t *testing.T, store *memstore.ProgressionStore, userID string, action domain.ActionType, n int) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.CreateRecord(ctx, domain.NewProgressionRecord(userID, "tester")))
	for i := 0; i < n; i++ {
		rec, err := store.GetRecord(ctx, userID)
		require.NoError(t, err)
		expected := rec.Version
		rec.Version++
		require.NoError(t, store.ApplyProgression(ctx, rec, expected, domain.ProgressionChange{
			Action: &domain.ActionEntry{UserID: userID, Action: action, CreatedAt: time.Now()},
		}))
	}
}

func TestCheckAchievements_UnlocksOnce(t *testing.T) {
	store := memstore.NewProgressionStore()
	svc := NewService(store, event.NewMemoryBus(), testMaxRetries)
	ctx := context.Background()

	seedUserWithActions(t, store, "user-1", domain.ActionQuestCompleted, 1)

	ids, err := svc.CheckAchievements(ctx, "user-1", domain.ActionQuestCompleted)
	require.NoError(t, err)
	assert.Equal(t, []domain.AchievementID{"first_quest"}, ids)

	// A second evaluation with no new actions is a no-op
	ids, err = svc.CheckAchievements(ctx, "user-1", domain.ActionQuestCompleted)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestCheckAchievements_XPRewardGrantedExactlyOnce(t *testing.T) {
	store := memstore.NewProgressionStore()
	svc := NewService(store, event.NewMemoryBus(), testMaxRetries)
	ctx := context.Background()

	seedUserWithActions(t, store, "user-1", domain.ActionQuestCompleted, 1)

	_, err := svc.CheckAchievements(ctx, "user-1", domain.ActionQuestCompleted)
	require.NoError(t, err)

	rec, err := store.GetRecord(ctx, "user-1")
	require.NoError(t, err)
	xpAfterFirst := rec.TotalXP

	def, ok := catalog.AchievementByID("first_quest")
	require.True(t, ok)
	assert.Equal(t, def.XPReward, xpAfterFirst)

	// Re-evaluating many times never re-grants the reward
	for i := 0; i < 5; i++ {
		_, err := svc.CheckAchievements(ctx, "user-1", domain.ActionQuestCompleted)
		require.NoError(t, err)
	}

	rec, err = store.GetRecord(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, xpAfterFirst, rec.TotalXP)
}

func TestCheckAchievements_UserNotFound(t *testing.T) {
	svc := NewService(memstore.NewProgressionStore(), event.NewMemoryBus(), testMaxRetries)
	_, err := svc.CheckAchievements(context.Background(), "ghost", domain.ActionQuestCompleted)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestEvaluateUnlocks_ThresholdBoundary(t *testing.T) {
	rec := domain.NewProgressionRecord("user-1", "tester")

	// One short of the quest_veteran threshold: only first_quest unlocks
	unlocked := EvaluateUnlocks(rec, domain.ActionQuestCompleted, 9)
	ids := make([]domain.AchievementID, len(unlocked))
	for i, def := range unlocked {
		ids[i] = def.ID
	}
	assert.Equal(t, []domain.AchievementID{"first_quest"}, ids)

	// Crossing the threshold unlocks only the remaining one
	unlocked = EvaluateUnlocks(rec, domain.ActionQuestCompleted, 10)
	require.Len(t, unlocked, 1)
	assert.Equal(t, domain.AchievementID("quest_veteran"), unlocked[0].ID)
}

func TestSettle_AchievementXPTriggersLevelUp(t *testing.T) {
	rec := domain.NewProgressionRecord("user-1", "tester")
	// 80 action XP alone stays at level 1; the 25 XP first_quest reward
	// pushes the total over the 100 XP level 2 threshold.
	outcome := Settle(rec, 80, domain.SkillAdventure, domain.ActionQuestCompleted, 1)

	assert.Equal(t, int64(105), rec.TotalXP)
	assert.True(t, outcome.LeveledUp)
	assert.Equal(t, 2, outcome.NewLevel)
	assert.Equal(t, catalog.RewardPointsBetween(1, 2), outcome.RewardPoints)
	assert.Equal(t, outcome.RewardPoints, rec.Balance)
}

func TestSettle_MultiLevelJumpGrantsIntermediateRewards(t *testing.T) {
	rec := domain.NewProgressionRecord("user-1", "tester")
	// Jump straight past levels 2 and 3
	outcome := Settle(rec, catalog.XPForLevel(3), "", domain.ActionType("untracked"), 0)

	assert.Equal(t, 3, outcome.NewLevel)
	assert.True(t, outcome.LeveledUp)
	assert.Equal(t, catalog.RewardPointsBetween(1, 3), outcome.RewardPoints)
}

func TestSettle_NeverDecreases(t *testing.T) {
	rec := domain.NewProgressionRecord("user-1", "tester")
	rec.TotalXP = 500
	rec.Level = 4
	rec.Balance = 100

	outcome := Settle(rec, 0, "", domain.ActionType("untracked"), 0)

	assert.Equal(t, int64(500), rec.TotalXP)
	assert.Equal(t, 4, rec.Level)
	assert.Equal(t, int64(100), rec.Balance)
	assert.False(t, outcome.LeveledUp)
}
