package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForXP_TableThresholds(t *testing.T) {
	// The level at its own threshold is exactly that level
	for _, entry := range levelTable {
		assert.Equal(t, entry.Level, LevelForXP(entry.XPRequired), "level %d at its threshold", entry.Level)
	}
}

func TestLevelForXP_NonDecreasing(t *testing.T) {
	prev := 0
	for xp := int64(0); xp <= XPForLevel(MaxLevel())+500; xp += 37 {
		level := LevelForXP(xp)
		assert.GreaterOrEqual(t, level, prev, "level dropped at xp=%d", xp)
		prev = level
	}
}

func TestLevelForXP_FreshUser(t *testing.T) {
	assert.Equal(t, 1, LevelForXP(0))
}

func TestLevelForXP_BeyondTable(t *testing.T) {
	assert.Equal(t, MaxLevel(), LevelForXP(XPForLevel(MaxLevel())+1_000_000))
}

func TestXPToNextLevel(t *testing.T) {
	// 100 XP needed for level 2 from zero
	assert.Equal(t, XPForLevel(2), XPToNextLevel(0))

	// At max level there is nothing left to earn
	assert.Equal(t, int64(0), XPToNextLevel(XPForLevel(MaxLevel())))
}

func TestRewardPointsBetween_MultiLevelJump(t *testing.T) {
	// A jump from 1 to 3 grants the rewards of levels 2 AND 3
	expected := levelTable[1].RewardPoints + levelTable[2].RewardPoints
	assert.Equal(t, expected, RewardPointsBetween(1, 3))
}

func TestRewardPointsBetween_NoLevelUp(t *testing.T) {
	assert.Equal(t, int64(0), RewardPointsBetween(5, 5))
	assert.Equal(t, int64(0), RewardPointsBetween(5, 4))
}
