package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDailyReward_CyclesEveryTenDays(t *testing.T) {
	assert.Equal(t, DailyReward(1), DailyReward(11))
	assert.Equal(t, DailyReward(10), DailyReward(20))
	assert.Equal(t, DailyReward(3), DailyReward(103))
}

func TestDailyReward_ClampsBelowOne(t *testing.T) {
	assert.Equal(t, DailyReward(1), DailyReward(0))
	assert.Equal(t, DailyReward(1), DailyReward(-5))
}

func TestDailyReward_AllSlotsHaveValue(t *testing.T) {
	for day := 1; day <= 10; day++ {
		reward := DailyReward(day)
		assert.Positive(t, reward.Value, "day %d reward has no value", day)
	}
}
