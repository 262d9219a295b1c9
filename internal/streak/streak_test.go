package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func ptr(t time.Time) *time.Time { return &t }

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name          string
		lastCheckIn   *time.Time
		currentStreak int
		expected      int
	}{
		{"no previous check-in", nil, 0, 1},
		{"same day is idempotent", ptr(testNow.Add(-2 * time.Hour)), 3, 3},
		{"yesterday extends streak", ptr(testNow.AddDate(0, 0, -1)), 3, 4},
		{"two day gap resets", ptr(testNow.AddDate(0, 0, -2)), 5, 1},
		{"three day gap resets", ptr(testNow.AddDate(0, 0, -3)), 5, 1},
		{"long streak keeps extending", ptr(testNow.AddDate(0, 0, -1)), 99, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeStreak(tt.lastCheckIn, tt.currentStreak, testNow))
		})
	}
}

func TestComputeStreak_UTCBoundary(t *testing.T) {
	// 23:30 UTC yesterday vs 00:30 UTC today is one hour apart but crosses
	// the day boundary, so the streak extends
	last := time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC)
	now := time.Date(2025, 3, 15, 0, 30, 0, 0, time.UTC)
	assert.Equal(t, 4, ComputeStreak(&last, 3, now))

	// A non-UTC wall clock on the same UTC day does not double-count
	lastLocal := last.In(time.FixedZone("UTC+5", 5*3600))
	assert.Equal(t, 4, ComputeStreak(&lastLocal, 3, now))
}

func TestComputeStreak_RepairsCorruptStreak(t *testing.T) {
	// Same-day re-check with an impossible stored streak clamps to 1
	assert.Equal(t, 1, ComputeStreak(ptr(testNow), 0, testNow))
}

func TestSameUTCDay(t *testing.T) {
	assert.True(t, SameUTCDay(testNow, testNow.Add(11*time.Hour)))
	assert.False(t, SameUTCDay(testNow, testNow.AddDate(0, 0, 1)))
}
