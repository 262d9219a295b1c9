package catalog

import "github.com/linkup-app/linkup-engine/internal/domain"

// dailyTrack is the fixed 10-slot check-in reward cycle. Rewards repeat
// every 10 days: day 11 of a streak earns the same reward as day 1.
var dailyTrack = [10]domain.Reward{
	{Type: domain.RewardPoints, Value: 10},
	{Type: domain.RewardPoints, Value: 15},
	{Type: domain.RewardPoints, Value: 20},
	{Type: domain.RewardItem, Value: 25, Item: "mystery_sticker"},
	{Type: domain.RewardPoints, Value: 30},
	{Type: domain.RewardPoints, Value: 40},
	{Type: domain.RewardItem, Value: 50, Item: "booster_pack"},
	{Type: domain.RewardPoints, Value: 60},
	{Type: domain.RewardPoints, Value: 80},
	{Type: domain.RewardItem, Value: 100, Item: "golden_ticket"},
}

// DailyReward returns the reward for the given streak day using the cyclic
// index (streak-1) mod 10. Streaks below 1 are clamped to day 1.
func DailyReward(streak int) domain.Reward {
	if streak < 1 {
		streak = 1
	}
	return dailyTrack[(streak-1)%len(dailyTrack)]
}
