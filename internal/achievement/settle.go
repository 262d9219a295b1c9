package achievement

import (
	"github.com/linkup-app/linkup-engine/internal/catalog"
	"github.com/linkup-app/linkup-engine/internal/domain"
)

// SettleOutcome reports what a Settle call changed on the record.
type SettleOutcome struct {
	Unlocked      []domain.Achievement
	AchievementXP int64
	RewardPoints  int64
	OldLevel      int
	NewLevel      int
	LeveledUp     bool
}

// Settle applies an XP delta to the record, then re-evaluates achievements
// and the level to a fixed point: an unlock's XP reward can push the user
// over another level threshold, so evaluation repeats until nothing changes.
// The loop is bounded by the achievement catalog size plus the level table
// size, both finite, so it always terminates.
//
// The level never decreases, and a multi-level jump banks the reward points
// of every intermediate level.
func Settle(rec *domain.ProgressionRecord, delta int64, skill domain.SkillCategory, action domain.ActionType, count int64) SettleOutcome {
	outcome := SettleOutcome{OldLevel: rec.Level}

	rec.TotalXP += delta
	if skill != "" {
		rec.Skills[skill] += delta
	}

	maxIterations := len(catalog.Achievements()) + catalog.MaxLevel()
	for i := 0; i < maxIterations; i++ {
		changed := false

		for _, def := range EvaluateUnlocks(rec, action, count) {
			rec.TotalXP += def.XPReward
			outcome.AchievementXP += def.XPReward
			outcome.Unlocked = append(outcome.Unlocked, def)
			changed = true
		}

		if newLevel := catalog.LevelForXP(rec.TotalXP); newLevel > rec.Level {
			points := catalog.RewardPointsBetween(rec.Level, newLevel)
			rec.Balance += points
			outcome.RewardPoints += points
			rec.Level = newLevel
			changed = true
		}

		if !changed {
			break
		}
	}

	outcome.NewLevel = rec.Level
	outcome.LeveledUp = outcome.NewLevel > outcome.OldLevel
	return outcome
}
