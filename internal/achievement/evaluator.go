package achievement

import (
	"github.com/linkup-app/linkup-engine/internal/catalog"
	"github.com/linkup-app/linkup-engine/internal/domain"
)

// EvaluateUnlocks checks every achievement watching the given action against
// the observed action count and marks newly satisfied ones on the record.
// Returns only achievements unlocked by THIS evaluation; ids already present
// in the record's unlocked set are skipped, which makes re-evaluation a no-op.
func EvaluateUnlocks(rec *domain.ProgressionRecord, action domain.ActionType, count int64) []domain.Achievement {
	var unlocked []domain.Achievement
	for _, def := range catalog.AchievementsForAction(action) {
		if count < def.Condition.Count {
			continue
		}
		if rec.UnlockedAchievements[def.ID] {
			continue
		}
		rec.UnlockedAchievements[def.ID] = true
		unlocked = append(unlocked, def)
	}
	return unlocked
}
