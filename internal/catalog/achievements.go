package catalog

import "github.com/linkup-app/linkup-engine/internal/domain"

// achievementDefs is the static achievement catalog. Conditions are monotone
// in the observed action count, so re-evaluation can never "un-unlock".
var achievementDefs = []domain.Achievement{
	{
		ID:       "first_quest",
		Name:     "First Steps",
		Icon:     "🗺️",
		Category: domain.SkillAdventure,
		Rarity:   domain.RarityCommon,
		Condition: domain.AchievementCondition{
			Type:   domain.ConditionActionCount,
			Action: domain.ActionQuestCompleted,
			Count:  1,
		},
		XPReward: 25,
	},
	{
		ID:       "quest_veteran",
		Name:     "Quest Veteran",
		Icon:     "⚔️",
		Category: domain.SkillAdventure,
		Rarity:   domain.RarityRare,
		Condition: domain.AchievementCondition{
			Type:   domain.ConditionActionCount,
			Action: domain.ActionQuestCompleted,
			Count:  10,
		},
		XPReward: 100,
	},
	{
		ID:       "quest_master",
		Name:     "Quest Master",
		Icon:     "🏆",
		Category: domain.SkillAdventure,
		Rarity:   domain.RarityEpic,
		Condition: domain.AchievementCondition{
			Type:   domain.ConditionActionCount,
			Action: domain.ActionQuestCompleted,
			Count:  50,
		},
		XPReward: 500,
	},
	{
		ID:       "first_meeting",
		Name:     "Organizer",
		Icon:     "📅",
		Category: domain.SkillSocial,
		Rarity:   domain.RarityCommon,
		Condition: domain.AchievementCondition{
			Type:   domain.ConditionActionCount,
			Action: domain.ActionMeetingCreated,
			Count:  1,
		},
		XPReward: 25,
	},
	{
		ID:       "social_butterfly",
		Name:     "Social Butterfly",
		Icon:     "🦋",
		Category: domain.SkillSocial,
		Rarity:   domain.RarityRare,
		Condition: domain.AchievementCondition{
			Type:   domain.ConditionActionCount,
			Action: domain.ActionMeetingJoined,
			Count:  20,
		},
		XPReward: 150,
	},
	{
		ID:       "friend_collector",
		Name:     "Friend Collector",
		Icon:     "🤝",
		Category: domain.SkillSocial,
		Rarity:   domain.RarityRare,
		Condition: domain.AchievementCondition{
			Type:   domain.ConditionActionCount,
			Action: domain.ActionFriendAdded,
			Count:  10,
		},
		XPReward: 100,
	},
	{
		ID:       "merchant",
		Name:     "Merchant",
		Icon:     "💰",
		Category: domain.SkillEconomy,
		Rarity:   domain.RarityRare,
		Condition: domain.AchievementCondition{
			Type:   domain.ConditionActionCount,
			Action: domain.ActionItemSold,
			Count:  15,
		},
		XPReward: 120,
	},
	{
		ID:       "case_addict",
		Name:     "Case Addict",
		Icon:     "🎁",
		Category: domain.SkillEconomy,
		Rarity:   domain.RarityEpic,
		Condition: domain.AchievementCondition{
			Type:   domain.ConditionActionCount,
			Action: domain.ActionCaseOpened,
			Count:  25,
		},
		XPReward: 250,
	},
	{
		ID:       "week_streak",
		Name:     "Regular",
		Icon:     "🔥",
		Category: domain.SkillKnowledge,
		Rarity:   domain.RarityRare,
		Condition: domain.AchievementCondition{
			Type:   domain.ConditionActionCount,
			Action: domain.ActionDailyCheckIn,
			Count:  7,
		},
		XPReward: 100,
	},
	{
		ID:       "month_streak",
		Name:     "Devoted",
		Icon:     "💎",
		Category: domain.SkillKnowledge,
		Rarity:   domain.RarityLegendary,
		Condition: domain.AchievementCondition{
			Type:   domain.ConditionActionCount,
			Action: domain.ActionDailyCheckIn,
			Count:  30,
		},
		XPReward: 1000,
	},
}

// Achievements returns every achievement definition in stable order.
func Achievements() []domain.Achievement {
	return achievementDefs
}

// AchievementsForAction returns the definitions whose condition watches the
// given action type.
func AchievementsForAction(action domain.ActionType) []domain.Achievement {
	var defs []domain.Achievement
	for _, def := range achievementDefs {
		if def.Condition.Type == domain.ConditionActionCount && def.Condition.Action == action {
			defs = append(defs, def)
		}
	}
	return defs
}

// AchievementByID looks up one achievement definition.
func AchievementByID(id domain.AchievementID) (domain.Achievement, bool) {
	for _, def := range achievementDefs {
		if def.ID == id {
			return def, true
		}
	}
	return domain.Achievement{}, false
}
