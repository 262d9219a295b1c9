package catalog

import (
	"math"

	"github.com/linkup-app/linkup-engine/internal/domain"
)

// ActionRule defines how one action type converts into XP and which skill
// bucket the XP accrues into. The rules map is total over the closed
// ActionType enumeration; action types absent from it are a configuration
// gap and yield zero XP.
type ActionRule struct {
	BaseXP int64
	Skill  domain.SkillCategory
}

var actionRules = map[domain.ActionType]ActionRule{
	domain.ActionQuestCompleted:   {BaseXP: 50, Skill: domain.SkillAdventure},
	domain.ActionMeetingCreated:   {BaseXP: 40, Skill: domain.SkillSocial},
	domain.ActionMeetingJoined:    {BaseXP: 25, Skill: domain.SkillSocial},
	domain.ActionFriendAdded:      {BaseXP: 15, Skill: domain.SkillSocial},
	domain.ActionProfileCompleted: {BaseXP: 30, Skill: domain.SkillKnowledge},
	domain.ActionItemSold:         {BaseXP: 20, Skill: domain.SkillEconomy},
	domain.ActionCaseOpened:       {BaseXP: 10, Skill: domain.SkillEconomy},
	domain.ActionDailyCheckIn:     {BaseXP: 10, Skill: domain.SkillKnowledge},
}

// RuleForAction returns the XP rule for an action type. The second return is
// false for unknown action types.
func RuleForAction(action domain.ActionType) (ActionRule, bool) {
	rule, ok := actionRules[action]
	return rule, ok
}

// XPForAction computes the XP granted for an action with its context flags
// applied. Multipliers combine multiplicatively and the result is rounded
// down. Unknown action types yield 0; callers log the gap and continue.
func XPForAction(action domain.ActionType, actx domain.ActionContext) (int64, bool) {
	rule, ok := actionRules[action]
	if !ok {
		return 0, false
	}
	xp := float64(rule.BaseXP)
	if actx.WithFriend {
		xp *= WithFriendMultiplier
	}
	if actx.FirstTime {
		xp *= FirstTimeMultiplier
	}
	return int64(math.Floor(xp)), true
}

// SkillForAction returns the skill category an action's XP accrues into.
func SkillForAction(action domain.ActionType) (domain.SkillCategory, bool) {
	rule, ok := actionRules[action]
	return rule.Skill, ok
}
