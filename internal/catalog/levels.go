package catalog

import "fmt"

// LevelEntry maps a level number to the cumulative XP it requires and the
// reward points granted for reaching it.
type LevelEntry struct {
	Level        int
	XPRequired   int64
	RewardPoints int64
}

// levelTable is the static level progression. Thresholds are cumulative and
// strictly increasing; level 1 requires 0 XP so a fresh user is always level 1.
var levelTable = []LevelEntry{
	{Level: 1, XPRequired: 0, RewardPoints: 0},
	{Level: 2, XPRequired: 100, RewardPoints: 50},
	{Level: 3, XPRequired: 250, RewardPoints: 75},
	{Level: 4, XPRequired: 500, RewardPoints: 100},
	{Level: 5, XPRequired: 850, RewardPoints: 150},
	{Level: 6, XPRequired: 1300, RewardPoints: 200},
	{Level: 7, XPRequired: 1900, RewardPoints: 250},
	{Level: 8, XPRequired: 2700, RewardPoints: 300},
	{Level: 9, XPRequired: 3700, RewardPoints: 400},
	{Level: 10, XPRequired: 5000, RewardPoints: 500},
	{Level: 11, XPRequired: 6600, RewardPoints: 600},
	{Level: 12, XPRequired: 8500, RewardPoints: 700},
	{Level: 13, XPRequired: 10800, RewardPoints: 800},
	{Level: 14, XPRequired: 13500, RewardPoints: 900},
	{Level: 15, XPRequired: 16700, RewardPoints: 1000},
	{Level: 16, XPRequired: 20500, RewardPoints: 1200},
	{Level: 17, XPRequired: 25000, RewardPoints: 1400},
	{Level: 18, XPRequired: 30300, RewardPoints: 1600},
	{Level: 19, XPRequired: 36500, RewardPoints: 1800},
	{Level: 20, XPRequired: 43700, RewardPoints: 2000},
}

func init() {
	if levelTable[0].Level != 1 || levelTable[0].XPRequired != 0 {
		panic(ErrMsgLevelTableBase)
	}
	for i := 1; i < len(levelTable); i++ {
		if levelTable[i].Level != levelTable[i-1].Level+1 {
			panic(fmt.Sprintf("level table is not contiguous at index %d", i))
		}
		if levelTable[i].XPRequired <= levelTable[i-1].XPRequired {
			panic(ErrMsgLevelTableNotIncreasing)
		}
	}
}

// MaxLevel returns the highest defined level.
func MaxLevel() int {
	return levelTable[len(levelTable)-1].Level
}

// LevelForXP returns the largest level whose cumulative XP requirement is
// at or below totalXP. Never returns less than 1.
func LevelForXP(totalXP int64) int {
	level := 1
	for _, entry := range levelTable {
		if entry.XPRequired > totalXP {
			break
		}
		level = entry.Level
	}
	return level
}

// XPForLevel returns the cumulative XP required to reach the given level.
// Levels beyond the table return the last threshold.
func XPForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	if level > MaxLevel() {
		level = MaxLevel()
	}
	return levelTable[level-1].XPRequired
}

// XPToNextLevel returns how much more XP is needed to reach the next level,
// or 0 when the max level is already reached.
func XPToNextLevel(totalXP int64) int64 {
	level := LevelForXP(totalXP)
	if level >= MaxLevel() {
		return 0
	}
	return levelTable[level].XPRequired - totalXP
}

// RewardPointsBetween sums the reward points for every level strictly above
// oldLevel up to and including newLevel. A multi-level jump therefore grants
// every intermediate level's reward, not just the final one.
func RewardPointsBetween(oldLevel, newLevel int) int64 {
	var points int64
	for _, entry := range levelTable {
		if entry.Level > oldLevel && entry.Level <= newLevel {
			points += entry.RewardPoints
		}
	}
	return points
}
