package ledger

import "fmt"

// XPThresholdForLevel returns the XP required to advance from the given level
// to the next one.
func XPThresholdForLevel(level int) int {
	return level * 100
}

// ApplyXP adds gained XP to the avatar's current level/xp pair and rolls over
// as many levels as the grant covers. A single large grant can cross several
// levels in one call. At rest the returned xp is always below the threshold of
// the returned level.
func ApplyXP(level, xp, gained int) (newLevel, newXP int, leveledUp bool, err error) {
	if gained < 0 {
		return level, xp, false, fmt.Errorf("%w: negative xp grant %d", ErrInvalidArgument, gained)
	}

	newLevel = level
	newXP = xp + gained
	for newXP >= XPThresholdForLevel(newLevel) {
		newXP -= XPThresholdForLevel(newLevel)
		newLevel++
	}

	return newLevel, newXP, newLevel > level, nil
}

// ClampStat applies a delta to a stat value and clamps the result to [0,100].
func ClampStat(value, delta int) int {
	v := value + delta
	if v > 100 {
		return 100
	}
	if v < 0 {
		return 0
	}
	return v
}

// Reward is the (xp, stat boost) pair granted by a completion.
type Reward struct {
	XP        int
	StatBoost int
}

var difficultyRewards = map[string]Reward{
	"EASY":   {XP: 15, StatBoost: 1},
	"MEDIUM": {XP: 25, StatBoost: 2},
	"HARD":   {XP: 50, StatBoost: 5},
	"EPIC":   {XP: 100, StatBoost: 10},
}

// RewardForDifficulty resolves the fixed reward table for quest difficulties.
func RewardForDifficulty(difficulty string) (Reward, error) {
	r, ok := difficultyRewards[difficulty]
	if !ok {
		return Reward{}, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidArgument, difficulty)
	}
	return r, nil
}

// JournalReward is the fixed grant for the first journal entry of a day.
var JournalReward = Reward{XP: 10, StatBoost: 1}
