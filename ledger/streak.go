package ledger

import "time"

// StreakOutcome says whether a completion continued a run or started a new
// one. It exists for message composition; correctness only depends on the
// returned counters.
type StreakOutcome string

const (
	StreakContinued StreakOutcome = "continued"
	StreakStarted   StreakOutcome = "started"
)

// EvaluateStreak decides the new streak counters for a completion on newDay
// given the previous completion day (nil when the item has never been
// completed). A gap of exactly one day continues the run; anything else starts
// over at 1. Same-day re-completion never reaches this function: the duplicate
// guard in the completion transaction rejects it first.
func EvaluateStreak(prevDay *time.Time, newDay time.Time, currentStreak, longestStreak int) (newCurrent, newLongest int, outcome StreakOutcome) {
	if prevDay != nil && DaysBetween(*prevDay, newDay) == 1 {
		newCurrent = currentStreak + 1
		outcome = StreakContinued
	} else {
		newCurrent = 1
		outcome = StreakStarted
	}

	newLongest = longestStreak
	if newCurrent > newLongest {
		newLongest = newCurrent
	}
	return newCurrent, newLongest, outcome
}
