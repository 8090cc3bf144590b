package ledger

import "time"

// Day truncates an instant to its calendar day (midnight, same location).
// Instants are assumed to already be in the reference timezone; no conversion
// is performed here.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns b - a in whole days. Negative when b is before a.
// Calendar days are renormalized to UTC before subtracting so a DST
// transition (23- or 25-hour day) cannot shift the count.
func DaysBetween(a, b time.Time) int {
	return int(utcDay(b).Sub(utcDay(a)).Hours() / 24)
}

func utcDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
