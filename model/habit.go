// model/habit.go
package model

import "time"

const (
	FrequencyDaily    = "DAILY"
	FrequencyWeekly   = "WEEKLY"
	FrequencyWeekdays = "WEEKDAYS"
	FrequencyWeekends = "WEEKENDS"
)

// Habit is a recurring task. It is never "finished"; each completed calendar
// day produces exactly one HabitLog row.
type Habit struct {
	ID               string     `json:"id" gorm:"primaryKey"`
	UserID           string     `json:"user_id" gorm:"index;not null"`
	Title            string     `json:"title" gorm:"not null"`
	Description      string     `json:"description" gorm:"type:text"`
	Category         string     `json:"category" gorm:"default:GENERAL"`
	Frequency        string     `json:"frequency" gorm:"default:DAILY"`
	TargetDays       int        `json:"target_days" gorm:"default:0"` // WEEKLY only
	XPReward         int        `json:"xp_reward" gorm:"default:20"`
	StatBoost        int        `json:"stat_boost" gorm:"default:2"`
	CurrentStreak    int        `json:"current_streak" gorm:"default:0"`
	LongestStreak    int        `json:"longest_streak" gorm:"default:0"`
	TotalCompletions int        `json:"total_completions" gorm:"default:0"`
	LastCompletedAt  *time.Time `json:"last_completed_at"`
	IsActive         bool       `json:"is_active" gorm:"default:true"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// HabitLog records one habit completion for one calendar day. The composite
// unique index is the authoritative duplicate guard: a concurrent completion
// that slips past the pre-check still fails at insert time.
type HabitLog struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	HabitID       string    `json:"habit_id" gorm:"uniqueIndex:idx_habit_day;not null"`
	CompletedDate time.Time `json:"completed_date" gorm:"uniqueIndex:idx_habit_day;not null"`
	Note          string    `json:"note"`
	CreatedAt     time.Time `json:"created_at"`
}

func ValidFrequency(f string) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyWeekdays, FrequencyWeekends:
		return true
	}
	return false
}
