package dto

import "time"

type CreateHabitRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=120"`
	Description string `json:"description" validate:"max=2000"`
	Category    string `json:"category" validate:"omitempty,oneof=HEALTH ENERGY WISDOM SOCIAL WEALTH GENERAL"`
	Frequency   string `json:"frequency" validate:"omitempty,oneof=DAILY WEEKLY WEEKDAYS WEEKENDS"`
	TargetDays  int    `json:"target_days" validate:"omitempty,min=1,max=7"`
	XPReward    int    `json:"xp_reward" validate:"omitempty,min=1,max=200"`
	StatBoost   int    `json:"stat_boost" validate:"omitempty,min=1,max=20"`
}

func (r CreateHabitRequest) Validate() error {
	return GetValidator().Struct(r)
}

type CompleteHabitRequest struct {
	// CompletedDate defaults to today when omitted.
	CompletedDate *time.Time `json:"completed_date"`
	Note          string     `json:"note" validate:"max=500"`
}

func (r CompleteHabitRequest) Validate() error {
	return GetValidator().Struct(r)
}

type HabitResponse struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Category         string     `json:"category"`
	Frequency        string     `json:"frequency"`
	TargetDays       int        `json:"target_days,omitempty"`
	XPReward         int        `json:"xp_reward"`
	StatBoost        int        `json:"stat_boost"`
	CurrentStreak    int        `json:"current_streak"`
	LongestStreak    int        `json:"longest_streak"`
	TotalCompletions int        `json:"total_completions"`
	LastCompletedAt  *time.Time `json:"last_completed_at,omitempty"`
	IsActive         bool       `json:"is_active"`
	CreatedAt        time.Time  `json:"created_at"`
}

type HabitListResponse struct {
	Habits []HabitResponse `json:"habits"`
	Total  int             `json:"total"`
}

type HabitLogResponse struct {
	ID            string    `json:"id"`
	CompletedDate time.Time `json:"completed_date"`
	Note          string    `json:"note,omitempty"`
}

type HabitLogListResponse struct {
	Logs  []HabitLogResponse `json:"logs"`
	Total int                `json:"total"`
}
