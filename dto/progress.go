package dto

import "time"

// CompletionOutcome is the only payload a presentation layer needs to format
// after a quest or habit completion.
type CompletionOutcome struct {
	XPGained      int    `json:"xp_gained"`
	StatBoost     int    `json:"stat_boost"`
	StatAffected  string `json:"stat_affected,omitempty"`
	NewStreak     int    `json:"new_streak"`
	StreakOutcome string `json:"streak_outcome,omitempty"`
	LeveledUp     bool   `json:"leveled_up"`
	NewLevel      int    `json:"new_level"`
}

type AvatarResponse struct {
	Level         int `json:"level"`
	Experience    int `json:"experience"`
	XPToNextLevel int `json:"xp_to_next_level"`
}

type StatsResponse struct {
	Health        int `json:"health"`
	Energy        int `json:"energy"`
	Wisdom        int `json:"wisdom"`
	Social        int `json:"social"`
	Wealth        int `json:"wealth"`
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}

type AchievementResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	XPReward    int        `json:"xp_reward"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

type AchievementListResponse struct {
	Achievements []AchievementResponse `json:"achievements"`
	Unlocked     int                   `json:"unlocked"`
	Total        int                   `json:"total"`
}

// AchievementGrant is one achievement newly unlocked by a check pass.
type AchievementGrant struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	XPGained  int    `json:"xp_gained"`
	LeveledUp bool   `json:"leveled_up"`
	NewLevel  int    `json:"new_level"`
}

type ProgressResponse struct {
	UserID             string                `json:"user_id"`
	Avatar             AvatarResponse        `json:"avatar"`
	Stats              StatsResponse         `json:"stats"`
	RecentAchievements []AchievementResponse `json:"recent_achievements"`
}
