// model/achievement.go
package model

import "time"

// UserAchievement tracks which achievements a user has unlocked. Definitions
// live in code (ledger package); only the unlock fact is persisted. The unique
// index makes re-granting impossible even under concurrent checks.
type UserAchievement struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"uniqueIndex:idx_user_achievement;not null"`
	AchievementID string    `json:"achievement_id" gorm:"uniqueIndex:idx_user_achievement;not null"`
	UnlockedAt    time.Time `json:"unlocked_at"`
	CreatedAt     time.Time `json:"created_at"`
}
