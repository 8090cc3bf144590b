// model/quest.go
package model

import "time"

const (
	CategoryHealth  = "HEALTH"
	CategoryEnergy  = "ENERGY"
	CategoryWisdom  = "WISDOM"
	CategorySocial  = "SOCIAL"
	CategoryWealth  = "WEALTH"
	CategoryGeneral = "GENERAL"

	DifficultyEasy   = "EASY"
	DifficultyMedium = "MEDIUM"
	DifficultyHard   = "HARD"
	DifficultyEpic   = "EPIC"

	QuestStatusActive    = "ACTIVE"
	QuestStatusCompleted = "COMPLETED"
	QuestStatusFailed    = "FAILED"
	QuestStatusAbandoned = "ABANDONED"
)

// Quest is a one-shot task. Status is terminal once non-ACTIVE; only the
// ACTIVE -> COMPLETED transition grants rewards.
type Quest struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	UserID      string     `json:"user_id" gorm:"index;not null"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description" gorm:"type:text"`
	Category    string     `json:"category" gorm:"default:GENERAL"`
	Difficulty  string     `json:"difficulty" gorm:"default:EASY"`
	Status      string     `json:"status" gorm:"default:ACTIVE"`
	DueDate     *time.Time `json:"due_date"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func ValidCategory(c string) bool {
	switch c {
	case CategoryHealth, CategoryEnergy, CategoryWisdom, CategorySocial, CategoryWealth, CategoryGeneral:
		return true
	}
	return false
}

func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyEpic:
		return true
	}
	return false
}
