// model/progression.go
package model

import "time"

// Avatar is the per-user level/experience pair. Experience is always below the
// current level's threshold once a transaction commits; rollover happens inside
// the ledger, never in storage.
type Avatar struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"user_id" gorm:"uniqueIndex;not null"`
	Level      int       `json:"level" gorm:"default:1"`
	Experience int       `json:"experience" gorm:"default:0"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Stats holds the five bounded life stats plus the global completion streak
// pair. LongestStreak never decreases; CurrentStreak resets to 0 on quest
// abandonment.
type Stats struct {
	ID                string     `json:"id" gorm:"primaryKey"`
	UserID            string     `json:"user_id" gorm:"uniqueIndex;not null"`
	Health            int        `json:"health" gorm:"default:50"`
	Energy            int        `json:"energy" gorm:"default:50"`
	Wisdom            int        `json:"wisdom" gorm:"default:50"`
	Social            int        `json:"social" gorm:"default:50"`
	Wealth            int        `json:"wealth" gorm:"default:50"`
	CurrentStreak     int        `json:"current_streak" gorm:"default:0"`
	LongestStreak     int        `json:"longest_streak" gorm:"default:0"`
	LastCompletedDate *time.Time `json:"last_completed_date"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// StatValue returns the value of the stat tied to a category. GENERAL has no
// stat field.
func (s *Stats) StatValue(category string) (int, bool) {
	switch category {
	case CategoryHealth:
		return s.Health, true
	case CategoryEnergy:
		return s.Energy, true
	case CategoryWisdom:
		return s.Wisdom, true
	case CategorySocial:
		return s.Social, true
	case CategoryWealth:
		return s.Wealth, true
	}
	return 0, false
}

// SetStatValue writes the stat tied to a category. Reports false for GENERAL
// and unknown categories so callers never fall back to stringly field access.
func (s *Stats) SetStatValue(category string, value int) bool {
	switch category {
	case CategoryHealth:
		s.Health = value
	case CategoryEnergy:
		s.Energy = value
	case CategoryWisdom:
		s.Wisdom = value
	case CategorySocial:
		s.Social = value
	case CategoryWealth:
		s.Wealth = value
	default:
		return false
	}
	return true
}
