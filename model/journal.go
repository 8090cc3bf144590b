// model/journal.go
package model

import "time"

// JournalEntry is one entry per user per calendar day. The composite unique
// index mirrors HabitLog: first write for a day grants the reward, later
// writes are plain edits.
type JournalEntry struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex:idx_user_entry_day;not null"`
	EntryDate time.Time `json:"entry_date" gorm:"uniqueIndex:idx_user_entry_day;not null"`
	Content   string    `json:"content" gorm:"type:text"`
	Mood      string    `json:"mood"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
