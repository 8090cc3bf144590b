package dto

import "time"

type JournalEntryRequest struct {
	Content string `json:"content" validate:"required,min=1,max=10000"`
	Mood    string `json:"mood" validate:"omitempty,oneof=great good neutral bad awful"`
}

func (r JournalEntryRequest) Validate() error {
	return GetValidator().Struct(r)
}

type JournalEntryResponse struct {
	ID        string    `json:"id"`
	EntryDate time.Time `json:"entry_date"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

type JournalListResponse struct {
	Entries []JournalEntryResponse `json:"entries"`
	Total   int                    `json:"total"`
}

// JournalOutcome reports whether the save was the rewarded first write of the
// day or a plain edit.
type JournalOutcome struct {
	Entry     JournalEntryResponse `json:"entry"`
	Rewarded  bool                 `json:"rewarded"`
	XPGained  int                  `json:"xp_gained"`
	LeveledUp bool                 `json:"leveled_up"`
	NewLevel  int                  `json:"new_level"`
}
