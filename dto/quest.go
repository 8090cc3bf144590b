package dto

import "time"

type CreateQuestRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=120"`
	Description string     `json:"description" validate:"max=2000"`
	Category    string     `json:"category" validate:"omitempty,oneof=HEALTH ENERGY WISDOM SOCIAL WEALTH GENERAL"`
	Difficulty  string     `json:"difficulty" validate:"omitempty,oneof=EASY MEDIUM HARD EPIC"`
	DueDate     *time.Time `json:"due_date"`
}

func (r CreateQuestRequest) Validate() error {
	return GetValidator().Struct(r)
}

type QuestResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Difficulty  string     `json:"difficulty"`
	Status      string     `json:"status"`
	XPReward    int        `json:"xp_reward"`
	StatBoost   int        `json:"stat_boost"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type QuestListResponse struct {
	Quests []QuestResponse `json:"quests"`
	Total  int             `json:"total"`
}
