package handlers

import (
	"time"

	"github.com/levelup-labs/levelup_api/dto"
)

// Interfaces the handlers depend on. Concrete services satisfy these; tests
// can substitute fakes without standing up the registry.

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req dto.LoginRequest) (*dto.AuthResponse, error)
}

type QuestServiceInterface interface {
	CreateQuest(userID string, req dto.CreateQuestRequest) (*dto.QuestResponse, error)
	GetQuest(userID, questID string) (*dto.QuestResponse, error)
	ListQuests(userID, status string) (*dto.QuestListResponse, error)
}

type HabitServiceInterface interface {
	CreateHabit(userID string, req dto.CreateHabitRequest) (*dto.HabitResponse, error)
	GetHabit(userID, habitID string) (*dto.HabitResponse, error)
	ListHabits(userID string) (*dto.HabitListResponse, error)
	ListLogs(userID, habitID string, limit int) (*dto.HabitLogListResponse, error)
}

type JournalServiceInterface interface {
	ListEntries(userID string, limit int) (*dto.JournalListResponse, error)
}

type LedgerServiceInterface interface {
	CompleteQuest(userID, questID string) (*dto.CompletionOutcome, error)
	AbandonQuest(userID, questID string) error
	CompleteHabit(userID, habitID string, completedAt time.Time, note string) (*dto.CompletionOutcome, error)
	RecordJournalEntry(userID string, entryDate time.Time, req dto.JournalEntryRequest) (*dto.JournalOutcome, error)
	CheckAchievements(userID string) ([]dto.AchievementGrant, error)
}

type UserServiceInterface interface {
	GetProgress(userID string) (*dto.ProgressResponse, error)
	GetAchievements(userID string) (*dto.AchievementListResponse, error)
}
