package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/levelup-labs/levelup_api/model"
)

// SQL_SVC is the registry id shared by SqliteService and PostgresService; the
// runtime registers exactly one of them based on DB_DRIVER.
const SQL_SVC = "sql_svc"

// SqlProvider is the storage collaborator every other service resolves from
// the registry. Only the connection and error translation live here; typed
// access goes through the repositories.
type SqlProvider interface {
	Db() *gorm.DB
}

// migratedModels is the full schema. The unique indexes on habit_logs,
// journal_entries and user_achievements are the second line of defense behind
// the ledger's duplicate pre-checks.
func migratedModels() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Avatar{},
		&model.Stats{},
		&model.Quest{},
		&model.Habit{},
		&model.HabitLog{},
		&model.JournalEntry{},
		&model.UserAchievement{},
	}
}

// IsUniqueViolation reports whether err is a uniqueness-constraint failure, in
// any of the dialect-specific spellings gorm surfaces.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
