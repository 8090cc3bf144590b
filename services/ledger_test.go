package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/levelup-labs/levelup_api/dto"
	"github.com/levelup-labs/levelup_api/ledger"
	"github.com/levelup-labs/levelup_api/model"
)

type ledgerFixture struct {
	db     *gorm.DB
	dsn    string
	svc    *LedgerService
	userID string
}

// newLedgerFixture opens a private in-memory database, migrates the schema and
// seeds one user with a fresh progression (level 1, all stats 50).
func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(migratedModels()...))

	userID := newID(t)
	require.NoError(t, db.Create(&model.User{
		ID:       userID,
		Username: "tester",
		Email:    "tester@example.com",
		Password: "x",
		Role:     model.RoleUser,
		IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&model.Avatar{
		ID: newID(t), UserID: userID, Level: 1,
	}).Error)
	require.NoError(t, db.Create(&model.Stats{
		ID: newID(t), UserID: userID,
		Health: 50, Energy: 50, Wisdom: 50, Social: 50, Wealth: 50,
	}).Error)

	svc := &LedgerService{}
	svc.initRepos(db)

	return &ledgerFixture{db: db, dsn: dsn, svc: svc, userID: userID}
}

func newID(t *testing.T) string {
	t.Helper()
	id, err := uuid.NewV7()
	require.NoError(t, err)
	return id.String()
}

func (f *ledgerFixture) createHabit(t *testing.T, category string) *model.Habit {
	t.Helper()
	habit := &model.Habit{
		ID:        newID(t),
		UserID:    f.userID,
		Title:     "test habit",
		Category:  category,
		Frequency: model.FrequencyDaily,
		XPReward:  20,
		StatBoost: 2,
		IsActive:  true,
	}
	require.NoError(t, f.db.Create(habit).Error)
	return habit
}

func (f *ledgerFixture) createQuest(t *testing.T, category, difficulty string) *model.Quest {
	t.Helper()
	quest := &model.Quest{
		ID:         newID(t),
		UserID:     f.userID,
		Title:      "test quest",
		Category:   category,
		Difficulty: difficulty,
		Status:     model.QuestStatusActive,
	}
	require.NoError(t, f.db.Create(quest).Error)
	return quest
}

func (f *ledgerFixture) avatar(t *testing.T) *model.Avatar {
	t.Helper()
	var avatar model.Avatar
	require.NoError(t, f.db.Where("user_id = ?", f.userID).First(&avatar).Error)
	return &avatar
}

func (f *ledgerFixture) stats(t *testing.T) *model.Stats {
	t.Helper()
	var stats model.Stats
	require.NoError(t, f.db.Where("user_id = ?", f.userID).First(&stats).Error)
	return &stats
}

func (f *ledgerFixture) habitByID(t *testing.T, id string) *model.Habit {
	t.Helper()
	var habit model.Habit
	require.NoError(t, f.db.Where("id = ?", id).First(&habit).Error)
	return &habit
}

// ==================== HABITS ====================

func TestLedger_CompleteHabit_GrantsReward(t *testing.T) {
	f := newLedgerFixture(t)
	habit := f.createHabit(t, model.CategoryHealth)
	at := time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)

	outcome, err := f.svc.CompleteHabit(f.userID, habit.ID, at, "morning run")
	require.NoError(t, err)

	assert.Equal(t, 20, outcome.XPGained)
	assert.Equal(t, 1, outcome.NewStreak)
	assert.Equal(t, string(ledger.StreakStarted), outcome.StreakOutcome)
	assert.Equal(t, model.CategoryHealth, outcome.StatAffected)
	assert.Equal(t, 2, outcome.StatBoost)
	assert.False(t, outcome.LeveledUp)

	assert.Equal(t, 20, f.avatar(t).Experience)
	assert.Equal(t, 52, f.stats(t).Health)

	saved := f.habitByID(t, habit.ID)
	assert.Equal(t, 1, saved.TotalCompletions)
	assert.Equal(t, 1, saved.CurrentStreak)
	assert.NotNil(t, saved.LastCompletedAt)
}

func TestLedger_CompleteHabit_SameDayRejected(t *testing.T) {
	f := newLedgerFixture(t)
	habit := f.createHabit(t, model.CategoryHealth)
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	_, err := f.svc.CompleteHabit(f.userID, habit.ID, at, "")
	require.NoError(t, err)

	// Later the same day, different clock time.
	_, err = f.svc.CompleteHabit(f.userID, habit.ID, at.Add(8*time.Hour), "")
	require.ErrorIs(t, err, ledger.ErrAlreadyCompleted)

	assert.Equal(t, 1, f.habitByID(t, habit.ID).TotalCompletions)
	assert.Equal(t, 20, f.avatar(t).Experience)

	var logCount int64
	require.NoError(t, f.db.Model(&model.HabitLog{}).Where("habit_id = ?", habit.ID).Count(&logCount).Error)
	assert.EqualValues(t, 1, logCount)
}

func TestLedger_CompleteHabit_ConsecutiveDaysContinueStreak(t *testing.T) {
	f := newLedgerFixture(t)
	habit := f.createHabit(t, model.CategoryWisdom)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		outcome, err := f.svc.CompleteHabit(f.userID, habit.ID, base.AddDate(0, 0, i), "")
		require.NoError(t, err)
		assert.Equal(t, i+1, outcome.NewStreak)
	}

	saved := f.habitByID(t, habit.ID)
	assert.Equal(t, 3, saved.CurrentStreak)
	assert.Equal(t, 3, saved.LongestStreak)
	assert.Equal(t, 3, saved.TotalCompletions)
}

func TestLedger_CompleteHabit_GapResetsStreakKeepsLongest(t *testing.T) {
	f := newLedgerFixture(t)
	habit := f.createHabit(t, model.CategoryWisdom)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := f.svc.CompleteHabit(f.userID, habit.ID, base.AddDate(0, 0, i), "")
		require.NoError(t, err)
	}

	// Two day gap.
	outcome, err := f.svc.CompleteHabit(f.userID, habit.ID, base.AddDate(0, 0, 5), "")
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.NewStreak)
	assert.Equal(t, string(ledger.StreakStarted), outcome.StreakOutcome)

	saved := f.habitByID(t, habit.ID)
	assert.Equal(t, 1, saved.CurrentStreak)
	assert.Equal(t, 3, saved.LongestStreak)
}

func TestLedger_CompleteHabit_GeneralSkipsStatBoost(t *testing.T) {
	f := newLedgerFixture(t)
	habit := f.createHabit(t, model.CategoryGeneral)

	outcome, err := f.svc.CompleteHabit(f.userID, habit.ID, time.Now(), "")
	require.NoError(t, err)
	assert.Empty(t, outcome.StatAffected)
	assert.Zero(t, outcome.StatBoost)

	stats := f.stats(t)
	for _, v := range []int{stats.Health, stats.Energy, stats.Wisdom, stats.Social, stats.Wealth} {
		assert.Equal(t, 50, v)
	}
}

func TestLedger_CompleteHabit_UnknownHabit(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.svc.CompleteHabit(f.userID, newID(t), time.Now(), "")
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestLedger_CompleteHabit_OtherUsersHabitNotVisible(t *testing.T) {
	f := newLedgerFixture(t)
	habit := f.createHabit(t, model.CategoryHealth)

	_, err := f.svc.CompleteHabit(newID(t), habit.ID, time.Now(), "")
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestLedger_CompleteHabit_RollbackLeavesNothingBehind(t *testing.T) {
	f := newLedgerFixture(t)
	// A category with no backing stat makes the boost step fail after the log
	// insert, so the whole transaction must unwind.
	habit := f.createHabit(t, "BOGUS")

	_, err := f.svc.CompleteHabit(f.userID, habit.ID, time.Now(), "")
	require.Error(t, err)

	var logCount int64
	require.NoError(t, f.db.Model(&model.HabitLog{}).Where("habit_id = ?", habit.ID).Count(&logCount).Error)
	assert.EqualValues(t, 0, logCount)

	assert.Equal(t, 0, f.avatar(t).Experience)
	assert.Equal(t, 0, f.habitByID(t, habit.ID).TotalCompletions)
}

func TestLedger_CompleteHabit_LevelUpRollsOver(t *testing.T) {
	f := newLedgerFixture(t)
	require.NoError(t, f.db.Model(&model.Avatar{}).Where("user_id = ?", f.userID).Update("experience", 90).Error)
	habit := f.createHabit(t, model.CategoryEnergy)

	outcome, err := f.svc.CompleteHabit(f.userID, habit.ID, time.Now(), "")
	require.NoError(t, err)
	assert.True(t, outcome.LeveledUp)
	assert.Equal(t, 2, outcome.NewLevel)

	avatar := f.avatar(t)
	assert.Equal(t, 2, avatar.Level)
	assert.Equal(t, 10, avatar.Experience)
}

// ==================== QUESTS ====================

func TestLedger_CompleteQuest_AppliesDifficultyReward(t *testing.T) {
	f := newLedgerFixture(t)
	quest := f.createQuest(t, model.CategoryWealth, model.DifficultyMedium)

	outcome, err := f.svc.CompleteQuest(f.userID, quest.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, outcome.XPGained)
	assert.Equal(t, model.CategoryWealth, outcome.StatAffected)
	assert.Equal(t, 2, outcome.StatBoost)

	assert.Equal(t, 25, f.avatar(t).Experience)
	assert.Equal(t, 52, f.stats(t).Wealth)

	var saved model.Quest
	require.NoError(t, f.db.Where("id = ?", quest.ID).First(&saved).Error)
	assert.Equal(t, model.QuestStatusCompleted, saved.Status)
	assert.NotNil(t, saved.CompletedAt)
}

func TestLedger_CompleteQuest_TwiceRejected(t *testing.T) {
	f := newLedgerFixture(t)
	quest := f.createQuest(t, model.CategoryHealth, model.DifficultyEasy)

	_, err := f.svc.CompleteQuest(f.userID, quest.ID)
	require.NoError(t, err)

	_, err = f.svc.CompleteQuest(f.userID, quest.ID)
	require.ErrorIs(t, err, ledger.ErrInvalidState)

	// Reward granted exactly once.
	assert.Equal(t, 15, f.avatar(t).Experience)
	assert.Equal(t, 51, f.stats(t).Health)
}

func TestLedger_CompleteQuest_GeneralAdvancesGlobalStreak(t *testing.T) {
	f := newLedgerFixture(t)
	quest := f.createQuest(t, model.CategoryGeneral, model.DifficultyHard)

	outcome, err := f.svc.CompleteQuest(f.userID, quest.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, outcome.XPGained)
	assert.Equal(t, 1, outcome.NewStreak)
	assert.Empty(t, outcome.StatAffected)

	stats := f.stats(t)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 1, stats.LongestStreak)
	require.NotNil(t, stats.LastCompletedDate)
	assert.WithinDuration(t, time.Now(), *stats.LastCompletedDate, 24*time.Hour)

	// Stat values untouched by GENERAL quests.
	assert.Equal(t, 50, stats.Health)
}

func TestLedger_CompleteQuest_UnknownQuest(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.svc.CompleteQuest(f.userID, newID(t))
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestLedger_AbandonQuest_ResetsOnlyCurrentStreak(t *testing.T) {
	f := newLedgerFixture(t)
	quest := f.createQuest(t, model.CategoryHealth, model.DifficultyEasy)
	require.NoError(t, f.db.Model(&model.Stats{}).Where("user_id = ?", f.userID).
		Updates(map[string]interface{}{"current_streak": 4, "longest_streak": 9}).Error)

	require.NoError(t, f.svc.AbandonQuest(f.userID, quest.ID))

	stats := f.stats(t)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 9, stats.LongestStreak)

	// No reward on abandonment.
	assert.Equal(t, 0, f.avatar(t).Experience)

	var saved model.Quest
	require.NoError(t, f.db.Where("id = ?", quest.ID).First(&saved).Error)
	assert.Equal(t, model.QuestStatusAbandoned, saved.Status)
}

func TestLedger_AbandonQuest_CompletedQuestRejected(t *testing.T) {
	f := newLedgerFixture(t)
	quest := f.createQuest(t, model.CategoryHealth, model.DifficultyEasy)

	_, err := f.svc.CompleteQuest(f.userID, quest.ID)
	require.NoError(t, err)

	err = f.svc.AbandonQuest(f.userID, quest.ID)
	assert.ErrorIs(t, err, ledger.ErrInvalidState)
}

// ==================== JOURNAL ====================

func TestLedger_RecordJournalEntry_FirstWriteRewardedEditNot(t *testing.T) {
	f := newLedgerFixture(t)
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	outcome, err := f.svc.RecordJournalEntry(f.userID, day, dto.JournalEntryRequest{
		Content: "first draft",
		Mood:    "good",
	})
	require.NoError(t, err)
	assert.True(t, outcome.Rewarded)
	assert.Equal(t, 10, outcome.XPGained)

	assert.Equal(t, 10, f.avatar(t).Experience)
	assert.Equal(t, 51, f.stats(t).Wisdom)

	// Editing the same day's entry is a plain update.
	outcome, err = f.svc.RecordJournalEntry(f.userID, day, dto.JournalEntryRequest{
		Content: "second draft",
		Mood:    "great",
	})
	require.NoError(t, err)
	assert.False(t, outcome.Rewarded)
	assert.Zero(t, outcome.XPGained)
	assert.Equal(t, "second draft", outcome.Entry.Content)

	assert.Equal(t, 10, f.avatar(t).Experience)
	assert.Equal(t, 51, f.stats(t).Wisdom)

	var count int64
	require.NoError(t, f.db.Model(&model.JournalEntry{}).Where("user_id = ?", f.userID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLedger_RecordJournalEntry_DistinctDaysEachRewarded(t *testing.T) {
	f := newLedgerFixture(t)
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		outcome, err := f.svc.RecordJournalEntry(f.userID, day.AddDate(0, 0, i), dto.JournalEntryRequest{
			Content: "entry",
			Mood:    "neutral",
		})
		require.NoError(t, err)
		assert.True(t, outcome.Rewarded)
	}

	assert.Equal(t, 30, f.avatar(t).Experience)
	assert.Equal(t, 53, f.stats(t).Wisdom)
}

// ==================== ACHIEVEMENTS ====================

func TestLedger_CheckAchievements_GrantsOnce(t *testing.T) {
	f := newLedgerFixture(t)
	quest := f.createQuest(t, model.CategoryHealth, model.DifficultyEasy)

	_, err := f.svc.CompleteQuest(f.userID, quest.ID)
	require.NoError(t, err)

	grants, err := f.svc.CheckAchievements(f.userID)
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.Equal(t, "first_quest", grants[0].ID)
	assert.Equal(t, 10, grants[0].XPGained)

	// Quest reward (15) plus achievement reward (10).
	assert.Equal(t, 25, f.avatar(t).Experience)

	// A second check finds nothing new.
	grants, err = f.svc.CheckAchievements(f.userID)
	require.NoError(t, err)
	assert.Empty(t, grants)
	assert.Equal(t, 25, f.avatar(t).Experience)
}

func TestLedger_CheckAchievements_HabitAndStreakMetrics(t *testing.T) {
	f := newLedgerFixture(t)
	habit := f.createHabit(t, model.CategoryHealth)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		_, err := f.svc.CompleteHabit(f.userID, habit.ID, base.AddDate(0, 0, i), "")
		require.NoError(t, err)
	}

	grants, err := f.svc.CheckAchievements(f.userID)
	require.NoError(t, err)

	ids := make([]string, 0, len(grants))
	for _, g := range grants {
		ids = append(ids, g.ID)
	}
	assert.Contains(t, ids, "first_habit")
	assert.Contains(t, ids, "streak_7")
	assert.NotContains(t, ids, "streak_30")
}

func TestLedger_CheckAchievements_FreshUserGetsNothing(t *testing.T) {
	f := newLedgerFixture(t)

	grants, err := f.svc.CheckAchievements(f.userID)
	require.NoError(t, err)
	assert.Empty(t, grants)
}

func TestLedger_CompleteQuest_SecondGeneralSameDayKeepsStreak(t *testing.T) {
	f := newLedgerFixture(t)
	first := f.createQuest(t, model.CategoryGeneral, model.DifficultyEasy)
	second := f.createQuest(t, model.CategoryGeneral, model.DifficultyEasy)

	_, err := f.svc.CompleteQuest(f.userID, first.ID)
	require.NoError(t, err)

	// Pretend the run was built up over earlier days; LastCompletedDate is
	// already today from the first completion.
	require.NoError(t, f.db.Model(&model.Stats{}).Where("user_id = ?", f.userID).
		Updates(map[string]interface{}{"current_streak": 6, "longest_streak": 6}).Error)

	outcome, err := f.svc.CompleteQuest(f.userID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, outcome.NewStreak)
	assert.Equal(t, string(ledger.StreakContinued), outcome.StreakOutcome)

	stats := f.stats(t)
	assert.Equal(t, 6, stats.CurrentStreak)
	assert.Equal(t, 6, stats.LongestStreak)

	// Both quests still paid out.
	assert.Equal(t, 30, f.avatar(t).Experience)
}

// ==================== CONSTRAINT RACES ====================

// rivalConn opens a second connection onto the fixture's shared-cache
// database, standing in for a concurrent request's session.
func (f *ledgerFixture) rivalConn(t *testing.T) *gorm.DB {
	t.Helper()
	rival, err := gorm.Open(sqlite.Open(f.dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return rival
}

func TestLedger_CompleteHabit_ConcurrentDuplicateHitsConstraint(t *testing.T) {
	f := newLedgerFixture(t)
	habit := f.createHabit(t, model.CategoryHealth)
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	day := ledger.Day(at)
	rival := f.rivalConn(t)

	// Land a competing log after the duplicate pre-check has passed but
	// before the transactional insert, exactly where a concurrent
	// double-submit would slot in.
	injected := false
	err := f.db.Callback().Create().Before("gorm:create").Register("rival_habit_log", func(tx *gorm.DB) {
		if injected {
			return
		}
		if _, ok := tx.Statement.Dest.(*model.HabitLog); !ok {
			return
		}
		injected = true
		require.NoError(t, rival.Create(&model.HabitLog{
			ID:            newID(t),
			HabitID:       habit.ID,
			CompletedDate: day,
		}).Error)
	})
	require.NoError(t, err)

	_, err = f.svc.CompleteHabit(f.userID, habit.ID, at, "")
	require.ErrorIs(t, err, ledger.ErrAlreadyCompleted)
	require.True(t, injected)

	// The losing transaction must leave no trace.
	assert.Equal(t, 0, f.habitByID(t, habit.ID).TotalCompletions)
	assert.Equal(t, 0, f.avatar(t).Experience)
	assert.Equal(t, 50, f.stats(t).Health)

	var logCount int64
	require.NoError(t, f.db.Model(&model.HabitLog{}).Where("habit_id = ?", habit.ID).Count(&logCount).Error)
	assert.EqualValues(t, 1, logCount)
}

func TestLedger_RecordJournalEntry_ConcurrentDuplicateHitsConstraint(t *testing.T) {
	f := newLedgerFixture(t)
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	day := ledger.Day(at)
	rival := f.rivalConn(t)

	injected := false
	err := f.db.Callback().Create().Before("gorm:create").Register("rival_journal_entry", func(tx *gorm.DB) {
		if injected {
			return
		}
		if _, ok := tx.Statement.Dest.(*model.JournalEntry); !ok {
			return
		}
		injected = true
		require.NoError(t, rival.Create(&model.JournalEntry{
			ID:        newID(t),
			UserID:    f.userID,
			EntryDate: day,
			Content:   "got there first",
		}).Error)
	})
	require.NoError(t, err)

	_, err = f.svc.RecordJournalEntry(f.userID, at, dto.JournalEntryRequest{
		Content: "too late",
		Mood:    "neutral",
	})
	require.ErrorIs(t, err, ledger.ErrAlreadyCompleted)
	require.True(t, injected)

	assert.Equal(t, 0, f.avatar(t).Experience)
	assert.Equal(t, 50, f.stats(t).Wisdom)

	var entries []model.JournalEntry
	require.NoError(t, f.db.Where("user_id = ?", f.userID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, "got there first", entries[0].Content)
}
