// services/ledger.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/levelup-labs/levelup_api/dto"
	"github.com/levelup-labs/levelup_api/ledger"
	"github.com/levelup-labs/levelup_api/model"
	"github.com/levelup-labs/levelup_api/services/repositories"
)

// LedgerService is the progression ledger engine: every completion event goes
// through here, and every mutation group it performs either fully commits or
// fully rolls back.
type LedgerService struct {
	context.DefaultService

	sqlSvc SqlProvider

	db           *gorm.DB
	quests       *repositories.QuestRepository
	habits       *repositories.HabitRepository
	journal      *repositories.JournalRepository
	progression  *repositories.ProgressionRepository
	achievements *repositories.AchievementRepository
}

const LEDGER_SVC = "ledger_svc"

func (svc LedgerService) Id() string {
	return LEDGER_SVC
}

func (svc *LedgerService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *LedgerService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(SqlProvider)
	svc.initRepos(svc.sqlSvc.Db())
	return nil
}

func (svc *LedgerService) initRepos(db *gorm.DB) {
	svc.db = db
	svc.quests = repositories.NewQuestRepository(db)
	svc.habits = repositories.NewHabitRepository(db)
	svc.journal = repositories.NewJournalRepository(db)
	svc.progression = repositories.NewProgressionRepository(db)
	svc.achievements = repositories.NewAchievementRepository(db)
}

// CompleteHabit credits one habit completion for one calendar day. At most one
// completion per habit per day can ever commit: the pre-check catches the
// common case, the unique index on (habit_id, completed_date) catches the
// concurrent one.
func (svc *LedgerService) CompleteHabit(userID, habitID string, completedAt time.Time, note string) (*dto.CompletionOutcome, error) {
	day := ledger.Day(completedAt)

	habit, err := svc.habits.GetActiveHabit(userID, habitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: habit %s", ledger.ErrNotFound, habitID)
		}
		return nil, fmt.Errorf("%w: %v", ledger.ErrTransactionFailed, err)
	}

	if _, err := svc.habits.GetLogForDay(habit.ID, day); err == nil {
		return nil, fmt.Errorf("%w: habit %s on %s", ledger.ErrAlreadyCompleted, habitID, day.Format("2006-01-02"))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", ledger.ErrTransactionFailed, err)
	}

	var outcome dto.CompletionOutcome
	err = svc.db.Transaction(func(tx *gorm.DB) error {
		habitsTx := svc.habits.WithTx(tx)
		progTx := svc.progression.WithTx(tx)

		if err := habitsTx.CreateLog(&model.HabitLog{
			HabitID:       habit.ID,
			CompletedDate: day,
			Note:          note,
		}); err != nil {
			if IsUniqueViolation(err) {
				return ledger.ErrAlreadyCompleted
			}
			return err
		}

		prevDay, err := svc.previousCompletionDay(habitsTx, habit.ID, day)
		if err != nil {
			return err
		}

		newStreak, newLongest, streakOutcome := ledger.EvaluateStreak(prevDay, day, habit.CurrentStreak, habit.LongestStreak)
		now := time.Now()
		habit.CurrentStreak = newStreak
		habit.LongestStreak = newLongest
		habit.TotalCompletions++
		habit.LastCompletedAt = &now
		if err := habitsTx.SaveHabit(habit); err != nil {
			return err
		}

		leveledUp, newLevel, err := svc.grantXP(progTx, userID, habit.XPReward)
		if err != nil {
			return err
		}

		outcome = dto.CompletionOutcome{
			XPGained:      habit.XPReward,
			NewStreak:     newStreak,
			StreakOutcome: string(streakOutcome),
			LeveledUp:     leveledUp,
			NewLevel:      newLevel,
		}

		if habit.Category != model.CategoryGeneral {
			if err := svc.boostStat(progTx, userID, habit.Category, habit.StatBoost); err != nil {
				return err
			}
			outcome.StatAffected = habit.Category
			outcome.StatBoost = habit.StatBoost
		}

		return nil
	})
	if err != nil {
		return nil, translateLedgerErr(err)
	}

	observeCompletion("habit", outcome.LeveledUp)
	return &outcome, nil
}

// CompleteQuest transitions an ACTIVE quest to COMPLETED and applies its
// difficulty reward. GENERAL quests advance the global stats streak instead of
// boosting a stat.
func (svc *LedgerService) CompleteQuest(userID, questID string) (*dto.CompletionOutcome, error) {
	quest, err := svc.quests.GetQuest(userID, questID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: quest %s", ledger.ErrNotFound, questID)
		}
		return nil, fmt.Errorf("%w: %v", ledger.ErrTransactionFailed, err)
	}
	if quest.Status != model.QuestStatusActive {
		return nil, fmt.Errorf("%w: quest is %s", ledger.ErrInvalidState, quest.Status)
	}

	reward, err := ledger.RewardForDifficulty(quest.Difficulty)
	if err != nil {
		return nil, err
	}

	var outcome dto.CompletionOutcome
	err = svc.db.Transaction(func(tx *gorm.DB) error {
		progTx := svc.progression.WithTx(tx)

		// Guarded transition: a concurrent complete/abandon loses this race
		// and sees InvalidState, never a double grant.
		now := time.Now()
		res := tx.Model(&model.Quest{}).
			Where("id = ? AND user_id = ? AND status = ?", quest.ID, userID, model.QuestStatusActive).
			Updates(map[string]interface{}{
				"status":       model.QuestStatusCompleted,
				"completed_at": now,
				"updated_at":   now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ledger.ErrInvalidState
		}

		leveledUp, newLevel, err := svc.grantXP(progTx, userID, reward.XP)
		if err != nil {
			return err
		}

		outcome = dto.CompletionOutcome{
			XPGained:  reward.XP,
			LeveledUp: leveledUp,
			NewLevel:  newLevel,
		}

		if quest.Category == model.CategoryGeneral {
			stats, err := progTx.GetStatsForUpdate(userID)
			if err != nil {
				return err
			}
			day := ledger.Day(now)
			if stats.LastCompletedDate != nil && ledger.DaysBetween(*stats.LastCompletedDate, day) == 0 {
				// Same-day activity never re-enters the streak evaluator.
				outcome.NewStreak = stats.CurrentStreak
				outcome.StreakOutcome = string(ledger.StreakContinued)
			} else {
				newStreak, newLongest, streakOutcome := ledger.EvaluateStreak(stats.LastCompletedDate, day, stats.CurrentStreak, stats.LongestStreak)
				stats.CurrentStreak = newStreak
				stats.LongestStreak = newLongest
				stats.LastCompletedDate = &day
				if err := progTx.SaveStats(stats); err != nil {
					return err
				}
				outcome.NewStreak = newStreak
				outcome.StreakOutcome = string(streakOutcome)
			}
		} else {
			if err := svc.boostStat(progTx, userID, quest.Category, reward.StatBoost); err != nil {
				return err
			}
			outcome.StatAffected = quest.Category
			outcome.StatBoost = reward.StatBoost
		}

		return nil
	})
	if err != nil {
		return nil, translateLedgerErr(err)
	}

	observeCompletion("quest", outcome.LeveledUp)
	return &outcome, nil
}

// AbandonQuest is a narrow state transition: ACTIVE -> ABANDONED, global
// current streak reset to 0. LongestStreak is never touched and no reward is
// granted, even under concurrent complete requests.
func (svc *LedgerService) AbandonQuest(userID, questID string) error {
	quest, err := svc.quests.GetQuest(userID, questID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: quest %s", ledger.ErrNotFound, questID)
		}
		return fmt.Errorf("%w: %v", ledger.ErrTransactionFailed, err)
	}
	if quest.Status != model.QuestStatusActive {
		return fmt.Errorf("%w: quest is %s", ledger.ErrInvalidState, quest.Status)
	}

	err = svc.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Quest{}).
			Where("id = ? AND user_id = ? AND status = ?", quest.ID, userID, model.QuestStatusActive).
			Updates(map[string]interface{}{
				"status":     model.QuestStatusAbandoned,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ledger.ErrInvalidState
		}

		progTx := svc.progression.WithTx(tx)
		stats, err := progTx.GetStatsForUpdate(userID)
		if err != nil {
			return err
		}
		stats.CurrentStreak = 0
		return progTx.SaveStats(stats)
	})
	if err != nil {
		return translateLedgerErr(err)
	}
	return nil
}

// RecordJournalEntry upserts the entry for (userID, entryDate). Only the
// first write of a day grants the journal reward; edits are plain updates and
// idempotent by construction.
func (svc *LedgerService) RecordJournalEntry(userID string, entryDate time.Time, req dto.JournalEntryRequest) (*dto.JournalOutcome, error) {
	day := ledger.Day(entryDate)

	existing, err := svc.journal.GetEntryForDay(userID, day)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", ledger.ErrTransactionFailed, err)
	}

	if existing != nil {
		existing.Content = req.Content
		existing.Mood = req.Mood
		if err := svc.journal.SaveEntry(existing); err != nil {
			return nil, fmt.Errorf("%w: %v", ledger.ErrTransactionFailed, err)
		}
		avatar, err := svc.progression.GetAvatar(userID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ledger.ErrTransactionFailed, err)
		}
		return &dto.JournalOutcome{
			Entry:    journalEntryResponse(existing),
			Rewarded: false,
			NewLevel: avatar.Level,
		}, nil
	}

	entry := &model.JournalEntry{
		UserID:    userID,
		EntryDate: day,
		Content:   req.Content,
		Mood:      req.Mood,
	}

	var outcome dto.JournalOutcome
	err = svc.db.Transaction(func(tx *gorm.DB) error {
		journalTx := svc.journal.WithTx(tx)
		progTx := svc.progression.WithTx(tx)

		if err := journalTx.CreateEntry(entry); err != nil {
			if IsUniqueViolation(err) {
				return ledger.ErrAlreadyCompleted
			}
			return err
		}

		leveledUp, newLevel, err := svc.grantXP(progTx, userID, ledger.JournalReward.XP)
		if err != nil {
			return err
		}
		if err := svc.boostStat(progTx, userID, model.CategoryWisdom, ledger.JournalReward.StatBoost); err != nil {
			return err
		}

		outcome = dto.JournalOutcome{
			Entry:     journalEntryResponse(entry),
			Rewarded:  true,
			XPGained:  ledger.JournalReward.XP,
			LeveledUp: leveledUp,
			NewLevel:  newLevel,
		}
		return nil
	})
	if err != nil {
		return nil, translateLedgerErr(err)
	}

	observeCompletion("journal", outcome.LeveledUp)
	return &outcome, nil
}

// CheckAchievements evaluates the static achievement table against the user's
// aggregated metrics and grants every newly qualifying one. Each grant commits
// on its own: one failure does not hold the rest hostage, and a retry skips
// whatever already landed.
func (svc *LedgerService) CheckAchievements(userID string) ([]dto.AchievementGrant, error) {
	snapshot, err := svc.buildSnapshot(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ledger.ErrTransactionFailed, err)
	}

	unlockedIDs, err := svc.achievements.UnlockedIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ledger.ErrTransactionFailed, err)
	}

	newly := ledger.EvaluateAchievements(*snapshot, unlockedIDs)

	grants := make([]dto.AchievementGrant, 0, len(newly))
	for _, def := range newly {
		var grant dto.AchievementGrant
		err := svc.db.Transaction(func(tx *gorm.DB) error {
			achTx := svc.achievements.WithTx(tx)
			progTx := svc.progression.WithTx(tx)

			if _, err := achTx.CreateUnlock(userID, def.ID); err != nil {
				if IsUniqueViolation(err) {
					// A concurrent check already granted this one.
					return ledger.ErrAlreadyCompleted
				}
				return err
			}

			leveledUp, newLevel, err := svc.grantXP(progTx, userID, def.XPReward)
			if err != nil {
				return err
			}

			grant = dto.AchievementGrant{
				ID:        def.ID,
				Name:      def.Name,
				XPGained:  def.XPReward,
				LeveledUp: leveledUp,
				NewLevel:  newLevel,
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, ledger.ErrAlreadyCompleted) {
				continue
			}
			log.WithError(err).WithFields(log.Fields{
				"user_id":        userID,
				"achievement_id": def.ID,
			}).Warn("Achievement grant failed, will retry on next check")
			continue
		}
		observeAchievementUnlock()
		grants = append(grants, grant)
	}

	return grants, nil
}

// ==================== HELPERS ====================

func (svc *LedgerService) previousCompletionDay(habits *repositories.HabitRepository, habitID string, day time.Time) (*time.Time, error) {
	prev, err := habits.GetLogForDay(habitID, day.AddDate(0, 0, -1))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	d := prev.CompletedDate
	return &d, nil
}

func (svc *LedgerService) grantXP(prog *repositories.ProgressionRepository, userID string, xp int) (leveledUp bool, newLevel int, err error) {
	avatar, err := prog.GetAvatarForUpdate(userID)
	if err != nil {
		return false, 0, err
	}
	newLevel, newXP, leveledUp, err := ledger.ApplyXP(avatar.Level, avatar.Experience, xp)
	if err != nil {
		return false, 0, err
	}
	avatar.Level = newLevel
	avatar.Experience = newXP
	if err := prog.SaveAvatar(avatar); err != nil {
		return false, 0, err
	}
	return leveledUp, newLevel, nil
}

func (svc *LedgerService) boostStat(prog *repositories.ProgressionRepository, userID, category string, boost int) error {
	stats, err := prog.GetStatsForUpdate(userID)
	if err != nil {
		return err
	}
	value, ok := stats.StatValue(category)
	if !ok {
		return fmt.Errorf("%w: category %q has no stat", ledger.ErrInvalidArgument, category)
	}
	stats.SetStatValue(category, ledger.ClampStat(value, boost))
	return prog.SaveStats(stats)
}

func (svc *LedgerService) buildSnapshot(userID string) (*ledger.MetricsSnapshot, error) {
	avatar, err := svc.progression.GetAvatar(userID)
	if err != nil {
		return nil, err
	}
	stats, err := svc.progression.GetStats(userID)
	if err != nil {
		return nil, err
	}
	questsCompleted, err := svc.quests.CountCompleted(userID)
	if err != nil {
		return nil, err
	}
	habitCompletions, err := svc.habits.CountLogsForUser(userID)
	if err != nil {
		return nil, err
	}
	longestHabitStreak, err := svc.habits.MaxLongestStreak(userID)
	if err != nil {
		return nil, err
	}
	journalEntries, err := svc.journal.CountEntries(userID)
	if err != nil {
		return nil, err
	}

	return &ledger.MetricsSnapshot{
		Level:               avatar.Level,
		QuestsCompleted:     int(questsCompleted),
		HabitCompletions:    int(habitCompletions),
		LongestHabitStreak:  longestHabitStreak,
		GlobalLongestStreak: stats.LongestStreak,
		JournalEntries:      int(journalEntries),
		Health:              stats.Health,
		Energy:              stats.Energy,
		Wisdom:              stats.Wisdom,
		Social:              stats.Social,
		Wealth:              stats.Wealth,
	}, nil
}

func journalEntryResponse(entry *model.JournalEntry) dto.JournalEntryResponse {
	return dto.JournalEntryResponse{
		ID:        entry.ID,
		EntryDate: entry.EntryDate,
		Content:   entry.Content,
		Mood:      entry.Mood,
		UpdatedAt: entry.UpdatedAt,
	}
}

// translateLedgerErr keeps ledger sentinels intact and folds anything else
// into ErrTransactionFailed so callers can treat it as retryable.
func translateLedgerErr(err error) error {
	switch {
	case errors.Is(err, ledger.ErrAlreadyCompleted),
		errors.Is(err, ledger.ErrInvalidState),
		errors.Is(err, ledger.ErrNotFound),
		errors.Is(err, ledger.ErrInvalidArgument),
		errors.Is(err, ledger.ErrTransactionFailed):
		return err
	default:
		return fmt.Errorf("%w: %v", ledger.ErrTransactionFailed, err)
	}
}
