package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/levelup-labs/levelup_api/model"
)

type HabitRepository struct {
	BaseRepository
}

func NewHabitRepository(db *gorm.DB) *HabitRepository {
	return &HabitRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *HabitRepository) WithTx(tx *gorm.DB) *HabitRepository {
	return &HabitRepository{BaseRepository: r.rebind(tx)}
}

func (r *HabitRepository) CreateHabit(habit *model.Habit) error {
	if habit.ID == "" {
		id, _ := uuid.NewV7()
		habit.ID = id.String()
	}
	habit.CreatedAt = time.Now()
	habit.UpdatedAt = habit.CreatedAt
	return r.db.Create(habit).Error
}

// GetActiveHabit fetches an active habit scoped to its owner. Inactive and
// foreign habits both read as missing.
func (r *HabitRepository) GetActiveHabit(userID, habitID string) (*model.Habit, error) {
	var habit model.Habit
	err := r.db.Where("id = ? AND user_id = ? AND is_active = ?", habitID, userID, true).
		First(&habit).Error
	if err != nil {
		return nil, err
	}
	return &habit, nil
}

func (r *HabitRepository) ListHabits(userID string) ([]model.Habit, error) {
	var habits []model.Habit
	err := r.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").Find(&habits).Error
	if err != nil {
		return nil, err
	}
	return habits, nil
}

func (r *HabitRepository) SaveHabit(habit *model.Habit) error {
	habit.UpdatedAt = time.Now()
	return r.db.Save(habit).Error
}

// GetLogForDay returns the log row for one habit and one calendar day, or
// gorm.ErrRecordNotFound.
func (r *HabitRepository) GetLogForDay(habitID string, day time.Time) (*model.HabitLog, error) {
	var habitLog model.HabitLog
	err := r.db.Where("habit_id = ? AND completed_date = ?", habitID, day).
		First(&habitLog).Error
	if err != nil {
		return nil, err
	}
	return &habitLog, nil
}

func (r *HabitRepository) CreateLog(habitLog *model.HabitLog) error {
	if habitLog.ID == "" {
		id, _ := uuid.NewV7()
		habitLog.ID = id.String()
	}
	habitLog.CreatedAt = time.Now()
	return r.db.Create(habitLog).Error
}

func (r *HabitRepository) ListLogs(habitID string, limit int) ([]model.HabitLog, error) {
	var logs []model.HabitLog
	q := r.db.Where("habit_id = ?", habitID).Order("completed_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// CountLogsForUser counts all habit completions across a user's habits.
func (r *HabitRepository) CountLogsForUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.HabitLog{}).
		Joins("JOIN habits ON habits.id = habit_logs.habit_id").
		Where("habits.user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// MaxLongestStreak returns the best per-habit streak the user ever held.
func (r *HabitRepository) MaxLongestStreak(userID string) (int, error) {
	var max *int
	err := r.db.Model(&model.Habit{}).
		Where("user_id = ?", userID).
		Select("MAX(longest_streak)").Scan(&max).Error
	if err != nil || max == nil {
		return 0, err
	}
	return *max, nil
}
