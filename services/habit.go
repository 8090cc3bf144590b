// services/habit.go
package services

import (
	"errors"

	"github.com/alphabatem/common/context"
	"gorm.io/gorm"

	"github.com/levelup-labs/levelup_api/dto"
	"github.com/levelup-labs/levelup_api/model"
	"github.com/levelup-labs/levelup_api/services/repositories"
	"github.com/levelup-labs/levelup_api/shared"
)

type HabitService struct {
	context.DefaultService

	sqlSvc SqlProvider
	habits *repositories.HabitRepository
}

const HABIT_SVC = "habit_svc"

func (svc HabitService) Id() string {
	return HABIT_SVC
}

func (svc *HabitService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(SqlProvider)
	svc.habits = repositories.NewHabitRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *HabitService) CreateHabit(userID string, req dto.CreateHabitRequest) (*dto.HabitResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid habit")
	}

	habit := &model.Habit{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    model.CategoryGeneral,
		Frequency:   model.FrequencyDaily,
		XPReward:    20,
		StatBoost:   2,
		IsActive:    true,
	}
	if req.Category != "" {
		habit.Category = req.Category
	}
	if req.Frequency != "" {
		habit.Frequency = req.Frequency
	}
	if req.XPReward > 0 {
		habit.XPReward = req.XPReward
	}
	if req.StatBoost > 0 {
		habit.StatBoost = req.StatBoost
	}
	if habit.Frequency == model.FrequencyWeekly {
		habit.TargetDays = req.TargetDays
		if habit.TargetDays == 0 {
			habit.TargetDays = 1
		}
	} else if req.TargetDays > 0 {
		return nil, shared.NewBadRequestError(nil, "target_days only applies to WEEKLY habits")
	}

	if err := svc.habits.CreateHabit(habit); err != nil {
		return nil, shared.NewInternalError(err, "Failed to create habit")
	}

	resp := habitResponse(habit)
	return &resp, nil
}

func (svc *HabitService) GetHabit(userID, habitID string) (*dto.HabitResponse, error) {
	habit, err := svc.habits.GetActiveHabit(userID, habitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Habit not found")
		}
		return nil, shared.NewInternalError(err, "Failed to get habit")
	}
	resp := habitResponse(habit)
	return &resp, nil
}

func (svc *HabitService) ListHabits(userID string) (*dto.HabitListResponse, error) {
	habits, err := svc.habits.ListHabits(userID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to list habits")
	}

	resp := &dto.HabitListResponse{
		Habits: make([]dto.HabitResponse, len(habits)),
		Total:  len(habits),
	}
	for i := range habits {
		resp.Habits[i] = habitResponse(&habits[i])
	}
	return resp, nil
}

func (svc *HabitService) ListLogs(userID, habitID string, limit int) (*dto.HabitLogListResponse, error) {
	habit, err := svc.habits.GetActiveHabit(userID, habitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Habit not found")
		}
		return nil, shared.NewInternalError(err, "Failed to get habit")
	}

	if limit <= 0 || limit > 100 {
		limit = 30
	}
	logs, err := svc.habits.ListLogs(habit.ID, limit)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to list habit logs")
	}

	resp := &dto.HabitLogListResponse{
		Logs:  make([]dto.HabitLogResponse, len(logs)),
		Total: len(logs),
	}
	for i, habitLog := range logs {
		resp.Logs[i] = dto.HabitLogResponse{
			ID:            habitLog.ID,
			CompletedDate: habitLog.CompletedDate,
			Note:          habitLog.Note,
		}
	}
	return resp, nil
}

func habitResponse(habit *model.Habit) dto.HabitResponse {
	return dto.HabitResponse{
		ID:               habit.ID,
		Title:            habit.Title,
		Description:      habit.Description,
		Category:         habit.Category,
		Frequency:        habit.Frequency,
		TargetDays:       habit.TargetDays,
		XPReward:         habit.XPReward,
		StatBoost:        habit.StatBoost,
		CurrentStreak:    habit.CurrentStreak,
		LongestStreak:    habit.LongestStreak,
		TotalCompletions: habit.TotalCompletions,
		LastCompletedAt:  habit.LastCompletedAt,
		IsActive:         habit.IsActive,
		CreatedAt:        habit.CreatedAt,
	}
}
