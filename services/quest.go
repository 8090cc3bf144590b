// services/quest.go
package services

import (
	"errors"

	"github.com/alphabatem/common/context"
	"gorm.io/gorm"

	"github.com/levelup-labs/levelup_api/dto"
	"github.com/levelup-labs/levelup_api/ledger"
	"github.com/levelup-labs/levelup_api/model"
	"github.com/levelup-labs/levelup_api/services/repositories"
	"github.com/levelup-labs/levelup_api/shared"
)

type QuestService struct {
	context.DefaultService

	sqlSvc SqlProvider
	quests *repositories.QuestRepository
}

const QUEST_SVC = "quest_svc"

func (svc QuestService) Id() string {
	return QUEST_SVC
}

func (svc *QuestService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(SqlProvider)
	svc.quests = repositories.NewQuestRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *QuestService) CreateQuest(userID string, req dto.CreateQuestRequest) (*dto.QuestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid quest")
	}

	quest := &model.Quest{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    model.CategoryGeneral,
		Difficulty:  model.DifficultyEasy,
		Status:      model.QuestStatusActive,
		DueDate:     req.DueDate,
	}
	if req.Category != "" {
		quest.Category = req.Category
	}
	if req.Difficulty != "" {
		quest.Difficulty = req.Difficulty
	}

	if err := svc.quests.CreateQuest(quest); err != nil {
		return nil, shared.NewInternalError(err, "Failed to create quest")
	}

	resp := questResponse(quest)
	return &resp, nil
}

func (svc *QuestService) GetQuest(userID, questID string) (*dto.QuestResponse, error) {
	quest, err := svc.quests.GetQuest(userID, questID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Quest not found")
		}
		return nil, shared.NewInternalError(err, "Failed to get quest")
	}
	resp := questResponse(quest)
	return &resp, nil
}

func (svc *QuestService) ListQuests(userID, status string) (*dto.QuestListResponse, error) {
	if status != "" {
		switch status {
		case model.QuestStatusActive, model.QuestStatusCompleted, model.QuestStatusFailed, model.QuestStatusAbandoned:
		default:
			return nil, shared.NewBadRequestError(nil, "Invalid status filter")
		}
	}

	quests, err := svc.quests.ListQuests(userID, status)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to list quests")
	}

	resp := &dto.QuestListResponse{
		Quests: make([]dto.QuestResponse, len(quests)),
		Total:  len(quests),
	}
	for i := range quests {
		resp.Quests[i] = questResponse(&quests[i])
	}
	return resp, nil
}

func questResponse(quest *model.Quest) dto.QuestResponse {
	reward, _ := ledger.RewardForDifficulty(quest.Difficulty)
	return dto.QuestResponse{
		ID:          quest.ID,
		Title:       quest.Title,
		Description: quest.Description,
		Category:    quest.Category,
		Difficulty:  quest.Difficulty,
		Status:      quest.Status,
		XPReward:    reward.XP,
		StatBoost:   reward.StatBoost,
		DueDate:     quest.DueDate,
		CompletedAt: quest.CompletedAt,
		CreatedAt:   quest.CreatedAt,
	}
}
