package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/levelup-labs/levelup_api/model"
)

type QuestRepository struct {
	BaseRepository
}

func NewQuestRepository(db *gorm.DB) *QuestRepository {
	return &QuestRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *QuestRepository) WithTx(tx *gorm.DB) *QuestRepository {
	return &QuestRepository{BaseRepository: r.rebind(tx)}
}

func (r *QuestRepository) CreateQuest(quest *model.Quest) error {
	if quest.ID == "" {
		id, _ := uuid.NewV7()
		quest.ID = id.String()
	}
	quest.CreatedAt = time.Now()
	quest.UpdatedAt = quest.CreatedAt
	return r.db.Create(quest).Error
}

// GetQuest fetches a quest scoped to its owner. A foreign quest id behaves
// exactly like a missing one.
func (r *QuestRepository) GetQuest(userID, questID string) (*model.Quest, error) {
	var quest model.Quest
	err := r.db.Where("id = ? AND user_id = ?", questID, userID).First(&quest).Error
	if err != nil {
		return nil, err
	}
	return &quest, nil
}

func (r *QuestRepository) ListQuests(userID, status string) ([]model.Quest, error) {
	var quests []model.Quest
	q := r.db.Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("created_at DESC").Find(&quests).Error; err != nil {
		return nil, err
	}
	return quests, nil
}

func (r *QuestRepository) SaveQuest(quest *model.Quest) error {
	quest.UpdatedAt = time.Now()
	return r.db.Save(quest).Error
}

func (r *QuestRepository) CountCompleted(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Quest{}).
		Where("user_id = ? AND status = ?", userID, model.QuestStatusCompleted).
		Count(&count).Error
	return count, err
}
