package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/levelup-labs/levelup_api/model"
)

type AchievementRepository struct {
	BaseRepository
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *AchievementRepository) WithTx(tx *gorm.DB) *AchievementRepository {
	return &AchievementRepository{BaseRepository: r.rebind(tx)}
}

func (r *AchievementRepository) ListUnlocked(userID string) ([]model.UserAchievement, error) {
	var unlocked []model.UserAchievement
	err := r.db.Where("user_id = ?", userID).Order("unlocked_at DESC").Find(&unlocked).Error
	if err != nil {
		return nil, err
	}
	return unlocked, nil
}

// UnlockedIDs returns the set of achievement ids the user already holds.
func (r *AchievementRepository) UnlockedIDs(userID string) (map[string]bool, error) {
	unlocked, err := r.ListUnlocked(userID)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(unlocked))
	for _, ua := range unlocked {
		ids[ua.AchievementID] = true
	}
	return ids, nil
}

func (r *AchievementRepository) CreateUnlock(userID, achievementID string) (*model.UserAchievement, error) {
	id, _ := uuid.NewV7()
	now := time.Now()
	unlock := &model.UserAchievement{
		ID:            id.String(),
		UserID:        userID,
		AchievementID: achievementID,
		UnlockedAt:    now,
		CreatedAt:     now,
	}
	if err := r.db.Create(unlock).Error; err != nil {
		return nil, err
	}
	return unlock, nil
}
