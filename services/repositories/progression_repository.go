package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/levelup-labs/levelup_api/model"
)

// ProgressionRepository owns the Avatar and Stats rows. The ForUpdate variants
// take row locks so concurrent completions for the same user serialize their
// read-modify-write instead of losing updates.
type ProgressionRepository struct {
	BaseRepository
}

func NewProgressionRepository(db *gorm.DB) *ProgressionRepository {
	return &ProgressionRepository{BaseRepository: NewBaseRepository(db)}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ProgressionRepository) WithTx(tx *gorm.DB) *ProgressionRepository {
	return &ProgressionRepository{BaseRepository: r.rebind(tx)}
}

func (r *ProgressionRepository) InitProgression(userID string) error {
	avatarID, _ := uuid.NewV7()
	statsID, _ := uuid.NewV7()
	now := time.Now()

	avatar := &model.Avatar{
		ID:        avatarID.String(),
		UserID:    userID,
		Level:     1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	stats := &model.Stats{
		ID:     statsID.String(),
		UserID: userID,
		Health: 50, Energy: 50, Wisdom: 50, Social: 50, Wealth: 50,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(avatar).Error; err != nil {
			return err
		}
		return tx.Create(stats).Error
	})
}

func (r *ProgressionRepository) GetAvatar(userID string) (*model.Avatar, error) {
	var avatar model.Avatar
	if err := r.db.Where("user_id = ?", userID).First(&avatar).Error; err != nil {
		return nil, err
	}
	return &avatar, nil
}

func (r *ProgressionRepository) GetAvatarForUpdate(userID string) (*model.Avatar, error) {
	var avatar model.Avatar
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&avatar).Error
	if err != nil {
		return nil, err
	}
	return &avatar, nil
}

func (r *ProgressionRepository) SaveAvatar(avatar *model.Avatar) error {
	avatar.UpdatedAt = time.Now()
	return r.db.Save(avatar).Error
}

func (r *ProgressionRepository) GetStats(userID string) (*model.Stats, error) {
	var stats model.Stats
	if err := r.db.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *ProgressionRepository) GetStatsForUpdate(userID string) (*model.Stats, error) {
	var stats model.Stats
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *ProgressionRepository) SaveStats(stats *model.Stats) error {
	stats.UpdatedAt = time.Now()
	return r.db.Save(stats).Error
}
