package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/levelup-labs/levelup_api/model"
)

type JournalRepository struct {
	BaseRepository
}

func NewJournalRepository(db *gorm.DB) *JournalRepository {
	return &JournalRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *JournalRepository) WithTx(tx *gorm.DB) *JournalRepository {
	return &JournalRepository{BaseRepository: r.rebind(tx)}
}

func (r *JournalRepository) GetEntryForDay(userID string, day time.Time) (*model.JournalEntry, error) {
	var entry model.JournalEntry
	err := r.db.Where("user_id = ? AND entry_date = ?", userID, day).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *JournalRepository) CreateEntry(entry *model.JournalEntry) error {
	if entry.ID == "" {
		id, _ := uuid.NewV7()
		entry.ID = id.String()
	}
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	return r.db.Create(entry).Error
}

func (r *JournalRepository) SaveEntry(entry *model.JournalEntry) error {
	entry.UpdatedAt = time.Now()
	return r.db.Save(entry).Error
}

func (r *JournalRepository) ListEntries(userID string, limit int) ([]model.JournalEntry, error) {
	var entries []model.JournalEntry
	q := r.db.Where("user_id = ?", userID).Order("entry_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *JournalRepository) CountEntries(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.JournalEntry{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
