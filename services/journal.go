// services/journal.go
package services

import (
	"github.com/alphabatem/common/context"

	"github.com/levelup-labs/levelup_api/dto"
	"github.com/levelup-labs/levelup_api/services/repositories"
	"github.com/levelup-labs/levelup_api/shared"
)

// JournalService is read-side plumbing; journal writes go through the ledger
// because the first entry of a day grants a reward.
type JournalService struct {
	context.DefaultService

	sqlSvc  SqlProvider
	journal *repositories.JournalRepository
}

const JOURNAL_SVC = "journal_svc"

func (svc JournalService) Id() string {
	return JOURNAL_SVC
}

func (svc *JournalService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(SqlProvider)
	svc.journal = repositories.NewJournalRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *JournalService) ListEntries(userID string, limit int) (*dto.JournalListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	entries, err := svc.journal.ListEntries(userID, limit)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to list journal entries")
	}

	resp := &dto.JournalListResponse{
		Entries: make([]dto.JournalEntryResponse, len(entries)),
		Total:   len(entries),
	}
	for i, entry := range entries {
		resp.Entries[i] = dto.JournalEntryResponse{
			ID:        entry.ID,
			EntryDate: entry.EntryDate,
			Content:   entry.Content,
			Mood:      entry.Mood,
			UpdatedAt: entry.UpdatedAt,
		}
	}
	return resp, nil
}
