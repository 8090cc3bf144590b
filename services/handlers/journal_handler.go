package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/levelup-labs/levelup_api/dto"
	"github.com/levelup-labs/levelup_api/shared"
)

type JournalHandler struct {
	journalSvc JournalServiceInterface
	ledgerSvc  LedgerServiceInterface
}

func NewJournalHandler(journalSvc JournalServiceInterface, ledgerSvc LedgerServiceInterface) *JournalHandler {
	return &JournalHandler{
		journalSvc: journalSvc,
		ledgerSvc:  ledgerSvc,
	}
}

// @Summary Write journal entry
// @Description Upsert the entry for a calendar day. Only the first write of a day is rewarded.
// @Tags journal
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param date path string true "Entry date (YYYY-MM-DD)"
// @Param entryRequest body dto.JournalEntryRequest true "Entry"
// @Success 200 {object} shared.Response{data=dto.JournalOutcome}
// @Router /api/v1/journal/{date} [put]
func (h *JournalHandler) WriteEntry(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	entryDate, err := time.Parse("2006-01-02", c.Params("date"))
	if err != nil {
		return shared.NewBadRequestError(err, "Invalid entry date, expected YYYY-MM-DD")
	}

	var req dto.JournalEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}
	if err := req.Validate(); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	outcome, err := h.ledgerSvc.RecordJournalEntry(userID, entryDate, req)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, outcome)
}

// @Summary List journal entries
// @Tags journal
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param limit query int false "Max rows"
// @Success 200 {object} shared.Response{data=dto.JournalListResponse}
// @Router /api/v1/journal [get]
func (h *JournalHandler) ListEntries(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	entries, err := h.journalSvc.ListEntries(userID, c.QueryInt("limit"))
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, entries)
}
