package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/levelup-labs/levelup_api/dto"
	"github.com/levelup-labs/levelup_api/shared"
)

type QuestHandler struct {
	questSvc  QuestServiceInterface
	ledgerSvc LedgerServiceInterface
}

func NewQuestHandler(questSvc QuestServiceInterface, ledgerSvc LedgerServiceInterface) *QuestHandler {
	return &QuestHandler{
		questSvc:  questSvc,
		ledgerSvc: ledgerSvc,
	}
}

// @Summary Create quest
// @Description Create a one-shot quest for the authenticated user
// @Tags quest
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param createRequest body dto.CreateQuestRequest true "Quest"
// @Success 201 {object} shared.Response{data=dto.QuestResponse}
// @Router /api/v1/quests [post]
func (h *QuestHandler) CreateQuest(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.CreateQuestRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	quest, err := h.questSvc.CreateQuest(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseCreated(c, quest)
}

// @Summary List quests
// @Description List quests, optionally filtered by status
// @Tags quest
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param status query string false "Status filter"
// @Success 200 {object} shared.Response{data=dto.QuestListResponse}
// @Router /api/v1/quests [get]
func (h *QuestHandler) ListQuests(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	quests, err := h.questSvc.ListQuests(userID, c.Query("status"))
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, quests)
}

// @Summary Get quest
// @Tags quest
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param id path string true "Quest ID"
// @Success 200 {object} shared.Response{data=dto.QuestResponse}
// @Router /api/v1/quests/{id} [get]
func (h *QuestHandler) GetQuest(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	quest, err := h.questSvc.GetQuest(userID, c.Params("id"))
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, quest)
}

// @Summary Complete quest
// @Description Complete an ACTIVE quest and apply its rewards
// @Tags quest
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param id path string true "Quest ID"
// @Success 200 {object} shared.Response{data=dto.CompletionOutcome}
// @Router /api/v1/quests/{id}/complete [post]
func (h *QuestHandler) CompleteQuest(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	outcome, err := h.ledgerSvc.CompleteQuest(userID, c.Params("id"))
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, outcome)
}

// @Summary Abandon quest
// @Description Abandon an ACTIVE quest; resets the global current streak
// @Tags quest
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param id path string true "Quest ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/quests/{id}/abandon [post]
func (h *QuestHandler) AbandonQuest(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	if err := h.ledgerSvc.AbandonQuest(userID, c.Params("id")); err != nil {
		return err
	}

	return shared.ResponseOK(c, nil)
}
