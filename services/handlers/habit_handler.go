package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/levelup-labs/levelup_api/dto"
	"github.com/levelup-labs/levelup_api/shared"
)

type HabitHandler struct {
	habitSvc  HabitServiceInterface
	ledgerSvc LedgerServiceInterface
}

func NewHabitHandler(habitSvc HabitServiceInterface, ledgerSvc LedgerServiceInterface) *HabitHandler {
	return &HabitHandler{
		habitSvc:  habitSvc,
		ledgerSvc: ledgerSvc,
	}
}

// @Summary Create habit
// @Tags habit
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param createRequest body dto.CreateHabitRequest true "Habit"
// @Success 201 {object} shared.Response{data=dto.HabitResponse}
// @Router /api/v1/habits [post]
func (h *HabitHandler) CreateHabit(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.CreateHabitRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	habit, err := h.habitSvc.CreateHabit(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseCreated(c, habit)
}

// @Summary List habits
// @Tags habit
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.HabitListResponse}
// @Router /api/v1/habits [get]
func (h *HabitHandler) ListHabits(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	habits, err := h.habitSvc.ListHabits(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, habits)
}

// @Summary Get habit
// @Tags habit
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param id path string true "Habit ID"
// @Success 200 {object} shared.Response{data=dto.HabitResponse}
// @Router /api/v1/habits/{id} [get]
func (h *HabitHandler) GetHabit(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	habit, err := h.habitSvc.GetHabit(userID, c.Params("id"))
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, habit)
}

// @Summary Complete habit
// @Description Credit one completion for a calendar day. At most one per day.
// @Tags habit
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param id path string true "Habit ID"
// @Param completeRequest body dto.CompleteHabitRequest false "Completion"
// @Success 200 {object} shared.Response{data=dto.CompletionOutcome}
// @Router /api/v1/habits/{id}/complete [post]
func (h *HabitHandler) CompleteHabit(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.CompleteHabitRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return shared.NewBadRequestError(err, "Invalid request")
		}
	}
	if err := req.Validate(); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	completedAt := time.Now()
	if req.CompletedDate != nil {
		completedAt = *req.CompletedDate
	}

	outcome, err := h.ledgerSvc.CompleteHabit(userID, c.Params("id"), completedAt, req.Note)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, outcome)
}

// @Summary List habit logs
// @Tags habit
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param id path string true "Habit ID"
// @Param limit query int false "Max rows"
// @Success 200 {object} shared.Response{data=dto.HabitLogListResponse}
// @Router /api/v1/habits/{id}/logs [get]
func (h *HabitHandler) ListLogs(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	logs, err := h.habitSvc.ListLogs(userID, c.Params("id"), c.QueryInt("limit"))
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, logs)
}
