package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/levelup-labs/levelup_api/shared"
)

type UserHandler struct {
	userSvc   UserServiceInterface
	ledgerSvc LedgerServiceInterface
}

func NewUserHandler(userSvc UserServiceInterface, ledgerSvc LedgerServiceInterface) *UserHandler {
	return &UserHandler{
		userSvc:   userSvc,
		ledgerSvc: ledgerSvc,
	}
}

// @Summary Get progress
// @Description Avatar, stats and recently unlocked achievements for the current user.
// @Tags progress
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.ProgressResponse}
// @Router /api/v1/progress [get]
func (h *UserHandler) GetProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	progress, err := h.userSvc.GetProgress(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, progress)
}

// @Summary List achievements
// @Tags achievement
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.AchievementListResponse}
// @Router /api/v1/achievements [get]
func (h *UserHandler) GetAchievements(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	achievements, err := h.userSvc.GetAchievements(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, achievements)
}

// @Summary Check achievements
// @Description Evaluate achievement conditions and unlock any newly qualified ones.
// @Tags achievement
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=[]dto.AchievementGrant}
// @Router /api/v1/achievements/check [post]
func (h *UserHandler) CheckAchievements(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	grants, err := h.ledgerSvc.CheckAchievements(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, grants)
}
