package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"

	"github.com/levelup-labs/levelup_api/dto"
	"github.com/levelup-labs/levelup_api/ledger"
	"github.com/levelup-labs/levelup_api/services/handlers"
	"github.com/levelup-labs/levelup_api/shared"
)

type HttpService struct {
	context.DefaultService

	authSvc       *AuthService
	questSvc      *QuestService
	habitSvc      *HabitService
	journalSvc    *JournalService
	userSvc       *UserService
	ledgerSvc     *LedgerService
	rateLimitSvc  *RateLimitService
	monitoringSvc *MonitoringService
	authMW        *AuthMiddleware

	port int
	app  *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.questSvc = svc.Service(QUEST_SVC).(*QuestService)
	svc.habitSvc = svc.Service(HABIT_SVC).(*HabitService)
	svc.journalSvc = svc.Service(JOURNAL_SVC).(*JournalService)
	svc.userSvc = svc.Service(USER_SVC).(*UserService)
	svc.ledgerSvc = svc.Service(LEDGER_SVC).(*LedgerService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	svc.authMW = svc.Service(AUTH_MIDDLEWARE_SVC).(*AuthMiddleware)

	svc.app = fiber.New(fiber.Config{
		JSONEncoder:  shared.JSONEncoder,
		JSONDecoder:  shared.JSONDecoder,
		ErrorHandler: svc.handleError,
	})

	svc.app.Use(recover.New())
	svc.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	svc.app.Use(svc.monitoringSvc.HTTPMetrics())

	svc.app.Get("/ping", svc.ping)

	authHandler := handlers.NewAuthHandler(svc.authSvc)
	questHandler := handlers.NewQuestHandler(svc.questSvc, svc.ledgerSvc)
	habitHandler := handlers.NewHabitHandler(svc.habitSvc, svc.ledgerSvc)
	journalHandler := handlers.NewJournalHandler(svc.journalSvc, svc.ledgerSvc)
	userHandler := handlers.NewUserHandler(svc.userSvc, svc.ledgerSvc)

	v1 := svc.app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	auth := v1.Group("/auth")
	auth.Post("/register", svc.rateLimitSvc.Limit("register"), authHandler.Register)
	auth.Post("/login", svc.rateLimitSvc.Limit("login"), authHandler.Login)

	required := svc.authMW.RequiredAuth()

	quests := v1.Group("/quests", required)
	quests.Post("/", questHandler.CreateQuest)
	quests.Get("/", questHandler.ListQuests)
	quests.Get("/:id", questHandler.GetQuest)
	quests.Post("/:id/complete", svc.rateLimitSvc.Limit("completion"), questHandler.CompleteQuest)
	quests.Post("/:id/abandon", questHandler.AbandonQuest)

	habits := v1.Group("/habits", required)
	habits.Post("/", habitHandler.CreateHabit)
	habits.Get("/", habitHandler.ListHabits)
	habits.Get("/:id", habitHandler.GetHabit)
	habits.Post("/:id/complete", svc.rateLimitSvc.Limit("completion"), habitHandler.CompleteHabit)
	habits.Get("/:id/logs", habitHandler.ListLogs)

	journal := v1.Group("/journal", required)
	journal.Get("/", journalHandler.ListEntries)
	journal.Put("/:date", svc.rateLimitSvc.Limit("completion"), journalHandler.WriteEntry)

	v1.Get("/progress", required, userHandler.GetProgress)
	v1.Get("/achievements", required, userHandler.GetAchievements)
	v1.Post("/achievements/check", required, userHandler.CheckAchievements)

	return svc.app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseOK(c, "pong")
}

// handleError is the single place ledger sentinels and AppErrors become HTTP
// statuses. Handlers return errors as-is.
func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		resp := dto.CreateValidationErrorResponse(err)
		return c.Status(resp.Code).JSON(resp)
	}

	if appErr, ok := shared.GetAppError(err); ok {
		if appErr.StatusCode >= fiber.StatusInternalServerError {
			log.WithError(err).Error("request failed")
		}
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return shared.ResponseJSON(c, fiber.StatusNotFound, "Not Found", nil)
	case errors.Is(err, ledger.ErrAlreadyCompleted):
		// Expected on double-submit, not an error condition worth logging.
		return shared.ResponseJSON(c, fiber.StatusConflict, "Already Completed", nil)
	case errors.Is(err, ledger.ErrInvalidState):
		return shared.ResponseJSON(c, fiber.StatusConflict, "Invalid State", nil)
	case errors.Is(err, ledger.ErrInvalidArgument):
		return shared.ResponseJSON(c, fiber.StatusBadRequest, "Invalid Argument", nil)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.WithError(err).Error("request failed")
	return shared.ResponseInternalError(c, err)
}
