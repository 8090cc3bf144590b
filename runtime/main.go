package main

import (
	"os"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/levelup-labs/levelup_api/services"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	var sqlSvc context.Service = &services.SqliteService{}
	if os.Getenv("DB_DRIVER") == "postgres" {
		sqlSvc = &services.PostgresService{}
	}

	ctx, err := context.NewCtx(
		sqlSvc,
		&services.RedisService{},
		&services.MonitoringService{},

		&services.JWTService{},
		&services.AuthMiddleware{},
		&services.RateLimitService{},

		&services.LedgerService{},
		&services.UserService{},
		&services.AuthService{},
		&services.QuestService{},
		&services.HabitService{},
		&services.JournalService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}
