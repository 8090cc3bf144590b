package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/levelup-labs/levelup_api/model"
	"github.com/levelup-labs/levelup_api/seed/seeders"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		dbPath = flag.String("db", "", "Database path (overrides DB_DATABASE env var)")
	)
	flag.Parse()

	databasePath := *dbPath
	if databasePath == "" {
		databasePath = os.Getenv("DB_DATABASE")
		if databasePath == "" {
			databasePath = "levelup.db"
		}
	}

	db, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Avatar{},
		&model.Stats{},
		&model.Quest{},
		&model.Habit{},
		&model.HabitLog{},
		&model.JournalEntry{},
		&model.UserAchievement{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", databasePath)

	if err := seeders.NewDemoSeeder(db).Seed(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	log.Println("Seeding completed")
}
