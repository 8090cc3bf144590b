package seeders

import (
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/levelup-labs/levelup_api/model"
)

// DemoSeeder provisions a demo account with a starting board of quests and
// habits so a fresh install has something to play with.
type DemoSeeder struct {
	db *gorm.DB
}

func NewDemoSeeder(db *gorm.DB) *DemoSeeder {
	return &DemoSeeder{db: db}
}

func (s *DemoSeeder) Seed() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.User
		err := tx.Where("username = ?", "demo").First(&existing).Error
		if err == nil {
			log.Println("Demo user already exists, skipping")
			return nil
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("Demo1234!"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		userID, err := uuid.NewV7()
		if err != nil {
			return err
		}

		user := model.User{
			ID:       userID.String(),
			Username: "demo",
			Email:    "demo@levelup.local",
			Password: string(hash),
			Role:     model.RoleUser,
			IsActive: true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		avatarID, err := uuid.NewV7()
		if err != nil {
			return err
		}
		if err := tx.Create(&model.Avatar{
			ID:     avatarID.String(),
			UserID: user.ID,
			Level:  1,
		}).Error; err != nil {
			return err
		}

		statsID, err := uuid.NewV7()
		if err != nil {
			return err
		}
		if err := tx.Create(&model.Stats{
			ID:     statsID.String(),
			UserID: user.ID,
			Health: 50,
			Energy: 50,
			Wisdom: 50,
			Social: 50,
			Wealth: 50,
		}).Error; err != nil {
			return err
		}

		for _, q := range demoQuests() {
			questID, err := uuid.NewV7()
			if err != nil {
				return err
			}
			q.ID = questID.String()
			q.UserID = user.ID
			q.Status = model.QuestStatusActive
			if err := tx.Create(&q).Error; err != nil {
				return err
			}
		}

		for _, h := range demoHabits() {
			habitID, err := uuid.NewV7()
			if err != nil {
				return err
			}
			h.ID = habitID.String()
			h.UserID = user.ID
			h.IsActive = true
			if err := tx.Create(&h).Error; err != nil {
				return err
			}
		}

		log.Println("Created demo user (demo / Demo1234!)")
		return nil
	})
}

func demoQuests() []model.Quest {
	return []model.Quest{
		{
			Title:       "Go for a 30 minute run",
			Description: "Any pace counts, just get out the door.",
			Category:    model.CategoryHealth,
			Difficulty:  model.DifficultyEasy,
		},
		{
			Title:       "Finish a book this month",
			Description: "Pick something you have been putting off.",
			Category:    model.CategoryWisdom,
			Difficulty:  model.DifficultyMedium,
		},
		{
			Title:      "Host a dinner for friends",
			Category:   model.CategorySocial,
			Difficulty: model.DifficultyHard,
		},
		{
			Title:      "Build a three month emergency fund",
			Category:   model.CategoryWealth,
			Difficulty: model.DifficultyEpic,
		},
	}
}

func demoHabits() []model.Habit {
	return []model.Habit{
		{
			Title:     "Morning stretch",
			Category:  model.CategoryHealth,
			Frequency: model.FrequencyDaily,
			XPReward:  20,
			StatBoost: 2,
		},
		{
			Title:     "Read 20 pages",
			Category:  model.CategoryWisdom,
			Frequency: model.FrequencyDaily,
			XPReward:  20,
			StatBoost: 2,
		},
		{
			Title:      "Weekly budget review",
			Category:   model.CategoryWealth,
			Frequency:  model.FrequencyWeekly,
			TargetDays: 1,
			XPReward:   30,
			StatBoost:  3,
		},
	}
}
