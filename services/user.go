// services/user.go
package services

import (
	"errors"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/levelup-labs/levelup_api/dto"
	"github.com/levelup-labs/levelup_api/ledger"
	"github.com/levelup-labs/levelup_api/services/repositories"
	"github.com/levelup-labs/levelup_api/shared"
)

// UserService serves the read side of a user's progression: the profile
// snapshot and the achievement list. Mutations happen in the ledger only.
type UserService struct {
	context.DefaultService

	sqlSvc       SqlProvider
	users        *repositories.UserRepository
	progression  *repositories.ProgressionRepository
	achievements *repositories.AchievementRepository
}

const USER_SVC = "user_svc"

func (svc UserService) Id() string {
	return USER_SVC
}

func (svc *UserService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(SqlProvider)
	db := svc.sqlSvc.Db()
	svc.users = repositories.NewUserRepository(db)
	svc.progression = repositories.NewProgressionRepository(db)
	svc.achievements = repositories.NewAchievementRepository(db)
	return nil
}

// InitializeProgression creates the avatar and stats rows for a fresh account.
func (svc *UserService) InitializeProgression(userID string) error {
	if err := svc.progression.InitProgression(userID); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Failed to initialize progression")
		return shared.NewInternalError(err, "Failed to initialize progression")
	}
	return nil
}

func (svc *UserService) GetProgress(userID string) (*dto.ProgressResponse, error) {
	avatar, err := svc.progression.GetAvatar(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Progression not found")
		}
		return nil, shared.NewInternalError(err, "Failed to get avatar")
	}
	stats, err := svc.progression.GetStats(userID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to get stats")
	}

	unlocked, err := svc.achievements.ListUnlocked(userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Failed to get user achievements")
		unlocked = nil
	}

	recent := make([]dto.AchievementResponse, 0)
	for _, ua := range unlocked {
		if time.Since(ua.UnlockedAt) > 7*24*time.Hour {
			continue
		}
		def, ok := ledger.DefinitionByID(ua.AchievementID)
		if !ok {
			continue
		}
		unlockedAt := ua.UnlockedAt
		recent = append(recent, dto.AchievementResponse{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Category:    def.Category,
			XPReward:    def.XPReward,
			Unlocked:    true,
			UnlockedAt:  &unlockedAt,
		})
	}

	return &dto.ProgressResponse{
		UserID: userID,
		Avatar: dto.AvatarResponse{
			Level:         avatar.Level,
			Experience:    avatar.Experience,
			XPToNextLevel: ledger.XPThresholdForLevel(avatar.Level) - avatar.Experience,
		},
		Stats: dto.StatsResponse{
			Health:        stats.Health,
			Energy:        stats.Energy,
			Wisdom:        stats.Wisdom,
			Social:        stats.Social,
			Wealth:        stats.Wealth,
			CurrentStreak: stats.CurrentStreak,
			LongestStreak: stats.LongestStreak,
		},
		RecentAchievements: recent,
	}, nil
}

// GetAchievements lists every definition with the user's unlock state.
func (svc *UserService) GetAchievements(userID string) (*dto.AchievementListResponse, error) {
	unlocked, err := svc.achievements.ListUnlocked(userID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to get user achievements")
	}

	unlockedAt := make(map[string]time.Time, len(unlocked))
	for _, ua := range unlocked {
		unlockedAt[ua.AchievementID] = ua.UnlockedAt
	}

	defs := ledger.Definitions()
	resp := &dto.AchievementListResponse{
		Achievements: make([]dto.AchievementResponse, len(defs)),
		Total:        len(defs),
	}
	for i, def := range defs {
		item := dto.AchievementResponse{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Category:    def.Category,
			XPReward:    def.XPReward,
		}
		if at, ok := unlockedAt[def.ID]; ok {
			t := at
			item.Unlocked = true
			item.UnlockedAt = &t
			resp.Unlocked++
		}
		resp.Achievements[i] = item
	}
	return resp, nil
}
