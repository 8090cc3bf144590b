// services/auth.go
package services

import (
	"errors"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/levelup-labs/levelup_api/dto"
	"github.com/levelup-labs/levelup_api/services/repositories"
	"github.com/levelup-labs/levelup_api/shared"
)

type AuthService struct {
	context.DefaultService

	sqlSvc  SqlProvider
	jwtSvc  *JWTService
	userSvc *UserService

	users *repositories.UserRepository
}

const AUTH_SVC = "auth_svc"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(SqlProvider)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.userSvc = svc.Service(USER_SVC).(*UserService)
	svc.users = repositories.NewUserRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *AuthService) Register(req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid registration")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to hash password")
	}

	user, err := svc.users.CreateUser(req.Username, req.Email, string(hash))
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, shared.NewConflictError(err, "Username or email already taken")
		}
		return nil, shared.NewInternalError(err, "Failed to create user")
	}

	// A fresh account starts at level 1 with neutral stats.
	if err := svc.userSvc.InitializeProgression(user.ID); err != nil {
		return nil, err
	}

	return svc.issueToken(user.ID, user.Username)
}

func (svc *AuthService) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid login")
	}

	user, err := svc.users.GetUserByEmailOrUsername(req.EmailOrUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewUnauthorizedError(err, "Invalid credentials")
		}
		return nil, shared.NewInternalError(err, "Failed to look up user")
	}

	if !user.IsActive {
		return nil, shared.NewUnauthorizedError(nil, "Account is inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, shared.NewUnauthorizedError(err, "Invalid credentials")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := svc.users.UpdateUser(user); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("Failed to record last login")
	}

	return svc.issueToken(user.ID, user.Username)
}

func (svc *AuthService) issueToken(userID, username string) (*dto.AuthResponse, error) {
	token, expiresAt, err := svc.jwtSvc.GenerateToken(userID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to issue token")
	}
	return &dto.AuthResponse{
		UserID:      userID,
		Username:    username,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
