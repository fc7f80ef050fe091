package services

import (
	"golang.org/x/crypto/bcrypt"

	"plantpal_backend/internal/email"
	"plantpal_backend/internal/entitlement"
	"plantpal_backend/internal/logger"
	"plantpal_backend/internal/models"
	"plantpal_backend/internal/repositories"
	"plantpal_backend/internal/services/dto"
	"plantpal_backend/pkg/apperrors"
)

type AuthService struct {
	userRepo repositories.UserRepository
	emailer  email.Provider
}

func NewAuthService(userRepo repositories.UserRepository, emailer email.Provider) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		emailer:  emailer,
	}
}

// Register creates a free-tier account with the signup identification grant.
// The welcome email is best effort: a delivery failure is logged and the
// registration still succeeds.
func (s *AuthService) Register(req *dto.RegisterRequest) (*models.User, error) {
	if len(req.Password) < 8 {
		return nil, apperrors.ErrWeakPassword
	}

	if _, err := s.userRepo.FindByUsername(req.Username); err == nil {
		return nil, apperrors.ErrUsernameTaken
	}
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Username:                 req.Username,
		Email:                    req.Email,
		PasswordHash:             string(hash),
		Role:                     models.UserRoleUser,
		SubscriptionType:         models.SubscriptionFree,
		IdentificationsRemaining: entitlement.SignupGrant,
	}

	if err := s.userRepo.Create(user); err != nil {
		switch err {
		case repositories.ErrUserAlreadyExists:
			return nil, apperrors.ErrUsernameTaken
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	if s.emailer != nil {
		if err := s.emailer.SendWelcome(user.Email, user.Username); err != nil {
			logger.Warn("Failed to send welcome email", "user_id", user.ID, "error", err)
		}
	}

	logger.Info("User registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login verifies the credentials and returns the account. Unknown usernames
// and bad passwords are indistinguishable to the caller.
func (s *AuthService) Login(req *dto.LoginRequest) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(req.Username)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

func (s *AuthService) GetByID(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return user, nil
}
