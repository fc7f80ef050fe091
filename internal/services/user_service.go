package services

import (
	"time"

	"plantpal_backend/internal/entitlement"
	"plantpal_backend/internal/logger"
	"plantpal_backend/internal/models"
	"plantpal_backend/internal/repositories"
	"plantpal_backend/pkg/apperrors"
)

type UserService struct {
	userRepo          repositories.UserRepository
	trialDurationDays int

	now func() time.Time
}

func NewUserService(userRepo repositories.UserRepository, trialDurationDays int) *UserService {
	return &UserService{
		userRepo:          userRepo,
		trialDurationDays: trialDurationDays,
		now:               time.Now,
	}
}

// WithClock overrides the time source. Test hook.
func (s *UserService) WithClock(now func() time.Time) *UserService {
	s.now = now
	return s
}

func (s *UserService) GetByID(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return user, nil
}

// StartTrial moves a free account onto a time-boxed trial. Anyone who already
// left the free tier, including expired trials that were reset to free and
// re-upgraded, is rejected.
func (s *UserService) StartTrial(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if err := entitlement.CanStartTrial(user); err != nil {
		return nil, err
	}

	end := s.now().AddDate(0, 0, s.trialDurationDays)
	user.SubscriptionType = models.SubscriptionTrial
	user.TrialEndDate = &end

	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("Trial started", "user_id", user.ID, "trial_end", end)
	return user, nil
}

// UpdateSubscription applies an explicit tier change. Every write to the
// subscription state funnels through entitlement.Transition, and the
// identification counter and trial deadline are kept consistent with the
// target tier.
func (s *UserService) UpdateSubscription(userID string, next models.SubscriptionType) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if err := entitlement.Transition(user.SubscriptionType, next); err != nil {
		return nil, err
	}

	applyTier(user, next, s.now(), s.trialDurationDays)

	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("Subscription updated", "user_id", user.ID, "subscription_type", next)
	return user, nil
}

// applyTier sets the side fields that go with a subscription tier.
func applyTier(user *models.User, next models.SubscriptionType, now time.Time, trialDays int) {
	user.SubscriptionType = next

	switch next {
	case models.SubscriptionTrial:
		end := now.AddDate(0, 0, trialDays)
		user.TrialEndDate = &end
	case models.SubscriptionPremium, models.SubscriptionPremiumLifetime:
		user.TrialEndDate = nil
		user.IdentificationsRemaining = entitlement.UnlimitedSentinel
	case models.SubscriptionFree:
		user.TrialEndDate = nil
		user.IdentificationsRemaining = entitlement.DowngradeGrant
	}
}

func (s *UserService) ListUsers(limit, offset int) ([]models.User, error) {
	users, err := s.userRepo.FindAll(limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return users, nil
}
