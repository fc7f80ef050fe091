package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantpal_backend/internal/entitlement"
	"plantpal_backend/internal/models"
	"plantpal_backend/internal/repositories/memory"
	"plantpal_backend/pkg/apperrors"
)

func newUserServiceFixture(now time.Time) (*UserService, *memory.UserRepository) {
	users := memory.NewUserRepository()
	svc := NewUserService(users, 14).WithClock(func() time.Time { return now })
	return svc, users
}

func seedUser(t *testing.T, users *memory.UserRepository, tier models.SubscriptionType) *models.User {
	t.Helper()
	user := &models.User{
		Username:                 "gardener",
		Email:                    "gardener@example.com",
		SubscriptionType:         tier,
		IdentificationsRemaining: entitlement.SignupGrant,
	}
	require.NoError(t, users.Create(user))
	return user
}

func TestStartTrialSetsDeadline(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, users := newUserServiceFixture(now)
	user := seedUser(t, users, models.SubscriptionFree)

	updated, err := svc.StartTrial(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionTrial, updated.SubscriptionType)
	require.NotNil(t, updated.TrialEndDate)
	assert.Equal(t, now.AddDate(0, 0, 14), *updated.TrialEndDate)
}

func TestStartTrialRejectedForNonFree(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for _, tier := range []models.SubscriptionType{
		models.SubscriptionTrial,
		models.SubscriptionPremium,
		models.SubscriptionPremiumLifetime,
	} {
		t.Run(string(tier), func(t *testing.T) {
			svc, users := newUserServiceFixture(now)
			user := seedUser(t, users, tier)

			_, err := svc.StartTrial(user.ID)
			assert.ErrorIs(t, err, apperrors.ErrTrialNotAllowed)
		})
	}
}

func TestUpdateSubscriptionPremiumGetsSentinelQuota(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, users := newUserServiceFixture(now)
	user := seedUser(t, users, models.SubscriptionFree)

	updated, err := svc.UpdateSubscription(user.ID, models.SubscriptionPremium)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionPremium, updated.SubscriptionType)
	assert.Equal(t, entitlement.UnlimitedSentinel, updated.IdentificationsRemaining)
	assert.Nil(t, updated.TrialEndDate)
}

func TestUpdateSubscriptionDowngradeResetsQuota(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, users := newUserServiceFixture(now)
	user := seedUser(t, users, models.SubscriptionPremium)
	user.IdentificationsRemaining = entitlement.UnlimitedSentinel
	require.NoError(t, users.Update(user))

	updated, err := svc.UpdateSubscription(user.ID, models.SubscriptionFree)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionFree, updated.SubscriptionType)
	assert.Equal(t, entitlement.DowngradeGrant, updated.IdentificationsRemaining)
}

func TestUpdateSubscriptionLifetimeIsTerminal(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, users := newUserServiceFixture(now)
	user := seedUser(t, users, models.SubscriptionPremiumLifetime)

	_, err := svc.UpdateSubscription(user.ID, models.SubscriptionFree)
	assert.ErrorIs(t, err, apperrors.ErrInvalidSubscriptionTransition)
}
