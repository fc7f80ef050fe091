package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantpal_backend/internal/email"
	"plantpal_backend/internal/entitlement"
	"plantpal_backend/internal/models"
	"plantpal_backend/internal/repositories/memory"
	"plantpal_backend/internal/services/dto"
	"plantpal_backend/pkg/apperrors"
)

type stubEmailProvider struct {
	welcomes []string
	fail     bool
}

func (s *stubEmailProvider) Send(*email.Email) error { return nil }
func (s *stubEmailProvider) SendWelcome(to, _ string) error {
	if s.fail {
		return errors.New("smtp down")
	}
	s.welcomes = append(s.welcomes, to)
	return nil
}
func (s *stubEmailProvider) SendTrialReminder(_, _ string, _ int) error { return nil }
func (s *stubEmailProvider) Validate() error                            { return nil }
func (s *stubEmailProvider) Close() error                               { return nil }

func TestRegisterCreatesFreeAccountWithGrant(t *testing.T) {
	users := memory.NewUserRepository()
	emailer := &stubEmailProvider{}
	svc := NewAuthService(users, emailer)

	user, err := svc.Register(&dto.RegisterRequest{
		Username: "gardener",
		Email:    "gardener@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.Equal(t, models.SubscriptionFree, user.SubscriptionType)
	assert.Equal(t, entitlement.SignupGrant, user.IdentificationsRemaining)
	assert.Equal(t, models.UserRoleUser, user.Role)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
	assert.Equal(t, []string{"gardener@example.com"}, emailer.welcomes)
}

func TestRegisterWeakPasswordRejected(t *testing.T) {
	svc := NewAuthService(memory.NewUserRepository(), &stubEmailProvider{})

	_, err := svc.Register(&dto.RegisterRequest{
		Username: "gardener",
		Email:    "gardener@example.com",
		Password: "short",
	})
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
}

func TestRegisterDuplicateUsernameRejected(t *testing.T) {
	users := memory.NewUserRepository()
	svc := NewAuthService(users, &stubEmailProvider{})

	_, err := svc.Register(&dto.RegisterRequest{
		Username: "gardener",
		Email:    "first@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.Register(&dto.RegisterRequest{
		Username: "gardener",
		Email:    "second@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)
}

func TestRegisterDuplicateEmailRejected(t *testing.T) {
	users := memory.NewUserRepository()
	svc := NewAuthService(users, &stubEmailProvider{})

	_, err := svc.Register(&dto.RegisterRequest{
		Username: "first",
		Email:    "shared@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.Register(&dto.RegisterRequest{
		Username: "second",
		Email:    "shared@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegisterSurvivesEmailFailure(t *testing.T) {
	svc := NewAuthService(memory.NewUserRepository(), &stubEmailProvider{fail: true})

	user, err := svc.Register(&dto.RegisterRequest{
		Username: "gardener",
		Email:    "gardener@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestLoginVerifiesPassword(t *testing.T) {
	users := memory.NewUserRepository()
	svc := NewAuthService(users, &stubEmailProvider{})

	_, err := svc.Register(&dto.RegisterRequest{
		Username: "gardener",
		Email:    "gardener@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	user, err := svc.Login(&dto.LoginRequest{Username: "gardener", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "gardener", user.Username)

	_, err = svc.Login(&dto.LoginRequest{Username: "gardener", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Username: "nobody", Password: "correct-horse"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
