package workers

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantpal_backend/internal/email"
	"plantpal_backend/internal/entitlement"
	"plantpal_backend/internal/models"
	"plantpal_backend/internal/repositories/memory"
)

type recordedReminder struct {
	To            string
	DaysRemaining int
}

type fakeEmailProvider struct {
	mu        sync.Mutex
	reminders []recordedReminder
	failFor   map[string]bool
}

func (f *fakeEmailProvider) Send(*email.Email) error       { return nil }
func (f *fakeEmailProvider) SendWelcome(_, _ string) error { return nil }
func (f *fakeEmailProvider) Validate() error               { return nil }
func (f *fakeEmailProvider) Close() error                  { return nil }

func (f *fakeEmailProvider) SendTrialReminder(to, _ string, daysRemaining int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[to] {
		return errors.New("smtp unavailable")
	}
	f.reminders = append(f.reminders, recordedReminder{To: to, DaysRemaining: daysRemaining})
	return nil
}

func trialUser(t *testing.T, users *memory.UserRepository, emailAddr string, trialEnd time.Time) *models.User {
	t.Helper()
	user := &models.User{
		Username:         emailAddr,
		Email:            emailAddr,
		SubscriptionType: models.SubscriptionTrial,
		TrialEndDate:     &trialEnd,
	}
	require.NoError(t, users.Create(user))
	return user
}

func TestSweepRemindsAtTwoAndOneDays(t *testing.T) {
	users := memory.NewUserRepository()
	emailer := &fakeEmailProvider{}
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	trialUser(t, users, "five@example.com", now.AddDate(0, 0, 5))
	trialUser(t, users, "two@example.com", now.Add(36*time.Hour))
	trialUser(t, users, "one@example.com", now.Add(20*time.Hour))

	w := NewTrialWorker(users, emailer, time.Hour)
	require.NoError(t, w.RunOnce(now))

	require.Len(t, emailer.reminders, 2)
	byTo := map[string]int{}
	for _, r := range emailer.reminders {
		byTo[r.To] = r.DaysRemaining
	}
	assert.Equal(t, 2, byTo["two@example.com"])
	assert.Equal(t, 1, byTo["one@example.com"])
	assert.NotContains(t, byTo, "five@example.com")
}

func TestSweepExpiresTrialToFree(t *testing.T) {
	users := memory.NewUserRepository()
	emailer := &fakeEmailProvider{}
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	expired := trialUser(t, users, "expired@example.com", now.Add(-time.Hour))

	w := NewTrialWorker(users, emailer, time.Hour)
	require.NoError(t, w.RunOnce(now))

	stored, err := users.FindByID(expired.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionFree, stored.SubscriptionType)
	assert.Equal(t, entitlement.DowngradeGrant, stored.IdentificationsRemaining)
	assert.Nil(t, stored.TrialEndDate)
	assert.Empty(t, emailer.reminders, "expiry does not send a reminder")
}

func TestSweepIsIdempotent(t *testing.T) {
	users := memory.NewUserRepository()
	emailer := &fakeEmailProvider{}
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	expired := trialUser(t, users, "expired@example.com", now.Add(-time.Hour))

	w := NewTrialWorker(users, emailer, time.Hour)
	require.NoError(t, w.RunOnce(now))
	require.NoError(t, w.RunOnce(now))

	stored, err := users.FindByID(expired.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionFree, stored.SubscriptionType)
	assert.Equal(t, entitlement.DowngradeGrant, stored.IdentificationsRemaining)
}

func TestSweepEmailFailureDoesNotBlockOthers(t *testing.T) {
	users := memory.NewUserRepository()
	emailer := &fakeEmailProvider{failFor: map[string]bool{"broken@example.com": true}}
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	trialUser(t, users, "broken@example.com", now.Add(36*time.Hour))
	trialUser(t, users, "fine@example.com", now.Add(20*time.Hour))
	expired := trialUser(t, users, "expired@example.com", now.Add(-time.Hour))

	w := NewTrialWorker(users, emailer, time.Hour)
	require.NoError(t, w.RunOnce(now))

	require.Len(t, emailer.reminders, 1)
	assert.Equal(t, "fine@example.com", emailer.reminders[0].To)

	stored, err := users.FindByID(expired.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionFree, stored.SubscriptionType)
}

func TestSweepSkipsTrialUserWithoutEndDate(t *testing.T) {
	users := memory.NewUserRepository()
	emailer := &fakeEmailProvider{}
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	broken := &models.User{
		Username:         "nodate",
		Email:            "nodate@example.com",
		SubscriptionType: models.SubscriptionTrial,
	}
	require.NoError(t, users.Create(broken))
	trialUser(t, users, "one@example.com", now.Add(20*time.Hour))

	w := NewTrialWorker(users, emailer, time.Hour)
	require.NoError(t, w.RunOnce(now))

	stored, err := users.FindByID(broken.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionTrial, stored.SubscriptionType)
	require.Len(t, emailer.reminders, 1)
}

func TestDaysRemainingRoundsUp(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 2, daysRemaining(now.Add(36*time.Hour), now))
	assert.Equal(t, 1, daysRemaining(now.Add(24*time.Hour), now))
	assert.Equal(t, 1, daysRemaining(now.Add(time.Minute), now))
	assert.Equal(t, 0, daysRemaining(now, now))
	assert.Equal(t, 0, daysRemaining(now.Add(-time.Hour), now))
}
