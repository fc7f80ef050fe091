package workers

import (
	"context"
	"math"
	"sync"
	"time"

	"plantpal_backend/internal/email"
	"plantpal_backend/internal/entitlement"
	"plantpal_backend/internal/logger"
	"plantpal_backend/internal/models"
	"plantpal_backend/internal/repositories"
)

// TrialWorker periodically sweeps trial accounts: it sends reminder emails
// near the deadline and downgrades expired trials back to the free tier.
// Reminders are best effort, the downgrade is not.
type TrialWorker struct {
	userRepo repositories.UserRepository
	emailer  email.Provider
	interval time.Duration

	now func() time.Time

	// Guards against overlapping sweeps when a run outlasts the tick.
	mu sync.Mutex
}

func NewTrialWorker(userRepo repositories.UserRepository, emailer email.Provider, interval time.Duration) *TrialWorker {
	return &TrialWorker{
		userRepo: userRepo,
		emailer:  emailer,
		interval: interval,
		now:      time.Now,
	}
}

// WithClock overrides the time source. Test hook.
func (w *TrialWorker) WithClock(now func() time.Time) *TrialWorker {
	w.now = now
	return w
}

// Start runs the sweep loop until the context is cancelled.
func (w *TrialWorker) Start(ctx context.Context) {
	logger.Info("Trial sweep worker started", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Trial sweep worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *TrialWorker) sweep() {
	if !w.mu.TryLock() {
		logger.Warn("Trial sweep still running, skipping tick")
		return
	}
	defer w.mu.Unlock()

	if err := w.RunOnce(w.now()); err != nil {
		logger.WorkerLog("trial_sweep", "sweep", err)
	}
}

// RunOnce performs a single sweep at the given time. Errors for one user are
// logged and the sweep moves on to the next.
func (w *TrialWorker) RunOnce(now time.Time) error {
	users, err := w.userRepo.ListTrialUsers()
	if err != nil {
		return err
	}

	for i := range users {
		w.processTrialUser(&users[i], now)
	}
	return nil
}

func (w *TrialWorker) processTrialUser(user *models.User, now time.Time) {
	if user.TrialEndDate == nil {
		logger.Warn("Trial user without an end date", "user_id", user.ID)
		return
	}

	days := daysRemaining(*user.TrialEndDate, now)

	switch {
	case days <= 0:
		w.expire(user)
	case days == 2 || days == 1:
		w.remind(user, days)
	}
}

// daysRemaining rounds up: 36 hours left counts as 2 days.
func daysRemaining(trialEnd, now time.Time) int {
	return int(math.Ceil(trialEnd.Sub(now).Hours() / 24))
}

func (w *TrialWorker) expire(user *models.User) {
	if err := entitlement.Transition(user.SubscriptionType, models.SubscriptionFree); err != nil {
		logger.Error("Trial expiry transition rejected", "user_id", user.ID, "error", err)
		return
	}

	user.SubscriptionType = models.SubscriptionFree
	user.TrialEndDate = nil
	user.IdentificationsRemaining = entitlement.DowngradeGrant

	if err := w.userRepo.Update(user); err != nil {
		logger.Error("Failed to downgrade expired trial", "user_id", user.ID, "error", err)
		return
	}

	logger.Info("Trial expired, account downgraded", "user_id", user.ID)
}

func (w *TrialWorker) remind(user *models.User, days int) {
	if w.emailer == nil {
		return
	}
	if err := w.emailer.SendTrialReminder(user.Email, user.Username, days); err != nil {
		logger.Warn("Failed to send trial reminder", "user_id", user.ID, "days_remaining", days, "error", err)
	}
}
