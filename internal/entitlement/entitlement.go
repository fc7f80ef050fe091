package entitlement

import (
	"plantpal_backend/internal/models"
	"plantpal_backend/pkg/apperrors"
)

const (
	// SignupGrant is the identification quota given to a new free account.
	SignupGrant = 5
	// DowngradeGrant is the quota restored when a trial expires to free.
	DowngradeGrant = 3
	// UnlimitedSentinel marks a quota that is never expected to run out.
	// Premium tiers keep the counter check but set it to this value.
	UnlimitedSentinel = 999999
)

// HasPremiumAccess reports whether premium features are unlocked for the user.
// Trial is full access, time-boxed by the sweep worker.
func HasPremiumAccess(u *models.User) bool {
	switch u.SubscriptionType {
	case models.SubscriptionTrial, models.SubscriptionPremium, models.SubscriptionPremiumLifetime:
		return true
	}
	return false
}

// CanIdentify reports whether the user may run one more plant identification.
func CanIdentify(u *models.User) bool {
	if HasPremiumAccess(u) {
		return true
	}
	return u.IdentificationsRemaining > 0
}

// ConsumeIdentification decrements the metered counter for free users.
// Call only after the recognition request succeeded; premium tiers are not
// metered. Returns true when the counter was changed.
func ConsumeIdentification(u *models.User) bool {
	if u.SubscriptionType != models.SubscriptionFree {
		return false
	}
	if u.IdentificationsRemaining <= 0 {
		return false
	}
	u.IdentificationsRemaining--
	return true
}

// Transition validates a subscription tier change. All writes to
// SubscriptionType must pass through here.
//
// Allowed moves:
//   - free -> trial | premium | premium_lifetime
//   - trial -> free (expiry) | premium | premium_lifetime (upgrade mid-trial)
//   - premium -> free (cancellation) | premium_lifetime
//   - premium_lifetime -> (terminal)
func Transition(current, next models.SubscriptionType) error {
	if !models.ValidSubscriptionType(next) {
		return apperrors.ErrInvalidOperation("entitlement", "Unknown subscription type: "+string(next))
	}
	if current == next {
		return apperrors.ErrInvalidSubscriptionTransition
	}

	switch current {
	case models.SubscriptionFree:
		return nil
	case models.SubscriptionTrial:
		return nil
	case models.SubscriptionPremium:
		if next == models.SubscriptionTrial {
			return apperrors.ErrTrialNotAllowed
		}
		return nil
	case models.SubscriptionPremiumLifetime:
		return apperrors.ErrInvalidSubscriptionTransition
	}
	return apperrors.ErrInvalidOperation("entitlement", "Unknown subscription type: "+string(current))
}

// CanStartTrial rejects starting a trial for anyone who is not on the free
// tier. Expired trials are terminal: a new trial needs an explicit admin or
// user action, which goes through this same check.
func CanStartTrial(u *models.User) error {
	if u.SubscriptionType != models.SubscriptionFree {
		return apperrors.ErrTrialNotAllowed
	}
	return nil
}
