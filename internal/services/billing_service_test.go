package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"

	"plantpal_backend/internal/entitlement"
	"plantpal_backend/internal/models"
	"plantpal_backend/internal/repositories/memory"
)

func newBillingFixture(t *testing.T) (*BillingService, *memory.UserRepository) {
	t.Helper()
	users := memory.NewUserRepository()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	userSvc := NewUserService(users, 14).WithClock(func() time.Time { return now })
	billing := NewBillingService(users, userSvc, "sk_test_dummy", "whsec_dummy", "price_dummy", 4999, "usd")
	return billing, users
}

func seedStripeUser(t *testing.T, users *memory.UserRepository, tier models.SubscriptionType, customerID string) *models.User {
	t.Helper()
	user := &models.User{
		Username:                 "gardener",
		Email:                    "gardener@example.com",
		SubscriptionType:         tier,
		IdentificationsRemaining: entitlement.SignupGrant,
		StripeCustomerID:         customerID,
	}
	require.NoError(t, users.Create(user))
	return user
}

func stripeEvent(t *testing.T, eventType string, object any) *stripe.Event {
	t.Helper()
	raw, err := json.Marshal(object)
	require.NoError(t, err)
	return &stripe.Event{
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestApplyEventInvoicePaymentGrantsPremium(t *testing.T) {
	billing, users := newBillingFixture(t)
	user := seedStripeUser(t, users, models.SubscriptionFree, "cus_123")

	event := stripeEvent(t, "invoice.payment_succeeded", map[string]any{
		"customer": "cus_123",
	})
	require.NoError(t, billing.ApplyEvent(event))

	stored, err := users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionPremium, stored.SubscriptionType)
	assert.Equal(t, entitlement.UnlimitedSentinel, stored.IdentificationsRemaining)
}

func TestApplyEventRenewalInvoiceIsIdempotent(t *testing.T) {
	billing, users := newBillingFixture(t)
	user := seedStripeUser(t, users, models.SubscriptionPremium, "cus_123")
	user.IdentificationsRemaining = entitlement.UnlimitedSentinel
	require.NoError(t, users.Update(user))

	event := stripeEvent(t, "invoice.payment_succeeded", map[string]any{
		"customer": "cus_123",
	})
	require.NoError(t, billing.ApplyEvent(event))

	stored, err := users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionPremium, stored.SubscriptionType)
}

func TestApplyEventSubscriptionDeletedDowngrades(t *testing.T) {
	billing, users := newBillingFixture(t)
	user := seedStripeUser(t, users, models.SubscriptionPremium, "cus_123")

	event := stripeEvent(t, "customer.subscription.deleted", map[string]any{
		"customer": "cus_123",
	})
	require.NoError(t, billing.ApplyEvent(event))

	stored, err := users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionFree, stored.SubscriptionType)
	assert.Equal(t, entitlement.DowngradeGrant, stored.IdentificationsRemaining)
}

func TestApplyEventCancellationSparesLifetime(t *testing.T) {
	billing, users := newBillingFixture(t)
	user := seedStripeUser(t, users, models.SubscriptionPremiumLifetime, "cus_123")

	event := stripeEvent(t, "customer.subscription.deleted", map[string]any{
		"customer": "cus_123",
	})
	require.NoError(t, billing.ApplyEvent(event))

	stored, err := users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionPremiumLifetime, stored.SubscriptionType)
}

func TestApplyEventUnknownCustomerIgnored(t *testing.T) {
	billing, _ := newBillingFixture(t)

	event := stripeEvent(t, "invoice.payment_succeeded", map[string]any{
		"customer": "cus_unknown",
	})
	assert.NoError(t, billing.ApplyEvent(event))
}

func TestApplyEventUnhandledTypeIgnored(t *testing.T) {
	billing, _ := newBillingFixture(t)

	event := stripeEvent(t, "charge.refunded", map[string]any{})
	assert.NoError(t, billing.ApplyEvent(event))
}
