package services

import (
	"encoding/json"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/customer"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"github.com/stripe/stripe-go/v79/subscription"
	"github.com/stripe/stripe-go/v79/webhook"

	"plantpal_backend/internal/logger"
	"plantpal_backend/internal/models"
	"plantpal_backend/internal/repositories"
	"plantpal_backend/internal/services/dto"
	"plantpal_backend/pkg/apperrors"
)

// BillingService wraps the Stripe integration. Entitlement changes triggered
// by payments go through the user service so every tier change passes the
// same transition checks. Webhook events are never trusted without a verified
// signature.
type BillingService struct {
	userRepo    repositories.UserRepository
	userService *UserService

	secretKey      string
	webhookSecret  string
	premiumPriceID string
	lifetimeAmount int64
	currency       string
}

func NewBillingService(userRepo repositories.UserRepository, userService *UserService, secretKey, webhookSecret, premiumPriceID string, lifetimeAmount int64, currency string) *BillingService {
	stripe.Key = secretKey
	return &BillingService{
		userRepo:       userRepo,
		userService:    userService,
		secretKey:      secretKey,
		webhookSecret:  webhookSecret,
		premiumPriceID: premiumPriceID,
		lifetimeAmount: lifetimeAmount,
		currency:       currency,
	}
}

// ensureCustomer returns the user's Stripe customer ID, creating the customer
// on first use.
func (s *BillingService) ensureCustomer(user *models.User) (string, error) {
	if user.StripeCustomerID != "" {
		return user.StripeCustomerID, nil
	}

	params := &stripe.CustomerParams{
		Email: stripe.String(user.Email),
		Name:  stripe.String(user.Username),
	}
	params.AddMetadata("user_id", user.ID)

	c, err := customer.New(params)
	if err != nil {
		logger.Error("Stripe customer creation failed", "user_id", user.ID, "error", err)
		return "", apperrors.ErrPaymentProviderError
	}

	user.StripeCustomerID = c.ID
	if err := s.userRepo.Update(user); err != nil {
		return "", apperrors.InternalError(err)
	}
	return c.ID, nil
}

// CreatePaymentIntent opens a one-time payment for the lifetime tier.
func (s *BillingService) CreatePaymentIntent(user *models.User) (*dto.PaymentIntentResponse, error) {
	customerID, err := s.ensureCustomer(user)
	if err != nil {
		return nil, err
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(s.lifetimeAmount),
		Currency: stripe.String(s.currency),
		Customer: stripe.String(customerID),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("user_id", user.ID)
	params.AddMetadata("tier", string(models.SubscriptionPremiumLifetime))

	pi, err := paymentintent.New(params)
	if err != nil {
		logger.Error("Stripe payment intent creation failed", "user_id", user.ID, "error", err)
		return nil, apperrors.ErrPaymentProviderError
	}

	return &dto.PaymentIntentResponse{
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}, nil
}

// CreateSubscription starts the recurring premium subscription. The returned
// client secret confirms the first invoice's payment on the client side; the
// entitlement itself is granted by the invoice webhook, not here.
func (s *BillingService) CreateSubscription(user *models.User, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	customerID, err := s.ensureCustomer(user)
	if err != nil {
		return nil, err
	}

	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(s.premiumPriceID)},
		},
		DefaultPaymentMethod: stripe.String(req.PaymentMethodID),
		PaymentBehavior:      stripe.String("default_incomplete"),
	}
	params.AddExpand("latest_invoice.payment_intent")

	sub, err := subscription.New(params)
	if err != nil {
		logger.Error("Stripe subscription creation failed", "user_id", user.ID, "error", err)
		return nil, apperrors.ErrPaymentProviderError
	}

	user.StripeSubscriptionID = sub.ID
	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.SubscriptionResponse{
		SubscriptionID: sub.ID,
		Status:         string(sub.Status),
	}
	if sub.LatestInvoice != nil && sub.LatestInvoice.PaymentIntent != nil {
		resp.ClientSecret = sub.LatestInvoice.PaymentIntent.ClientSecret
	}
	return resp, nil
}

// ConfirmPayment verifies a payment intent directly with Stripe and grants the
// lifetime tier. The client's word alone is never enough: the intent must
// belong to this user and have actually succeeded.
func (s *BillingService) ConfirmPayment(user *models.User, req *dto.PaymentSuccessRequest) (*models.User, error) {
	pi, err := paymentintent.Get(req.PaymentIntentID, nil)
	if err != nil {
		logger.Error("Stripe payment intent lookup failed", "user_id", user.ID, "error", err)
		return nil, apperrors.ErrPaymentProviderError
	}

	if pi.Metadata["user_id"] != user.ID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, apperrors.ErrInvalidOperation("payment", "Payment has not succeeded")
	}

	return s.userService.UpdateSubscription(user.ID, models.SubscriptionPremiumLifetime)
}

// HandleWebhook verifies the event signature and applies its entitlement
// effect. Unhandled event types are acknowledged and ignored.
func (s *BillingService) HandleWebhook(payload []byte, sigHeader string) error {
	event, err := webhook.ConstructEvent(payload, sigHeader, s.webhookSecret)
	if err != nil {
		logger.Warn("Stripe webhook signature verification failed", "error", err)
		return apperrors.ErrInvalidWebhookSignature
	}
	return s.ApplyEvent(&event)
}

// ApplyEvent maps a verified Stripe event onto the subscription state.
func (s *BillingService) ApplyEvent(event *stripe.Event) error {
	switch event.Type {
	case "invoice.payment_succeeded":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return apperrors.InternalError(err)
		}
		if invoice.Customer == nil {
			return nil
		}
		return s.grantFromInvoice(invoice.Customer.ID)

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return apperrors.InternalError(err)
		}
		if sub.Customer == nil {
			return nil
		}
		return s.revokeFromCancellation(sub.Customer.ID)

	default:
		logger.Debug("Ignoring Stripe event", "type", event.Type)
		return nil
	}
}

func (s *BillingService) grantFromInvoice(customerID string) error {
	user, err := s.userRepo.FindByStripeCustomerID(customerID)
	if err != nil {
		logger.Warn("Invoice for unknown Stripe customer", "customer_id", customerID)
		return nil
	}

	// Renewal invoices arrive for users who are already premium.
	if user.SubscriptionType == models.SubscriptionPremium ||
		user.SubscriptionType == models.SubscriptionPremiumLifetime {
		return nil
	}

	_, err = s.userService.UpdateSubscription(user.ID, models.SubscriptionPremium)
	return err
}

func (s *BillingService) revokeFromCancellation(customerID string) error {
	user, err := s.userRepo.FindByStripeCustomerID(customerID)
	if err != nil {
		logger.Warn("Cancellation for unknown Stripe customer", "customer_id", customerID)
		return nil
	}

	// Lifetime is not tied to the recurring subscription.
	if user.SubscriptionType != models.SubscriptionPremium {
		return nil
	}

	_, err = s.userService.UpdateSubscription(user.ID, models.SubscriptionFree)
	return err
}
