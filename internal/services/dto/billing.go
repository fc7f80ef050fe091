package dto

type CreateSubscriptionRequest struct {
	PaymentMethodID string `json:"payment_method_id" binding:"required" validate:"required"`
}

type PaymentSuccessRequest struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required" validate:"required"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type SubscriptionResponse struct {
	SubscriptionID string `json:"subscription_id"`
	ClientSecret   string `json:"client_secret,omitempty"`
	Status         string `json:"status"`
}
