package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"plantpal_backend/internal/services"
	"plantpal_backend/internal/services/dto"
	"plantpal_backend/pkg/apperrors"
)

type BillingHandler struct {
	*BaseHandler
	billingService *services.BillingService
	userService    *services.UserService
}

func NewBillingHandler(base *BaseHandler, billingService *services.BillingService, userService *services.UserService) *BillingHandler {
	return &BillingHandler{
		BaseHandler:    base,
		billingService: billingService,
		userService:    userService,
	}
}

func (h *BillingHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	authed.POST("/create-payment-intent", h.CreatePaymentIntent)
	authed.POST("/create-subscription", h.CreateSubscription)
	authed.POST("/payment-success", h.PaymentSuccess)
	authed.POST("/start-free-trial", h.StartFreeTrial)

	// Stripe calls this endpoint directly; auth is the webhook signature.
	public.POST("/webhook", h.Webhook)
}

func (h *BillingHandler) CreatePaymentIntent(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	resp, err := h.billingService.CreatePaymentIntent(user)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BillingHandler) CreateSubscription(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	var req dto.CreateSubscriptionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.billingService.CreateSubscription(user, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BillingHandler) PaymentSuccess(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	var req dto.PaymentSuccessRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	updated, err := h.billingService.ConfirmPayment(user, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserDTO(updated))
}

func (h *BillingHandler) StartFreeTrial(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	updated, err := h.userService.StartTrial(user.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserDTO(updated))
}

func (h *BillingHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, 1<<20))
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Failed to read webhook payload"))
		return
	}

	if err := h.billingService.HandleWebhook(payload, c.GetHeader("Stripe-Signature")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
