package apperrors

import (
	"net/http"
)

// Factories for wrapping repository errors.

// ErrNotFound converts a repository "not found" into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Auth ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid username or password",
	http.StatusUnauthorized,
)

var ErrUsernameTaken = New(
	CodeAlreadyExists,
	"auth",
	"Username already in use",
	http.StatusConflict,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Plants & care actions ---

var ErrNotPlantOwner = New(
	CodeForbidden,
	"plant",
	"You do not own this plant",
	http.StatusForbidden,
)

var ErrCareActionCompleted = New(
	CodeInvalidStatus,
	"care",
	"Care action is already completed",
	http.StatusConflict,
)

// --- Entitlements & billing ---

// ErrIdentificationQuotaExhausted is returned before any recognition call is
// attempted for a free user with no identifications left.
var ErrIdentificationQuotaExhausted = New(
	CodeLimitExceeded,
	"entitlement",
	"No plant identifications remaining",
	http.StatusForbidden,
)

var ErrTrialNotAllowed = New(
	CodeInvalidOperation,
	"entitlement",
	"A trial can only be started for a free account",
	http.StatusBadRequest,
)

var ErrInvalidSubscriptionTransition = New(
	CodeInvalidStatus,
	"entitlement",
	"Subscription state change not allowed",
	http.StatusConflict,
)

var ErrPaymentProviderError = New(
	CodeExternalServiceError,
	"payment",
	"Payment provider error",
	http.StatusServiceUnavailable,
)

var ErrRecognitionProviderError = New(
	CodeExternalServiceError,
	"recognition",
	"Plant recognition service is unavailable",
	http.StatusBadGateway,
)

var ErrInvalidWebhookSignature = New(
	CodeForbidden,
	"payment",
	"Webhook signature verification failed",
	http.StatusBadRequest,
)
