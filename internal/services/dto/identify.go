package dto

import "plantpal_backend/internal/plantid"

type IdentifyResponse struct {
	Suggestions              []plantid.Suggestion `json:"suggestions"`
	IdentificationsRemaining int                  `json:"identifications_remaining"`
}

type QuotaExhaustedResponse struct {
	Error   string `json:"error"`
	Upgrade bool   `json:"upgrade"`
}
