package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"plantpal_backend/internal/services"
	"plantpal_backend/internal/services/dto"
	"plantpal_backend/pkg/apperrors"
)

// maxImageBytes caps the uploaded photo size.
const maxImageBytes = 10 << 20

type IdentifyHandler struct {
	*BaseHandler
	identifyService *services.IdentifyService
}

func NewIdentifyHandler(base *BaseHandler, identifyService *services.IdentifyService) *IdentifyHandler {
	return &IdentifyHandler{
		BaseHandler:     base,
		identifyService: identifyService,
	}
}

func (h *IdentifyHandler) RegisterRoutes(authed *gin.RouterGroup) {
	authed.POST("/identify", h.Identify)
	authed.GET("/identify/history", h.History)
}

func (h *IdentifyHandler) Identify(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("An image file is required"))
		return
	}
	if fileHeader.Size > maxImageBytes {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Image exceeds the 10MB limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}

	resp, err := h.identifyService.Identify(c.Request.Context(), user, image)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrIdentificationQuotaExhausted) {
			c.JSON(http.StatusForbidden, dto.QuotaExhaustedResponse{
				Error:   "No plant identifications remaining",
				Upgrade: true,
			})
			return
		}
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *IdentifyHandler) History(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	limit, offset := ParsePagination(c)
	records, err := h.identifyService.History(user.ID, limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"identifications": records})
}
