package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plantpal_backend/internal/services"
	"plantpal_backend/internal/services/dto"
)

type CareHandler struct {
	*BaseHandler
	careService *services.CareService
}

func NewCareHandler(base *BaseHandler, careService *services.CareService) *CareHandler {
	return &CareHandler{
		BaseHandler: base,
		careService: careService,
	}
}

func (h *CareHandler) RegisterRoutes(authed *gin.RouterGroup) {
	authed.GET("/care-actions", h.List)
	authed.POST("/care-actions", h.Create)
	authed.GET("/care-actions/pending", h.ListPending)
	authed.POST("/care-actions/:id/complete", h.Complete)
}

func (h *CareHandler) List(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	actions, err := h.careService.ListForUser(user.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"care_actions": dto.NewCareActionDTOs(actions)})
}

func (h *CareHandler) ListPending(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	actions, err := h.careService.ListPending(user.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"care_actions": dto.NewCareActionDTOs(actions)})
}

func (h *CareHandler) Create(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	var req dto.CreateCareActionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	action, err := h.careService.CreateCareAction(user.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCareActionDTO(action))
}

func (h *CareHandler) Complete(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	action, err := h.careService.CompleteCareAction(c.Param("id"), user.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCareActionDTO(action))
}
