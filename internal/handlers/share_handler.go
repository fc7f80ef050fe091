package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plantpal_backend/internal/services"
	"plantpal_backend/internal/services/dto"
)

type ShareHandler struct {
	*BaseHandler
	shareService *services.ShareService
}

func NewShareHandler(base *BaseHandler, shareService *services.ShareService) *ShareHandler {
	return &ShareHandler{
		BaseHandler:  base,
		shareService: shareService,
	}
}

func (h *ShareHandler) RegisterRoutes(authed *gin.RouterGroup) {
	authed.GET("/shares", h.List)
	authed.POST("/shares", h.Create)
	authed.POST("/shares/:id/like", h.Like)
}

func (h *ShareHandler) List(c *gin.Context) {
	limit, offset := ParsePagination(c)

	shares, err := h.shareService.ListShares(limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shares": dto.NewShareDTOs(shares)})
}

func (h *ShareHandler) Create(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	var req dto.CreateShareRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	share, err := h.shareService.CreateShare(user.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewShareDTO(share))
}

func (h *ShareHandler) Like(c *gin.Context) {
	if _, ok := h.RequireUser(c); !ok {
		return
	}

	likes, err := h.shareService.Like(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes})
}
