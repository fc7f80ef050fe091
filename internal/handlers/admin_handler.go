package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plantpal_backend/internal/services"
	"plantpal_backend/internal/services/dto"
)

type AdminHandler struct {
	*BaseHandler
	userService *services.UserService
}

func NewAdminHandler(base *BaseHandler, userService *services.UserService) *AdminHandler {
	return &AdminHandler{
		BaseHandler: base,
		userService: userService,
	}
}

// RegisterRoutes expects a group already gated by RequireAdmin.
func (h *AdminHandler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.POST("/start-trial", h.StartTrial)
	admin.POST("/update-user-status", h.UpdateUserStatus)
	admin.GET("/users", h.ListUsers)
}

func (h *AdminHandler) StartTrial(c *gin.Context) {
	var req dto.AdminStartTrialRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.StartTrial(req.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserDTO(user))
}

func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	var req dto.UpdateUserStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateSubscription(req.UserID, req.SubscriptionType)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserDTO(user))
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, offset := ParsePagination(c)

	users, err := h.userService.ListUsers(limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	out := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserDTO(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}
