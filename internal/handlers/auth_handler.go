package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plantpal_backend/internal/config"
	"plantpal_backend/internal/middleware"
	"plantpal_backend/internal/services"
	"plantpal_backend/internal/services/dto"
	"plantpal_backend/internal/session"
	"plantpal_backend/pkg/apperrors"
)

type AuthHandler struct {
	*BaseHandler
	authService *services.AuthService
	sessions    session.Store
	cfg         *config.Config
}

func NewAuthHandler(base *BaseHandler, authService *services.AuthService, sessions session.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		sessions:    sessions,
		cfg:         cfg,
	}
}

func (h *AuthHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.POST("/register", h.Register)
	public.POST("/login", h.Login)
	authed.POST("/logout", h.Logout)
	authed.GET("/me", h.Me)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if !h.issueSession(c, user.ID) {
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserDTO(user))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.authService.Login(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if !h.issueSession(c, user.ID) {
		return
	}

	c.JSON(http.StatusOK, dto.NewUserDTO(user))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if token := middleware.SessionToken(c); token != "" {
		_ = h.sessions.Delete(token)
	}
	h.clearCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.NewUserDTO(user))
}

// issueSession creates a server-side session and sets the cookie. The cookie
// carries only the opaque token.
func (h *AuthHandler) issueSession(c *gin.Context, userID string) bool {
	sess, err := h.sessions.Create(userID, h.cfg.SessionTTL())
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return false
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		h.cfg.Session.CookieName,
		sess.Token,
		int(h.cfg.SessionTTL().Seconds()),
		"/",
		"",
		h.cfg.Session.Secure,
		true,
	)
	return true
}

func (h *AuthHandler) clearCookie(c *gin.Context) {
	c.SetCookie(h.cfg.Session.CookieName, "", -1, "/", "", h.cfg.Session.Secure, true)
}
