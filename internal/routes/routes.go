package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plantpal_backend/internal/config"
	"plantpal_backend/internal/handlers"
	"plantpal_backend/internal/middleware"
	"plantpal_backend/internal/repositories"
	"plantpal_backend/internal/session"
)

// RegisterRoutes mounts the API surface. Authenticated routes sit behind the
// session middleware, admin routes additionally behind the role check. The
// Stripe webhook stays public and authenticates by signature instead.
func RegisterRoutes(r *gin.Engine, h *handlers.AppHandlers, store session.Store, userRepo repositories.UserRepository, cfg *config.Config) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	public := api.Group("")
	authed := api.Group("")
	authed.Use(middleware.SessionAuthMiddleware(store, userRepo, cfg.Session.CookieName))

	admin := authed.Group("/admin")
	admin.Use(middleware.RequireAdmin())

	h.AuthHandler.RegisterRoutes(public, authed)
	h.PlantHandler.RegisterRoutes(authed)
	h.CareHandler.RegisterRoutes(authed)
	h.IdentifyHandler.RegisterRoutes(authed)
	h.BillingHandler.RegisterRoutes(public, authed)
	h.ShareHandler.RegisterRoutes(authed)
	h.AdminHandler.RegisterRoutes(admin)
}
