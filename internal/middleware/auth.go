package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plantpal_backend/internal/models"
	"plantpal_backend/internal/repositories"
	"plantpal_backend/internal/session"
	"plantpal_backend/pkg/contextkeys"
)

// SessionAuthMiddleware resolves the session cookie against the server-side
// store and attaches the user to the request. The store and the user lookup
// run once per request.
func SessionAuthMiddleware(store session.Store, userRepo repositories.UserRepository, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		sess, err := store.Get(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired or invalid"})
			return
		}

		user, err := userRepo.FindByID(sess.UserID)
		if err != nil {
			// Session outlived the account.
			_ = store.Delete(token)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired or invalid"})
			return
		}

		c.Set(string(contextkeys.UserContextKey), user)
		c.Set(string(contextkeys.SessionIDContextKey), token)
		c.Next()
	}
}

// RequireAdmin gates a route group to admin accounts. Must run after
// SessionAuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient permissions"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by the session
// middleware, or nil.
func CurrentUser(c *gin.Context) *models.User {
	val, exists := c.Get(string(contextkeys.UserContextKey))
	if !exists {
		return nil
	}
	user, ok := val.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// SessionToken returns the session token for the request, or "".
func SessionToken(c *gin.Context) string {
	val, exists := c.Get(string(contextkeys.SessionIDContextKey))
	if !exists {
		return ""
	}
	token, _ := val.(string)
	return token
}
