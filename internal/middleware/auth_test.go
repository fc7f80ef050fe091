package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantpal_backend/internal/models"
	"plantpal_backend/internal/repositories/memory"
	"plantpal_backend/internal/session"
)

const testCookie = "plantpal_session"

func setupAuthRouter(t *testing.T) (*gin.Engine, session.Store, *memory.UserRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := memory.NewUserRepository()
	store := session.NewMemoryStore()

	r := gin.New()
	authed := r.Group("/")
	authed.Use(SessionAuthMiddleware(store, users, testCookie))
	authed.GET("/whoami", func(c *gin.Context) {
		user := CurrentUser(c)
		require.NotNil(t, user)
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})

	admin := authed.Group("/admin")
	admin.Use(RequireAdmin())
	admin.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})

	return r, store, users
}

func seedSession(t *testing.T, store session.Store, users *memory.UserRepository, role models.UserRole) *http.Cookie {
	t.Helper()
	user := &models.User{
		Username: "gardener",
		Email:    "gardener@example.com",
		Role:     role,
	}
	require.NoError(t, users.Create(user))

	sess, err := store.Create(user.ID, time.Hour)
	require.NoError(t, err)
	return &http.Cookie{Name: testCookie, Value: sess.Token}
}

func TestSessionMiddlewareMissingCookie(t *testing.T) {
	r, _, _ := setupAuthRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionMiddlewareInvalidToken(t *testing.T) {
	r, _, _ := setupAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "not-a-session"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionMiddlewareAttachesUser(t *testing.T) {
	r, store, users := setupAuthRouter(t)
	cookie := seedSession(t, store, users, models.UserRoleUser)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookie)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "gardener")
}

func TestSessionMiddlewareDeletedUser(t *testing.T) {
	r, store, users := setupAuthRouter(t)
	cookie := seedSession(t, store, users, models.UserRoleUser)

	found, err := users.FindByUsername("gardener")
	require.NoError(t, err)
	require.NoError(t, users.Delete(found.ID))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookie)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	r, store, users := setupAuthRouter(t)
	cookie := seedSession(t, store, users, models.UserRoleUser)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(cookie)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminAllowsAdmins(t *testing.T) {
	r, store, users := setupAuthRouter(t)
	cookie := seedSession(t, store, users, models.UserRoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(cookie)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
