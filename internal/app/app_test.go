package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantpal_backend/internal/config"
	"plantpal_backend/internal/plantid"
	"plantpal_backend/internal/repositories/memory"
	"plantpal_backend/internal/routes"
	"plantpal_backend/internal/session"
)

type stubRecognizer struct {
	calls       int
	suggestions []plantid.Suggestion
}

func (s *stubRecognizer) Identify(context.Context, []byte) ([]plantid.Suggestion, error) {
	s.calls++
	return s.suggestions, nil
}

type testServer struct {
	router     *gin.Engine
	cookie     *http.Cookie
	recognizer *stubRecognizer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Env = "development"
	cfg.Session.CookieName = "plantpal_session"
	cfg.Session.TTLHours = 24
	cfg.Trial.DurationDays = 14
	cfg.Stripe.Currency = "usd"
	cfg.Stripe.LifetimeAmount = 4999

	careRepo := memory.NewCareActionRepository()
	userRepo := memory.NewUserRepository()
	plantRepo := memory.NewPlantRepository(careRepo)
	shareRepo := memory.NewShareRepository()
	identRepo := memory.NewIdentificationRepository()

	recognizer := &stubRecognizer{suggestions: []plantid.Suggestion{
		{PlantName: "Monstera deliciosa", Probability: 0.97},
	}}

	sc := initializeServices(cfg, userRepo, plantRepo, careRepo, shareRepo, identRepo, &MockEmailProvider{}, recognizer)

	store := session.NewMemoryStore()
	appHandlers := initializeHandlers(cfg, sc, store)

	router := initializeGinRouter()
	routes.RegisterRoutes(router, appHandlers, store, userRepo, cfg)

	return &testServer{router: router, recognizer: recognizer}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if ts.cookie != nil {
		req.AddCookie(ts.cookie)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == "plantpal_session" && c.Value != "" {
			ts.cookie = c
		}
	}
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func registerUser(t *testing.T, ts *testServer, username string) map[string]any {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/register", map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, ts.cookie, "registration must set the session cookie")
	return decodeBody(t, w)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodGet, "/api/plants", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterPlantCareFlow(t *testing.T) {
	ts := newTestServer(t)
	user := registerUser(t, ts, "gardener")
	assert.Equal(t, "free", user["subscription_type"])
	assert.EqualValues(t, 5, user["identifications_remaining"])

	// Add a plant with a 7-day watering cadence.
	w := ts.do(t, http.MethodPost, "/api/plants", map[string]any{
		"name":            "Monstera",
		"water_frequency": 7,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	plant := decodeBody(t, w)
	plantID := plant["id"].(string)

	// The pending water action was scheduled eagerly.
	w = ts.do(t, http.MethodGet, "/api/care-actions/pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	pending := decodeBody(t, w)["care_actions"].([]any)
	require.Len(t, pending, 1)
	action := pending[0].(map[string]any)
	assert.Equal(t, "water", action["kind"])
	assert.Equal(t, plantID, action["plant_id"])

	// Complete it.
	w = ts.do(t, http.MethodPost, fmt.Sprintf("/api/care-actions/%s/complete", action["id"]), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	done := decodeBody(t, w)
	assert.Equal(t, true, done["is_completed"])

	// The plant got its last-watered stamp.
	w = ts.do(t, http.MethodGet, "/api/plants/"+plantID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody(t, w)
	require.NotNil(t, updated["last_watered"])

	// Exactly one new pending action, due one cadence later.
	w = ts.do(t, http.MethodGet, "/api/care-actions/pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	next := decodeBody(t, w)["care_actions"].([]any)
	require.Len(t, next, 1)
	nextAction := next[0].(map[string]any)
	assert.NotEqual(t, action["id"], nextAction["id"])

	due, err := time.Parse(time.RFC3339Nano, nextAction["due_date"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 7), due, time.Minute)

	// Completing care never touches the identification quota.
	w = ts.do(t, http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decodeBody(t, w)
	assert.EqualValues(t, 5, me["identifications_remaining"])
}

func (ts *testServer) doIdentify(t *testing.T) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "leaf.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/identify", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(ts.cookie)

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func TestIdentifyDecrementsQuota(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "identifier")

	w := ts.doIdentify(t)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.EqualValues(t, 4, body["identifications_remaining"])
	suggestions := body["suggestions"].([]any)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Monstera deliciosa", suggestions[0].(map[string]any)["plant_name"])
}

func TestIdentifyExhaustedQuotaSignalsUpgrade(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "heavyuser")

	// Burn through the signup grant.
	for i := 0; i < 5; i++ {
		w := ts.doIdentify(t)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.EqualValues(t, 4-i, decodeBody(t, w)["identifications_remaining"])
	}
	require.Equal(t, 5, ts.recognizer.calls)

	// The sixth attempt is refused before the recognizer is reached, with a
	// machine-readable upgrade hint.
	w := ts.doIdentify(t)
	require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, true, body["upgrade"])
	assert.NotEmpty(t, body["error"])
	assert.Equal(t, 5, ts.recognizer.calls)
}

func TestAdminRoutesForbiddenForRegularUsers(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "plain")

	w := ts.do(t, http.MethodPost, "/api/admin/start-trial", map[string]any{
		"user_id": "00000000-0000-0000-0000-000000000000",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStartFreeTrial(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "trialist")

	w := ts.do(t, http.MethodPost, "/api/start-free-trial", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "trial", body["subscription_type"])
	assert.NotNil(t, body["trial_end_date"])

	// A second trial on the same account is rejected.
	w = ts.do(t, http.MethodPost, "/api/start-free-trial", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "leaver")

	w := ts.do(t, http.MethodPost, "/api/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The old token no longer resolves.
	w = ts.do(t, http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
