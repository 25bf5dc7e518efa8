package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"better-life/internal/advice"
	"better-life/internal/auth"
	"better-life/internal/payment"
	"better-life/internal/store"
	"better-life/internal/tracker"
	"better-life/pkg/logger"
)

type testEnv struct {
	router *gin.Engine
	store  *store.Memory
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNop()
	st := store.NewMemory()

	authSvc := auth.NewService(st, log)
	orch := payment.NewOrchestrator(payment.NewSimulator().WithDelay(time.Millisecond), st, "https://app.betterlife.ke", log)
	adviceSvc := advice.NewService(nil, log) // no generator: always fallback
	trackerSvc := tracker.NewService(st)

	h := NewHandlers(authSvc, orch, adviceSvc, trackerSvc, st, nil, log)
	return &testEnv{router: h.Router(), store: st}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) signUp(t *testing.T) string {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":     "amina@example.com",
		"password":  "s3cret",
		"full_name": "Amina Kip",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var sess auth.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sess))
	require.NotEmpty(t, sess.Token)
	return sess.Token
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t)

	w := env.do(t, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Amina Kip")

	// Unauthenticated requests are rejected.
	w = env.do(t, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Sign-out invalidates the token.
	w = env.do(t, http.MethodPost, "/api/auth/signout", token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = env.do(t, http.MethodGet, "/api/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreatePaymentEndpoint(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t)

	w := env.do(t, http.MethodPost, "/api/payments", token, gin.H{
		"amount":      15.0,
		"currency":    "KES",
		"description": "Expert Consultation",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var out payment.Outcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.NotEmpty(t, out.ProviderID)
	assert.NotEmpty(t, out.CheckoutURL)

	// Pending transaction was persisted under the provider id, with the
	// customer email filled in from the signed-in profile.
	tx, err := env.store.PendingTransaction(context.Background(), out.ProviderID)
	require.NoError(t, err)
	assert.Equal(t, "amina@example.com", tx.CustomerEmail)
	assert.Equal(t, "pending", tx.Status)
}

func TestCreatePaymentValidationFailure(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t)

	w := env.do(t, http.MethodPost, "/api/payments", token, gin.H{
		"amount":   -1,
		"currency": "KES",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation")
	assert.Contains(t, w.Body.String(), "amount")
}

func TestSubscriptionLifecycleEndpoints(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t)

	w := env.do(t, http.MethodPost, "/api/subscriptions", token, gin.H{"plan_id": "premium"})
	require.Equal(t, http.StatusOK, w.Code)

	var out payment.Outcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out.ProviderID)

	w = env.do(t, http.MethodGet, "/api/subscriptions/"+out.ProviderID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "active")

	w = env.do(t, http.MethodDelete, "/api/subscriptions/"+out.ProviderID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "canceled")
}

func TestSubscriptionUnknownPlan(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t)

	w := env.do(t, http.MethodPost, "/api/subscriptions", token, gin.H{"plan_id": "enterprise"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdviceEndpointFallsBack(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t)

	w := env.do(t, http.MethodPost, "/api/advice/diet", token, gin.H{"query": "I want to lose weight"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "weight management")

	// Transcript holds the user message and the reply, in order.
	w = env.do(t, http.MethodGet, "/api/advice/diet/messages", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Messages []struct {
			Sender string `json:"sender"`
			Text   string `json:"text"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, "user", resp.Messages[0].Sender)
	assert.Equal(t, "assistant", resp.Messages[1].Sender)

	// Clearing the chat empties the transcript.
	w = env.do(t, http.MethodDelete, "/api/advice/diet", token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = env.do(t, http.MethodGet, "/api/advice/diet/messages", token, nil)
	assert.NotContains(t, w.Body.String(), "lose weight")
}

func TestAdviceUnknownTopic(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t)

	w := env.do(t, http.MethodPost, "/api/advice/astrology", token, gin.H{"query": "hello"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrackerEndpoints(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t)

	w := env.do(t, http.MethodPost, "/api/tracker/meals", token, gin.H{
		"meal_type": "breakfast",
		"food_items": []gin.H{
			{"name": "ugali", "calories": 300},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/tracker/meals", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ugali")

	w = env.do(t, http.MethodPost, "/api/tracker/hydration", token, gin.H{"amount_ml": 500})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/api/tracker/workouts", token, gin.H{
		"exercise_type": "run",
		"duration":      45,
		"intensity":     "high",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Invalid entries are rejected.
	w = env.do(t, http.MethodPost, "/api/tracker/workouts", token, gin.H{
		"exercise_type": "run",
		"duration":      0,
		"intensity":     "high",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/catalog/plans", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Premium Plan")

	w = env.do(t, http.MethodGet, "/api/catalog/services", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Expert Consultation")
}
