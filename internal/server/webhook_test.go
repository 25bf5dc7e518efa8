package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripe "github.com/stripe/stripe-go/v72"

	"better-life/internal/advice"
	"better-life/internal/auth"
	"better-life/internal/models"
	"better-life/internal/payment"
	"better-life/internal/store"
	"better-life/internal/tracker"
	"better-life/pkg/logger"
)

type fakeVerifier struct {
	event stripe.Event
	err   error
}

func (f *fakeVerifier) VerifyWebhook(payload []byte, signature string) (stripe.Event, error) {
	return f.event, f.err
}

func newWebhookEnv(t *testing.T, verifier WebhookVerifier) (*gin.Engine, *store.Memory) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNop()
	st := store.NewMemory()

	h := NewHandlers(
		auth.NewService(st, log),
		payment.NewOrchestrator(payment.NewSimulator().WithDelay(time.Millisecond), st, "https://app.betterlife.ke", log),
		advice.NewService(nil, log),
		tracker.NewService(st),
		st,
		verifier,
		log,
	)
	return h.Router(), st
}

func postWebhook(router *gin.Engine, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook/stripe", bytes.NewReader([]byte(`{}`)))
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestStripeWebhookCompletesPendingTransaction(t *testing.T) {
	raw, err := json.Marshal(map[string]string{"id": "cs_123"})
	require.NoError(t, err)

	verifier := &fakeVerifier{event: stripe.Event{
		Type: "checkout.session.completed",
		Data: &stripe.EventData{Raw: raw},
	}}
	router, st := newWebhookEnv(t, verifier)

	require.NoError(t, st.SavePendingTransaction(context.Background(), models.PendingTransaction{
		ProviderID: "cs_123",
		Kind:       models.TransactionPayment,
		Status:     "pending",
	}))

	w := postWebhook(router, "sig")
	require.Equal(t, http.StatusOK, w.Code)

	tx, err := st.PendingTransaction(context.Background(), "cs_123")
	require.NoError(t, err)
	assert.Equal(t, "completed", tx.Status)
}

func TestStripeWebhookUnknownSessionStillAcknowledged(t *testing.T) {
	raw, _ := json.Marshal(map[string]string{"id": "cs_unknown"})
	verifier := &fakeVerifier{event: stripe.Event{
		Type: "checkout.session.completed",
		Data: &stripe.EventData{Raw: raw},
	}}
	router, _ := newWebhookEnv(t, verifier)

	w := postWebhook(router, "sig")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStripeWebhookMissingSignature(t *testing.T) {
	router, _ := newWebhookEnv(t, &fakeVerifier{})

	w := postWebhook(router, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStripeWebhookInvalidSignature(t *testing.T) {
	router, _ := newWebhookEnv(t, &fakeVerifier{err: errors.New("bad signature")})

	w := postWebhook(router, "sig")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookRouteAbsentWithoutVerifier(t *testing.T) {
	router, _ := newWebhookEnv(t, nil)

	w := postWebhook(router, "sig")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
