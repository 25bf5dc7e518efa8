package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v72"
)

// WebhookVerifier checks a provider webhook signature and decodes the event.
// The Stripe provider implements it; the simulator has no webhooks.
type WebhookVerifier interface {
	VerifyWebhook(payload []byte, signature string) (stripe.Event, error)
}

func (h *Handlers) handleStripeWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.log.Error("Failed to read webhook body", "error", err)
		c.String(http.StatusBadRequest, "Failed to read request body")
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		h.log.Error("Missing Stripe signature header")
		c.String(http.StatusBadRequest, "Missing signature")
		return
	}

	event, err := h.webhook.VerifyWebhook(body, signature)
	if err != nil {
		h.log.Error("Failed to verify webhook signature", "error", err)
		c.String(http.StatusBadRequest, "Invalid signature")
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			h.log.Error("Failed to parse checkout session", "error", err)
			c.String(http.StatusBadRequest, "Failed to parse event data")
			return
		}

		if err := h.txStore.UpdatePendingTransactionStatus(c.Request.Context(), session.ID, "completed"); err != nil {
			// The record may be gone or was never written; the webhook is
			// still acknowledged so Stripe stops retrying.
			h.log.Warn("Failed to mark transaction completed", "session_id", session.ID, "error", err)
		} else {
			h.log.Info("Checkout completed", "session_id", session.ID)
		}

	case "checkout.session.expired":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			h.log.Error("Failed to parse checkout session", "error", err)
			break
		}
		if err := h.txStore.UpdatePendingTransactionStatus(c.Request.Context(), session.ID, "expired"); err != nil {
			h.log.Warn("Failed to mark transaction expired", "session_id", session.ID, "error", err)
		}

	case "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			h.log.Error("Failed to parse payment intent", "error", err)
			break
		}
		h.log.Error("Payment failed", "payment_id", intent.ID, "error", intent.LastPaymentError)
	}

	c.String(http.StatusOK, "Webhook received")
}
