package payment

import (
	"context"

	"better-life/internal/models"
)

// CheckoutSession is what a provider hands back for a created or retrieved
// payment or subscription.
type CheckoutSession struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	CheckoutURL string `json:"checkout_url"`
}

// PaymentPayload is the normalized one-time payment submitted to a provider.
// Amount is in minor currency units.
type PaymentPayload struct {
	AmountMinor   int64
	Currency      string
	Description   string
	CustomerEmail string
	CustomerName  string
	Metadata      models.Metadata
	SuccessURL    string
	CancelURL     string
}

// SubscriptionPayload is the normalized subscription submitted to a provider.
type SubscriptionPayload struct {
	PlanID        string
	CustomerEmail string
	CustomerName  string
	Metadata      models.Metadata
	SuccessURL    string
	CancelURL     string
}

// Provider is the payment backend capability. The orchestrator is written
// against this interface only and is agnostic to which implementation is
// wired in (Stripe in production, the simulator in demo mode).
type Provider interface {
	CreatePayment(ctx context.Context, p PaymentPayload) (CheckoutSession, error)
	CreateSubscription(ctx context.Context, p SubscriptionPayload) (CheckoutSession, error)
	RetrievePayment(ctx context.Context, id string) (CheckoutSession, error)
	RetrieveSubscription(ctx context.Context, id string) (CheckoutSession, error)
	CancelSubscription(ctx context.Context, id string) (CheckoutSession, error)
}
