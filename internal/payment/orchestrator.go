package payment

import (
	"context"
	"errors"
	"math"
	"net"
	"strings"
	"time"

	"better-life/internal/catalog"
	"better-life/internal/models"
	"better-life/pkg/logger"
)

// PaymentRequest is a one-time payment as the caller supplies it. Amount is
// in major currency units; the orchestrator converts to minor units before
// submission.
type PaymentRequest struct {
	Amount        float64         `json:"amount"`
	Currency      string          `json:"currency"`
	Description   string          `json:"description"`
	CustomerEmail string          `json:"customer_email"`
	CustomerName  string          `json:"customer_name"`
	Metadata      models.Metadata `json:"metadata,omitempty"`
}

// SubscriptionRequest references a plan from the immutable catalog.
type SubscriptionRequest struct {
	PlanID        string          `json:"plan_id"`
	CustomerEmail string          `json:"customer_email"`
	CustomerName  string          `json:"customer_name"`
	Metadata      models.Metadata `json:"metadata,omitempty"`
}

// TransactionRecorder persists pending-transaction records so a purchase can
// be reconciled after the user returns from the checkout redirect.
type TransactionRecorder interface {
	SavePendingTransaction(ctx context.Context, tx models.PendingTransaction) error
}

// Orchestrator builds provider payloads from requests, submits them and maps
// every result to a tagged Outcome. No method ever returns a Go error: all
// failures are converted to the Failure variant so callers can render
// inline, recoverable UI.
type Orchestrator struct {
	provider Provider
	recorder TransactionRecorder
	origin   string
	log      *logger.Logger
}

func NewOrchestrator(provider Provider, recorder TransactionRecorder, publicOrigin string, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		provider: provider,
		recorder: recorder,
		origin:   strings.TrimRight(publicOrigin, "/"),
		log:      log,
	}
}

// CreatePayment validates the request, converts the amount to minor units
// and submits it to the provider.
func (o *Orchestrator) CreatePayment(ctx context.Context, req PaymentRequest) Outcome {
	if req.Amount <= 0 {
		return failure(FailureValidation, "amount must be greater than zero", nil)
	}
	if strings.TrimSpace(req.Currency) == "" {
		return failure(FailureValidation, "currency is required", nil)
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		return failure(FailureValidation, "customer email is required", nil)
	}

	payload := PaymentPayload{
		AmountMinor:   int64(math.Round(req.Amount * 100)),
		Currency:      req.Currency,
		Description:   req.Description,
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		Metadata:      req.Metadata,
		SuccessURL:    o.origin + "/payment/success",
		CancelURL:     o.origin + "/payment/cancel",
	}

	sess, err := o.provider.CreatePayment(ctx, payload)
	if err != nil {
		o.log.Error("Payment creation failed", "email", req.CustomerEmail, "error", err)
		return failure(classify(err), err.Error(), err)
	}

	o.recordPending(ctx, sess, models.TransactionPayment, req.CustomerEmail)
	return success(sess)
}

// CreateSubscription resolves the plan from the catalog and submits it. The
// plan's price and features stay catalog-owned; they are never recomputed
// here.
func (o *Orchestrator) CreateSubscription(ctx context.Context, req SubscriptionRequest) Outcome {
	plan, ok := catalog.PlanByID(req.PlanID)
	if !ok {
		return failure(FailureValidation, "unknown plan: "+req.PlanID, nil)
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		return failure(FailureValidation, "customer email is required", nil)
	}

	meta := models.Metadata{}
	for k, v := range req.Metadata {
		meta[k] = v
	}
	meta["plan_name"] = plan.Name

	payload := SubscriptionPayload{
		PlanID:        plan.ID,
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		Metadata:      meta,
		SuccessURL:    o.origin + "/subscription/success",
		CancelURL:     o.origin + "/subscription/cancel",
	}

	sess, err := o.provider.CreateSubscription(ctx, payload)
	if err != nil {
		o.log.Error("Subscription creation failed", "plan", plan.ID, "email", req.CustomerEmail, "error", err)
		return failure(classify(err), err.Error(), err)
	}

	o.recordPending(ctx, sess, models.TransactionSubscription, req.CustomerEmail)
	return success(sess)
}

// GetPaymentStatus is a passthrough to the provider with Outcome wrapping.
func (o *Orchestrator) GetPaymentStatus(ctx context.Context, id string) Outcome {
	sess, err := o.provider.RetrievePayment(ctx, id)
	if err != nil {
		return failure(classify(err), err.Error(), err)
	}
	return success(sess)
}

// GetSubscriptionStatus is a passthrough to the provider with Outcome wrapping.
func (o *Orchestrator) GetSubscriptionStatus(ctx context.Context, id string) Outcome {
	sess, err := o.provider.RetrieveSubscription(ctx, id)
	if err != nil {
		return failure(classify(err), err.Error(), err)
	}
	return success(sess)
}

// CancelSubscription is a passthrough to the provider with Outcome wrapping.
func (o *Orchestrator) CancelSubscription(ctx context.Context, id string) Outcome {
	sess, err := o.provider.CancelSubscription(ctx, id)
	if err != nil {
		return failure(classify(err), err.Error(), err)
	}
	return success(sess)
}

// recordPending writes the pending-transaction record before the caller
// navigates away to checkout. A persist error degrades to the old behavior
// of having no client-side record, so it is logged and not surfaced.
func (o *Orchestrator) recordPending(ctx context.Context, sess CheckoutSession, kind models.TransactionKind, email string) {
	if o.recorder == nil {
		return
	}

	now := time.Now().UTC()
	tx := models.PendingTransaction{
		ProviderID:    sess.ID,
		Kind:          kind,
		CustomerEmail: email,
		Status:        "pending",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := o.recorder.SavePendingTransaction(ctx, tx); err != nil {
		o.log.Error("Failed to persist pending transaction", "provider_id", sess.ID, "error", err)
	}
}

// classify tags a provider call error as transport or provider so logs and
// UI can tell a flaky network from a rejected request.
func classify(err error) FailureKind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return FailureTransport
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return FailureTransport
	}
	return FailureProvider
}
