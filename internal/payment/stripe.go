package payment

import (
	"context"
	"fmt"
	"strings"

	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/checkout/session"
	"github.com/stripe/stripe-go/v72/sub"
	"github.com/stripe/stripe-go/v72/webhook"
)

// StripeConfig carries the Stripe credentials plus the mapping from catalog
// plan ids to Stripe price ids.
type StripeConfig struct {
	SecretKey  string
	PublicKey  string
	WebhookKey string
	PriceIDs   map[string]string
}

// StripeProvider implements Provider on top of Stripe checkout sessions.
type StripeProvider struct {
	secretKey     string
	publicKey     string
	webhookSecret string
	priceIDs      map[string]string
}

func NewStripeProvider(cfg StripeConfig) *StripeProvider {
	// Set the secret key for backend operations
	stripe.Key = cfg.SecretKey

	return &StripeProvider{
		secretKey:     cfg.SecretKey,
		publicKey:     cfg.PublicKey,
		webhookSecret: cfg.WebhookKey,
		priceIDs:      cfg.PriceIDs,
	}
}

func (s *StripeProvider) WebhookSecret() string {
	return s.webhookSecret
}

func (s *StripeProvider) CreatePayment(ctx context.Context, p PaymentPayload) (CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(p.Currency)),
					UnitAmount: stripe.Int64(p.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(p.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(p.SuccessURL),
		CancelURL:     stripe.String(p.CancelURL),
		CustomerEmail: stripe.String(p.CustomerEmail),
	}
	params.Context = ctx
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}
	params.AddMetadata("customer_name", p.CustomerName)

	sess, err := session.New(params)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return CheckoutSession{ID: sess.ID, Status: string(sess.PaymentStatus), CheckoutURL: sess.URL}, nil
}

func (s *StripeProvider) CreateSubscription(ctx context.Context, p SubscriptionPayload) (CheckoutSession, error) {
	priceID, ok := s.priceIDs[p.PlanID]
	if !ok {
		return CheckoutSession{}, fmt.Errorf("no Stripe price configured for plan %q", p.PlanID)
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		Mode:          stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL:    stripe.String(p.SuccessURL),
		CancelURL:     stripe.String(p.CancelURL),
		CustomerEmail: stripe.String(p.CustomerEmail),
	}
	params.Context = ctx
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}
	params.AddMetadata("plan_id", p.PlanID)
	params.AddMetadata("customer_name", p.CustomerName)

	sess, err := session.New(params)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("failed to create subscription session: %w", err)
	}

	return CheckoutSession{ID: sess.ID, Status: string(sess.PaymentStatus), CheckoutURL: sess.URL}, nil
}

func (s *StripeProvider) RetrievePayment(ctx context.Context, id string) (CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := session.Get(id, params)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("failed to retrieve checkout session: %w", err)
	}

	return CheckoutSession{ID: sess.ID, Status: string(sess.PaymentStatus), CheckoutURL: sess.URL}, nil
}

func (s *StripeProvider) RetrieveSubscription(ctx context.Context, id string) (CheckoutSession, error) {
	// Creation hands out checkout session ids; once checkout completes the
	// caller may hold a subscription id instead.
	if strings.HasPrefix(id, "cs_") {
		return s.RetrievePayment(ctx, id)
	}

	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	subscription, err := sub.Get(id, params)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("failed to retrieve subscription: %w", err)
	}

	return CheckoutSession{ID: subscription.ID, Status: string(subscription.Status)}, nil
}

func (s *StripeProvider) CancelSubscription(ctx context.Context, id string) (CheckoutSession, error) {
	if strings.HasPrefix(id, "cs_") {
		params := &stripe.CheckoutSessionParams{}
		params.Context = ctx

		sess, err := session.Get(id, params)
		if err != nil {
			return CheckoutSession{}, fmt.Errorf("failed to resolve checkout session: %w", err)
		}
		if sess.Subscription == nil {
			return CheckoutSession{}, fmt.Errorf("checkout session %s has no subscription", id)
		}
		id = sess.Subscription.ID
	}

	cancelParams := &stripe.SubscriptionCancelParams{}
	cancelParams.Context = ctx

	subscription, err := sub.Cancel(id, cancelParams)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("failed to cancel subscription: %w", err)
	}

	return CheckoutSession{ID: subscription.ID, Status: string(subscription.Status)}, nil
}

// VerifyWebhook checks the Stripe signature header and decodes the event.
func (s *StripeProvider) VerifyWebhook(payload []byte, signature string) (stripe.Event, error) {
	if s.webhookSecret == "" {
		return stripe.Event{}, fmt.Errorf("webhook secret is not configured")
	}
	return webhook.ConstructEvent(payload, signature, s.webhookSecret)
}
