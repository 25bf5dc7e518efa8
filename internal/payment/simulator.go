package payment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	simulatorDelay       = 150 * time.Millisecond
	simulatorCheckoutURL = "https://checkout.betterlife.demo"
)

// Simulator is the demo payment provider. It fabricates identifiers and a
// synthetic checkout URL after a fixed artificial delay and always reports
// success. Created objects are remembered so retrieve and cancel stay
// consistent with the create that issued the id.
type Simulator struct {
	mu       sync.Mutex
	delay    time.Duration
	payments map[string]CheckoutSession
	subs     map[string]CheckoutSession
}

func NewSimulator() *Simulator {
	return &Simulator{
		delay:    simulatorDelay,
		payments: make(map[string]CheckoutSession),
		subs:     make(map[string]CheckoutSession),
	}
}

// WithDelay overrides the artificial processing delay, mainly for tests.
func (s *Simulator) WithDelay(d time.Duration) *Simulator {
	s.delay = d
	return s
}

func (s *Simulator) wait(ctx context.Context) error {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Simulator) CreatePayment(ctx context.Context, p PaymentPayload) (CheckoutSession, error) {
	if err := s.wait(ctx); err != nil {
		return CheckoutSession{}, err
	}

	id := "pay_" + uuid.NewString()
	sess := CheckoutSession{
		ID:          id,
		Status:      "pending",
		CheckoutURL: fmt.Sprintf("%s/pay/%s", simulatorCheckoutURL, id),
	}

	s.mu.Lock()
	s.payments[id] = sess
	s.mu.Unlock()

	return sess, nil
}

func (s *Simulator) CreateSubscription(ctx context.Context, p SubscriptionPayload) (CheckoutSession, error) {
	if err := s.wait(ctx); err != nil {
		return CheckoutSession{}, err
	}

	id := "sub_" + uuid.NewString()
	sess := CheckoutSession{
		ID:          id,
		Status:      "active",
		CheckoutURL: fmt.Sprintf("%s/subscribe/%s", simulatorCheckoutURL, id),
	}

	s.mu.Lock()
	s.subs[id] = sess
	s.mu.Unlock()

	return sess, nil
}

func (s *Simulator) RetrievePayment(ctx context.Context, id string) (CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.payments[id]
	if !ok {
		return CheckoutSession{}, fmt.Errorf("payment %s not found", id)
	}
	return sess, nil
}

func (s *Simulator) RetrieveSubscription(ctx context.Context, id string) (CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.subs[id]
	if !ok {
		return CheckoutSession{}, fmt.Errorf("subscription %s not found", id)
	}
	return sess, nil
}

func (s *Simulator) CancelSubscription(ctx context.Context, id string) (CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.subs[id]
	if !ok {
		return CheckoutSession{}, fmt.Errorf("subscription %s not found", id)
	}

	sess.Status = "canceled"
	s.subs[id] = sess
	return sess, nil
}
