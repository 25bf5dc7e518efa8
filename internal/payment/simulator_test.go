package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatorRetrieveConsistentWithCreate(t *testing.T) {
	sim := NewSimulator().WithDelay(time.Millisecond)

	created, err := sim.CreatePayment(context.Background(), PaymentPayload{AmountMinor: 1500, Currency: "KES"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Contains(t, created.CheckoutURL, created.ID)

	got, err := sim.RetrievePayment(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestSimulatorUnknownID(t *testing.T) {
	sim := NewSimulator().WithDelay(time.Millisecond)

	_, err := sim.RetrievePayment(context.Background(), "pay_missing")
	assert.Error(t, err)

	_, err = sim.RetrieveSubscription(context.Background(), "sub_missing")
	assert.Error(t, err)

	_, err = sim.CancelSubscription(context.Background(), "sub_missing")
	assert.Error(t, err)
}

func TestSimulatorCancelSubscription(t *testing.T) {
	sim := NewSimulator().WithDelay(time.Millisecond)

	created, err := sim.CreateSubscription(context.Background(), SubscriptionPayload{PlanID: "basic"})
	require.NoError(t, err)
	assert.Equal(t, "active", created.Status)

	canceled, err := sim.CancelSubscription(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "canceled", canceled.Status)

	got, err := sim.RetrieveSubscription(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "canceled", got.Status)
}

func TestSimulatorHonorsContextCancellation(t *testing.T) {
	sim := NewSimulator().WithDelay(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err := sim.CreatePayment(ctx, PaymentPayload{AmountMinor: 100, Currency: "KES"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
