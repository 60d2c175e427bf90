package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmetkoprulu/battlepass/internal/services"
	"github.com/ahmetkoprulu/battlepass/internal/services/battlepass"
	"github.com/ahmetkoprulu/battlepass/internal/services/payment"
	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decliningGateway struct{}

func (decliningGateway) Confirm(context.Context, *models.Payment) (string, error) {
	return "", errors.New("card expired")
}

type paymentFixture struct {
	store       *payment.MemoryPaymentStore
	progression *services.ProgressionService
	payments    *services.PaymentService
	season      *models.BattlePassSeason
}

func newPaymentFixture(t *testing.T, gateway payment.Gateway) *paymentFixture {
	t.Helper()

	bpStore := battlepass.NewMemoryBattlePassStore()
	season := newSeason(t, bpStore)
	store := payment.NewMemoryPaymentStore()
	progression := services.NewProgressionService(bpStore, nil, nil)

	return &paymentFixture{
		store:       store,
		progression: progression,
		payments:    services.NewPaymentService(store, gateway, bpStore, progression, nil),
		season:      season,
	}
}

func (f *paymentFixture) isPremium(t *testing.T) bool {
	t.Helper()

	p, err := f.progression.GetProgression(context.Background(), testUser, f.season.ID)
	require.NoError(t, err)
	return p.IsPremium
}

func TestPurchasePremiumByCard(t *testing.T) {
	f := newPaymentFixture(t, payment.NewSimulatedGateway(0))

	p, err := f.payments.PurchasePremium(context.Background(), testUser, f.season.ID, models.PaymentMethodCard, "BTC")
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusCompleted, p.Status)
	assert.Equal(t, 499, p.Amount)
	assert.Empty(t, p.Currency)
	assert.NotEmpty(t, p.Reference)
	assert.True(t, f.isPremium(t))
}

func TestPurchasePremiumByCrypto(t *testing.T) {
	f := newPaymentFixture(t, payment.NewSimulatedGateway(0))

	p, err := f.payments.PurchasePremium(context.Background(), testUser, f.season.ID, models.PaymentMethodCrypto, "eth")
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusCompleted, p.Status)
	assert.Equal(t, 523, p.Amount)
	assert.Equal(t, "ETH", p.Currency)
	assert.True(t, f.isPremium(t))
}

func TestPurchasePremiumDeclined(t *testing.T) {
	f := newPaymentFixture(t, decliningGateway{})
	ctx := context.Background()

	_, err := f.payments.PurchasePremium(ctx, testUser, f.season.ID, models.PaymentMethodCard, "")
	assert.ErrorIs(t, err, models.ErrPaymentDeclined)

	payments, err := f.payments.ListPayments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, models.PaymentStatusFailed, payments[0].Status)
	assert.False(t, f.isPremium(t))
}

func TestPurchasePremiumInvalidRequest(t *testing.T) {
	f := newPaymentFixture(t, payment.NewSimulatedGateway(0))
	ctx := context.Background()

	_, err := f.payments.PurchasePremium(ctx, testUser, f.season.ID, models.PaymentMethodCrypto, "DOGE")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = f.payments.PurchasePremium(ctx, testUser, f.season.ID, "cash", "")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = f.payments.PurchasePremium(ctx, testUser, "missing", models.PaymentMethodCard, "")
	assert.ErrorIs(t, err, models.ErrNotFound)

	payments, err := f.payments.ListPayments(ctx)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestSetPaymentStatusCompletedGrantsPremium(t *testing.T) {
	f := newPaymentFixture(t, decliningGateway{})
	ctx := context.Background()

	_, err := f.payments.PurchasePremium(ctx, testUser, f.season.ID, models.PaymentMethodCard, "")
	require.ErrorIs(t, err, models.ErrPaymentDeclined)

	payments, err := f.payments.ListPayments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)

	p, err := f.payments.SetPaymentStatus(ctx, payments[0].ID, models.PaymentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, p.Status)
	assert.True(t, f.isPremium(t))

	_, err = f.payments.SetPaymentStatus(ctx, payments[0].ID, "refunded")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = f.payments.SetPaymentStatus(ctx, "missing", models.PaymentStatusFailed)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
