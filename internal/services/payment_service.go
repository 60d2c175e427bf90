package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetkoprulu/battlepass/common/utils"
	"github.com/ahmetkoprulu/battlepass/internal/services/audit"
	"github.com/ahmetkoprulu/battlepass/internal/services/battlepass"
	"github.com/ahmetkoprulu/battlepass/internal/services/payment"
	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentService struct {
	store       payment.Store
	gateway     payment.Gateway
	seasons     battlepass.SeasonStore
	progression *ProgressionService
	publisher   audit.Publisher
	now         func() time.Time
}

func NewPaymentService(store payment.Store, gateway payment.Gateway, seasons battlepass.SeasonStore, progression *ProgressionService, publisher audit.Publisher) *PaymentService {
	return &PaymentService{
		store:       store,
		gateway:     gateway,
		seasons:     seasons,
		progression: progression,
		publisher:   publisher,
		now:         time.Now,
	}
}

// PurchasePremium charges the season's premium price through the gateway
// and grants the premium entitlement once the charge is confirmed. The user
// is enrolled in the season first if needed.
func (s *PaymentService) PurchasePremium(ctx context.Context, userID, seasonID string, method models.PaymentMethod, currency string) (*models.Payment, error) {
	if userID == "" || seasonID == "" {
		return nil, models.ErrInvalidInput
	}

	currency = strings.ToUpper(strings.TrimSpace(currency))
	switch method {
	case models.PaymentMethodCard:
		currency = ""
	case models.PaymentMethodCrypto:
		if !models.SupportedCryptoCurrencies[currency] {
			return nil, fmt.Errorf("%w: unsupported currency %q", models.ErrInvalidInput, currency)
		}
	default:
		return nil, fmt.Errorf("%w: unknown payment method %q", models.ErrInvalidInput, method)
	}

	season, err := s.seasons.GetSeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	if _, err := s.progression.GrantSeason(ctx, userID, seasonID); err != nil {
		return nil, err
	}

	price := season.PremiumPrice
	if price <= 0 {
		price = models.DefaultPremiumPrice
	}

	now := s.now().UTC()
	p := &models.Payment{
		ID:        uuid.New().String(),
		UserID:    userID,
		SeasonID:  seasonID,
		Method:    method,
		Currency:  currency,
		Amount:    models.PaymentAmount(price, method),
		Status:    models.PaymentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	reference, err := s.gateway.Confirm(ctx, p)
	if err != nil {
		// record the failure even if the caller has gone away
		if _, serr := s.store.SetPaymentStatus(context.WithoutCancel(ctx), p.ID, models.PaymentStatusFailed, ""); serr != nil {
			utils.Logger.Error("Failed to mark payment failed", zap.String("payment_id", p.ID), zap.Error(serr))
		}
		utils.Logger.Warn("Premium payment not confirmed", zap.String("payment_id", p.ID), zap.Error(err))
		if errors.Is(err, models.ErrPaymentDeclined) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", models.ErrPaymentDeclined, err)
	}

	return s.complete(ctx, p.ID, reference)
}

func (s *PaymentService) complete(ctx context.Context, paymentID, reference string) (*models.Payment, error) {
	p, err := s.store.SetPaymentStatus(ctx, paymentID, models.PaymentStatusCompleted, reference)
	if err != nil {
		return nil, err
	}

	if _, err := s.progression.SetPremium(ctx, p.UserID, p.SeasonID, true); err != nil {
		return nil, err
	}

	utils.Logger.Info("Premium purchased",
		zap.String("user_id", p.UserID),
		zap.String("season_id", p.SeasonID),
		zap.String("method", string(p.Method)),
		zap.Int("amount", p.Amount),
	)
	publishAction(ctx, s.publisher, models.ActionPremiumPurchase, p.UserID, "Premium battle pass purchased", map[string]any{
		"payment_id": p.ID,
		"season_id":  p.SeasonID,
		"method":     p.Method,
		"currency":   p.Currency,
		"amount":     p.Amount,
	})
	return p, nil
}

func (s *PaymentService) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return s.store.ListPayments(ctx)
}

// SetPaymentStatus is the manual override. Completing a payment grants premium.
func (s *PaymentService) SetPaymentStatus(ctx context.Context, paymentID string, status models.PaymentStatus) (*models.Payment, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", models.ErrInvalidInput, status)
	}

	if status == models.PaymentStatusCompleted {
		return s.complete(ctx, paymentID, "")
	}

	p, err := s.store.SetPaymentStatus(ctx, paymentID, status, "")
	if err != nil {
		return nil, err
	}

	publishAction(ctx, s.publisher, models.ActionAdmin, p.UserID, "Payment status changed", map[string]any{
		"payment_id": p.ID,
		"status":     status,
	})
	return p, nil
}
