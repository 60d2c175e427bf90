package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ahmetkoprulu/battlepass/common/utils"
	"github.com/ahmetkoprulu/battlepass/internal/services/audit"
	"github.com/ahmetkoprulu/battlepass/internal/services/ledger"
	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PointsService struct {
	store     ledger.Store
	publisher audit.Publisher
	now       func() time.Time
}

func NewPointsService(store ledger.Store, publisher audit.Publisher) *PointsService {
	return &PointsService{
		store:     store,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *PointsService) GetBalance(ctx context.Context, userID string) (*models.PointsBalance, error) {
	if userID == "" {
		return nil, models.ErrInvalidInput
	}
	return s.store.GetBalance(ctx, userID)
}

// Debit removes amount points. The balance is never left negative; an
// uncovered debit fails with ErrInsufficientBalance and changes nothing.
func (s *PointsService) Debit(ctx context.Context, userID string, amount int) (*models.PointsBalance, error) {
	if userID == "" {
		return nil, models.ErrInvalidInput
	}
	if amount <= 0 || amount > models.MaxAmount {
		return nil, fmt.Errorf("%w: debit amount out of range", models.ErrInvalidAmount)
	}

	balance, err := s.store.Debit(ctx, userID, amount)
	if err != nil {
		return nil, err
	}

	publishAction(ctx, s.publisher, models.ActionAdmin, userID, "Points debited", map[string]any{
		"amount":  amount,
		"balance": balance.Points,
	})
	return balance, nil
}

// Credit adds amount points. Negative amounts are allowed as long as the
// balance stays non-negative.
func (s *PointsService) Credit(ctx context.Context, userID string, amount int) (*models.PointsBalance, error) {
	if userID == "" {
		return nil, models.ErrInvalidInput
	}
	if amount > models.MaxAmount || amount < -models.MaxAmount {
		return nil, fmt.Errorf("%w: credit amount out of range", models.ErrInvalidAmount)
	}

	balance, err := s.store.Credit(ctx, userID, amount)
	if err != nil {
		return nil, err
	}

	publishAction(ctx, s.publisher, models.ActionAdmin, userID, "Points credited", map[string]any{
		"amount":  amount,
		"balance": balance.Points,
	})
	return balance, nil
}

func (s *PointsService) Purchase(ctx context.Context, userID, itemID string) (*models.PurchaseResult, error) {
	if userID == "" || itemID == "" {
		return nil, models.ErrInvalidInput
	}

	result, err := s.store.Purchase(ctx, &models.PurchaseRecord{
		ID:          uuid.New().String(),
		UserID:      userID,
		ItemID:      itemID,
		PurchasedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	utils.Logger.Info("Shop item purchased",
		zap.String("user_id", userID),
		zap.String("item_id", itemID),
		zap.Int("price", result.Purchase.PricePaid),
	)
	publishAction(ctx, s.publisher, models.ActionItemPurchase, userID, "Shop item purchased", map[string]any{
		"item_id":     itemID,
		"purchase_id": result.Purchase.ID,
		"price":       result.Purchase.PricePaid,
		"balance":     result.Balance.Points,
	})
	return result, nil
}

func (s *PointsService) ListPurchases(ctx context.Context, userID string) ([]models.PurchaseRecord, error) {
	if userID == "" {
		return nil, models.ErrInvalidInput
	}
	return s.store.ListPurchases(ctx, userID)
}

func (s *PointsService) MarkPurchaseReceived(ctx context.Context, userID, purchaseID string) (*models.PurchaseRecord, error) {
	if userID == "" || purchaseID == "" {
		return nil, models.ErrInvalidInput
	}
	return s.store.MarkPurchaseReceived(ctx, userID, purchaseID)
}
