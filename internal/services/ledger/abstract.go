package ledger

import (
	"context"

	"github.com/ahmetkoprulu/battlepass/models"
)

type BalanceStore interface {
	// GetBalance returns a zero balance for users without a row
	GetBalance(ctx context.Context, userID string) (*models.PointsBalance, error)
	// Debit subtracts amount only if the balance covers it, otherwise ErrInsufficientBalance
	Debit(ctx context.Context, userID string, amount int) (*models.PointsBalance, error)
	// Credit adds amount (which may be negative) only if the result stays >= 0,
	// otherwise ErrWouldGoNegative. A row is created on the first credit.
	Credit(ctx context.Context, userID string, amount int) (*models.PointsBalance, error)
}

type ShopStore interface {
	CreateShopItem(ctx context.Context, item *models.ShopItem) error
	GetShopItem(ctx context.Context, id string) (*models.ShopItem, error)
	ListShopItems(ctx context.Context, availableOnly bool) ([]models.ShopItem, error)
	SetShopItemAvailability(ctx context.Context, id string, available bool) (*models.ShopItem, error)
}

type PurchaseStore interface {
	// Purchase prices purchase.ItemID, debits the user and records the
	// purchase as one unit. Nothing is written when any step fails.
	Purchase(ctx context.Context, purchase *models.PurchaseRecord) (*models.PurchaseResult, error)
	ListPurchases(ctx context.Context, userID string) ([]models.PurchaseRecord, error)
	MarkPurchaseReceived(ctx context.Context, userID, purchaseID string) (*models.PurchaseRecord, error)
}

type Store interface {
	BalanceStore
	ShopStore
	PurchaseStore
}
