package services

import (
	"context"
	"time"

	"github.com/ahmetkoprulu/battlepass/common/cache"
	"github.com/ahmetkoprulu/battlepass/internal/services/audit"
	"github.com/ahmetkoprulu/battlepass/internal/services/ledger"
	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/google/uuid"
)

const (
	shopItemsAvailableKey = "shop:items:available"
	shopItemsAllKey       = "shop:items:all"
)

type ShopService struct {
	store     ledger.ShopStore
	itemCache cache.Cache[[]models.ShopItem]
	ttl       time.Duration
	publisher audit.Publisher
	now       func() time.Time
}

func NewShopService(store ledger.ShopStore, itemCache cache.Cache[[]models.ShopItem], ttl time.Duration, publisher audit.Publisher) *ShopService {
	return &ShopService{
		store:     store,
		itemCache: itemCache,
		ttl:       ttl,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *ShopService) ListShopItems(ctx context.Context, availableOnly bool) ([]models.ShopItem, error) {
	key := shopItemsAllKey
	if availableOnly {
		key = shopItemsAvailableKey
	}

	return cache.GetOrLoad(ctx, s.itemCache, key, s.ttl, func(ctx context.Context) ([]models.ShopItem, error) {
		return s.store.ListShopItems(ctx, availableOnly)
	})
}

func (s *ShopService) GetShopItem(ctx context.Context, id string) (*models.ShopItem, error) {
	return s.store.GetShopItem(ctx, id)
}

func (s *ShopService) CreateShopItem(ctx context.Context, item *models.ShopItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	now := s.now().UTC()
	item.ID = uuid.New().String()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.store.CreateShopItem(ctx, item); err != nil {
		return err
	}
	cache.Invalidate(ctx, s.itemCache, shopItemsAvailableKey, shopItemsAllKey)

	publishAction(ctx, s.publisher, models.ActionShopItemCreate, "", "Shop item created", map[string]any{
		"item_id": item.ID,
		"name":    item.Name,
		"price":   item.Price,
	})
	return nil
}

func (s *ShopService) SetShopItemAvailability(ctx context.Context, id string, available bool) (*models.ShopItem, error) {
	item, err := s.store.SetShopItemAvailability(ctx, id, available)
	if err != nil {
		return nil, err
	}
	cache.Invalidate(ctx, s.itemCache, shopItemsAvailableKey, shopItemsAllKey)

	publishAction(ctx, s.publisher, models.ActionShopItemUpdate, "", "Shop item availability changed", map[string]any{
		"item_id":      id,
		"is_available": available,
	})
	return item, nil
}
