package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ahmetkoprulu/battlepass/models"
)

// MemoryLedgerStore is the in-process Store. The single lock makes Purchase
// all-or-nothing the same way the Postgres transaction does.
type MemoryLedgerStore struct {
	mu        sync.Mutex
	balances  map[string]models.PointsBalance
	items     map[string]models.ShopItem
	purchases map[string]models.PurchaseRecord
	now       func() time.Time
}

func NewMemoryLedgerStore() *MemoryLedgerStore {
	return &MemoryLedgerStore{
		balances:  make(map[string]models.PointsBalance),
		items:     make(map[string]models.ShopItem),
		purchases: make(map[string]models.PurchaseRecord),
		now:       time.Now,
	}
}

func (s *MemoryLedgerStore) GetBalance(_ context.Context, userID string) (*models.PointsBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.balances[userID]
	if !ok {
		return &models.PointsBalance{UserID: userID}, nil
	}
	return &b, nil
}

func (s *MemoryLedgerStore) Debit(_ context.Context, userID string, amount int) (*models.PointsBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debit(userID, amount)
}

func (s *MemoryLedgerStore) debit(userID string, amount int) (*models.PointsBalance, error) {
	b, ok := s.balances[userID]
	if !ok || b.Points < amount {
		return nil, models.ErrInsufficientBalance
	}

	b.Points -= amount
	b.UpdatedAt = s.now().UTC()
	s.balances[userID] = b
	return &b, nil
}

func (s *MemoryLedgerStore) Credit(_ context.Context, userID string, amount int) (*models.PointsBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.balances[userID]
	if !ok {
		b = models.PointsBalance{UserID: userID}
	}
	if b.Points+amount < 0 {
		return nil, models.ErrWouldGoNegative
	}

	b.Points += amount
	b.UpdatedAt = s.now().UTC()
	s.balances[userID] = b
	return &b, nil
}

func (s *MemoryLedgerStore) CreateShopItem(_ context.Context, item *models.ShopItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[item.ID]; ok {
		return models.ErrConflict
	}
	s.items[item.ID] = *item
	return nil
}

func (s *MemoryLedgerStore) GetShopItem(_ context.Context, id string) (*models.ShopItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &item, nil
}

func (s *MemoryLedgerStore) ListShopItems(_ context.Context, availableOnly bool) ([]models.ShopItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.ShopItem, 0, len(s.items))
	for _, item := range s.items {
		if availableOnly && !item.IsAvailable {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *MemoryLedgerStore) SetShopItemAvailability(_ context.Context, id string, available bool) (*models.ShopItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}

	item.IsAvailable = available
	item.UpdatedAt = s.now().UTC()
	s.items[id] = item
	return &item, nil
}

func (s *MemoryLedgerStore) Purchase(_ context.Context, purchase *models.PurchaseRecord) (*models.PurchaseResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[purchase.ItemID]
	if !ok {
		return nil, models.ErrNotFound
	}
	if !item.IsAvailable {
		return nil, models.ErrItemUnavailable
	}

	balance, err := s.debit(purchase.UserID, item.Price)
	if err != nil {
		return nil, err
	}

	record := *purchase
	record.PricePaid = item.Price
	record.Received = false
	record.Item = nil
	s.purchases[record.ID] = record

	record.Item = &item
	return &models.PurchaseResult{Purchase: record, Balance: *balance}, nil
}

func (s *MemoryLedgerStore) ListPurchases(_ context.Context, userID string) ([]models.PurchaseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	purchases := make([]models.PurchaseRecord, 0)
	for _, p := range s.purchases {
		if p.UserID != userID {
			continue
		}
		if item, ok := s.items[p.ItemID]; ok {
			p.Item = &item
		}
		purchases = append(purchases, p)
	}
	sort.Slice(purchases, func(i, j int) bool {
		return purchases[i].PurchasedAt.After(purchases[j].PurchasedAt)
	})
	return purchases, nil
}

func (s *MemoryLedgerStore) MarkPurchaseReceived(_ context.Context, userID, purchaseID string) (*models.PurchaseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.purchases[purchaseID]
	if !ok || p.UserID != userID {
		return nil, models.ErrNotFound
	}

	p.Received = true
	s.purchases[purchaseID] = p
	return &p, nil
}
