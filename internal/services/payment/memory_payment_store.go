package payment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ahmetkoprulu/battlepass/models"
)

type MemoryPaymentStore struct {
	mu       sync.Mutex
	payments map[string]models.Payment
}

func NewMemoryPaymentStore() *MemoryPaymentStore {
	return &MemoryPaymentStore{payments: make(map[string]models.Payment)}
}

func (s *MemoryPaymentStore) CreatePayment(_ context.Context, payment *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.payments[payment.ID]; ok {
		return models.ErrConflict
	}
	s.payments[payment.ID] = *payment
	return nil
}

func (s *MemoryPaymentStore) GetPayment(_ context.Context, id string) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &p, nil
}

func (s *MemoryPaymentStore) ListPayments(_ context.Context) ([]models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payments := make([]models.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		payments = append(payments, p)
	}
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})
	return payments, nil
}

func (s *MemoryPaymentStore) SetPaymentStatus(_ context.Context, id string, status models.PaymentStatus, reference string) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[id]
	if !ok {
		return nil, models.ErrNotFound
	}

	p.Status = status
	if reference != "" {
		p.Reference = reference
	}
	p.UpdatedAt = time.Now().UTC()
	s.payments[id] = p
	return &p, nil
}
