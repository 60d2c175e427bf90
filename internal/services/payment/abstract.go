package payment

import (
	"context"

	"github.com/ahmetkoprulu/battlepass/models"
)

type Store interface {
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPayment(ctx context.Context, id string) (*models.Payment, error)
	ListPayments(ctx context.Context) ([]models.Payment, error)
	SetPaymentStatus(ctx context.Context, id string, status models.PaymentStatus, reference string) (*models.Payment, error)
}

// Gateway confirms a charge. Implementations never settle real money.
type Gateway interface {
	Confirm(ctx context.Context, payment *models.Payment) (reference string, err error)
}
