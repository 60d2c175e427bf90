package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/google/uuid"
)

// SimulatedGateway approves every charge after Delay. Crypto charges must
// name a supported currency.
type SimulatedGateway struct {
	Delay time.Duration
}

func NewSimulatedGateway(delay time.Duration) *SimulatedGateway {
	return &SimulatedGateway{Delay: delay}
}

func (g *SimulatedGateway) Confirm(ctx context.Context, payment *models.Payment) (string, error) {
	if payment.Method == models.PaymentMethodCrypto && !models.SupportedCryptoCurrencies[payment.Currency] {
		return "", fmt.Errorf("%w: unsupported currency %q", models.ErrPaymentDeclined, payment.Currency)
	}

	if g.Delay > 0 {
		timer := time.NewTimer(g.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	return "sim_" + uuid.NewString(), nil
}
