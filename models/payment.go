package models

import "time"

type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodCrypto PaymentMethod = "crypto"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	}
	return false
}

const CryptoSurchargePercent = 5

var SupportedCryptoCurrencies = map[string]bool{
	"BTC":  true,
	"ETH":  true,
	"USDT": true,
	"BNB":  true,
	"SOL":  true,
	"XRP":  true,
	"USDC": true,
}

type Payment struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	SeasonID  string        `json:"season_id"`
	Method    PaymentMethod `json:"method"`
	Currency  string        `json:"currency,omitempty"`
	Amount    int           `json:"amount"`
	Status    PaymentStatus `json:"status"`
	Reference string        `json:"reference,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// PaymentAmount returns the amount charged for a base price, including the crypto surcharge
func PaymentAmount(price int, method PaymentMethod) int {
	if method == PaymentMethodCrypto {
		return price + price*CryptoSurchargePercent/100
	}
	return price
}
