package models

import (
	"fmt"
	"time"
)

type ShopItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int       `json:"price"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

func (i *ShopItem) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("%w: item name is required", ErrInvalidInput)
	}
	if i.Price < 1 || i.Price > MaxAmount {
		return fmt.Errorf("%w: price out of range", ErrInvalidInput)
	}
	return nil
}

// PurchaseRecord is created in the same unit of work as the balance debit that pays for it
type PurchaseRecord struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ItemID      string    `json:"item_id"`
	PricePaid   int       `json:"price_paid"`
	PurchasedAt time.Time `json:"purchased_at"`
	Received    bool      `json:"received"`

	// Populated from joins
	Item *ShopItem `json:"item,omitempty"`
}

type PointsBalance struct {
	UserID    string    `json:"user_id"`
	Points    int       `json:"points"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

type PurchaseResult struct {
	Purchase PurchaseRecord `json:"purchase"`
	Balance  PointsBalance  `json:"balance"`
}

// PointsGrantMessage credits points from an upstream system
type PointsGrantMessage struct {
	MessageID string    `json:"message_id"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"user_id"`
	Amount    int       `json:"amount"`
	Reason    string    `json:"reason"`
}
