package models

import (
	"fmt"
	"time"
)

type RewardKind string

const (
	RewardKindItem     RewardKind = "item"
	RewardKindBonus    RewardKind = "bonus"
	RewardKindDiscount RewardKind = "discount"
)

func (k RewardKind) Valid() bool {
	switch k {
	case RewardKindItem, RewardKindBonus, RewardKindDiscount:
		return true
	}
	return false
}

const DefaultPremiumPrice = 499

// BattlePassSeason represents a time-bounded battle pass track
type BattlePassSeason struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	IsPremium    bool      `json:"is_premium"`
	PremiumPrice int       `json:"premium_price"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// IsActive reports whether the season runs at the given instant
func (s *BattlePassSeason) IsActive(now time.Time) bool {
	return !now.Before(s.StartDate) && !now.After(s.EndDate)
}

// RewardDefinition represents a reward unlocked at a given level of a season
type RewardDefinition struct {
	ID            string     `json:"id"`
	SeasonID      string     `json:"season_id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Kind          RewardKind `json:"kind"`
	RequiredLevel int        `json:"required_level"`
	IsPremium     bool       `json:"is_premium"`
	CreatedAt     time.Time  `json:"created_at,omitempty"`
}

// UserProgression represents a user's progress in a season
type UserProgression struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	SeasonID     string    `json:"season_id"`
	CurrentLevel int       `json:"current_level"`
	CurrentXP    int       `json:"current_xp"`
	IsPremium    bool      `json:"is_premium"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`

	// Populated from joins
	Season *BattlePassSeason `json:"season,omitempty"`
}

type ClaimStatus string

const (
	ClaimStatusClaimed   ClaimStatus = "claimed"
	ClaimStatusDelivered ClaimStatus = "delivered"
)

// ClaimRecord marks a reward as redeemed by a user. At most one exists per (user, reward).
type ClaimRecord struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	RewardID    string      `json:"reward_id"`
	Status      ClaimStatus `json:"status"`
	ClaimedAt   time.Time   `json:"claimed_at"`
	DeliveredAt *time.Time  `json:"delivered_at,omitempty"`

	// Populated from joins
	Reward *RewardDefinition `json:"reward,omitempty"`
}

type Eligibility string

const (
	EligibilityLocked           Eligibility = "locked"
	EligibilityClaimableFree    Eligibility = "claimable_free"
	EligibilityClaimablePremium Eligibility = "claimable_premium"
	EligibilityRequiresPremium  Eligibility = "requires_premium"
	EligibilityAlreadyClaimed   Eligibility = "already_claimed"
)

func (e Eligibility) Claimable() bool {
	return e == EligibilityClaimableFree || e == EligibilityClaimablePremium
}

type RewardView struct {
	RewardDefinition
	Eligibility Eligibility `json:"eligibility"`
}

type SeasonView struct {
	Season          BattlePassSeason `json:"season"`
	Progression     UserProgression  `json:"progression"`
	ProgressPercent int              `json:"progress_percent"`
	Rewards         []RewardView     `json:"rewards"`
}

func (s *BattlePassSeason) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: season name is required", ErrInvalidInput)
	}
	if s.EndDate.Before(s.StartDate) {
		return fmt.Errorf("%w: season ends before it starts", ErrInvalidInput)
	}
	if s.PremiumPrice < 0 || s.PremiumPrice > MaxAmount {
		return fmt.Errorf("%w: premium price out of range", ErrInvalidInput)
	}
	return nil
}

func (r *RewardDefinition) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: reward name is required", ErrInvalidInput)
	}
	if !r.Kind.Valid() {
		return fmt.Errorf("%w: unknown reward kind %q", ErrInvalidInput, r.Kind)
	}
	if r.RequiredLevel < 1 || r.RequiredLevel > MaxAmount {
		return fmt.Errorf("%w: required level out of range", ErrInvalidInput)
	}
	return nil
}
