package battlepass

import (
	"context"
	"time"

	"github.com/ahmetkoprulu/battlepass/models"
)

type SeasonStore interface {
	CreateSeason(ctx context.Context, season *models.BattlePassSeason) error
	GetSeason(ctx context.Context, id string) (*models.BattlePassSeason, error)
	ListSeasons(ctx context.Context) ([]models.BattlePassSeason, error)
}

type RewardStore interface {
	CreateReward(ctx context.Context, reward *models.RewardDefinition) error
	GetReward(ctx context.Context, id string) (*models.RewardDefinition, error)
	// ListRewards orders by required level, then insertion order
	ListRewards(ctx context.Context, seasonID string) ([]models.RewardDefinition, error)
}

type ProgressionStore interface {
	GetProgression(ctx context.Context, userID, seasonID string) (*models.UserProgression, error)
	// CreateProgressionIfAbsent inserts progression unless a row for the
	// (user, season) pair exists. It returns the stored row and whether it
	// was created by this call.
	CreateProgressionIfAbsent(ctx context.Context, progression *models.UserProgression) (*models.UserProgression, bool, error)
	ListUserProgressions(ctx context.Context, userID string) ([]models.UserProgression, error)
	SetLevel(ctx context.Context, userID, seasonID string, level int) (*models.UserProgression, error)
	SetXP(ctx context.Context, userID, seasonID string, xp int) (*models.UserProgression, error)
	SetPremium(ctx context.Context, userID, seasonID string, isPremium bool) (*models.UserProgression, error)
	AddXP(ctx context.Context, userID, seasonID string, delta int) (*models.UserProgression, error)
	// RaiseLevel sets the level to max(current, level)
	RaiseLevel(ctx context.Context, userID, seasonID string, level int) (*models.UserProgression, error)
}

type ClaimStore interface {
	HasClaim(ctx context.Context, userID, rewardID string) (bool, error)
	// InsertClaimIfEligible writes the claim only if the user's progression
	// still meets the reward's level and premium requirements at write time.
	// It returns ErrNotEligible when it does not and ErrConflict when a claim
	// for the pair already exists.
	InsertClaimIfEligible(ctx context.Context, claim *models.ClaimRecord) error
	ListClaims(ctx context.Context, userID string) ([]models.ClaimRecord, error)
	MarkDelivered(ctx context.Context, userID, claimID string, at time.Time) (*models.ClaimRecord, error)
}

type Store interface {
	SeasonStore
	RewardStore
	ProgressionStore
	ClaimStore
}
