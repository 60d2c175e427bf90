package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetkoprulu/battlepass/common/utils"
	"github.com/ahmetkoprulu/battlepass/internal/services/audit"
	"github.com/ahmetkoprulu/battlepass/internal/services/battlepass"
	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Eligibility decides whether a reward can be claimed. It is a pure function
// of the progression, the reward and whether a claim already exists.
func Eligibility(progression *models.UserProgression, reward *models.RewardDefinition, claimed bool) models.Eligibility {
	switch {
	case claimed:
		return models.EligibilityAlreadyClaimed
	case progression.CurrentLevel < reward.RequiredLevel:
		return models.EligibilityLocked
	case reward.IsPremium && !progression.IsPremium:
		return models.EligibilityRequiresPremium
	case reward.IsPremium:
		return models.EligibilityClaimablePremium
	default:
		return models.EligibilityClaimableFree
	}
}

type RedemptionService struct {
	store      battlepass.Store
	catalog    *CatalogService
	publisher  audit.Publisher
	xpPerLevel int
	now        func() time.Time
}

func NewRedemptionService(store battlepass.Store, catalog *CatalogService, publisher audit.Publisher, xpPerLevel int) *RedemptionService {
	return &RedemptionService{
		store:      store,
		catalog:    catalog,
		publisher:  publisher,
		xpPerLevel: xpPerLevel,
		now:        time.Now,
	}
}

// Eligibility loads the user's state for rewardID and evaluates it
func (s *RedemptionService) Eligibility(ctx context.Context, userID, rewardID string) (models.Eligibility, error) {
	reward, progression, claimed, err := s.load(ctx, userID, rewardID)
	if err != nil {
		return "", err
	}
	return Eligibility(progression, reward, claimed), nil
}

func (s *RedemptionService) load(ctx context.Context, userID, rewardID string) (*models.RewardDefinition, *models.UserProgression, bool, error) {
	if userID == "" || rewardID == "" {
		return nil, nil, false, models.ErrInvalidInput
	}

	reward, err := s.store.GetReward(ctx, rewardID)
	if err != nil {
		return nil, nil, false, err
	}

	progression, err := s.store.GetProgression(ctx, userID, reward.SeasonID)
	if err != nil {
		return nil, nil, false, err
	}

	claimed, err := s.store.HasClaim(ctx, userID, rewardID)
	if err != nil {
		return nil, nil, false, err
	}

	return reward, progression, claimed, nil
}

// Claim records a claim for the reward. The store re-checks eligibility as
// part of the insert, and its uniqueness rejection of a concurrent duplicate
// is reported as ErrAlreadyClaimed.
func (s *RedemptionService) Claim(ctx context.Context, userID, rewardID string) (*models.ClaimRecord, error) {
	reward, progression, claimed, err := s.load(ctx, userID, rewardID)
	if err != nil {
		return nil, err
	}

	eligibility := Eligibility(progression, reward, claimed)
	if eligibility == models.EligibilityAlreadyClaimed {
		return nil, models.ErrAlreadyClaimed
	}
	if !eligibility.Claimable() {
		return nil, fmt.Errorf("%w: %s", models.ErrNotEligible, eligibility)
	}

	claim := &models.ClaimRecord{
		ID:        uuid.New().String(),
		UserID:    userID,
		RewardID:  rewardID,
		Status:    models.ClaimStatusClaimed,
		ClaimedAt: s.now().UTC(),
	}

	if err := s.store.InsertClaimIfEligible(ctx, claim); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrAlreadyClaimed
		}
		return nil, err
	}
	claim.Reward = reward

	utils.Logger.Info("Reward claimed",
		zap.String("user_id", userID),
		zap.String("reward_id", rewardID),
		zap.String("eligibility", string(eligibility)),
	)
	publishAction(ctx, s.publisher, models.ActionRewardClaimed, userID, "Reward claimed: "+reward.Name, map[string]any{
		"reward_id":  rewardID,
		"season_id":  reward.SeasonID,
		"claim_id":   claim.ID,
		"is_premium": reward.IsPremium,
	})
	return claim, nil
}

func (s *RedemptionService) ListClaims(ctx context.Context, userID string) ([]models.ClaimRecord, error) {
	if userID == "" {
		return nil, models.ErrInvalidInput
	}
	return s.store.ListClaims(ctx, userID)
}

// MarkDelivered acknowledges physical delivery. The claim keeps blocking
// further claims of the same reward.
func (s *RedemptionService) MarkDelivered(ctx context.Context, userID, claimID string) (*models.ClaimRecord, error) {
	if userID == "" || claimID == "" {
		return nil, models.ErrInvalidInput
	}

	claim, err := s.store.MarkDelivered(ctx, userID, claimID, s.now().UTC())
	if err != nil {
		return nil, err
	}

	publishAction(ctx, s.publisher, models.ActionRewardDelivered, userID, "Reward delivered", map[string]any{
		"claim_id":  claim.ID,
		"reward_id": claim.RewardID,
	})
	return claim, nil
}

// SeasonView annotates every reward of the season with the user's eligibility
func (s *RedemptionService) SeasonView(ctx context.Context, userID, seasonID string) (*models.SeasonView, error) {
	if userID == "" || seasonID == "" {
		return nil, models.ErrInvalidInput
	}

	season, err := s.store.GetSeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	progression, err := s.store.GetProgression(ctx, userID, seasonID)
	if err != nil {
		return nil, err
	}

	rewards, err := s.catalog.ListRewards(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	claims, err := s.store.ListClaims(ctx, userID)
	if err != nil {
		return nil, err
	}
	claimed := make(map[string]bool, len(claims))
	for _, c := range claims {
		claimed[c.RewardID] = true
	}

	views := make([]models.RewardView, len(rewards))
	for i := range rewards {
		views[i] = models.RewardView{
			RewardDefinition: rewards[i],
			Eligibility:      Eligibility(progression, &rewards[i], claimed[rewards[i].ID]),
		}
	}

	return &models.SeasonView{
		Season:          *season,
		Progression:     *progression,
		ProgressPercent: ProgressPercent(progression.CurrentXP, s.xpPerLevel),
		Rewards:         views,
	}, nil
}
