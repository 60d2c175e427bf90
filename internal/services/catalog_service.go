package services

import (
	"context"
	"sort"
	"time"

	"github.com/ahmetkoprulu/battlepass/common/cache"
	"github.com/ahmetkoprulu/battlepass/internal/services/audit"
	"github.com/ahmetkoprulu/battlepass/internal/services/battlepass"
	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/google/uuid"
)

type CatalogStore interface {
	battlepass.SeasonStore
	battlepass.RewardStore
}

type CatalogService struct {
	store       CatalogStore
	rewardCache cache.Cache[[]models.RewardDefinition]
	ttl         time.Duration
	publisher   audit.Publisher
	now         func() time.Time
}

// NewCatalogService caches reward lists in rewardCache for ttl. A nil cache reads through.
func NewCatalogService(store CatalogStore, rewardCache cache.Cache[[]models.RewardDefinition], ttl time.Duration, publisher audit.Publisher) *CatalogService {
	return &CatalogService{
		store:       store,
		rewardCache: rewardCache,
		ttl:         ttl,
		publisher:   publisher,
		now:         time.Now,
	}
}

func rewardsCacheKey(seasonID string) string {
	return "rewards:" + seasonID
}

func (s *CatalogService) ListSeasons(ctx context.Context) ([]models.BattlePassSeason, error) {
	return s.store.ListSeasons(ctx)
}

func (s *CatalogService) GetSeason(ctx context.Context, id string) (*models.BattlePassSeason, error) {
	return s.store.GetSeason(ctx, id)
}

func (s *CatalogService) ActiveSeasons(ctx context.Context) ([]models.BattlePassSeason, error) {
	seasons, err := s.store.ListSeasons(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	active := make([]models.BattlePassSeason, 0, len(seasons))
	for _, season := range seasons {
		if season.IsActive(now) {
			active = append(active, season)
		}
	}
	return active, nil
}

func (s *CatalogService) CreateSeason(ctx context.Context, season *models.BattlePassSeason) error {
	if err := season.Validate(); err != nil {
		return err
	}

	season.ID = uuid.New().String()
	season.CreatedAt = s.now().UTC()
	if season.PremiumPrice == 0 {
		season.PremiumPrice = models.DefaultPremiumPrice
	}

	if err := s.store.CreateSeason(ctx, season); err != nil {
		return err
	}

	publishAction(ctx, s.publisher, models.ActionBattlePassCreate, "", "Season created", map[string]any{
		"season_id": season.ID,
		"name":      season.Name,
	})
	return nil
}

func (s *CatalogService) CreateReward(ctx context.Context, reward *models.RewardDefinition) error {
	if err := reward.Validate(); err != nil {
		return err
	}

	if _, err := s.store.GetSeason(ctx, reward.SeasonID); err != nil {
		return err
	}

	reward.ID = uuid.New().String()
	reward.CreatedAt = s.now().UTC()

	if err := s.store.CreateReward(ctx, reward); err != nil {
		return err
	}
	cache.Invalidate(ctx, s.rewardCache, rewardsCacheKey(reward.SeasonID))

	publishAction(ctx, s.publisher, models.ActionRewardCreate, "", "Reward created", map[string]any{
		"season_id":      reward.SeasonID,
		"reward_id":      reward.ID,
		"required_level": reward.RequiredLevel,
		"is_premium":     reward.IsPremium,
	})
	return nil
}

// ListRewards returns the season's rewards by required level, ties in insertion order
func (s *CatalogService) ListRewards(ctx context.Context, seasonID string) ([]models.RewardDefinition, error) {
	return cache.GetOrLoad(ctx, s.rewardCache, rewardsCacheKey(seasonID), s.ttl, func(ctx context.Context) ([]models.RewardDefinition, error) {
		if _, err := s.store.GetSeason(ctx, seasonID); err != nil {
			return nil, err
		}

		rewards, err := s.store.ListRewards(ctx, seasonID)
		if err != nil {
			return nil, err
		}

		sort.SliceStable(rewards, func(i, j int) bool {
			return rewards[i].RequiredLevel < rewards[j].RequiredLevel
		})
		return rewards, nil
	})
}
