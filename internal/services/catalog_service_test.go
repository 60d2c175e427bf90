package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetkoprulu/battlepass/common/cache"
	"github.com/ahmetkoprulu/battlepass/internal/services"
	"github.com/ahmetkoprulu/battlepass/internal/services/battlepass"
	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) (*services.CatalogService, *cache.MemoryCache[[]models.RewardDefinition], *models.BattlePassSeason) {
	t.Helper()

	rewardCache := cache.NewMemoryCache[[]models.RewardDefinition]()
	catalog := services.NewCatalogService(battlepass.NewMemoryBattlePassStore(), rewardCache, time.Minute, nil)

	now := time.Now()
	season := &models.BattlePassSeason{Name: "Season", StartDate: now.Add(-time.Hour), EndDate: now.Add(time.Hour)}
	require.NoError(t, catalog.CreateSeason(context.Background(), season))
	return catalog, rewardCache, season
}

func TestCreateSeasonDefaults(t *testing.T) {
	catalog, _, season := newCatalog(t)

	assert.NotEmpty(t, season.ID)
	assert.Equal(t, models.DefaultPremiumPrice, season.PremiumPrice)

	got, err := catalog.GetSeason(context.Background(), season.ID)
	require.NoError(t, err)
	assert.Equal(t, season.Name, got.Name)
}

func TestCreateSeasonValidation(t *testing.T) {
	catalog, _, _ := newCatalog(t)
	now := time.Now()

	err := catalog.CreateSeason(context.Background(), &models.BattlePassSeason{StartDate: now, EndDate: now})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	err = catalog.CreateSeason(context.Background(), &models.BattlePassSeason{Name: "Backwards", StartDate: now, EndDate: now.Add(-time.Hour)})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestActiveSeasons(t *testing.T) {
	catalog, _, active := newCatalog(t)
	ctx := context.Background()
	now := time.Now()

	past := &models.BattlePassSeason{Name: "Past", StartDate: now.Add(-48 * time.Hour), EndDate: now.Add(-24 * time.Hour)}
	require.NoError(t, catalog.CreateSeason(ctx, past))

	seasons, err := catalog.ActiveSeasons(ctx)
	require.NoError(t, err)
	require.Len(t, seasons, 1)
	assert.Equal(t, active.ID, seasons[0].ID)

	all, err := catalog.ListSeasons(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListRewardsOrdering(t *testing.T) {
	catalog, _, season := newCatalog(t)
	ctx := context.Background()

	for _, r := range []struct {
		name  string
		level int
	}{
		{"third", 10},
		{"first", 1},
		{"second-a", 5},
		{"second-b", 5},
		{"second-c", 5},
	} {
		require.NoError(t, catalog.CreateReward(ctx, &models.RewardDefinition{
			SeasonID:      season.ID,
			Name:          r.name,
			Kind:          models.RewardKindItem,
			RequiredLevel: r.level,
		}))
	}

	rewards, err := catalog.ListRewards(ctx, season.ID)
	require.NoError(t, err)

	names := make([]string, len(rewards))
	for i, r := range rewards {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"first", "second-a", "second-b", "second-c", "third"}, names)
}

func TestCreateRewardInvalidatesCache(t *testing.T) {
	catalog, rewardCache, season := newCatalog(t)
	ctx := context.Background()

	rewards, err := catalog.ListRewards(ctx, season.ID)
	require.NoError(t, err)
	assert.Empty(t, rewards)
	assert.Equal(t, 1, rewardCache.Len())

	require.NoError(t, catalog.CreateReward(ctx, &models.RewardDefinition{
		SeasonID:      season.ID,
		Name:          "Badge",
		Kind:          models.RewardKindBonus,
		RequiredLevel: 2,
	}))
	assert.Equal(t, 0, rewardCache.Len())

	rewards, err = catalog.ListRewards(ctx, season.ID)
	require.NoError(t, err)
	assert.Len(t, rewards, 1)
}

func TestCreateRewardValidation(t *testing.T) {
	catalog, _, season := newCatalog(t)
	ctx := context.Background()

	testCases := []struct {
		name   string
		reward *models.RewardDefinition
		err    error
	}{
		{"missing name", &models.RewardDefinition{SeasonID: season.ID, Kind: models.RewardKindItem, RequiredLevel: 1}, models.ErrInvalidInput},
		{"unknown kind", &models.RewardDefinition{SeasonID: season.ID, Name: "X", Kind: "gem", RequiredLevel: 1}, models.ErrInvalidInput},
		{"level zero", &models.RewardDefinition{SeasonID: season.ID, Name: "X", Kind: models.RewardKindItem}, models.ErrInvalidInput},
		{"unknown season", &models.RewardDefinition{SeasonID: "missing", Name: "X", Kind: models.RewardKindItem, RequiredLevel: 1}, models.ErrNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, catalog.CreateReward(ctx, tc.reward), tc.err)
		})
	}
}

func TestListRewardsUnknownSeason(t *testing.T) {
	catalog, _, _ := newCatalog(t)

	_, err := catalog.ListRewards(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
