package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetkoprulu/battlepass/internal/services"
	"github.com/ahmetkoprulu/battlepass/internal/services/battlepass"
	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeason(t *testing.T, store *battlepass.MemoryBattlePassStore) *models.BattlePassSeason {
	t.Helper()

	now := time.Now().UTC()
	season := &models.BattlePassSeason{
		ID:           "season-1",
		Name:         "Season 1",
		StartDate:    now.Add(-time.Hour),
		EndDate:      now.Add(time.Hour),
		PremiumPrice: models.DefaultPremiumPrice,
		CreatedAt:    now,
	}
	require.NoError(t, store.CreateSeason(context.Background(), season))
	return season
}

func TestGrantSeasonIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := battlepass.NewMemoryBattlePassStore()
	season := newSeason(t, store)
	svc := services.NewProgressionService(store, nil, nil)

	first, err := svc.GrantSeason(ctx, testUser, season.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.CurrentLevel)
	assert.Equal(t, 0, first.CurrentXP)
	assert.False(t, first.IsPremium)

	_, err = svc.SetLevel(ctx, testUser, season.ID, 7)
	require.NoError(t, err)

	second, err := svc.GrantSeason(ctx, testUser, season.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 7, second.CurrentLevel)

	seasons, err := svc.ListUserSeasons(ctx, testUser)
	require.NoError(t, err)
	assert.Len(t, seasons, 1)
}

func TestGrantUnknownSeason(t *testing.T) {
	svc := services.NewProgressionService(battlepass.NewMemoryBattlePassStore(), nil, nil)

	_, err := svc.GrantSeason(context.Background(), testUser, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestProgressionValidation(t *testing.T) {
	ctx := context.Background()
	store := battlepass.NewMemoryBattlePassStore()
	season := newSeason(t, store)
	svc := services.NewProgressionService(store, nil, nil)
	_, err := svc.GrantSeason(ctx, testUser, season.ID)
	require.NoError(t, err)

	_, err = svc.SetLevel(ctx, testUser, season.ID, 0)
	assert.ErrorIs(t, err, models.ErrInvalidAmount)

	_, err = svc.SetXP(ctx, testUser, season.ID, -1)
	assert.ErrorIs(t, err, models.ErrInvalidAmount)

	_, err = svc.AddXP(ctx, testUser, season.ID, 0)
	assert.ErrorIs(t, err, models.ErrInvalidAmount)

	_, err = svc.SetLevel(ctx, testUser, season.ID, models.MaxAmount+1)
	assert.ErrorIs(t, err, models.ErrInvalidAmount)

	_, err = svc.SetXP(ctx, testUser, season.ID, models.MaxAmount+1)
	assert.ErrorIs(t, err, models.ErrInvalidAmount)

	_, err = svc.AddXP(ctx, testUser, season.ID, models.MaxAmount+1)
	assert.ErrorIs(t, err, models.ErrInvalidAmount)

	_, err = svc.SetLevel(ctx, "stranger", season.ID, 2)
	assert.ErrorIs(t, err, models.ErrNotFound)

	progression, err := svc.GetProgression(ctx, testUser, season.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, progression.CurrentLevel)
	assert.Equal(t, 0, progression.CurrentXP)
}

func TestAddXPWithoutPolicyKeepsLevel(t *testing.T) {
	ctx := context.Background()
	store := battlepass.NewMemoryBattlePassStore()
	season := newSeason(t, store)
	svc := services.NewProgressionService(store, nil, nil)
	_, err := svc.GrantSeason(ctx, testUser, season.ID)
	require.NoError(t, err)

	progression, err := svc.AddXP(ctx, testUser, season.ID, 2500)
	require.NoError(t, err)
	assert.Equal(t, 2500, progression.CurrentXP)
	assert.Equal(t, 1, progression.CurrentLevel)
}

func TestAddXPWithPolicyRaisesLevel(t *testing.T) {
	ctx := context.Background()
	store := battlepass.NewMemoryBattlePassStore()
	season := newSeason(t, store)
	svc := services.NewProgressionService(store, services.FixedThresholdPolicy{XPPerLevel: 1000}, nil)
	_, err := svc.GrantSeason(ctx, testUser, season.ID)
	require.NoError(t, err)

	progression, err := svc.AddXP(ctx, testUser, season.ID, 999)
	require.NoError(t, err)
	assert.Equal(t, 1, progression.CurrentLevel)

	progression, err = svc.AddXP(ctx, testUser, season.ID, 1501)
	require.NoError(t, err)
	assert.Equal(t, 2500, progression.CurrentXP)
	assert.Equal(t, 3, progression.CurrentLevel)

	_, err = svc.SetLevel(ctx, testUser, season.ID, 10)
	require.NoError(t, err)

	progression, err = svc.AddXP(ctx, testUser, season.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 10, progression.CurrentLevel)
}

func TestFixedThresholdPolicy(t *testing.T) {
	testCases := []struct {
		name       string
		xpPerLevel int
		current    int
		xp         int
		expected   int
	}{
		{"no xp", 1000, 1, 0, 1},
		{"just below threshold", 1000, 1, 999, 1},
		{"at threshold", 1000, 1, 1000, 2},
		{"several levels", 1000, 1, 4200, 5},
		{"never lowers", 1000, 8, 1000, 8},
		{"disabled", 0, 3, 5000, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			policy := services.FixedThresholdPolicy{XPPerLevel: tc.xpPerLevel}
			assert.Equal(t, tc.expected, policy.LevelFor(tc.current, tc.xp))
		})
	}
}

func TestProgressPercent(t *testing.T) {
	assert.Equal(t, 0, services.ProgressPercent(0, 1000))
	assert.Equal(t, 0, services.ProgressPercent(-5, 1000))
	assert.Equal(t, 25, services.ProgressPercent(250, 1000))
	assert.Equal(t, 100, services.ProgressPercent(1000, 1000))
	assert.Equal(t, 100, services.ProgressPercent(5000, 1000))
	assert.Equal(t, 0, services.ProgressPercent(500, 0))
}
