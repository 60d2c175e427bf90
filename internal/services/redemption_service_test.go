package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ahmetkoprulu/battlepass/common/cache"
	"github.com/ahmetkoprulu/battlepass/internal/services"
	"github.com/ahmetkoprulu/battlepass/internal/services/audit"
	"github.com/ahmetkoprulu/battlepass/internal/services/battlepass"
	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RedemptionServiceTestSuite struct {
	suite.Suite

	ctx         context.Context
	store       *battlepass.MemoryBattlePassStore
	actionLogs  *audit.MemoryActionLogStore
	catalog     *services.CatalogService
	progression *services.ProgressionService
	redemption  *services.RedemptionService

	season  *models.BattlePassSeason
	rewardA *models.RewardDefinition
	rewardB *models.RewardDefinition
}

const testUser = "user-1"

func (s *RedemptionServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = battlepass.NewMemoryBattlePassStore()
	s.actionLogs = audit.NewMemoryActionLogStore()
	publisher := audit.StorePublisher{Store: s.actionLogs}

	s.catalog = services.NewCatalogService(s.store, cache.NewMemoryCache[[]models.RewardDefinition](), time.Minute, publisher)
	s.progression = services.NewProgressionService(s.store, nil, publisher)
	s.redemption = services.NewRedemptionService(s.store, s.catalog, publisher, 1000)

	now := time.Now()
	s.season = &models.BattlePassSeason{Name: "Season 1", StartDate: now.Add(-time.Hour), EndDate: now.Add(24 * time.Hour)}
	s.Require().NoError(s.catalog.CreateSeason(s.ctx, s.season))

	s.rewardA = &models.RewardDefinition{SeasonID: s.season.ID, Name: "A", Kind: models.RewardKindItem, RequiredLevel: 5}
	s.rewardB = &models.RewardDefinition{SeasonID: s.season.ID, Name: "B", Kind: models.RewardKindBonus, RequiredLevel: 5, IsPremium: true}
	s.Require().NoError(s.catalog.CreateReward(s.ctx, s.rewardA))
	s.Require().NoError(s.catalog.CreateReward(s.ctx, s.rewardB))

	_, err := s.progression.GrantSeason(s.ctx, testUser, s.season.ID)
	s.Require().NoError(err)
}

func TestRedemptionService(t *testing.T) {
	suite.Run(t, new(RedemptionServiceTestSuite))
}

func (s *RedemptionServiceTestSuite) setLevel(level int) {
	_, err := s.progression.SetLevel(s.ctx, testUser, s.season.ID, level)
	s.Require().NoError(err)
}

func (s *RedemptionServiceTestSuite) eligibility(reward *models.RewardDefinition) models.Eligibility {
	e, err := s.redemption.Eligibility(s.ctx, testUser, reward.ID)
	s.Require().NoError(err)
	return e
}

func (s *RedemptionServiceTestSuite) TestPremiumScenario() {
	s.setLevel(5)

	s.Equal(models.EligibilityClaimableFree, s.eligibility(s.rewardA))
	s.Equal(models.EligibilityRequiresPremium, s.eligibility(s.rewardB))

	_, err := s.progression.SetPremium(s.ctx, testUser, s.season.ID, true)
	s.Require().NoError(err)
	s.Equal(models.EligibilityClaimablePremium, s.eligibility(s.rewardB))

	_, err = s.redemption.Claim(s.ctx, testUser, s.rewardA.ID)
	s.Require().NoError(err)
	s.Equal(models.EligibilityAlreadyClaimed, s.eligibility(s.rewardA))
}

func (s *RedemptionServiceTestSuite) TestClaimTwice() {
	s.setLevel(5)

	claim, err := s.redemption.Claim(s.ctx, testUser, s.rewardA.ID)
	s.Require().NoError(err)
	s.Equal(models.ClaimStatusClaimed, claim.Status)

	_, err = s.redemption.Claim(s.ctx, testUser, s.rewardA.ID)
	s.ErrorIs(err, models.ErrAlreadyClaimed)

	claims, err := s.redemption.ListClaims(s.ctx, testUser)
	s.Require().NoError(err)
	s.Len(claims, 1)
}

func (s *RedemptionServiceTestSuite) TestClaimLockedReward() {
	s.setLevel(4)

	_, err := s.redemption.Claim(s.ctx, testUser, s.rewardA.ID)
	s.ErrorIs(err, models.ErrNotEligible)

	_, err = s.redemption.Claim(s.ctx, testUser, s.rewardB.ID)
	s.ErrorIs(err, models.ErrNotEligible)
}

func (s *RedemptionServiceTestSuite) TestClaimPremiumWithoutEntitlement() {
	s.setLevel(10)

	_, err := s.redemption.Claim(s.ctx, testUser, s.rewardB.ID)
	s.ErrorIs(err, models.ErrNotEligible)

	claims, err := s.redemption.ListClaims(s.ctx, testUser)
	s.Require().NoError(err)
	s.Empty(claims)
}

func (s *RedemptionServiceTestSuite) TestClaimUnknownReward() {
	_, err := s.redemption.Claim(s.ctx, testUser, "missing")
	s.ErrorIs(err, models.ErrNotFound)
}

func (s *RedemptionServiceTestSuite) TestClaimWithoutProgression() {
	_, err := s.redemption.Claim(s.ctx, "stranger", s.rewardA.ID)
	s.ErrorIs(err, models.ErrNotFound)
}

func (s *RedemptionServiceTestSuite) TestConcurrentClaims() {
	s.setLevel(5)

	const attempts = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.redemption.Claim(context.Background(), testUser, s.rewardA.ID)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			if assert.ErrorIs(s.T(), err, models.ErrAlreadyClaimed) {
				rejected++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, succeeded)
	s.Equal(attempts-1, rejected)

	claims, err := s.redemption.ListClaims(s.ctx, testUser)
	s.Require().NoError(err)
	s.Len(claims, 1)
}

func (s *RedemptionServiceTestSuite) TestDeliveredClaimStaysClaimed() {
	s.setLevel(5)

	claim, err := s.redemption.Claim(s.ctx, testUser, s.rewardA.ID)
	s.Require().NoError(err)

	delivered, err := s.redemption.MarkDelivered(s.ctx, testUser, claim.ID)
	s.Require().NoError(err)
	s.Equal(models.ClaimStatusDelivered, delivered.Status)
	s.Require().NotNil(delivered.DeliveredAt)
	firstDelivery := *delivered.DeliveredAt

	again, err := s.redemption.MarkDelivered(s.ctx, testUser, claim.ID)
	s.Require().NoError(err)
	s.Equal(firstDelivery, *again.DeliveredAt)

	s.Equal(models.EligibilityAlreadyClaimed, s.eligibility(s.rewardA))
	_, err = s.redemption.Claim(s.ctx, testUser, s.rewardA.ID)
	s.ErrorIs(err, models.ErrAlreadyClaimed)
}

func (s *RedemptionServiceTestSuite) TestMarkDeliveredForeignClaim() {
	s.setLevel(5)

	claim, err := s.redemption.Claim(s.ctx, testUser, s.rewardA.ID)
	s.Require().NoError(err)

	_, err = s.redemption.MarkDelivered(s.ctx, "someone-else", claim.ID)
	s.ErrorIs(err, models.ErrNotFound)
}

func (s *RedemptionServiceTestSuite) TestSeasonView() {
	s.setLevel(5)
	_, err := s.progression.SetXP(s.ctx, testUser, s.season.ID, 250)
	s.Require().NoError(err)
	_, err = s.redemption.Claim(s.ctx, testUser, s.rewardA.ID)
	s.Require().NoError(err)

	view, err := s.redemption.SeasonView(s.ctx, testUser, s.season.ID)
	s.Require().NoError(err)

	s.Equal(s.season.ID, view.Season.ID)
	s.Equal(25, view.ProgressPercent)
	s.Require().Len(view.Rewards, 2)
	s.Equal(s.rewardA.ID, view.Rewards[0].ID)
	s.Equal(models.EligibilityAlreadyClaimed, view.Rewards[0].Eligibility)
	s.Equal(models.EligibilityRequiresPremium, view.Rewards[1].Eligibility)
}

func (s *RedemptionServiceTestSuite) TestClaimPublishesActionLog() {
	s.setLevel(5)

	_, err := s.redemption.Claim(s.ctx, testUser, s.rewardA.ID)
	s.Require().NoError(err)

	logs, err := s.actionLogs.ListActionLogs(s.ctx, 0)
	s.Require().NoError(err)

	var found bool
	for _, l := range logs {
		if l.ActionType == models.ActionRewardClaimed {
			found = true
			s.Equal(testUser, l.UserID)
			s.Equal(s.rewardA.ID, l.Metadata["reward_id"])
		}
	}
	s.True(found)
}

func TestEligibility(t *testing.T) {
	free := &models.RewardDefinition{RequiredLevel: 5}
	premium := &models.RewardDefinition{RequiredLevel: 5, IsPremium: true}

	testCases := []struct {
		name        string
		level       int
		isPremium   bool
		reward      *models.RewardDefinition
		claimed     bool
		eligibility models.Eligibility
	}{
		{"free below level", 4, false, free, false, models.EligibilityLocked},
		{"premium below level with entitlement", 4, true, premium, false, models.EligibilityLocked},
		{"premium below level without entitlement", 1, false, premium, false, models.EligibilityLocked},
		{"free at level", 5, false, free, false, models.EligibilityClaimableFree},
		{"free above level with entitlement", 9, true, free, false, models.EligibilityClaimableFree},
		{"premium without entitlement", 5, false, premium, false, models.EligibilityRequiresPremium},
		{"premium with entitlement", 5, true, premium, false, models.EligibilityClaimablePremium},
		{"claimed wins over locked", 1, false, free, true, models.EligibilityAlreadyClaimed},
		{"claimed wins over premium", 5, false, premium, true, models.EligibilityAlreadyClaimed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			progression := &models.UserProgression{CurrentLevel: tc.level, IsPremium: tc.isPremium}
			got := services.Eligibility(progression, tc.reward, tc.claimed)
			assert.Equal(t, tc.eligibility, got)
		})
	}
}

func TestEligibilityClaimable(t *testing.T) {
	require.True(t, models.EligibilityClaimableFree.Claimable())
	require.True(t, models.EligibilityClaimablePremium.Claimable())
	require.False(t, models.EligibilityLocked.Claimable())
	require.False(t, models.EligibilityRequiresPremium.Claimable())
	require.False(t, models.EligibilityAlreadyClaimed.Claimable())
}

// racingClaimStore loses every claim race: the pre-check sees no claim and
// the insert hits the uniqueness constraint.
type racingClaimStore struct {
	*battlepass.MemoryBattlePassStore
	inserts int
}

func (r *racingClaimStore) HasClaim(context.Context, string, string) (bool, error) {
	return false, nil
}

func (r *racingClaimStore) InsertClaimIfEligible(context.Context, *models.ClaimRecord) error {
	r.inserts++
	return models.ErrConflict
}

func (s *RedemptionServiceTestSuite) TestClaimLosingRaceReportsAlreadyClaimed() {
	s.setLevel(5)
	store := &racingClaimStore{MemoryBattlePassStore: s.store}
	actionLogs := audit.NewMemoryActionLogStore()
	redemption := services.NewRedemptionService(store, s.catalog, audit.StorePublisher{Store: actionLogs}, 1000)

	claim, err := redemption.Claim(s.ctx, testUser, s.rewardA.ID)
	s.ErrorIs(err, models.ErrAlreadyClaimed)
	s.Nil(claim)
	s.Equal(1, store.inserts)

	logs, err := actionLogs.ListActionLogs(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(logs)
}
