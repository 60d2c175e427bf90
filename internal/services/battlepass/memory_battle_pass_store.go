package battlepass

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ahmetkoprulu/battlepass/models"
)

// MemoryBattlePassStore keeps seasons, rewards, progressions and claims in
// process. Every method holds the same lock, so the claim write and its
// eligibility re-check happen as one step.
type MemoryBattlePassStore struct {
	mu           sync.Mutex
	seq          int64
	seasons      map[string]models.BattlePassSeason
	rewards      map[string]memoryReward
	progressions map[progressionKey]models.UserProgression
	claims       map[string]models.ClaimRecord
	claimIndex   map[claimKey]string
	now          func() time.Time
}

type memoryReward struct {
	reward models.RewardDefinition
	seq    int64
}

type progressionKey struct {
	userID   string
	seasonID string
}

type claimKey struct {
	userID   string
	rewardID string
}

func NewMemoryBattlePassStore() *MemoryBattlePassStore {
	return &MemoryBattlePassStore{
		seasons:      make(map[string]models.BattlePassSeason),
		rewards:      make(map[string]memoryReward),
		progressions: make(map[progressionKey]models.UserProgression),
		claims:       make(map[string]models.ClaimRecord),
		claimIndex:   make(map[claimKey]string),
		now:          time.Now,
	}
}

func (s *MemoryBattlePassStore) CreateSeason(_ context.Context, season *models.BattlePassSeason) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seasons[season.ID]; ok {
		return models.ErrConflict
	}
	s.seasons[season.ID] = *season
	return nil
}

func (s *MemoryBattlePassStore) GetSeason(_ context.Context, id string) (*models.BattlePassSeason, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	season, ok := s.seasons[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &season, nil
}

func (s *MemoryBattlePassStore) ListSeasons(_ context.Context) ([]models.BattlePassSeason, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seasons := make([]models.BattlePassSeason, 0, len(s.seasons))
	for _, season := range s.seasons {
		seasons = append(seasons, season)
	}
	sort.Slice(seasons, func(i, j int) bool {
		if seasons[i].StartDate.Equal(seasons[j].StartDate) {
			return seasons[i].CreatedAt.Before(seasons[j].CreatedAt)
		}
		return seasons[i].StartDate.Before(seasons[j].StartDate)
	})
	return seasons, nil
}

func (s *MemoryBattlePassStore) CreateReward(_ context.Context, reward *models.RewardDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rewards[reward.ID]; ok {
		return models.ErrConflict
	}
	if _, ok := s.seasons[reward.SeasonID]; !ok {
		return models.ErrNotFound
	}

	s.seq++
	s.rewards[reward.ID] = memoryReward{reward: *reward, seq: s.seq}
	return nil
}

func (s *MemoryBattlePassStore) GetReward(_ context.Context, id string) (*models.RewardDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rewards[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &r.reward, nil
}

func (s *MemoryBattlePassStore) ListRewards(_ context.Context, seasonID string) ([]models.RewardDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]memoryReward, 0)
	for _, r := range s.rewards {
		if r.reward.SeasonID == seasonID {
			matched = append(matched, r)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].reward.RequiredLevel == matched[j].reward.RequiredLevel {
			return matched[i].seq < matched[j].seq
		}
		return matched[i].reward.RequiredLevel < matched[j].reward.RequiredLevel
	})

	rewards := make([]models.RewardDefinition, len(matched))
	for i, r := range matched {
		rewards[i] = r.reward
	}
	return rewards, nil
}

func (s *MemoryBattlePassStore) GetProgression(_ context.Context, userID, seasonID string) (*models.UserProgression, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.progressions[progressionKey{userID, seasonID}]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &p, nil
}

func (s *MemoryBattlePassStore) CreateProgressionIfAbsent(_ context.Context, progression *models.UserProgression) (*models.UserProgression, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := progressionKey{progression.UserID, progression.SeasonID}
	if existing, ok := s.progressions[key]; ok {
		return &existing, false, nil
	}
	if _, ok := s.seasons[progression.SeasonID]; !ok {
		return nil, false, models.ErrNotFound
	}

	s.progressions[key] = *progression
	created := *progression
	return &created, true, nil
}

func (s *MemoryBattlePassStore) ListUserProgressions(_ context.Context, userID string) ([]models.UserProgression, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	progressions := make([]models.UserProgression, 0)
	for key, p := range s.progressions {
		if key.userID != userID {
			continue
		}
		if season, ok := s.seasons[key.seasonID]; ok {
			p.Season = &season
		}
		progressions = append(progressions, p)
	}
	sort.Slice(progressions, func(i, j int) bool {
		return seasonStart(progressions[i]).After(seasonStart(progressions[j]))
	})
	return progressions, nil
}

func seasonStart(p models.UserProgression) time.Time {
	if p.Season == nil {
		return time.Time{}
	}
	return p.Season.StartDate
}

func (s *MemoryBattlePassStore) SetLevel(_ context.Context, userID, seasonID string, level int) (*models.UserProgression, error) {
	return s.update(userID, seasonID, func(p *models.UserProgression) { p.CurrentLevel = level })
}

func (s *MemoryBattlePassStore) SetXP(_ context.Context, userID, seasonID string, xp int) (*models.UserProgression, error) {
	return s.update(userID, seasonID, func(p *models.UserProgression) { p.CurrentXP = xp })
}

func (s *MemoryBattlePassStore) SetPremium(_ context.Context, userID, seasonID string, isPremium bool) (*models.UserProgression, error) {
	return s.update(userID, seasonID, func(p *models.UserProgression) { p.IsPremium = isPremium })
}

func (s *MemoryBattlePassStore) AddXP(_ context.Context, userID, seasonID string, delta int) (*models.UserProgression, error) {
	return s.update(userID, seasonID, func(p *models.UserProgression) { p.CurrentXP += delta })
}

func (s *MemoryBattlePassStore) RaiseLevel(_ context.Context, userID, seasonID string, level int) (*models.UserProgression, error) {
	return s.update(userID, seasonID, func(p *models.UserProgression) {
		if level > p.CurrentLevel {
			p.CurrentLevel = level
		}
	})
}

func (s *MemoryBattlePassStore) update(userID, seasonID string, mutate func(*models.UserProgression)) (*models.UserProgression, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := progressionKey{userID, seasonID}
	p, ok := s.progressions[key]
	if !ok {
		return nil, models.ErrNotFound
	}

	mutate(&p)
	p.UpdatedAt = s.now().UTC()
	s.progressions[key] = p
	return &p, nil
}

func (s *MemoryBattlePassStore) HasClaim(_ context.Context, userID, rewardID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.claimIndex[claimKey{userID, rewardID}]
	return ok, nil
}

func (s *MemoryBattlePassStore) InsertClaimIfEligible(_ context.Context, claim *models.ClaimRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := claimKey{claim.UserID, claim.RewardID}
	if _, ok := s.claimIndex[key]; ok {
		return models.ErrConflict
	}

	r, ok := s.rewards[claim.RewardID]
	if !ok {
		return models.ErrNotEligible
	}
	p, ok := s.progressions[progressionKey{claim.UserID, r.reward.SeasonID}]
	if !ok {
		return models.ErrNotEligible
	}
	if p.CurrentLevel < r.reward.RequiredLevel || (r.reward.IsPremium && !p.IsPremium) {
		return models.ErrNotEligible
	}

	s.claims[claim.ID] = *claim
	s.claimIndex[key] = claim.ID
	return nil
}

func (s *MemoryBattlePassStore) ListClaims(_ context.Context, userID string) ([]models.ClaimRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	claims := make([]models.ClaimRecord, 0)
	for _, c := range s.claims {
		if c.UserID != userID {
			continue
		}
		if r, ok := s.rewards[c.RewardID]; ok {
			reward := r.reward
			c.Reward = &reward
		}
		claims = append(claims, c)
	}
	sort.Slice(claims, func(i, j int) bool {
		return claims[i].ClaimedAt.After(claims[j].ClaimedAt)
	})
	return claims, nil
}

func (s *MemoryBattlePassStore) MarkDelivered(_ context.Context, userID, claimID string, at time.Time) (*models.ClaimRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.claims[claimID]
	if !ok || c.UserID != userID {
		return nil, models.ErrNotFound
	}

	c.Status = models.ClaimStatusDelivered
	if c.DeliveredAt == nil {
		c.DeliveredAt = &at
	}
	s.claims[claimID] = c
	return &c, nil
}
