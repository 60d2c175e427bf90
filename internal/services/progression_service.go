package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ahmetkoprulu/battlepass/common/utils"
	"github.com/ahmetkoprulu/battlepass/internal/services/audit"
	"github.com/ahmetkoprulu/battlepass/internal/services/battlepass"
	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProgressionService struct {
	store     battlepass.Store
	policy    LevelPolicy
	publisher audit.Publisher
	now       func() time.Time
}

func NewProgressionService(store battlepass.Store, policy LevelPolicy, publisher audit.Publisher) *ProgressionService {
	return &ProgressionService{
		store:     store,
		policy:    policy,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *ProgressionService) GetProgression(ctx context.Context, userID, seasonID string) (*models.UserProgression, error) {
	if userID == "" || seasonID == "" {
		return nil, models.ErrInvalidInput
	}
	return s.store.GetProgression(ctx, userID, seasonID)
}

// GrantSeason enrolls the user in a season. An existing progression is
// returned unchanged.
func (s *ProgressionService) GrantSeason(ctx context.Context, userID, seasonID string) (*models.UserProgression, error) {
	if userID == "" || seasonID == "" {
		return nil, models.ErrInvalidInput
	}

	if _, err := s.store.GetSeason(ctx, seasonID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	progression, created, err := s.store.CreateProgressionIfAbsent(ctx, &models.UserProgression{
		ID:           uuid.New().String(),
		UserID:       userID,
		SeasonID:     seasonID,
		CurrentLevel: 1,
		CurrentXP:    0,
		IsPremium:    false,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	if created {
		utils.Logger.Info("Season granted", zap.String("user_id", userID), zap.String("season_id", seasonID))
		publishAction(ctx, s.publisher, models.ActionAdmin, userID, "Season granted", map[string]any{
			"season_id": seasonID,
		})
	}
	return progression, nil
}

func (s *ProgressionService) ListUserSeasons(ctx context.Context, userID string) ([]models.UserProgression, error) {
	if userID == "" {
		return nil, models.ErrInvalidInput
	}
	return s.store.ListUserProgressions(ctx, userID)
}

func (s *ProgressionService) SetLevel(ctx context.Context, userID, seasonID string, level int) (*models.UserProgression, error) {
	if level < 1 || level > models.MaxAmount {
		return nil, fmt.Errorf("%w: level out of range", models.ErrInvalidAmount)
	}

	progression, err := s.store.SetLevel(ctx, userID, seasonID, level)
	if err != nil {
		return nil, err
	}

	publishAction(ctx, s.publisher, models.ActionAdmin, userID, "Level set", map[string]any{
		"season_id": seasonID,
		"level":     level,
	})
	return progression, nil
}

func (s *ProgressionService) SetXP(ctx context.Context, userID, seasonID string, xp int) (*models.UserProgression, error) {
	if xp < 0 || xp > models.MaxAmount {
		return nil, fmt.Errorf("%w: xp out of range", models.ErrInvalidAmount)
	}

	progression, err := s.store.SetXP(ctx, userID, seasonID, xp)
	if err != nil {
		return nil, err
	}

	publishAction(ctx, s.publisher, models.ActionAdmin, userID, "XP set", map[string]any{
		"season_id": seasonID,
		"xp":        xp,
	})
	return progression, nil
}

func (s *ProgressionService) SetPremium(ctx context.Context, userID, seasonID string, isPremium bool) (*models.UserProgression, error) {
	progression, err := s.store.SetPremium(ctx, userID, seasonID, isPremium)
	if err != nil {
		return nil, err
	}

	publishAction(ctx, s.publisher, models.ActionAdmin, userID, "Premium entitlement changed", map[string]any{
		"season_id":  seasonID,
		"is_premium": isPremium,
	})
	return progression, nil
}

// AddXP increments XP atomically and, when a LevelPolicy is configured,
// raises the level the new XP total earns.
func (s *ProgressionService) AddXP(ctx context.Context, userID, seasonID string, delta int) (*models.UserProgression, error) {
	if delta <= 0 || delta > models.MaxAmount {
		return nil, fmt.Errorf("%w: xp delta out of range", models.ErrInvalidAmount)
	}

	progression, err := s.store.AddXP(ctx, userID, seasonID, delta)
	if err != nil {
		return nil, err
	}

	if s.policy != nil {
		level := s.policy.LevelFor(progression.CurrentLevel, progression.CurrentXP)
		if level > progression.CurrentLevel {
			progression, err = s.store.RaiseLevel(ctx, userID, seasonID, level)
			if err != nil {
				return nil, err
			}
			utils.Logger.Info("Level up",
				zap.String("user_id", userID),
				zap.String("season_id", seasonID),
				zap.Int("level", progression.CurrentLevel),
			)
		}
	}

	publishAction(ctx, s.publisher, models.ActionAdmin, userID, "XP added", map[string]any{
		"season_id": seasonID,
		"delta":     delta,
		"xp":        progression.CurrentXP,
		"level":     progression.CurrentLevel,
	})
	return progression, nil
}
