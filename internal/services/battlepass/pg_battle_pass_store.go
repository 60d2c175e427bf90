package battlepass

import (
	"context"
	"time"

	"github.com/ahmetkoprulu/battlepass/common/data"
	"github.com/ahmetkoprulu/battlepass/common/utils"
	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const progressionColumns = `id, user_id, season_id, current_level, current_xp, is_premium, created_at, updated_at`

type PgBattlePassStore struct {
	db *data.PgDbContext
}

func NewPgBattlePassStore(db *data.PgDbContext) *PgBattlePassStore {
	return &PgBattlePassStore{db: db}
}

func (s *PgBattlePassStore) fail(op string, err error, fields ...zap.Field) error {
	utils.Logger.Error("Battle pass store failure", append(fields, zap.String("op", op), zap.Error(err))...)
	return data.StoreFailure(op, err)
}

func (s *PgBattlePassStore) CreateSeason(ctx context.Context, season *models.BattlePassSeason) error {
	query := `
		INSERT INTO battle_pass_seasons (
			id, name, description, start_date, end_date,
			is_premium, premium_price, created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8
		)
	`

	_, err := s.db.Exec(ctx, query,
		season.ID, season.Name, season.Description,
		season.StartDate, season.EndDate,
		season.IsPremium, season.PremiumPrice, season.CreatedAt,
	)
	if err != nil {
		if data.IsUniqueViolation(err) {
			return models.ErrConflict
		}
		return s.fail("create_season", err, zap.String("season_id", season.ID))
	}
	return nil
}

func (s *PgBattlePassStore) GetSeason(ctx context.Context, id string) (*models.BattlePassSeason, error) {
	query := `
		SELECT id, name, description, start_date, end_date,
			   is_premium, premium_price, created_at
		FROM battle_pass_seasons
		WHERE id = $1
	`

	season, err := scanSeason(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if data.IsNoRows(err) {
			return nil, models.ErrNotFound
		}
		return nil, s.fail("get_season", err, zap.String("season_id", id))
	}
	return season, nil
}

func (s *PgBattlePassStore) ListSeasons(ctx context.Context) ([]models.BattlePassSeason, error) {
	query := `
		SELECT id, name, description, start_date, end_date,
			   is_premium, premium_price, created_at
		FROM battle_pass_seasons
		ORDER BY start_date ASC, created_at ASC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, s.fail("list_seasons", err)
	}
	defer rows.Close()

	seasons := make([]models.BattlePassSeason, 0)
	for rows.Next() {
		season, err := scanSeason(rows)
		if err != nil {
			return nil, s.fail("list_seasons", err)
		}
		seasons = append(seasons, *season)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("list_seasons", err)
	}

	return seasons, nil
}

func (s *PgBattlePassStore) CreateReward(ctx context.Context, reward *models.RewardDefinition) error {
	query := `
		INSERT INTO rewards (
			id, season_id, name, description, kind,
			required_level, is_premium, created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8
		)
	`

	_, err := s.db.Exec(ctx, query,
		reward.ID, reward.SeasonID, reward.Name, reward.Description, reward.Kind,
		reward.RequiredLevel, reward.IsPremium, reward.CreatedAt,
	)
	if err != nil {
		if data.IsUniqueViolation(err) {
			return models.ErrConflict
		}
		return s.fail("create_reward", err, zap.String("reward_id", reward.ID))
	}
	return nil
}

func (s *PgBattlePassStore) GetReward(ctx context.Context, id string) (*models.RewardDefinition, error) {
	query := `
		SELECT id, season_id, name, description, kind,
			   required_level, is_premium, created_at
		FROM rewards
		WHERE id = $1
	`

	reward, err := scanReward(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if data.IsNoRows(err) {
			return nil, models.ErrNotFound
		}
		return nil, s.fail("get_reward", err, zap.String("reward_id", id))
	}
	return reward, nil
}

func (s *PgBattlePassStore) ListRewards(ctx context.Context, seasonID string) ([]models.RewardDefinition, error) {
	query := `
		SELECT id, season_id, name, description, kind,
			   required_level, is_premium, created_at
		FROM rewards
		WHERE season_id = $1
		ORDER BY required_level ASC, seq ASC
	`

	rows, err := s.db.Query(ctx, query, seasonID)
	if err != nil {
		return nil, s.fail("list_rewards", err, zap.String("season_id", seasonID))
	}
	defer rows.Close()

	rewards := make([]models.RewardDefinition, 0)
	for rows.Next() {
		reward, err := scanReward(rows)
		if err != nil {
			return nil, s.fail("list_rewards", err, zap.String("season_id", seasonID))
		}
		rewards = append(rewards, *reward)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("list_rewards", err, zap.String("season_id", seasonID))
	}

	return rewards, nil
}

func (s *PgBattlePassStore) GetProgression(ctx context.Context, userID, seasonID string) (*models.UserProgression, error) {
	query := `SELECT ` + progressionColumns + ` FROM user_progressions WHERE user_id = $1 AND season_id = $2`
	return s.progressionRow("get_progression", userID, seasonID, s.db.QueryRow(ctx, query, userID, seasonID))
}

func (s *PgBattlePassStore) CreateProgressionIfAbsent(ctx context.Context, progression *models.UserProgression) (*models.UserProgression, bool, error) {
	query := `
		INSERT INTO user_progressions (
			id, user_id, season_id, current_level,
			current_xp, is_premium, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8
		)
		ON CONFLICT (user_id, season_id) DO NOTHING
		RETURNING ` + progressionColumns

	row := s.db.QueryRow(ctx, query,
		progression.ID, progression.UserID, progression.SeasonID, progression.CurrentLevel,
		progression.CurrentXP, progression.IsPremium, progression.CreatedAt, progression.UpdatedAt,
	)

	created, err := scanProgression(row)
	if err == nil {
		return created, true, nil
	}
	if !data.IsNoRows(err) {
		return nil, false, s.fail("create_progression", err,
			zap.String("user_id", progression.UserID),
			zap.String("season_id", progression.SeasonID),
		)
	}

	existing, err := s.GetProgression(ctx, progression.UserID, progression.SeasonID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (s *PgBattlePassStore) ListUserProgressions(ctx context.Context, userID string) ([]models.UserProgression, error) {
	query := `
		SELECT up.id, up.user_id, up.season_id, up.current_level,
			   up.current_xp, up.is_premium, up.created_at, up.updated_at,
			   s.id, s.name, s.description, s.start_date, s.end_date,
			   s.is_premium, s.premium_price, s.created_at
		FROM user_progressions up
		JOIN battle_pass_seasons s ON s.id = up.season_id
		WHERE up.user_id = $1
		ORDER BY s.start_date DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, s.fail("list_user_progressions", err, zap.String("user_id", userID))
	}
	defer rows.Close()

	progressions := make([]models.UserProgression, 0)
	for rows.Next() {
		p := models.UserProgression{Season: &models.BattlePassSeason{}}
		err := rows.Scan(
			&p.ID, &p.UserID, &p.SeasonID, &p.CurrentLevel,
			&p.CurrentXP, &p.IsPremium, &p.CreatedAt, &p.UpdatedAt,
			&p.Season.ID, &p.Season.Name, &p.Season.Description,
			&p.Season.StartDate, &p.Season.EndDate,
			&p.Season.IsPremium, &p.Season.PremiumPrice, &p.Season.CreatedAt,
		)
		if err != nil {
			return nil, s.fail("list_user_progressions", err, zap.String("user_id", userID))
		}
		progressions = append(progressions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("list_user_progressions", err, zap.String("user_id", userID))
	}

	return progressions, nil
}

func (s *PgBattlePassStore) SetLevel(ctx context.Context, userID, seasonID string, level int) (*models.UserProgression, error) {
	return s.updateProgression(ctx, "set_level", userID, seasonID, `current_level = $3`, level)
}

func (s *PgBattlePassStore) SetXP(ctx context.Context, userID, seasonID string, xp int) (*models.UserProgression, error) {
	return s.updateProgression(ctx, "set_xp", userID, seasonID, `current_xp = $3`, xp)
}

func (s *PgBattlePassStore) SetPremium(ctx context.Context, userID, seasonID string, isPremium bool) (*models.UserProgression, error) {
	return s.updateProgression(ctx, "set_premium", userID, seasonID, `is_premium = $3`, isPremium)
}

func (s *PgBattlePassStore) AddXP(ctx context.Context, userID, seasonID string, delta int) (*models.UserProgression, error) {
	return s.updateProgression(ctx, "add_xp", userID, seasonID, `current_xp = current_xp + $3`, delta)
}

func (s *PgBattlePassStore) RaiseLevel(ctx context.Context, userID, seasonID string, level int) (*models.UserProgression, error) {
	return s.updateProgression(ctx, "raise_level", userID, seasonID, `current_level = GREATEST(current_level, $3)`, level)
}

func (s *PgBattlePassStore) updateProgression(ctx context.Context, op, userID, seasonID, set string, value any) (*models.UserProgression, error) {
	query := `
		UPDATE user_progressions
		SET ` + set + `,
			updated_at = NOW()
		WHERE user_id = $1 AND season_id = $2
		RETURNING ` + progressionColumns

	return s.progressionRow(op, userID, seasonID, s.db.QueryRow(ctx, query, userID, seasonID, value))
}

func (s *PgBattlePassStore) progressionRow(op, userID, seasonID string, row pgx.Row) (*models.UserProgression, error) {
	progression, err := scanProgression(row)
	if err != nil {
		if data.IsNoRows(err) {
			return nil, models.ErrNotFound
		}
		return nil, s.fail(op, err, zap.String("user_id", userID), zap.String("season_id", seasonID))
	}
	return progression, nil
}

func (s *PgBattlePassStore) HasClaim(ctx context.Context, userID, rewardID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM claims
			WHERE user_id = $1
			AND reward_id = $2
		)
	`

	var exists bool
	if err := s.db.QueryRow(ctx, query, userID, rewardID).Scan(&exists); err != nil {
		return false, s.fail("has_claim", err, zap.String("user_id", userID), zap.String("reward_id", rewardID))
	}
	return exists, nil
}

func (s *PgBattlePassStore) InsertClaimIfEligible(ctx context.Context, claim *models.ClaimRecord) error {
	// Eligibility is re-evaluated by the insert itself; the unique
	// (user_id, reward_id) constraint rejects the loser of a race.
	query := `
		INSERT INTO claims (id, user_id, reward_id, status, claimed_at)
		SELECT $1::text, up.user_id, r.id, $4::text, $5::timestamptz
		FROM rewards r
		JOIN user_progressions up
		  ON up.season_id = r.season_id
		 AND up.user_id = $2
		WHERE r.id = $3
		  AND up.current_level >= r.required_level
		  AND (NOT r.is_premium OR up.is_premium)
	`

	tag, err := s.db.Exec(ctx, query, claim.ID, claim.UserID, claim.RewardID, claim.Status, claim.ClaimedAt)
	if err != nil {
		if data.IsUniqueViolation(err) {
			return models.ErrConflict
		}
		return s.fail("insert_claim", err, zap.String("user_id", claim.UserID), zap.String("reward_id", claim.RewardID))
	}

	if tag.RowsAffected() == 0 {
		return models.ErrNotEligible
	}
	return nil
}

func (s *PgBattlePassStore) ListClaims(ctx context.Context, userID string) ([]models.ClaimRecord, error) {
	query := `
		SELECT c.id, c.user_id, c.reward_id, c.status, c.claimed_at, c.delivered_at,
			   r.id, r.season_id, r.name, r.description, r.kind,
			   r.required_level, r.is_premium, r.created_at
		FROM claims c
		JOIN rewards r ON r.id = c.reward_id
		WHERE c.user_id = $1
		ORDER BY c.claimed_at DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, s.fail("list_claims", err, zap.String("user_id", userID))
	}
	defer rows.Close()

	claims := make([]models.ClaimRecord, 0)
	for rows.Next() {
		c := models.ClaimRecord{Reward: &models.RewardDefinition{}}
		err := rows.Scan(
			&c.ID, &c.UserID, &c.RewardID, &c.Status, &c.ClaimedAt, &c.DeliveredAt,
			&c.Reward.ID, &c.Reward.SeasonID, &c.Reward.Name, &c.Reward.Description, &c.Reward.Kind,
			&c.Reward.RequiredLevel, &c.Reward.IsPremium, &c.Reward.CreatedAt,
		)
		if err != nil {
			return nil, s.fail("list_claims", err, zap.String("user_id", userID))
		}
		claims = append(claims, c)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("list_claims", err, zap.String("user_id", userID))
	}

	return claims, nil
}

func (s *PgBattlePassStore) MarkDelivered(ctx context.Context, userID, claimID string, at time.Time) (*models.ClaimRecord, error) {
	// COALESCE keeps the first delivery time when acknowledged twice
	query := `
		UPDATE claims
		SET status = $3,
			delivered_at = COALESCE(delivered_at, $4)
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, reward_id, status, claimed_at, delivered_at
	`

	var c models.ClaimRecord
	err := s.db.QueryRow(ctx, query, claimID, userID, models.ClaimStatusDelivered, at).Scan(
		&c.ID, &c.UserID, &c.RewardID, &c.Status, &c.ClaimedAt, &c.DeliveredAt,
	)
	if err != nil {
		if data.IsNoRows(err) {
			return nil, models.ErrNotFound
		}
		return nil, s.fail("mark_delivered", err, zap.String("user_id", userID), zap.String("claim_id", claimID))
	}
	return &c, nil
}

func scanSeason(row pgx.Row) (*models.BattlePassSeason, error) {
	season := &models.BattlePassSeason{}
	err := row.Scan(
		&season.ID, &season.Name, &season.Description,
		&season.StartDate, &season.EndDate,
		&season.IsPremium, &season.PremiumPrice, &season.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return season, nil
}

func scanReward(row pgx.Row) (*models.RewardDefinition, error) {
	reward := &models.RewardDefinition{}
	err := row.Scan(
		&reward.ID, &reward.SeasonID, &reward.Name, &reward.Description, &reward.Kind,
		&reward.RequiredLevel, &reward.IsPremium, &reward.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return reward, nil
}

func scanProgression(row pgx.Row) (*models.UserProgression, error) {
	p := &models.UserProgression{}
	err := row.Scan(
		&p.ID, &p.UserID, &p.SeasonID, &p.CurrentLevel,
		&p.CurrentXP, &p.IsPremium, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
