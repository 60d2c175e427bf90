package audit

import (
	"context"

	"github.com/ahmetkoprulu/battlepass/common/data"
	"github.com/ahmetkoprulu/battlepass/common/utils"
	"github.com/ahmetkoprulu/battlepass/models"
	"go.uber.org/zap"
)

type PgActionLogStore struct {
	db *data.PgDbContext
}

func NewPgActionLogStore(db *data.PgDbContext) *PgActionLogStore {
	return &PgActionLogStore{db: db}
}

// InsertActionLog is idempotent on the log id so redelivered messages are absorbed
func (s *PgActionLogStore) InsertActionLog(ctx context.Context, log *models.ActionLog) error {
	query := `
		INSERT INTO action_logs (id, action_type, user_id, description, metadata, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`

	metadata := log.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	_, err := s.db.Exec(ctx, query, log.ID, log.ActionType, log.UserID, log.Description, metadata, log.CreatedAt)
	if err != nil {
		utils.Logger.Error("Failed to insert action log", zap.String("log_id", log.ID), zap.Error(err))
		return data.StoreFailure("insert_action_log", err)
	}
	return nil
}

func (s *PgActionLogStore) ListActionLogs(ctx context.Context, limit int) ([]models.ActionLog, error) {
	query := `
		SELECT id, action_type, COALESCE(user_id, ''), description, metadata, created_at
		FROM action_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		utils.Logger.Error("Failed to list action logs", zap.Error(err))
		return nil, data.StoreFailure("list_action_logs", err)
	}
	defer rows.Close()

	logs := make([]models.ActionLog, 0)
	for rows.Next() {
		var l models.ActionLog
		if err := rows.Scan(&l.ID, &l.ActionType, &l.UserID, &l.Description, &l.Metadata, &l.CreatedAt); err != nil {
			return nil, data.StoreFailure("list_action_logs", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, data.StoreFailure("list_action_logs", err)
	}

	return logs, nil
}
