package audit

import (
	"context"

	"github.com/ahmetkoprulu/battlepass/models"
)

// Publisher emits action logs without blocking the caller on delivery.
// Publish never fails the operation being logged.
type Publisher interface {
	Publish(ctx context.Context, log *models.ActionLog)
}

type Store interface {
	InsertActionLog(ctx context.Context, log *models.ActionLog) error
	ListActionLogs(ctx context.Context, limit int) ([]models.ActionLog, error)
}
