package services

import (
	"context"

	"github.com/ahmetkoprulu/battlepass/internal/services/audit"
	"github.com/ahmetkoprulu/battlepass/models"
)

func publishAction(ctx context.Context, publisher audit.Publisher, actionType models.ActionType, userID, description string, metadata map[string]any) {
	if publisher == nil {
		return
	}

	publisher.Publish(ctx, &models.ActionLog{
		ActionType:  actionType,
		UserID:      userID,
		Description: description,
		Metadata:    metadata,
	})
}
