package audit

import (
	"context"
	"time"

	"github.com/ahmetkoprulu/battlepass/common/utils"
	"github.com/ahmetkoprulu/battlepass/internal/mq"
	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MqPublisher struct {
	client *mq.MqClient
}

func NewMqPublisher(client *mq.MqClient) *MqPublisher {
	return &MqPublisher{client: client}
}

func (p *MqPublisher) Publish(_ context.Context, log *models.ActionLog) {
	stamp(log)

	err := p.client.Provider.Publish(mq.BattlePassExchange, mq.ActionRoutingKey(string(log.ActionType)), log)
	if err != nil {
		utils.Logger.Warn("Failed to publish action log",
			zap.String("action_type", string(log.ActionType)),
			zap.String("user_id", log.UserID),
			zap.Error(err),
		)
	}
}

// StorePublisher writes action logs straight to a store when no broker is
// configured
type StorePublisher struct {
	Store Store
}

func (p StorePublisher) Publish(ctx context.Context, log *models.ActionLog) {
	stamp(log)
	if err := p.Store.InsertActionLog(ctx, log); err != nil {
		utils.Logger.Warn("Failed to store action log", zap.String("log_id", log.ID), zap.Error(err))
	}
}

func stamp(log *models.ActionLog) {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
}
