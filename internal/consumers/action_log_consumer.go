package consumers

import (
	"context"
	"encoding/json"

	"github.com/ahmetkoprulu/battlepass/common/utils"
	"github.com/ahmetkoprulu/battlepass/internal/mq"
	"github.com/ahmetkoprulu/battlepass/internal/services/audit"
	"github.com/ahmetkoprulu/battlepass/models"
	"go.uber.org/zap"
)

type ActionLogConsumer struct {
	mqClient *mq.MqClient
	store    audit.Store
}

func NewActionLogConsumer(mqClient *mq.MqClient, store audit.Store) *ActionLogConsumer {
	return &ActionLogConsumer{mqClient: mqClient, store: store}
}

func (c *ActionLogConsumer) Start(key string) error {
	err := c.mqClient.Provider.DeclareQueue(mq.ActionLogQueue, true, mq.ActionLogRoutingKey, mq.BattlePassExchange)
	if err != nil {
		return err
	}

	utils.Logger.Info("Starting consumer", zap.String("consumer", key), zap.String("queue", mq.ActionLogQueue))
	return c.mqClient.Provider.Subscribe(mq.ActionLogQueue, key, c.Consume)
}

func (c *ActionLogConsumer) Consume(rawMsg []byte) error {
	var log models.ActionLog
	if err := json.Unmarshal(rawMsg, &log); err != nil {
		utils.Logger.Error("Dropping malformed action log", zap.Error(err))
		return nil
	}
	if log.ID == "" || log.ActionType == "" {
		utils.Logger.Error("Dropping incomplete action log", zap.String("log_id", log.ID))
		return nil
	}

	return c.store.InsertActionLog(context.Background(), &log)
}
