package consumers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ahmetkoprulu/battlepass/common/cache"
	"github.com/ahmetkoprulu/battlepass/common/utils"
	"github.com/ahmetkoprulu/battlepass/internal/mq"
	"github.com/ahmetkoprulu/battlepass/models"
	"go.uber.org/zap"
)

const processedGrantTTL = 24 * time.Hour

type PointsCrediter interface {
	Credit(ctx context.Context, userID string, amount int) (*models.PointsBalance, error)
}

// PointsGrantConsumer credits points from upstream grant messages. Domain
// rejections are acknowledged and dropped; store faults are returned so the
// message is redelivered.
type PointsGrantConsumer struct {
	mqClient  *mq.MqClient
	points    PointsCrediter
	processed cache.Cache[bool]
}

// NewPointsGrantConsumer remembers processed message ids in processed, when
// set, to absorb broker redeliveries.
func NewPointsGrantConsumer(mqClient *mq.MqClient, points PointsCrediter, processed cache.Cache[bool]) *PointsGrantConsumer {
	return &PointsGrantConsumer{mqClient: mqClient, points: points, processed: processed}
}

func (c *PointsGrantConsumer) Start(key string) error {
	err := c.mqClient.Provider.DeclareQueue(mq.PointsGrantQueue, true, mq.PointsGrantRoutingKey, mq.BattlePassExchange)
	if err != nil {
		return err
	}

	utils.Logger.Info("Starting consumer", zap.String("consumer", key), zap.String("queue", mq.PointsGrantQueue))
	return c.mqClient.Provider.Subscribe(mq.PointsGrantQueue, key, c.Consume)
}

func (c *PointsGrantConsumer) Consume(rawMsg []byte) error {
	var msg models.PointsGrantMessage
	if err := json.Unmarshal(rawMsg, &msg); err != nil {
		utils.Logger.Error("Dropping malformed points grant", zap.Error(err))
		return nil
	}

	ctx := context.Background()
	if c.seen(ctx, msg.MessageID) {
		utils.Logger.Info("Skipping duplicate points grant", zap.String("message_id", msg.MessageID))
		return nil
	}

	balance, err := c.points.Credit(ctx, msg.UserID, msg.Amount)
	if err != nil {
		if models.IsRetryable(err) {
			return err
		}
		utils.Logger.Warn("Points grant rejected",
			zap.String("message_id", msg.MessageID),
			zap.String("user_id", msg.UserID),
			zap.Int("amount", msg.Amount),
			zap.Error(err),
		)
		return nil
	}

	c.markSeen(ctx, msg.MessageID)
	utils.Logger.Info("Points granted",
		zap.String("message_id", msg.MessageID),
		zap.String("user_id", msg.UserID),
		zap.Int("amount", msg.Amount),
		zap.Int("balance", balance.Points),
		zap.String("reason", msg.Reason),
	)
	return nil
}

func (c *PointsGrantConsumer) seen(ctx context.Context, messageID string) bool {
	if c.processed == nil || messageID == "" {
		return false
	}
	_, err := c.processed.Get(ctx, messageID)
	return err == nil
}

func (c *PointsGrantConsumer) markSeen(ctx context.Context, messageID string) {
	if c.processed == nil || messageID == "" {
		return
	}
	if err := c.processed.Set(ctx, messageID, true, processedGrantTTL); err != nil {
		utils.Logger.Warn("Failed to record processed grant", zap.String("message_id", messageID), zap.Error(err))
	}
}
