package mq

import (
	"time"

	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/google/uuid"
)

// PointsGrantPublisher is the producer side of the points grant queue used
// by upstream systems and tooling
type PointsGrantPublisher struct {
	client *MqClient
}

func NewPointsGrantPublisher(client *MqClient) *PointsGrantPublisher {
	return &PointsGrantPublisher{client: client}
}

func (p *PointsGrantPublisher) PublishGrant(msg *models.PointsGrantMessage) error {
	if msg.MessageID == "" {
		msg.MessageID = uuid.New().String()
	}
	msg.Timestamp = time.Now().UTC()

	return p.client.Provider.Publish(BattlePassExchange, PointsGrantKey(msg.UserID), msg)
}
