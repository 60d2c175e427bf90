package mq

import (
	"github.com/ahmetkoprulu/battlepass/common/mq"
)

const (
	BattlePassExchange string = "battlepass.events" // topic, durable
)

// battlepass.{domain}.{event}.{id}
const (
	ActionLogQueue   string = "action_logs_db"   // queue, durable, routing: battlepass.action.#
	PointsGrantQueue string = "points_grants_db" // queue, durable, routing: battlepass.points.grant.#
)

const (
	ActionLogRoutingKey   string = "battlepass.action.#"       // battlepass.action.reward_claimed
	PointsGrantRoutingKey string = "battlepass.points.grant.#" // battlepass.points.grant.user_123, user ids may contain dots
)

func ActionRoutingKey(actionType string) string {
	return "battlepass.action." + actionType
}

func PointsGrantKey(userID string) string {
	return "battlepass.points.grant." + userID
}

type MqClient struct {
	Provider mq.IMqProvider
}

func NewMqClient(url string) (*MqClient, error) {
	provider, err := mq.NewRabbitmqMqProvider(mq.RabbitMqConfig{URL: url, Prefetch: 1})
	if err != nil {
		return nil, err
	}

	return NewMqClientWithProvider(provider)
}

// NewMqClientWithProvider declares the exchange on an existing provider
func NewMqClientWithProvider(provider mq.IMqProvider) (*MqClient, error) {
	if err := provider.DeclareExchange(BattlePassExchange, "topic", true); err != nil {
		return nil, err
	}
	return &MqClient{Provider: provider}, nil
}

func (c *MqClient) Close() {
	c.Provider.Disconnect()
}
