package consumers

import (
	"sync"

	"github.com/ahmetkoprulu/battlepass/common/utils"
	"github.com/ahmetkoprulu/battlepass/internal/mq"
	"go.uber.org/zap"
)

type ConsumerManager struct {
	mqClient  *mq.MqClient
	consumers map[string]IConsumer
	once      sync.Once
}

func NewConsumerManager(mqClient *mq.MqClient, consumers map[string]IConsumer) *ConsumerManager {
	return &ConsumerManager{
		mqClient:  mqClient,
		consumers: consumers,
	}
}

// Start subscribes every consumer and returns the first failure
func (m *ConsumerManager) Start() error {
	for key, consumer := range m.consumers {
		if err := consumer.Start(key); err != nil {
			utils.Logger.Error("Failed to start consumer", zap.String("consumer", key), zap.Error(err))
			return err
		}
	}
	return nil
}

// Shutdown closes the broker connection, which ends every delivery loop
func (m *ConsumerManager) Shutdown() {
	m.once.Do(func() {
		m.mqClient.Close()
	})
}
