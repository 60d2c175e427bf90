package mq

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ahmetkoprulu/battlepass/common/utils"
	"github.com/streadway/amqp"
)

type RabbitmqMqProvider struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	config     RabbitMqConfig
	mu         sync.Mutex
}

type RabbitMqConfig struct {
	URL      string
	Prefetch int
}

func NewRabbitmqMqProvider(config RabbitMqConfig) (*RabbitmqMqProvider, error) {
	provider := &RabbitmqMqProvider{config: config}

	if err := provider.Connect(config.URL); err != nil {
		return nil, err
	}

	if config.Prefetch > 0 {
		if err := provider.channel.Qos(config.Prefetch, 0, false); err != nil {
			provider.Disconnect()
			return nil, fmt.Errorf("failed to set qos: %v", err)
		}
	}

	return provider, nil
}

func (r *RabbitmqMqProvider) Connect(connectionString string) error {
	connection, err := amqp.Dial(connectionString)
	if err != nil {
		return err
	}

	channel, err := connection.Channel()
	if err != nil {
		connection.Close()
		return err
	}

	r.connection = connection
	r.channel = channel
	return nil
}

func (r *RabbitmqMqProvider) Disconnect() {
	if r.connection == nil {
		return
	}

	if r.channel != nil {
		r.channel.Close()
	}
	r.connection.Close()
}

func (r *RabbitmqMqProvider) Publish(exchangeName string, bindingKey string, data interface{}) error {
	bytes, err := json.Marshal(data)
	if err != nil {
		return err
	}

	// amqp channels are not safe for concurrent publishing
	r.mu.Lock()
	defer r.mu.Unlock()

	err = r.channel.Publish(
		exchangeName, // exchange
		bindingKey,   // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:     "application/json",
			ContentEncoding: "utf-8",
			Body:            bytes,
			DeliveryMode:    amqp.Persistent,
			Timestamp:       time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %v", err)
	}

	return nil
}

func (r *RabbitmqMqProvider) Subscribe(queueName string, consumerTag string, callback func(data []byte) error) error {
	msgs, err := r.channel.Consume(
		queueName,   // queue
		consumerTag, // consumer
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			if err := callback(msg.Body); err != nil {
				utils.Logger.Warn("Message requeued",
					utils.Logger.String("queue", queueName),
					utils.Logger.Err(err),
				)
				msg.Nack(false, true)
				continue
			}
			msg.Ack(false)
		}
	}()

	return nil
}

func (r *RabbitmqMqProvider) DeclareExchange(exchangeName string, exchangeType string, durable bool) error {
	err := r.channel.ExchangeDeclare(
		exchangeName,
		exchangeType,
		durable,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange: %v", err)
	}
	return nil
}

func (r *RabbitmqMqProvider) DeclareQueue(queueName string, durable bool, bindingKey, exchange string) error {
	queue, err := r.channel.QueueDeclare(
		queueName, // name
		durable,   // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %v", err)
	}

	err = r.channel.QueueBind(
		queue.Name, // queue name
		bindingKey, // routing key
		exchange,   // exchange
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to bind queue: %v", err)
	}

	return nil
}
