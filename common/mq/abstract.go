package mq

type IMqProvider interface {
	Connect(connectionString string) error
	Disconnect()
	Publish(exchangeName string, bindingKey string, data interface{}) error
	// Subscribe delivers messages to callback. A nil return acks the
	// message, an error nacks it back onto the queue.
	Subscribe(queueName string, consumerTag string, callback func(data []byte) error) error
	DeclareExchange(exchangeName string, exchangeType string, durable bool) error
	DeclareQueue(queueName string, durable bool, bindingKey, exchange string) error
}
