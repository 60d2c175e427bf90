package consumers

type IConsumer interface {
	Start(key string) error
	Consume(rawMsg []byte) error
}
