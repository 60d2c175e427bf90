package mq

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// MemoryMqProvider is an in-process topic exchange. Publish delivers
// synchronously to every bound queue that has a subscriber; messages for
// queues without one are kept until Subscribe is called.
type MemoryMqProvider struct {
	mu          sync.Mutex
	exchanges   map[string]bool
	bindings    map[string][]memoryBinding
	subscribers map[string]func(data []byte) error
	pending     map[string][][]byte
}

type memoryBinding struct {
	queue string
	key   string
}

func NewMemoryMqProvider() *MemoryMqProvider {
	return &MemoryMqProvider{
		exchanges:   make(map[string]bool),
		bindings:    make(map[string][]memoryBinding),
		subscribers: make(map[string]func(data []byte) error),
		pending:     make(map[string][][]byte),
	}
}

func (m *MemoryMqProvider) Connect(string) error { return nil }

func (m *MemoryMqProvider) Disconnect() {}

func (m *MemoryMqProvider) DeclareExchange(exchangeName string, _ string, _ bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exchanges[exchangeName] = true
	return nil
}

func (m *MemoryMqProvider) DeclareQueue(queueName string, _ bool, bindingKey, exchange string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.exchanges[exchange] {
		return fmt.Errorf("exchange %s is not declared", exchange)
	}
	for _, b := range m.bindings[exchange] {
		if b.queue == queueName && b.key == bindingKey {
			return nil
		}
	}
	m.bindings[exchange] = append(m.bindings[exchange], memoryBinding{queue: queueName, key: bindingKey})
	return nil
}

func (m *MemoryMqProvider) Publish(exchangeName string, bindingKey string, data interface{}) error {
	bytes, err := json.Marshal(data)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if !m.exchanges[exchangeName] {
		m.mu.Unlock()
		return fmt.Errorf("exchange %s is not declared", exchangeName)
	}

	type delivery struct {
		callback func(data []byte) error
		queue    string
	}
	var deliveries []delivery
	for _, b := range m.bindings[exchangeName] {
		if !MatchTopic(b.key, bindingKey) {
			continue
		}
		if callback, ok := m.subscribers[b.queue]; ok {
			deliveries = append(deliveries, delivery{callback: callback, queue: b.queue})
		} else {
			m.pending[b.queue] = append(m.pending[b.queue], bytes)
		}
	}
	m.mu.Unlock()

	for _, d := range deliveries {
		if err := d.callback(bytes); err != nil {
			m.mu.Lock()
			m.pending[d.queue] = append(m.pending[d.queue], bytes)
			m.mu.Unlock()
		}
	}
	return nil
}

func (m *MemoryMqProvider) Subscribe(queueName string, _ string, callback func(data []byte) error) error {
	m.mu.Lock()
	m.subscribers[queueName] = callback
	backlog := m.pending[queueName]
	delete(m.pending, queueName)
	m.mu.Unlock()

	for _, msg := range backlog {
		if err := callback(msg); err != nil {
			m.mu.Lock()
			m.pending[queueName] = append(m.pending[queueName], msg)
			m.mu.Unlock()
		}
	}
	return nil
}

// Pending returns the number of undelivered messages for queueName
func (m *MemoryMqProvider) Pending(queueName string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending[queueName])
}

// MatchTopic matches a routing key against an AMQP topic binding pattern
// where * is exactly one word and # is zero or more words.
func MatchTopic(pattern, key string) bool {
	return matchWords(strings.Split(pattern, "."), strings.Split(key, "."))
}

func matchWords(pattern, key []string) bool {
	if len(pattern) == 0 {
		return len(key) == 0
	}

	switch pattern[0] {
	case "#":
		for i := 0; i <= len(key); i++ {
			if matchWords(pattern[1:], key[i:]) {
				return true
			}
		}
		return false
	case "*":
		return len(key) > 0 && matchWords(pattern[1:], key[1:])
	default:
		return len(key) > 0 && pattern[0] == key[0] && matchWords(pattern[1:], key[1:])
	}
}
