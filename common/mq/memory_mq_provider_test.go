package mq

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchTopic(t *testing.T) {
	testCases := []struct {
		pattern string
		key     string
		match   bool
	}{
		{"battlepass.action.#", "battlepass.action.reward_claimed", true},
		{"battlepass.action.#", "battlepass.action", true},
		{"battlepass.action.#", "battlepass.points.grant.u1", false},
		{"battlepass.points.grant.*", "battlepass.points.grant.u1", true},
		{"battlepass.points.grant.*", "battlepass.points.grant", false},
		{"battlepass.points.grant.*", "battlepass.points.grant.u1.extra", false},
		{"battlepass.points.grant.#", "battlepass.points.grant.jane.doe@example.com", true},
		{"battlepass.points.grant.#", "battlepass.action.reward_claimed", false},
		{"#", "anything.at.all", true},
		{"*.b", "a.b", true},
		{"a.b", "a.c", false},
	}

	for _, tc := range testCases {
		t.Run(tc.pattern+"|"+tc.key, func(t *testing.T) {
			assert.Equal(t, tc.match, MatchTopic(tc.pattern, tc.key))
		})
	}
}

func TestMemoryMqProviderDelivers(t *testing.T) {
	p := NewMemoryMqProvider()
	require.NoError(t, p.DeclareExchange("events", "topic", true))
	require.NoError(t, p.DeclareQueue("q", true, "events.#", "events"))

	var got []string
	require.NoError(t, p.Subscribe("q", "test", func(data []byte) error {
		got = append(got, string(data))
		return nil
	}))

	require.NoError(t, p.Publish("events", "events.one", "hello"))
	require.NoError(t, p.Publish("events", "other.one", "ignored"))

	assert.Equal(t, []string{`"hello"`}, got)
	assert.Equal(t, 0, p.Pending("q"))
}

func TestMemoryMqProviderKeepsBacklog(t *testing.T) {
	p := NewMemoryMqProvider()
	require.NoError(t, p.DeclareExchange("events", "topic", true))
	require.NoError(t, p.DeclareQueue("q", true, "events.*", "events"))

	require.NoError(t, p.Publish("events", "events.one", 1))
	require.NoError(t, p.Publish("events", "events.two", 2))
	assert.Equal(t, 2, p.Pending("q"))

	count := 0
	require.NoError(t, p.Subscribe("q", "test", func([]byte) error {
		count++
		return nil
	}))
	assert.Equal(t, 2, count)
	assert.Equal(t, 0, p.Pending("q"))
}

func TestMemoryMqProviderRequeuesOnError(t *testing.T) {
	p := NewMemoryMqProvider()
	require.NoError(t, p.DeclareExchange("events", "topic", true))
	require.NoError(t, p.DeclareQueue("q", true, "#", "events"))
	require.NoError(t, p.Subscribe("q", "test", func([]byte) error {
		return errors.New("not now")
	}))

	require.NoError(t, p.Publish("events", "any", "x"))
	assert.Equal(t, 1, p.Pending("q"))
}

func TestMemoryMqProviderUndeclaredExchange(t *testing.T) {
	p := NewMemoryMqProvider()

	assert.Error(t, p.Publish("missing", "k", "x"))
	assert.Error(t, p.DeclareQueue("q", true, "#", "missing"))
}
