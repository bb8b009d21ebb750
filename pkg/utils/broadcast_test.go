package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastDeliversToAllConsumers(t *testing.T) {
	broadcast := NewBroadcast[string]()

	first := broadcast.NewConsumer()
	second := broadcast.NewConsumer()

	broadcast.Send("stop")

	assert.Equal(t, "stop", <-first.Chan)
	assert.Equal(t, "stop", <-second.Chan)
}

func TestBroadcastConsumerClose(t *testing.T) {
	broadcast := NewBroadcast[string]()

	consumer := broadcast.NewConsumer()
	require.True(t, broadcast.HasConsumers())

	consumer.Close()
	consumer.Close()

	assert.False(t, broadcast.HasConsumers())

	_, open := <-consumer.Chan
	assert.False(t, open)
}

func TestBroadcastSkipsFullConsumer(t *testing.T) {
	broadcast := NewBroadcast[int]()
	consumer := broadcast.NewConsumer()

	for i := 0; i < 100; i++ {
		broadcast.Send(i)
	}

	// The buffer bounds how many messages are retained.
	assert.Len(t, consumer.Chan, cap(consumer.Chan))
}

func TestBroadcastClose(t *testing.T) {
	broadcast := NewBroadcast[string]()
	consumer := broadcast.NewConsumer()

	broadcast.Close()

	_, open := <-consumer.Chan
	assert.False(t, open)
	assert.False(t, broadcast.HasConsumers())
}
