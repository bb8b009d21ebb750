package utils

import (
	"github.com/galecloud/gale/pkg/log"
	"github.com/google/uuid"
)

// Broadcast fans a message out to every subscribed consumer.
// Consumers receive on buffered channels. A consumer whose buffer is
// full is skipped; delivery is best effort for slow consumers.
type Broadcast[E any] struct {
	mu        RWMutex
	consumers map[string]*BroadcastConsumer[E]
}

// BroadcastConsumer is one subscription to a Broadcast.
type BroadcastConsumer[E any] struct {
	// Chan delivers the broadcast messages. Closed when the consumer
	// or the broadcast is closed.
	Chan chan E

	id        string
	broadcast *Broadcast[E]
}

func NewBroadcast[E any]() *Broadcast[E] {
	return &Broadcast[E]{
		mu:        NewRWMutex(),
		consumers: map[string]*BroadcastConsumer[E]{},
	}
}

// NewConsumer subscribes a new consumer.
func (b *Broadcast[E]) NewConsumer() *BroadcastConsumer[E] {
	consumer := &BroadcastConsumer[E]{
		Chan:      make(chan E, 16),
		id:        uuid.NewString(),
		broadcast: b,
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.consumers[consumer.id] = consumer
	return consumer
}

// Send delivers a message to every consumer.
func (b *Broadcast[E]) Send(message E) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, consumer := range b.consumers {
		select {
		case consumer.Chan <- message:
		default:
			log.Debugf("Broadcast consumer %s is not keeping up, message dropped", consumer.id)
		}
	}
}

// HasConsumers reports whether anyone is subscribed.
func (b *Broadcast[E]) HasConsumers() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.consumers) > 0
}

// Close unsubscribes all consumers and closes their channels.
func (b *Broadcast[E]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, consumer := range b.consumers {
		close(consumer.Chan)
	}

	b.consumers = map[string]*BroadcastConsumer[E]{}
}

// Close unsubscribes the consumer and closes its channel. Idempotent.
func (c *BroadcastConsumer[E]) Close() {
	b := c.broadcast

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.consumers[c.id]; ok {
		delete(b.consumers, c.id)
		close(c.Chan)
	}
}
