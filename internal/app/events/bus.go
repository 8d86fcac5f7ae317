// Package events carries gateway events from the platform adapter to
// the usecases. One subscriber goroutine per topic keeps the gateway
// read loop unblocked while preserving per-topic arrival order.
package events

import (
	"sync"

	"go.uber.org/zap"
)

const (
	TopicChatMessage = "chat:message"
	TopicLifecycle   = "message:lifecycle" // updates, deletes and member joins, in arrival order
	TopicInteraction = "interaction:create"
	TopicAppError    = "app:error"

	defaultBufferSize = 128
)

type Bus struct {
	mu        sync.RWMutex
	subs      map[string]map[int]chan any
	nextSubID int

	log        *zap.Logger
	dropMu     sync.Mutex
	dropCounts map[string]uint64
}

func NewBus(log *zap.Logger) *Bus {
	return &Bus{
		subs:       make(map[string]map[int]chan any),
		dropCounts: make(map[string]uint64),
		log:        log,
	}
}

// Publish delivers payload to every subscriber of topic. Slow consumers
// drop instead of blocking the publisher.
func (b *Bus) Publish(topic string, payload any) {
	if topic == "" {
		return
	}
	b.mu.RLock()
	channels := make([]chan any, 0, len(b.subs[topic]))
	for _, ch := range b.subs[topic] {
		channels = append(channels, ch)
	}
	b.mu.RUnlock()

	for _, ch := range channels {
		select {
		case ch <- payload:
		default:
			b.recordDrop(topic)
		}
	}
}

func (b *Bus) Subscribe(topic string) (<-chan any, func()) {
	ch := make(chan any, defaultBufferSize)

	b.mu.Lock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]chan any)
	}
	id := b.nextSubID
	b.nextSubID++
	b.subs[topic][id] = ch
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if subs, ok := b.subs[topic]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(b.subs, topic)
			}
		}
		close(ch)
	}

	return ch, unsubscribe
}

func (b *Bus) recordDrop(topic string) {
	b.dropMu.Lock()
	defer b.dropMu.Unlock()
	b.dropCounts[topic]++
	if b.dropCounts[topic]%100 == 1 {
		b.log.Warn("dropping events for slow subscriber",
			zap.String("topic", topic),
			zap.Uint64("total_drops", b.dropCounts[topic]))
	}
}
