package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestBusDeliversToSubscriber(t *testing.T) {
	bus := NewBus(zap.NewNop())
	ch, unsubscribe := bus.Subscribe(TopicLifecycle)
	defer unsubscribe()

	bus.Publish(TopicLifecycle, "payload")

	select {
	case got := <-ch:
		assert.Equal(t, "payload", got)
	case <-time.After(time.Second):
		t.Fatal("event never delivered")
	}
}

func TestBusPreservesOrderPerTopic(t *testing.T) {
	bus := NewBus(zap.NewNop())
	ch, unsubscribe := bus.Subscribe(TopicLifecycle)
	defer unsubscribe()

	for i := 0; i < 5; i++ {
		bus.Publish(TopicLifecycle, i)
	}
	for i := 0; i < 5; i++ {
		assert.Equal(t, i, <-ch)
	}
}

func TestBusDropsInsteadOfBlocking(t *testing.T) {
	bus := NewBus(zap.NewNop())
	_, unsubscribe := bus.Subscribe(TopicChatMessage)
	defer unsubscribe()

	// Nobody is draining: the buffer fills and further publishes drop.
	done := make(chan struct{})
	go func() {
		for i := 0; i < defaultBufferSize*2; i++ {
			bus.Publish(TopicChatMessage, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestBusUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus(zap.NewNop())
	ch, unsubscribe := bus.Subscribe(TopicAppError)
	unsubscribe()

	bus.Publish(TopicAppError, "late")

	_, open := <-ch
	assert.False(t, open)
}
