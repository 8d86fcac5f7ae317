// Package notifications centralizes operator-facing reporting of
// failures that have no command context to answer into, e.g. showcase
// consistency errors raised by the event synchronizer.
package notifications

import (
	"context"

	"go.uber.org/zap"

	"rustbot/internal/app/events"
)

type ErrorLogger struct {
	bus *events.Bus
	log *zap.Logger
}

func NewErrorLogger(bus *events.Bus, log *zap.Logger) *ErrorLogger {
	return &ErrorLogger{bus: bus, log: log}
}

// Run consumes the error topic until the context is cancelled.
func (l *ErrorLogger) Run(ctx context.Context) {
	ch, unsubscribe := l.bus.Subscribe(events.TopicAppError)
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-ch:
			if !ok {
				return
			}
			if err, isErr := payload.(error); isErr {
				l.log.Error("event handler error", zap.Error(err))
			} else {
				l.log.Error("event handler error", zap.Any("payload", payload))
			}
		}
	}
}
