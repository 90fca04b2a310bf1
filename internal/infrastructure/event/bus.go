// Package event dispatches domain events to in-process handlers after the
// producing transaction has committed.
package event

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// ErrBusStopped is returned by Publish after Stop
var ErrBusStopped = errors.New("event bus stopped")

// InMemoryEventBus delivers events synchronously to registered handlers.
// Handler failures are logged and never reach the publisher: by the time an
// event is published its transaction is already committed.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
	stopped  atomic.Bool
	failures atomic.Int64
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
}

// Publish dispatches each event to its handlers in registration order
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if b.stopped.Load() {
		return ErrBusStopped
	}
	for _, event := range events {
		for _, handler := range b.registry.GetHandlers(event.EventType()) {
			if err := b.dispatch(ctx, handler, event); err != nil {
				b.failures.Add(1)
				b.logger.Error("Event handler failed",
					zap.String("event_type", event.EventType()),
					zap.String("event_id", event.EventID().String()),
					zap.String("tenant_id", event.TenantID().String()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// Subscribe registers a handler. Without explicit types the handler's own
// EventTypes are used.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("Event handler subscribed", zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes a handler
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
}

// Start marks the bus as accepting events
func (b *InMemoryEventBus) Start(_ context.Context) error {
	b.stopped.Store(false)
	b.logger.Info("Event bus started", zap.Strings("event_types", b.registry.EventTypes()))
	return nil
}

// Stop rejects further publishing. Dispatch is synchronous so nothing is in flight
// once the last Publish call has returned.
func (b *InMemoryEventBus) Stop(_ context.Context) error {
	b.stopped.Store(true)
	b.logger.Info("Event bus stopped", zap.Int64("handler_failures", b.failures.Load()))
	return nil
}

// Failures returns how many handler invocations have failed or panicked
func (b *InMemoryEventBus) Failures() int64 {
	return b.failures.Load()
}

func (b *InMemoryEventBus) dispatch(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return handler.Handle(ctx, event)
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
