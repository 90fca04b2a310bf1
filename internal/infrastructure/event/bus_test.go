package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testEvent implements DomainEvent for testing
type testEvent struct {
	shared.BaseDomainEvent
	Data string `json:"data"`
}

func newTestEvent(eventType string, tenantID uuid.UUID) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Invoice", uuid.New(), tenantID),
		Data:            "test data",
	}
}

// testHandler implements EventHandler for testing
type testHandler struct {
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	mu         sync.Mutex
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{
		eventTypes: eventTypes,
		handled:    make([]shared.DomainEvent, 0),
	}
}

func (h *testHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	return h.err
}

func (h *testHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *testHandler) setError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.err = err
}

func (h *testHandler) getHandled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.handled...)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	logger := zap.NewNop()
	bus := NewInMemoryEventBus(logger)

	handler := newTestHandler("InvoiceCreated")
	bus.Subscribe(handler, "InvoiceCreated")

	event := newTestEvent("InvoiceCreated", uuid.New())
	err := bus.Publish(context.Background(), event)

	require.NoError(t, err)
	assert.Len(t, handler.getHandled(), 1)
	assert.Equal(t, event, handler.getHandled()[0])
}

func TestInMemoryEventBus_Publish_MultipleEvents(t *testing.T) {
	logger := zap.NewNop()
	bus := NewInMemoryEventBus(logger)

	handler := newTestHandler("InvoiceCreated")
	bus.Subscribe(handler, "InvoiceCreated")

	event1 := newTestEvent("InvoiceCreated", uuid.New())
	event2 := newTestEvent("InvoiceCreated", uuid.New())
	err := bus.Publish(context.Background(), event1, event2)

	require.NoError(t, err)
	assert.Len(t, handler.getHandled(), 2)
}

func TestInMemoryEventBus_Publish_MultipleHandlers(t *testing.T) {
	logger := zap.NewNop()
	bus := NewInMemoryEventBus(logger)

	handler1 := newTestHandler("InvoiceCreated")
	handler2 := newTestHandler("InvoiceCreated")
	bus.Subscribe(handler1, "InvoiceCreated")
	bus.Subscribe(handler2, "InvoiceCreated")

	event := newTestEvent("InvoiceCreated", uuid.New())
	err := bus.Publish(context.Background(), event)

	require.NoError(t, err)
	assert.Len(t, handler1.getHandled(), 1)
	assert.Len(t, handler2.getHandled(), 1)
}

func TestInMemoryEventBus_Publish_WildcardHandler(t *testing.T) {
	logger := zap.NewNop()
	bus := NewInMemoryEventBus(logger)

	wildcardHandler := newTestHandler() // No event types = wildcard
	bus.Subscribe(wildcardHandler)

	event := newTestEvent("StockAdjustmentSkipped", uuid.New())
	err := bus.Publish(context.Background(), event)

	require.NoError(t, err)
	assert.Len(t, wildcardHandler.getHandled(), 1)
}

func TestInMemoryEventBus_Publish_HandlerError(t *testing.T) {
	logger := zap.NewNop()
	bus := NewInMemoryEventBus(logger)

	handler1 := newTestHandler("InvoiceCreated")
	handler1.setError(errors.New("handler error"))
	handler2 := newTestHandler("InvoiceCreated")
	bus.Subscribe(handler1, "InvoiceCreated")
	bus.Subscribe(handler2, "InvoiceCreated")

	event := newTestEvent("InvoiceCreated", uuid.New())
	err := bus.Publish(context.Background(), event)

	require.NoError(t, err)
	assert.Len(t, handler1.getHandled(), 1)
	assert.Len(t, handler2.getHandled(), 1)
}

func TestInMemoryEventBus_Publish_NoMatchingHandlers(t *testing.T) {
	logger := zap.NewNop()
	bus := NewInMemoryEventBus(logger)

	handler := newTestHandler("PurchaseOrderReceived")
	bus.Subscribe(handler, "PurchaseOrderReceived")

	event := newTestEvent("InvoiceCreated", uuid.New())
	err := bus.Publish(context.Background(), event)

	require.NoError(t, err)
	assert.Len(t, handler.getHandled(), 0)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	logger := zap.NewNop()
	bus := NewInMemoryEventBus(logger)

	handler := newTestHandler("InvoiceCreated")
	bus.Subscribe(handler, "InvoiceCreated")

	event1 := newTestEvent("InvoiceCreated", uuid.New())
	_ = bus.Publish(context.Background(), event1)
	assert.Len(t, handler.getHandled(), 1)

	bus.Unsubscribe(handler)

	event2 := newTestEvent("InvoiceCreated", uuid.New())
	_ = bus.Publish(context.Background(), event2)
	assert.Len(t, handler.getHandled(), 1) // Still 1, not 2
}

func TestInMemoryEventBus_StartStop(t *testing.T) {
	logger := zap.NewNop()
	bus := NewInMemoryEventBus(logger)

	ctx := context.Background()
	err := bus.Start(ctx)
	require.NoError(t, err)

	handler := newTestHandler("InvoiceCreated")
	bus.Subscribe(handler, "InvoiceCreated")
	event := newTestEvent("InvoiceCreated", uuid.New())
	err = bus.Publish(ctx, event)
	require.NoError(t, err)
	assert.Len(t, handler.getHandled(), 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err = bus.Stop(ctx)
	require.NoError(t, err)

	err = bus.Publish(ctx, newTestEvent("InvoiceCreated", uuid.New()))
	assert.ErrorIs(t, err, ErrBusStopped)
	assert.Len(t, handler.getHandled(), 1)
}

type panickingHandler struct{}

func (panickingHandler) Handle(context.Context, shared.DomainEvent) error { panic("boom") }
func (panickingHandler) EventTypes() []string                             { return nil }

func TestInMemoryEventBus_Publish_HandlerPanic(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	after := newTestHandler("InvoiceCreated")
	bus.Subscribe(panickingHandler{}, "InvoiceCreated")
	bus.Subscribe(after, "InvoiceCreated")

	err := bus.Publish(context.Background(), newTestEvent("InvoiceCreated", uuid.New()))

	require.NoError(t, err)
	assert.Len(t, after.getHandled(), 1)
	assert.Equal(t, int64(1), bus.Failures())
}

func TestInMemoryEventBus_Subscribe_UsesHandlerEventTypes(t *testing.T) {
	bus := NewInMemoryEventBus(nil)

	handler := newTestHandler("InvoiceCreated", "InvoicePaymentRecorded")
	bus.Subscribe(handler)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx,
		newTestEvent("InvoicePaymentRecorded", uuid.New()),
		newTestEvent("PurchaseOrderReceived", uuid.New()),
	))
	assert.Len(t, handler.getHandled(), 1)
}
