package event

import (
	"context"
	"testing"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

// mockHandler implements EventHandler for testing
type mockHandler struct {
	eventTypes []string
	handled    []shared.DomainEvent
}

func newMockHandler(eventTypes ...string) *mockHandler {
	return &mockHandler{
		eventTypes: eventTypes,
		handled:    make([]shared.DomainEvent, 0),
	}
}

func (h *mockHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.handled = append(h.handled, event)
	return nil
}

func (h *mockHandler) EventTypes() []string {
	return h.eventTypes
}

func TestHandlerRegistry_Register_SpecificTypes(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newMockHandler("InvoiceCreated", "InvoicePaymentRecorded")

	registry.Register(handler, "InvoiceCreated", "InvoicePaymentRecorded")

	handlers := registry.GetHandlers("InvoiceCreated")
	assert.Len(t, handlers, 1)
	assert.Equal(t, handler, handlers[0])

	handlers = registry.GetHandlers("InvoicePaymentRecorded")
	assert.Len(t, handlers, 1)
	assert.Equal(t, handler, handlers[0])

	handlers = registry.GetHandlers("PurchaseOrderCancelled")
	assert.Len(t, handlers, 0)
}

func TestHandlerRegistry_Register_Wildcard(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newMockHandler() // No event types = wildcard

	registry.Register(handler)

	handlers := registry.GetHandlers("InvoiceCreated")
	assert.Len(t, handlers, 1)
	assert.Equal(t, handler, handlers[0])

	handlers = registry.GetHandlers("StockAdjustmentSkipped")
	assert.Len(t, handlers, 1)
	assert.Equal(t, handler, handlers[0])
}

func TestHandlerRegistry_Register_MixedTypes(t *testing.T) {
	registry := NewHandlerRegistry()
	specificHandler := newMockHandler("InvoiceCreated")
	wildcardHandler := newMockHandler()

	registry.Register(specificHandler, "InvoiceCreated")
	registry.Register(wildcardHandler)

	handlers := registry.GetHandlers("InvoiceCreated")
	assert.Len(t, handlers, 2)

	handlers = registry.GetHandlers("ProductCreated")
	assert.Len(t, handlers, 1)
	assert.Equal(t, wildcardHandler, handlers[0])
}

func TestHandlerRegistry_Unregister_SpecificHandler(t *testing.T) {
	registry := NewHandlerRegistry()
	handler1 := newMockHandler("InvoiceCreated")
	handler2 := newMockHandler("InvoiceCreated")

	registry.Register(handler1, "InvoiceCreated")
	registry.Register(handler2, "InvoiceCreated")

	handlers := registry.GetHandlers("InvoiceCreated")
	assert.Len(t, handlers, 2)

	registry.Unregister(handler1)

	handlers = registry.GetHandlers("InvoiceCreated")
	assert.Len(t, handlers, 1)
	assert.Equal(t, handler2, handlers[0])
}

func TestHandlerRegistry_Unregister_WildcardHandler(t *testing.T) {
	registry := NewHandlerRegistry()
	wildcardHandler := newMockHandler()

	registry.Register(wildcardHandler)

	handlers := registry.GetHandlers("ProductCreated")
	assert.Len(t, handlers, 1)

	registry.Unregister(wildcardHandler)

	handlers = registry.GetHandlers("ProductCreated")
	assert.Len(t, handlers, 0)
}

func TestHandlerRegistry_Register_Duplicate(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newMockHandler("InvoiceCreated")

	registry.Register(handler, "InvoiceCreated")
	registry.Register(handler, "InvoiceCreated")
	registry.Register(handler)
	registry.Register(handler)

	assert.Len(t, registry.GetHandlers("InvoiceCreated"), 2)
	assert.Len(t, registry.GetHandlers("ProductCreated"), 1)
}

func TestHandlerRegistry_EventTypes(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newMockHandler()

	registry.Register(handler, "PurchaseOrderReceived", "InvoiceCreated")
	registry.Register(newMockHandler())

	assert.Equal(t, []string{"InvoiceCreated", "PurchaseOrderReceived"}, registry.EventTypes())

	registry.Unregister(handler)
	assert.Empty(t, registry.EventTypes())
}
