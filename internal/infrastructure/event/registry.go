package event

import (
	"slices"
	"sync"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
)

// HandlerRegistry maps event types to handlers. A handler registered with no
// event types receives every event.
type HandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[string][]shared.EventHandler
	wildcard []shared.EventHandler
}

// NewHandlerRegistry creates an empty registry
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		handlers: make(map[string][]shared.EventHandler),
	}
}

// Register adds a handler for the given event types. Registering the same
// handler twice for a type is a no-op.
func (r *HandlerRegistry) Register(handler shared.EventHandler, eventTypes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(eventTypes) == 0 {
		if !slices.Contains(r.wildcard, handler) {
			r.wildcard = append(r.wildcard, handler)
		}
		return
	}
	for _, eventType := range eventTypes {
		if !slices.Contains(r.handlers[eventType], handler) {
			r.handlers[eventType] = append(r.handlers[eventType], handler)
		}
	}
}

// Unregister removes a handler from every event type
func (r *HandlerRegistry) Unregister(handler shared.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.wildcard = slices.DeleteFunc(r.wildcard, func(h shared.EventHandler) bool { return h == handler })
	for eventType, handlers := range r.handlers {
		handlers = slices.DeleteFunc(handlers, func(h shared.EventHandler) bool { return h == handler })
		if len(handlers) == 0 {
			delete(r.handlers, eventType)
			continue
		}
		r.handlers[eventType] = handlers
	}
}

// GetHandlers returns the type-specific handlers followed by the wildcard ones
func (r *HandlerRegistry) GetHandlers(eventType string) []shared.EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typed := r.handlers[eventType]
	result := make([]shared.EventHandler, 0, len(typed)+len(r.wildcard))
	result = append(result, typed...)
	return append(result, r.wildcard...)
}

// EventTypes lists the event types with at least one specific handler
func (r *HandlerRegistry) EventTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}
