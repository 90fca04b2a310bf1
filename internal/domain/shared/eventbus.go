package shared

import "context"

// EventHandler handles domain events
type EventHandler interface {
	// Handle processes a domain event
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes returns the event types this handler is interested in.
	// An empty slice means the handler receives all events.
	EventTypes() []string
}

// EventPublisher publishes domain events once the producing transaction has committed
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventBus combines publishing with handler registration
type EventBus interface {
	EventPublisher
	Subscribe(handler EventHandler, eventTypes ...string)
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
