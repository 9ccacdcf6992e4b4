// Package eventbus defines the event bus the store publishes its state
// transitions on. Screens and other observers register handlers per event
// type.
package eventbus

import "context"

// Event is anything the store can publish.
type Event interface {
	// Type returns the event type name handlers register under.
	Type() string
}

// HandlerFunc handles a single event.
type HandlerFunc func(ctx context.Context, event Event) error

// Bus dispatches events to registered handlers.
type Bus interface {
	Register(eventType string, handler HandlerFunc)
	Emit(ctx context.Context, event Event) error
}
