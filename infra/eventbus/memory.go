// Package eventbus provides the in-memory event bus implementation.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bankline/bankline/pkg/eventbus"
)

// MemoryBus is a simple in-memory implementation of the eventbus.Bus
// interface. Handlers run synchronously on the emitting goroutine.
type MemoryBus struct {
	mu        sync.RWMutex
	handlers  map[string][]eventbus.HandlerFunc
	logger    *slog.Logger
	published []eventbus.Event // retained for tests
}

// NewMemoryBus creates a new in-memory event bus.
func NewMemoryBus(logger *slog.Logger) *MemoryBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryBus{
		handlers: make(map[string][]eventbus.HandlerFunc),
		logger:   logger.With("bus", "memory"),
	}
}

// Register registers a handler for a specific event type.
func (b *MemoryBus) Register(eventType string, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit dispatches the event to all handlers registered for its type.
// Handler errors are logged, not propagated.
func (b *MemoryBus) Emit(ctx context.Context, event eventbus.Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type()]
	b.mu.RUnlock()

	b.mu.Lock()
	b.published = append(b.published, event)
	b.mu.Unlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			b.logger.Warn("event handler failed", "type", event.Type(), "error", err)
		}
	}
	return nil
}

// Published returns the events emitted so far. Useful in tests.
func (b *MemoryBus) Published() []eventbus.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]eventbus.Event, len(b.published))
	copy(out, b.published)
	return out
}

// ClearPublished empties the published-event capture.
func (b *MemoryBus) ClearPublished() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = nil
}

var _ eventbus.Bus = (*MemoryBus)(nil)
