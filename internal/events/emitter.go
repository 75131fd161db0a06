package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrNilEvent is returned when EmitEvent is called without an event.
var ErrNilEvent = errors.New("nil domain event")

// Dispatcher delivers domain events to its handlers. Services call it after
// a mutation has committed, on the request goroutine, so handlers see each
// group's changes in the order they happened. Handlers run in registration
// order; a failing handler does not stop the others.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers []EventHandler
	logger   *slog.Logger
}

var _ EventEmitter = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with no handlers.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		logger: logger.With("component", "event_dispatcher"),
	}
}

// RegisterHandler subscribes h to every event type. Register handlers at
// startup, before the services emit.
func (d *Dispatcher) RegisterHandler(h EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = append(d.handlers, h)
	d.logger.Debug("registered event handler", "handler_count", len(d.handlers))
}

// EmitEvent hands event to every handler and returns the first handler
// error. The change the event describes is already committed, so callers
// log that error rather than fail the request.
func (d *Dispatcher) EmitEvent(ctx context.Context, event *DomainEvent) error {
	if event == nil {
		return ErrNilEvent
	}

	d.mu.RLock()
	handlers := d.handlers
	d.mu.RUnlock()

	log := d.logger.With(
		"event_id", event.ID,
		"event_type", event.Type,
		"group_id", event.GroupID)
	log.Debug("dispatching domain event", "handler_count", len(handlers))

	var firstErr error
	for i, h := range handlers {
		if err := h.HandleEvent(ctx, event); err != nil {
			log.Error("event handler failed", "error", err, "handler_index", i)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// NopEmitter drops every event.
type NopEmitter struct{}

// EmitEvent implements EventEmitter.
func (NopEmitter) EmitEvent(context.Context, *DomainEvent) error { return nil }
