package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/events"
	"github.com/phrazzld/studygroup-api/internal/store"
)

// Stores groups the store dependencies shared by the services.
type Stores struct {
	Tx       store.Transactor
	Users    store.UserStore
	Groups   store.GroupStore
	Lists    store.StudyListStore
	Topics   store.TopicStore
	Comments store.CommentStore
	Events   store.EventStore
}

func (s Stores) validate(operation string) error {
	missing := ""
	switch {
	case s.Tx == nil:
		missing = "Tx"
	case s.Users == nil:
		missing = "Users"
	case s.Groups == nil:
		missing = "Groups"
	case s.Lists == nil:
		missing = "Lists"
	case s.Topics == nil:
		missing = "Topics"
	case s.Comments == nil:
		missing = "Comments"
	case s.Events == nil:
		missing = "Events"
	}
	if missing == "" {
		return nil
	}
	return &ServiceError{
		Operation: operation,
		Message:   "stores." + missing + " cannot be nil",
	}
}

// Clock returns the current instant. Tests inject fixed clocks.
type Clock func() time.Time

// SystemClock is the wall clock in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}

type actorKey struct{}

// WithActor records the session user on ctx so emitted events can name
// who caused them.
func WithActor(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFromContext returns the session user, or uuid.Nil.
func ActorFromContext(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(actorKey{}).(uuid.UUID)
	return id
}

// publisher emits domain events once a mutation has committed. Handler
// failures are logged and never undo or fail the mutation.
type publisher struct {
	emitter events.EventEmitter
	clock   Clock
	logger  *slog.Logger
}

func (p publisher) publish(ctx context.Context, eventType string, groupID uuid.UUID, payload any) {
	event, err := events.NewDomainEvent(eventType, groupID, ActorFromContext(ctx), payload, p.clock())
	if err != nil {
		p.logger.Error("failed to create domain event",
			"error", err,
			"event_type", eventType,
			"group_id", groupID)
		return
	}

	if err := p.emitter.EmitEvent(ctx, event); err != nil {
		p.logger.Error("failed to emit domain event",
			"error", err,
			"event_id", event.ID,
			"event_type", eventType,
			"group_id", groupID)
	}
}
