package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the services.
const (
	GroupCreated            = "group.created"
	GroupJoined             = "group.joined"
	GroupLeft               = "group.left"
	StudyListCreated        = "list.created"
	TopicCreated            = "topic.created"
	TopicStatusChanged      = "topic.status_changed"
	TopicResponsibleChanged = "topic.responsible_changed"
	TopicDeleted            = "topic.deleted"
	CommentAdded            = "comment.added"
	StudyEventCreated       = "event.created"
	StudyEventDeleted       = "event.deleted"
)

// Types lists every event type in a stable order.
func Types() []string {
	return []string{
		GroupCreated,
		GroupJoined,
		GroupLeft,
		StudyListCreated,
		TopicCreated,
		TopicStatusChanged,
		TopicResponsibleChanged,
		TopicDeleted,
		CommentAdded,
		StudyEventCreated,
		StudyEventDeleted,
	}
}

// DomainEvent records a committed change to a group.
type DomainEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the event type constants
	Type string `json:"type"`

	// GroupID is the group the change happened in
	GroupID uuid.UUID `json:"group_id"`

	// ActorID is the user who caused the change, uuid.Nil when unknown
	ActorID uuid.UUID `json:"actor_id"`

	// Payload contains the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// OccurredAt is when the change was committed
	OccurredAt time.Time `json:"occurred_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *DomainEvent) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewDomainEvent creates a DomainEvent with the specified type and payload.
func NewDomainEvent(
	eventType string,
	groupID, actorID uuid.UUID,
	payload any,
	occurredAt time.Time,
) (*DomainEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &DomainEvent{
		ID:         uuid.New(),
		Type:       eventType,
		GroupID:    groupID,
		ActorID:    actorID,
		Payload:    payloadBytes,
		OccurredAt: occurredAt.UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *DomainEvent) error
}

// HandlerFunc adapts a function to the EventHandler interface.
type HandlerFunc func(ctx context.Context, event *DomainEvent) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *DomainEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *DomainEvent) error
}
