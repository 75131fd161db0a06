package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/domain"
)

// EventStore defines the interface for study events.
type EventStore interface {
	// Create saves a new event, inserting it into its group's event order so
	// the order stays ascending by DateTime. Ties keep insertion order.
	// Returns ErrGroupNotFound if the group does not exist.
	Create(ctx context.Context, event *domain.StudyEvent) error

	// GetByID retrieves an event by its unique ID.
	// Returns ErrEventNotFound if the event does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StudyEvent, error)

	// ListByGroup returns the group's events sorted ascending by DateTime.
	// Returns ErrGroupNotFound if the group does not exist.
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.StudyEvent, error)

	// Delete removes the event from its group.
	// Returns ErrEventNotFound if the event does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
