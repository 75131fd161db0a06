package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/domain"
	"github.com/phrazzld/studygroup-api/internal/service"
)

// MockEventService implements service.EventService for testing
type MockEventService struct {
	CreateEventFn    func(ctx context.Context, groupID uuid.UUID, input service.EventInput) (*domain.StudyEvent, error)
	ListEventsFn     func(ctx context.Context, groupID uuid.UUID) ([]*domain.StudyEvent, error)
	DeleteEventFn    func(ctx context.Context, groupID, eventID, requesterID uuid.UUID) error
	CanDeleteEventFn func(ctx context.Context, groupID, eventID, requesterID uuid.UUID) error

	// Now is the reference time for IsPast; zero means time.Now.
	Now time.Time

	// Default return values
	Event        *domain.StudyEvent
	Events       []*domain.StudyEvent
	DefaultError error
}

var _ service.EventService = (*MockEventService)(nil)

// CreateEvent implements the EventService.CreateEvent method
func (m *MockEventService) CreateEvent(
	ctx context.Context,
	groupID uuid.UUID,
	input service.EventInput,
) (*domain.StudyEvent, error) {
	if m.CreateEventFn != nil {
		return m.CreateEventFn(ctx, groupID, input)
	}
	return m.Event, m.DefaultError
}

// ListEvents implements the EventService.ListEvents method
func (m *MockEventService) ListEvents(ctx context.Context, groupID uuid.UUID) ([]*domain.StudyEvent, error) {
	if m.ListEventsFn != nil {
		return m.ListEventsFn(ctx, groupID)
	}
	return m.Events, m.DefaultError
}

// DeleteEvent implements the EventService.DeleteEvent method
func (m *MockEventService) DeleteEvent(ctx context.Context, groupID, eventID, requesterID uuid.UUID) error {
	if m.DeleteEventFn != nil {
		return m.DeleteEventFn(ctx, groupID, eventID, requesterID)
	}
	return m.DefaultError
}

// CanDeleteEvent implements the EventService.CanDeleteEvent method
func (m *MockEventService) CanDeleteEvent(ctx context.Context, groupID, eventID, requesterID uuid.UUID) error {
	if m.CanDeleteEventFn != nil {
		return m.CanDeleteEventFn(ctx, groupID, eventID, requesterID)
	}
	return m.DefaultError
}

// IsPast implements the EventService.IsPast method
func (m *MockEventService) IsPast(event *domain.StudyEvent) bool {
	now := m.Now
	if now.IsZero() {
		now = time.Now()
	}
	return event.IsPast(now)
}
