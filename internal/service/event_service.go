package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/domain"
	"github.com/phrazzld/studygroup-api/internal/events"
)

// EventInput carries the fields of a new study event.
type EventInput struct {
	Name      string
	Location  string
	DateTime  time.Time
	CreatorID uuid.UUID
}

// EventService keeps each group's events in time order and enforces the
// deletion policy.
type EventService interface {
	// CreateEvent schedules an event. Past instants are accepted; the input
	// boundary is responsible for rejecting them. The group's events stay
	// sorted ascending by DateTime, ties in insertion order.
	CreateEvent(ctx context.Context, groupID uuid.UUID, input EventInput) (*domain.StudyEvent, error)

	// ListEvents returns the group's events in time order.
	ListEvents(ctx context.Context, groupID uuid.UUID) ([]*domain.StudyEvent, error)

	// DeleteEvent removes a future event. Returns ErrEventNotFound,
	// ErrPastEvent when the event starts strictly before now (whoever asks,
	// the creator included), or ErrForbidden when requesterID is not the
	// group creator, checked in that order.
	DeleteEvent(ctx context.Context, groupID, eventID, requesterID uuid.UUID) error

	// CanDeleteEvent runs DeleteEvent's checks without deleting anything.
	CanDeleteEvent(ctx context.Context, groupID, eventID, requesterID uuid.UUID) error

	// IsPast reports whether the event starts strictly before the service clock's now.
	IsPast(event *domain.StudyEvent) bool
}

// eventServiceImpl implements the EventService interface
type eventServiceImpl struct {
	stores Stores
	clock  Clock
	pub    publisher
	logger *slog.Logger
}

// NewEventService creates a new EventService.
// It returns an error if any of the required dependencies are nil.
func NewEventService(
	stores Stores,
	emitter events.EventEmitter,
	clock Clock,
	logger *slog.Logger,
) (EventService, error) {
	if err := stores.validate("create_service"); err != nil {
		return nil, err
	}
	if emitter == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "emitter cannot be nil"}
	}
	if clock == nil {
		clock = SystemClock
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "event_service")

	return &eventServiceImpl{
		stores: stores,
		clock:  clock,
		pub:    publisher{emitter: emitter, clock: clock, logger: logger},
		logger: logger,
	}, nil
}

// CreateEvent schedules a new event in the group.
func (s *eventServiceImpl) CreateEvent(
	ctx context.Context,
	groupID uuid.UUID,
	input EventInput,
) (*domain.StudyEvent, error) {
	event, err := domain.NewStudyEvent(groupID, input.Name, input.Location, input.DateTime, input.CreatorID)
	if err != nil {
		return nil, NewServiceError("create_event", "invalid event", err)
	}

	if err := s.stores.Events.Create(ctx, event); err != nil {
		return nil, NewServiceError("create_event", "failed to save event", err)
	}

	s.logger.Info("event created",
		"group_id", groupID,
		"event_id", event.ID,
		"date_time", event.DateTime)
	s.pub.publish(ctx, events.StudyEventCreated, groupID, struct {
		EventID  uuid.UUID `json:"event_id"`
		Name     string    `json:"name"`
		DateTime time.Time `json:"date_time"`
	}{event.ID, event.Name, event.DateTime})

	return event, nil
}

// ListEvents returns the group's schedule.
func (s *eventServiceImpl) ListEvents(ctx context.Context, groupID uuid.UUID) ([]*domain.StudyEvent, error) {
	evs, err := s.stores.Events.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, NewServiceError("list_events", "failed to load events", err)
	}
	return evs, nil
}

// DeleteEvent removes the event if the requester may delete it.
func (s *eventServiceImpl) DeleteEvent(ctx context.Context, groupID, eventID, requesterID uuid.UUID) error {
	err := s.stores.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkDeletable(ctx, groupID, eventID, requesterID); err != nil {
			return err
		}
		if err := s.stores.Events.Delete(ctx, eventID); err != nil {
			return NewServiceError("delete_event", "failed to delete event", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Debug("delete event rejected",
			"error", err,
			"group_id", groupID,
			"event_id", eventID,
			"requester_id", requesterID)
		return err
	}

	s.logger.Info("event deleted",
		"group_id", groupID,
		"event_id", eventID)
	s.pub.publish(ctx, events.StudyEventDeleted, groupID, struct {
		EventID uuid.UUID `json:"event_id"`
	}{eventID})

	return nil
}

// CanDeleteEvent reports why DeleteEvent would fail, or nil.
func (s *eventServiceImpl) CanDeleteEvent(ctx context.Context, groupID, eventID, requesterID uuid.UUID) error {
	return s.stores.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.checkDeletable(ctx, groupID, eventID, requesterID)
	})
}

func (s *eventServiceImpl) checkDeletable(ctx context.Context, groupID, eventID, requesterID uuid.UUID) error {
	g, err := s.stores.Groups.GetByID(ctx, groupID)
	if err != nil {
		return NewServiceError("delete_event", "failed to load group", err)
	}

	event, err := s.stores.Events.GetByID(ctx, eventID)
	if err != nil {
		return NewServiceError("delete_event", "failed to load event", err)
	}
	if event.GroupID != groupID {
		return ErrEventNotFound
	}

	if event.IsPast(s.clock()) {
		return ErrPastEvent
	}
	if !g.IsCreator(requesterID) {
		return ErrForbidden
	}
	return nil
}

// IsPast reports whether event has already started.
func (s *eventServiceImpl) IsPast(event *domain.StudyEvent) bool {
	return domain.IsPast(event, s.clock())
}
