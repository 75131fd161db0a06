package memory

import (
	"context"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/domain"
	"github.com/phrazzld/studygroup-api/internal/platform/logger"
	"github.com/phrazzld/studygroup-api/internal/store"
)

// EventStore implements the store.EventStore interface on a DB.
type EventStore struct {
	db     *DB
	logger *slog.Logger
}

// NewEventStore creates an EventStore backed by db.
// If logger is nil, a default logger will be used.
func NewEventStore(db *DB, logger *slog.Logger) *EventStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &EventStore{
		db:     db,
		logger: logger.With(slog.String("component", "event_store")),
	}
}

// Ensure EventStore implements store.EventStore interface
var _ store.EventStore = (*EventStore)(nil)

// Create implements store.EventStore.Create
func (s *EventStore) Create(ctx context.Context, event *domain.StudyEvent) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := event.Validate(); err != nil {
		log.Warn("event validation failed during create",
			slog.String("error", err.Error()),
			slog.String("event_id", event.ID.String()))
		return invalidEntity("event", "create", err)
	}

	err := s.db.update(ctx, func(w *writer) error {
		g, ok := s.db.groups[event.GroupID]
		if !ok {
			return store.ErrGroupNotFound
		}
		if _, ok := s.db.events[event.ID]; ok {
			return store.NewStoreError("event", "create", "id already taken", store.ErrDuplicate)
		}
		if !s.db.userExists(event.CreatorID) {
			return store.ErrUserNotFound
		}

		e := *event
		put(w, s.db.events, e.ID, &e)

		updated := g.Clone()
		i := domain.EventInsertIndex(s.db.resolveEvents(updated.EventIDs), e.DateTime)
		updated.EventIDs = slices.Insert(updated.EventIDs, i, e.ID)
		put(w, s.db.groups, updated.ID, updated)
		return nil
	})
	if err != nil {
		return err
	}

	log.Debug("event created",
		slog.String("event_id", event.ID.String()),
		slog.String("group_id", event.GroupID.String()),
		slog.Time("date_time", event.DateTime))
	return nil
}

// GetByID implements store.EventStore.GetByID
func (s *EventStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudyEvent, error) {
	var event *domain.StudyEvent
	s.db.view(ctx, func() {
		if e, ok := s.db.events[id]; ok {
			c := *e
			event = &c
		}
	})
	if event == nil {
		return nil, store.ErrEventNotFound
	}
	return event, nil
}

// ListByGroup implements store.EventStore.ListByGroup
func (s *EventStore) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.StudyEvent, error) {
	var (
		events []*domain.StudyEvent
		found  bool
	)
	s.db.view(ctx, func() {
		g, ok := s.db.groups[groupID]
		if !ok {
			return
		}
		found = true
		events = s.db.resolveEvents(g.EventIDs)
	})
	if !found {
		return nil, store.ErrGroupNotFound
	}
	return events, nil
}

// Delete implements store.EventStore.Delete
func (s *EventStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.update(ctx, func(w *writer) error {
		e, ok := s.db.events[id]
		if !ok {
			return store.ErrEventNotFound
		}

		if g, ok := s.db.groups[e.GroupID]; ok {
			updated := g.Clone()
			updated.EventIDs = slices.DeleteFunc(updated.EventIDs, func(eid uuid.UUID) bool {
				return eid == id
			})
			put(w, s.db.groups, updated.ID, updated)
		}
		remove(w, s.db.events, id)
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("event deleted",
		slog.String("event_id", id.String()))
	return nil
}

// resolveEvents returns copies of the events in ids order.
// Must be called with mu held.
func (db *DB) resolveEvents(ids []uuid.UUID) []*domain.StudyEvent {
	events := make([]*domain.StudyEvent, 0, len(ids))
	for _, id := range ids {
		if e, ok := db.events[id]; ok {
			c := *e
			events = append(events, &c)
		}
	}
	return events
}
