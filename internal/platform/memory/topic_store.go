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

// TopicStore implements the store.TopicStore interface on a DB.
type TopicStore struct {
	db     *DB
	logger *slog.Logger
}

// NewTopicStore creates a TopicStore backed by db.
// If logger is nil, a default logger will be used.
func NewTopicStore(db *DB, logger *slog.Logger) *TopicStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TopicStore{
		db:     db,
		logger: logger.With(slog.String("component", "topic_store")),
	}
}

// Ensure TopicStore implements store.TopicStore interface
var _ store.TopicStore = (*TopicStore)(nil)

// Create implements store.TopicStore.Create
// The topic starts without comments regardless of what the argument holds.
func (s *TopicStore) Create(ctx context.Context, topic *domain.Topic) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := topic.Validate(); err != nil {
		log.Warn("topic validation failed during create",
			slog.String("error", err.Error()),
			slog.String("topic_id", topic.ID.String()))
		return invalidEntity("topic", "create", err)
	}

	err := s.db.update(ctx, func(w *writer) error {
		l, ok := s.db.lists[topic.StudyListID]
		if !ok {
			return store.ErrStudyListNotFound
		}
		if _, ok := s.db.topics[topic.ID]; ok {
			return store.NewStoreError("topic", "create", "id already taken", store.ErrDuplicate)
		}
		if topic.HasResponsible() && !s.db.userExists(topic.ResponsibleID) {
			return store.ErrUserNotFound
		}

		t := topic.Clone()
		t.CommentIDs = []uuid.UUID{}
		put(w, s.db.topics, t.ID, t)

		updated := l.Clone()
		updated.TopicIDs = append(updated.TopicIDs, t.ID)
		put(w, s.db.lists, updated.ID, updated)
		return nil
	})
	if err != nil {
		return err
	}

	log.Debug("topic created",
		slog.String("topic_id", topic.ID.String()),
		slog.String("list_id", topic.StudyListID.String()))
	return nil
}

// GetByID implements store.TopicStore.GetByID
func (s *TopicStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error) {
	var topic *domain.Topic
	s.db.view(ctx, func() {
		if t, ok := s.db.topics[id]; ok {
			topic = t.Clone()
		}
	})
	if topic == nil {
		return nil, store.ErrTopicNotFound
	}
	return topic, nil
}

// ListByStudyList implements store.TopicStore.ListByStudyList
func (s *TopicStore) ListByStudyList(ctx context.Context, listID uuid.UUID) ([]*domain.Topic, error) {
	var (
		topics []*domain.Topic
		found  bool
	)
	s.db.view(ctx, func() {
		l, ok := s.db.lists[listID]
		if !ok {
			return
		}
		found = true
		topics = make([]*domain.Topic, 0, len(l.TopicIDs))
		for _, id := range l.TopicIDs {
			if t, ok := s.db.topics[id]; ok {
				topics = append(topics, t.Clone())
			}
		}
	})
	if !found {
		return nil, store.ErrStudyListNotFound
	}
	return topics, nil
}

// Update implements store.TopicStore.Update
func (s *TopicStore) Update(ctx context.Context, topic *domain.Topic) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := topic.Validate(); err != nil {
		log.Warn("topic validation failed during update",
			slog.String("error", err.Error()),
			slog.String("topic_id", topic.ID.String()))
		return invalidEntity("topic", "update", err)
	}

	err := s.db.update(ctx, func(w *writer) error {
		existing, ok := s.db.topics[topic.ID]
		if !ok {
			return store.ErrTopicNotFound
		}
		if topic.HasResponsible() && !s.db.userExists(topic.ResponsibleID) {
			return store.ErrUserNotFound
		}

		updated := existing.Clone()
		updated.Title = topic.Title
		updated.Status = topic.Status
		updated.Priority = topic.Priority
		updated.ResponsibleID = topic.ResponsibleID
		put(w, s.db.topics, updated.ID, updated)
		return nil
	})
	if err != nil {
		return err
	}

	log.Debug("topic updated",
		slog.String("topic_id", topic.ID.String()),
		slog.String("status", string(topic.Status)))
	return nil
}

// Delete implements store.TopicStore.Delete
func (s *TopicStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.update(ctx, func(w *writer) error {
		t, ok := s.db.topics[id]
		if !ok {
			return store.ErrTopicNotFound
		}

		if l, ok := s.db.lists[t.StudyListID]; ok {
			updated := l.Clone()
			updated.TopicIDs = slices.DeleteFunc(updated.TopicIDs, func(tid uuid.UUID) bool {
				return tid == id
			})
			put(w, s.db.lists, updated.ID, updated)
		}
		for _, cid := range t.CommentIDs {
			remove(w, s.db.comments, cid)
		}
		remove(w, s.db.topics, id)
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("topic deleted",
		slog.String("topic_id", id.String()))
	return nil
}

// ClearResponsible implements store.TopicStore.ClearResponsible
func (s *TopicStore) ClearResponsible(ctx context.Context, groupID, userID uuid.UUID) (int, error) {
	var cleared int
	err := s.db.update(ctx, func(w *writer) error {
		g, ok := s.db.groups[groupID]
		if !ok {
			return store.ErrGroupNotFound
		}

		for _, lid := range g.StudyListIDs {
			l, ok := s.db.lists[lid]
			if !ok {
				continue
			}
			for _, tid := range l.TopicIDs {
				t, ok := s.db.topics[tid]
				if !ok || t.ResponsibleID != userID {
					continue
				}
				updated := t.Clone()
				updated.ResponsibleID = uuid.Nil
				put(w, s.db.topics, tid, updated)
				cleared++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return cleared, nil
}
