package memory

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/domain"
	"github.com/phrazzld/studygroup-api/internal/platform/logger"
	"github.com/phrazzld/studygroup-api/internal/store"
)

// StudyListStore implements the store.StudyListStore interface on a DB.
type StudyListStore struct {
	db     *DB
	logger *slog.Logger
}

// NewStudyListStore creates a StudyListStore backed by db.
// If logger is nil, a default logger will be used.
func NewStudyListStore(db *DB, logger *slog.Logger) *StudyListStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &StudyListStore{
		db:     db,
		logger: logger.With(slog.String("component", "study_list_store")),
	}
}

// Ensure StudyListStore implements store.StudyListStore interface
var _ store.StudyListStore = (*StudyListStore)(nil)

// Create implements store.StudyListStore.Create
func (s *StudyListStore) Create(ctx context.Context, list *domain.StudyList) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := list.Validate(); err != nil {
		log.Warn("study list validation failed during create",
			slog.String("error", err.Error()),
			slog.String("list_id", list.ID.String()))
		return invalidEntity("study_list", "create", err)
	}

	err := s.db.update(ctx, func(w *writer) error {
		g, ok := s.db.groups[list.GroupID]
		if !ok {
			return store.ErrGroupNotFound
		}
		if _, ok := s.db.lists[list.ID]; ok {
			return store.NewStoreError("study_list", "create", "id already taken", store.ErrDuplicate)
		}

		l := list.Clone()
		l.TopicIDs = []uuid.UUID{}
		put(w, s.db.lists, l.ID, l)

		updated := g.Clone()
		updated.StudyListIDs = append(updated.StudyListIDs, l.ID)
		put(w, s.db.groups, updated.ID, updated)
		return nil
	})
	if err != nil {
		return err
	}

	log.Debug("study list created",
		slog.String("list_id", list.ID.String()),
		slog.String("group_id", list.GroupID.String()))
	return nil
}

// GetByID implements store.StudyListStore.GetByID
func (s *StudyListStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudyList, error) {
	var list *domain.StudyList
	s.db.view(ctx, func() {
		if l, ok := s.db.lists[id]; ok {
			list = l.Clone()
		}
	})
	if list == nil {
		return nil, store.ErrStudyListNotFound
	}
	return list, nil
}

// ListByGroup implements store.StudyListStore.ListByGroup
func (s *StudyListStore) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.StudyList, error) {
	var (
		lists []*domain.StudyList
		found bool
	)
	s.db.view(ctx, func() {
		g, ok := s.db.groups[groupID]
		if !ok {
			return
		}
		found = true
		lists = make([]*domain.StudyList, 0, len(g.StudyListIDs))
		for _, id := range g.StudyListIDs {
			if l, ok := s.db.lists[id]; ok {
				lists = append(lists, l.Clone())
			}
		}
	})
	if !found {
		return nil, store.ErrGroupNotFound
	}
	return lists, nil
}
