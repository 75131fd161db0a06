package memory

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/domain"
	"github.com/phrazzld/studygroup-api/internal/platform/logger"
	"github.com/phrazzld/studygroup-api/internal/store"
)

// GroupStore implements the store.GroupStore interface on a DB.
type GroupStore struct {
	db     *DB
	logger *slog.Logger
}

// NewGroupStore creates a GroupStore backed by db.
// If logger is nil, a default logger will be used.
func NewGroupStore(db *DB, logger *slog.Logger) *GroupStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &GroupStore{
		db:     db,
		logger: logger.With(slog.String("component", "group_store")),
	}
}

// Ensure GroupStore implements store.GroupStore interface
var _ store.GroupStore = (*GroupStore)(nil)

// Create implements store.GroupStore.Create
// Every member must be a known user. Study lists and events are attached
// later through their own stores, so the group is saved without any.
func (s *GroupStore) Create(ctx context.Context, group *domain.Group) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := group.Validate(); err != nil {
		log.Warn("group validation failed during create",
			slog.String("error", err.Error()),
			slog.String("group_id", group.ID.String()))
		return invalidEntity("group", "create", err)
	}

	err := s.db.update(ctx, func(w *writer) error {
		if _, ok := s.db.groups[group.ID]; ok {
			return store.NewStoreError("group", "create", "id already taken", store.ErrDuplicate)
		}
		if _, ok := s.db.codes[group.Code]; ok {
			return store.ErrCodeExists
		}
		for _, id := range group.MemberIDs {
			if !s.db.userExists(id) {
				return fmt.Errorf("%w: %s", store.ErrUserNotFound, id)
			}
		}

		g := group.Clone()
		g.StudyListIDs = []uuid.UUID{}
		g.EventIDs = []uuid.UUID{}
		put(w, s.db.groups, g.ID, g)
		put(w, s.db.codes, g.Code, g.ID)
		return nil
	})
	if err != nil {
		log.Debug("group create rejected",
			slog.String("error", err.Error()),
			slog.String("group_id", group.ID.String()))
		return err
	}

	log.Info("group created",
		slog.String("group_id", group.ID.String()),
		slog.String("creator_id", group.CreatorID.String()))
	return nil
}

// GetByID implements store.GroupStore.GetByID
func (s *GroupStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	var group *domain.Group
	s.db.view(ctx, func() {
		if g, ok := s.db.groups[id]; ok {
			group = g.Clone()
		}
	})
	if group == nil {
		return nil, store.ErrGroupNotFound
	}
	return group, nil
}

// GetByCode implements store.GroupStore.GetByCode
func (s *GroupStore) GetByCode(ctx context.Context, code string) (*domain.Group, error) {
	var group *domain.Group
	s.db.view(ctx, func() {
		if id, ok := s.db.codes[code]; ok {
			group = s.db.groups[id].Clone()
		}
	})
	if group == nil {
		return nil, store.ErrGroupNotFound
	}
	return group, nil
}

// CodeExists implements store.GroupStore.CodeExists
func (s *GroupStore) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	s.db.view(ctx, func() {
		_, exists = s.db.codes[code]
	})
	return exists, nil
}

// AddMember implements store.GroupStore.AddMember
func (s *GroupStore) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	err := s.db.update(ctx, func(w *writer) error {
		g, ok := s.db.groups[groupID]
		if !ok {
			return store.ErrGroupNotFound
		}
		if !s.db.userExists(userID) {
			return store.ErrUserNotFound
		}
		if g.HasMember(userID) {
			return store.ErrAlreadyMember
		}

		updated := g.Clone()
		updated.MemberIDs = append(updated.MemberIDs, userID)
		put(w, s.db.groups, groupID, updated)
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("member added",
		slog.String("group_id", groupID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// RemoveMember implements store.GroupStore.RemoveMember
func (s *GroupStore) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error {
	err := s.db.update(ctx, func(w *writer) error {
		g, ok := s.db.groups[groupID]
		if !ok {
			return store.ErrGroupNotFound
		}
		i := slices.Index(g.MemberIDs, userID)
		if i < 0 {
			return store.ErrMembershipNotFound
		}

		updated := g.Clone()
		updated.MemberIDs = slices.Delete(updated.MemberIDs, i, i+1)
		put(w, s.db.groups, groupID, updated)
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("member removed",
		slog.String("group_id", groupID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// ListVisible implements store.GroupStore.ListVisible
func (s *GroupStore) ListVisible(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error) {
	var groups []*domain.Group
	s.db.view(ctx, func() {
		ids := s.db.dashboards[userID]
		groups = make([]*domain.Group, 0, len(ids))
		for _, id := range ids {
			if g, ok := s.db.groups[id]; ok {
				groups = append(groups, g.Clone())
			}
		}
	})
	return groups, nil
}

// IsVisible implements store.GroupStore.IsVisible
func (s *GroupStore) IsVisible(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	var visible bool
	s.db.view(ctx, func() {
		visible = slices.Contains(s.db.dashboards[userID], groupID)
	})
	return visible, nil
}

// Show implements store.GroupStore.Show
func (s *GroupStore) Show(
	ctx context.Context,
	groupID, userID uuid.UUID,
	pos store.DashboardPosition,
) error {
	return s.db.update(ctx, func(w *writer) error {
		if _, ok := s.db.groups[groupID]; !ok {
			return store.ErrGroupNotFound
		}
		current := s.db.dashboards[userID]
		if slices.Contains(current, groupID) {
			return nil
		}

		next := make([]uuid.UUID, 0, len(current)+1)
		if pos == store.DashboardPrepend {
			next = append(next, groupID)
			next = append(next, current...)
		} else {
			next = append(next, current...)
			next = append(next, groupID)
		}
		put(w, s.db.dashboards, userID, next)
		return nil
	})
}

// Hide implements store.GroupStore.Hide
func (s *GroupStore) Hide(ctx context.Context, groupID, userID uuid.UUID) error {
	return s.db.update(ctx, func(w *writer) error {
		current := s.db.dashboards[userID]
		i := slices.Index(current, groupID)
		if i < 0 {
			return store.ErrNotVisible
		}

		next := slices.Delete(slices.Clone(current), i, i+1)
		put(w, s.db.dashboards, userID, next)
		return nil
	})
}
