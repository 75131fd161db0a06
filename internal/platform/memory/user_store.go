package memory

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/domain"
	"github.com/phrazzld/studygroup-api/internal/platform/logger"
	"github.com/phrazzld/studygroup-api/internal/store"
)

// UserStore implements the store.UserStore interface on a DB.
type UserStore struct {
	db     *DB
	logger *slog.Logger
}

// NewUserStore creates a UserStore backed by db.
// If logger is nil, a default logger will be used.
func NewUserStore(db *DB, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.Create
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return invalidEntity("user", "create", err)
	}

	err := s.db.update(ctx, func(w *writer) error {
		if s.db.userExists(user.ID) {
			return store.NewStoreError("user", "create", "id already taken", store.ErrDuplicate)
		}
		u := *user
		put(w, s.db.users, u.ID, &u)
		return nil
	})
	if err != nil {
		return err
	}

	log.Debug("user created", slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user *domain.User
	s.db.view(ctx, func() {
		if u, ok := s.db.users[id]; ok {
			c := *u
			user = &c
		}
	})
	if user == nil {
		logger.FromContextOrDefault(ctx, s.logger).Debug("user not found",
			slog.String("user_id", id.String()))
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// GetMany implements store.UserStore.GetMany
func (s *UserStore) GetMany(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(ids))
	var missing uuid.UUID
	s.db.view(ctx, func() {
		for _, id := range ids {
			u, ok := s.db.users[id]
			if !ok {
				missing = id
				return
			}
			c := *u
			users = append(users, &c)
		}
	})
	if missing != uuid.Nil {
		return nil, fmt.Errorf("%w: %s", store.ErrUserNotFound, missing)
	}
	return users, nil
}

// List implements store.UserStore.List
func (s *UserStore) List(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	s.db.view(ctx, func() {
		users = make([]*domain.User, 0, len(s.db.users))
		for _, u := range s.db.users {
			c := *u
			users = append(users, &c)
		}
	})
	slices.SortFunc(users, func(a, b *domain.User) int {
		return cmp.Or(
			strings.Compare(a.Name, b.Name),
			strings.Compare(a.ID.String(), b.ID.String()),
		)
	})
	return users, nil
}
