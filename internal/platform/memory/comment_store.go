package memory

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/domain"
	"github.com/phrazzld/studygroup-api/internal/platform/logger"
	"github.com/phrazzld/studygroup-api/internal/store"
)

// CommentStore implements the store.CommentStore interface on a DB.
type CommentStore struct {
	db     *DB
	logger *slog.Logger
}

// NewCommentStore creates a CommentStore backed by db.
// If logger is nil, a default logger will be used.
func NewCommentStore(db *DB, logger *slog.Logger) *CommentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CommentStore{
		db:     db,
		logger: logger.With(slog.String("component", "comment_store")),
	}
}

// Ensure CommentStore implements store.CommentStore interface
var _ store.CommentStore = (*CommentStore)(nil)

// Create implements store.CommentStore.Create
func (s *CommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := comment.Validate(); err != nil {
		log.Warn("comment validation failed during create",
			slog.String("error", err.Error()),
			slog.String("topic_id", comment.TopicID.String()))
		return invalidEntity("comment", "create", err)
	}

	err := s.db.update(ctx, func(w *writer) error {
		t, ok := s.db.topics[comment.TopicID]
		if !ok {
			return store.ErrTopicNotFound
		}
		if _, ok := s.db.comments[comment.ID]; ok {
			return store.NewStoreError("comment", "create", "id already taken", store.ErrDuplicate)
		}
		if !s.db.userExists(comment.AuthorID) {
			return store.ErrUserNotFound
		}

		c := *comment
		put(w, s.db.comments, c.ID, &c)

		updated := t.Clone()
		updated.CommentIDs = append(updated.CommentIDs, c.ID)
		put(w, s.db.topics, updated.ID, updated)
		return nil
	})
	if err != nil {
		return err
	}

	log.Debug("comment added",
		slog.String("comment_id", comment.ID.String()),
		slog.String("topic_id", comment.TopicID.String()))
	return nil
}

// ListByTopic implements store.CommentStore.ListByTopic
func (s *CommentStore) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]*domain.Comment, error) {
	var (
		comments []*domain.Comment
		found    bool
	)
	s.db.view(ctx, func() {
		t, ok := s.db.topics[topicID]
		if !ok {
			return
		}
		found = true
		comments = make([]*domain.Comment, 0, len(t.CommentIDs))
		for _, id := range t.CommentIDs {
			if c, ok := s.db.comments[id]; ok {
				cc := *c
				comments = append(comments, &cc)
			}
		}
	})
	if !found {
		return nil, store.ErrTopicNotFound
	}
	return comments, nil
}
