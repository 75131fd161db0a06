package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/domain"
)

// CommentStore defines the interface for topic comments.
type CommentStore interface {
	// Create saves a new comment and appends it to its topic.
	// Returns ErrTopicNotFound if the topic does not exist.
	Create(ctx context.Context, comment *domain.Comment) error

	// ListByTopic returns the topic's comments in append order.
	// Returns ErrTopicNotFound if the topic does not exist.
	ListByTopic(ctx context.Context, topicID uuid.UUID) ([]*domain.Comment, error)
}
