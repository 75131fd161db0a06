package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/domain"
)

// TopicStore defines the interface for topics.
type TopicStore interface {
	// Create saves a new topic and appends it to its study list.
	// Returns ErrStudyListNotFound if the list does not exist.
	Create(ctx context.Context, topic *domain.Topic) error

	// GetByID retrieves a topic by its unique ID.
	// Returns ErrTopicNotFound if the topic does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error)

	// ListByStudyList returns the list's topics in insertion order.
	// Returns ErrStudyListNotFound if the list does not exist.
	ListByStudyList(ctx context.Context, listID uuid.UUID) ([]*domain.Topic, error)

	// Update replaces the topic's title, status, priority and responsible.
	// The study list and comment sequence are never changed by Update.
	// Returns ErrTopicNotFound if the topic does not exist.
	Update(ctx context.Context, topic *domain.Topic) error

	// Delete removes the topic from its study list along with its comments.
	// Returns ErrTopicNotFound if the topic does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ClearResponsible unsets userID as responsible on every topic of the
	// group and returns how many topics changed.
	ClearResponsible(ctx context.Context, groupID, userID uuid.UUID) (int, error)
}
