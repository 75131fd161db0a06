package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/domain"
)

// StudyListStore defines the interface for study lists.
type StudyListStore interface {
	// Create saves a new list and appends it to its group's list order.
	// Returns ErrGroupNotFound if the group does not exist.
	Create(ctx context.Context, list *domain.StudyList) error

	// GetByID retrieves a study list by its unique ID.
	// Returns ErrStudyListNotFound if the list does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StudyList, error)

	// ListByGroup returns the group's lists in insertion order.
	// Returns ErrGroupNotFound if the group does not exist.
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.StudyList, error)
}
