package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/domain"
)

// UserStore defines the interface for the user table every other entity
// refers to.
type UserStore interface {
	// Create saves a new user.
	// Returns ErrDuplicate if a user with the same ID exists.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetMany resolves ids in order.
	// Returns ErrUserNotFound if any id is unknown.
	GetMany(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error)

	// List returns every known user ordered by name.
	List(ctx context.Context) ([]*domain.User, error)
}
