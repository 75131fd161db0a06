package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/domain"
)

// DashboardPosition selects where a group is placed on a user's dashboard.
type DashboardPosition int

// Dashboard positions
const (
	// DashboardAppend places the group last (joined groups).
	DashboardAppend DashboardPosition = iota
	// DashboardPrepend places the group first (newly created groups).
	DashboardPrepend
)

// GroupStore defines the interface for groups, their membership, and each
// user's dashboard (the ordered set of groups visible to them).
type GroupStore interface {
	// Create saves a new group and indexes its join code.
	// Returns ErrCodeExists if the code is taken, ErrDuplicate if the ID is.
	// Returns validation errors from the domain Group if data is invalid.
	Create(ctx context.Context, group *domain.Group) error

	// GetByID retrieves a group by its unique ID.
	// Returns ErrGroupNotFound if the group does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)

	// GetByCode retrieves a group by its normalized join code.
	// Returns ErrGroupNotFound if no group uses the code.
	GetByCode(ctx context.Context, code string) (*domain.Group, error)

	// CodeExists reports whether any group uses the code.
	CodeExists(ctx context.Context, code string) (bool, error)

	// AddMember appends userID to the group's member list.
	// Returns ErrGroupNotFound or ErrAlreadyMember.
	AddMember(ctx context.Context, groupID, userID uuid.UUID) error

	// RemoveMember removes userID from the group's member list.
	// Returns ErrGroupNotFound or ErrMembershipNotFound.
	RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error

	// ListVisible returns the groups on userID's dashboard in display order.
	ListVisible(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error)

	// IsVisible reports whether the group is on userID's dashboard.
	IsVisible(ctx context.Context, groupID, userID uuid.UUID) (bool, error)

	// Show puts the group on userID's dashboard at pos. Showing a group that
	// is already visible is a no-op. Returns ErrGroupNotFound.
	Show(ctx context.Context, groupID, userID uuid.UUID, pos DashboardPosition) error

	// Hide removes the group from userID's dashboard.
	// Returns ErrNotVisible if it was not there.
	Hide(ctx context.Context, groupID, userID uuid.UUID) error
}
