package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/domain"
	"github.com/phrazzld/studygroup-api/internal/service"
)

// MockGroupService implements service.GroupService for testing
type MockGroupService struct {
	CreateGroupFn func(ctx context.Context, creatorID uuid.UUID, name, description string) (*domain.Group, error)
	JoinGroupFn   func(ctx context.Context, code string, userID uuid.UUID) (*domain.Group, error)
	LeaveGroupFn  func(ctx context.Context, groupID, userID uuid.UUID) error
	ListGroupsFn  func(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error)
	GetGroupFn    func(ctx context.Context, groupID, userID uuid.UUID) (*service.GroupView, error)
	CheckAccessFn func(ctx context.Context, groupID, userID uuid.UUID) error

	// Default return values
	Group        *domain.Group
	Groups       []*domain.Group
	View         *service.GroupView
	DefaultError error
}

var _ service.GroupService = (*MockGroupService)(nil)

// CreateGroup implements the GroupService.CreateGroup method
func (m *MockGroupService) CreateGroup(
	ctx context.Context,
	creatorID uuid.UUID,
	name, description string,
) (*domain.Group, error) {
	if m.CreateGroupFn != nil {
		return m.CreateGroupFn(ctx, creatorID, name, description)
	}
	return m.Group, m.DefaultError
}

// JoinGroup implements the GroupService.JoinGroup method
func (m *MockGroupService) JoinGroup(ctx context.Context, code string, userID uuid.UUID) (*domain.Group, error) {
	if m.JoinGroupFn != nil {
		return m.JoinGroupFn(ctx, code, userID)
	}
	return m.Group, m.DefaultError
}

// LeaveGroup implements the GroupService.LeaveGroup method
func (m *MockGroupService) LeaveGroup(ctx context.Context, groupID, userID uuid.UUID) error {
	if m.LeaveGroupFn != nil {
		return m.LeaveGroupFn(ctx, groupID, userID)
	}
	return m.DefaultError
}

// ListGroups implements the GroupService.ListGroups method
func (m *MockGroupService) ListGroups(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error) {
	if m.ListGroupsFn != nil {
		return m.ListGroupsFn(ctx, userID)
	}
	return m.Groups, m.DefaultError
}

// GetGroup implements the GroupService.GetGroup method
func (m *MockGroupService) GetGroup(ctx context.Context, groupID, userID uuid.UUID) (*service.GroupView, error) {
	if m.GetGroupFn != nil {
		return m.GetGroupFn(ctx, groupID, userID)
	}
	return m.View, m.DefaultError
}

// CheckAccess implements the GroupService.CheckAccess method.
// With no CheckAccessFn every group is accessible.
func (m *MockGroupService) CheckAccess(ctx context.Context, groupID, userID uuid.UUID) error {
	if m.CheckAccessFn != nil {
		return m.CheckAccessFn(ctx, groupID, userID)
	}
	return nil
}
