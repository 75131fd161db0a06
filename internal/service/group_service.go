package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/domain"
	"github.com/phrazzld/studygroup-api/internal/events"
	"github.com/phrazzld/studygroup-api/internal/redact"
	"github.com/phrazzld/studygroup-api/internal/store"
)

// LeaveMode selects what leaving a group does.
type LeaveMode string

// Leave modes
const (
	// LeaveHide only drops the group from the leaver's dashboard. Membership
	// is untouched, so the leaver can come back with the code.
	LeaveHide LeaveMode = "hide"
	// LeaveRemove also drops the leaver from the member list and clears
	// their topic assignments. The creator is never removed.
	LeaveRemove LeaveMode = "remove"
)

// DefaultCodeAttempts bounds join code generation when no bound is configured.
const DefaultCodeAttempts = 10

// GroupConfig tunes the registry.
type GroupConfig struct {
	LeaveMode    LeaveMode
	CodeAttempts int
	// GenerateCode overrides domain.GenerateJoinCode.
	GenerateCode func() (string, error)
}

// GroupService is the group registry: it holds the groups visible to each
// user and answers create, join and leave requests.
type GroupService interface {
	// CreateGroup creates a group whose only member is creatorID, with a
	// fresh unique join code, and puts it first on the creator's dashboard.
	CreateGroup(ctx context.Context, creatorID uuid.UUID, name, description string) (*domain.Group, error)

	// JoinGroup adds userID to the group using code (case-insensitive).
	// Returns ErrInvalidCode when no group matches and ErrAlreadyMember when
	// the user is a member who already sees the group; neither mutates.
	JoinGroup(ctx context.Context, code string, userID uuid.UUID) (*domain.Group, error)

	// LeaveGroup drops the group from userID's dashboard, and in
	// LeaveRemove mode from the member list too.
	// Returns ErrGroupNotFound if the group or membership is absent.
	LeaveGroup(ctx context.Context, groupID, userID uuid.UUID) error

	// ListGroups returns userID's dashboard in display order.
	ListGroups(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error)

	// GetGroup returns a resolved snapshot of a group on userID's dashboard.
	GetGroup(ctx context.Context, groupID, userID uuid.UUID) (*GroupView, error)

	// CheckAccess returns ErrGroupNotFound unless the group is on userID's dashboard.
	CheckAccess(ctx context.Context, groupID, userID uuid.UUID) error
}

// groupServiceImpl implements the GroupService interface
type groupServiceImpl struct {
	stores Stores
	cfg    GroupConfig
	clock  Clock
	pub    publisher
	logger *slog.Logger
}

// NewGroupService creates a new GroupService.
// It returns an error if any of the required dependencies are nil or the
// configuration is invalid.
func NewGroupService(
	stores Stores,
	emitter events.EventEmitter,
	cfg GroupConfig,
	clock Clock,
	logger *slog.Logger,
) (GroupService, error) {
	if err := stores.validate("create_service"); err != nil {
		return nil, err
	}
	if emitter == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "emitter cannot be nil"}
	}

	switch cfg.LeaveMode {
	case "":
		cfg.LeaveMode = LeaveHide
	case LeaveHide, LeaveRemove:
	default:
		return nil, &ServiceError{
			Operation: "create_service",
			Message:   "unknown leave mode " + string(cfg.LeaveMode),
		}
	}
	if cfg.CodeAttempts <= 0 {
		cfg.CodeAttempts = DefaultCodeAttempts
	}
	if cfg.GenerateCode == nil {
		cfg.GenerateCode = domain.GenerateJoinCode
	}
	if clock == nil {
		clock = SystemClock
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "group_service")

	return &groupServiceImpl{
		stores: stores,
		cfg:    cfg,
		clock:  clock,
		pub:    publisher{emitter: emitter, clock: clock, logger: logger},
		logger: logger,
	}, nil
}

// CreateGroup creates a new group owned by creatorID.
func (s *groupServiceImpl) CreateGroup(
	ctx context.Context,
	creatorID uuid.UUID,
	name, description string,
) (*domain.Group, error) {
	var group *domain.Group

	err := s.stores.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.stores.Users.GetByID(ctx, creatorID); err != nil {
			return NewServiceError("create_group", "failed to resolve creator", err)
		}

		code, err := s.allocateCode(ctx)
		if err != nil {
			return err
		}

		g, err := domain.NewGroup(name, description, code, creatorID)
		if err != nil {
			return NewServiceError("create_group", "invalid group", err)
		}
		g.CreatedAt = s.clock().UTC()

		if err := s.stores.Groups.Create(ctx, g); err != nil {
			return NewServiceError("create_group", "failed to save group", err)
		}
		if err := s.stores.Groups.Show(ctx, g.ID, creatorID, store.DashboardPrepend); err != nil {
			return NewServiceError("create_group", "failed to show group", err)
		}

		group = g
		return nil
	})
	if err != nil {
		s.logger.Warn("create group failed",
			"error", err,
			"creator_id", creatorID)
		return nil, err
	}

	s.logger.Info("group created",
		"group_id", group.ID,
		"creator_id", creatorID,
		"code", redact.JoinCode(group.Code))
	s.pub.publish(ctx, events.GroupCreated, group.ID, struct {
		Name string `json:"name"`
		Code string `json:"code"`
	}{group.Name, group.Code})

	return group, nil
}

// allocateCode draws join codes until one is free. Must run inside the
// creating transaction so the check and the insert cannot interleave.
func (s *groupServiceImpl) allocateCode(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= s.cfg.CodeAttempts; attempt++ {
		code, err := s.cfg.GenerateCode()
		if err != nil {
			return "", NewServiceError("create_group", "failed to generate join code", err)
		}
		code = domain.NormalizeJoinCode(code)

		taken, err := s.stores.Groups.CodeExists(ctx, code)
		if err != nil {
			return "", NewServiceError("create_group", "failed to check join code", err)
		}
		if !taken {
			return code, nil
		}

		s.logger.Debug("join code collision", "attempt", attempt)
	}
	return "", ErrCodeSpaceExhausted
}

// JoinGroup adds userID to the group identified by code.
func (s *groupServiceImpl) JoinGroup(
	ctx context.Context,
	code string,
	userID uuid.UUID,
) (*domain.Group, error) {
	code = domain.NormalizeJoinCode(code)
	if !domain.ValidJoinCode(code) {
		return nil, ErrInvalidCode
	}

	var (
		group  *domain.Group
		rejoin bool
	)
	err := s.stores.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.stores.Users.GetByID(ctx, userID); err != nil {
			return NewServiceError("join_group", "failed to resolve user", err)
		}

		g, err := s.stores.Groups.GetByCode(ctx, code)
		if store.IsNotFoundError(err) {
			return ErrInvalidCode
		}
		if err != nil {
			return NewServiceError("join_group", "failed to look up code", err)
		}

		visible, err := s.stores.Groups.IsVisible(ctx, g.ID, userID)
		if err != nil {
			return NewServiceError("join_group", "failed to check dashboard", err)
		}

		if g.HasMember(userID) {
			if visible {
				return ErrAlreadyMember
			}
			// A member who hid the group gets it back without a second
			// entry in the member list.
			rejoin = true
		} else if err := s.stores.Groups.AddMember(ctx, g.ID, userID); err != nil {
			return NewServiceError("join_group", "failed to add member", err)
		}

		if err := s.stores.Groups.Show(ctx, g.ID, userID, store.DashboardAppend); err != nil {
			return NewServiceError("join_group", "failed to show group", err)
		}

		group, err = s.stores.Groups.GetByID(ctx, g.ID)
		if err != nil {
			return NewServiceError("join_group", "failed to reload group", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Debug("join group rejected",
			"error", err,
			"user_id", userID)
		return nil, err
	}

	s.logger.Info("user joined group",
		"group_id", group.ID,
		"user_id", userID,
		"rejoin", rejoin)
	s.pub.publish(ctx, events.GroupJoined, group.ID, struct {
		UserID uuid.UUID `json:"user_id"`
		Rejoin bool      `json:"rejoin"`
	}{userID, rejoin})

	return group, nil
}

// LeaveGroup removes the group from userID's dashboard.
func (s *groupServiceImpl) LeaveGroup(ctx context.Context, groupID, userID uuid.UUID) error {
	var (
		removed bool
		cleared int
	)
	err := s.stores.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
		g, err := s.stores.Groups.GetByID(ctx, groupID)
		if err != nil {
			return NewServiceError("leave_group", "failed to load group", err)
		}
		if !g.HasMember(userID) {
			return ErrGroupNotFound
		}

		if err := s.stores.Groups.Hide(ctx, groupID, userID); err != nil {
			return NewServiceError("leave_group", "failed to hide group", err)
		}

		if s.cfg.LeaveMode != LeaveRemove || g.IsCreator(userID) {
			return nil
		}

		if err := s.stores.Groups.RemoveMember(ctx, groupID, userID); err != nil {
			return NewServiceError("leave_group", "failed to remove member", err)
		}
		removed = true

		cleared, err = s.stores.Topics.ClearResponsible(ctx, groupID, userID)
		if err != nil {
			return NewServiceError("leave_group", "failed to clear assignments", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("user left group",
		"group_id", groupID,
		"user_id", userID,
		"mode", s.cfg.LeaveMode,
		"removed", removed,
		"cleared_topics", cleared)
	s.pub.publish(ctx, events.GroupLeft, groupID, struct {
		UserID        uuid.UUID `json:"user_id"`
		Removed       bool      `json:"removed"`
		ClearedTopics int       `json:"cleared_topics"`
	}{userID, removed, cleared})

	return nil
}

// ListGroups returns the user's dashboard.
func (s *groupServiceImpl) ListGroups(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error) {
	groups, err := s.stores.Groups.ListVisible(ctx, userID)
	if err != nil {
		return nil, NewServiceError("list_groups", "failed to list groups", err)
	}
	return groups, nil
}

// CheckAccess verifies the group is on the user's dashboard.
func (s *groupServiceImpl) CheckAccess(ctx context.Context, groupID, userID uuid.UUID) error {
	visible, err := s.stores.Groups.IsVisible(ctx, groupID, userID)
	if err != nil {
		return NewServiceError("check_access", "failed to check dashboard", err)
	}
	if !visible {
		return ErrGroupNotFound
	}
	return nil
}
