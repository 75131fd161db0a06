package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Group validation errors
var (
	ErrEmptyGroupID         = errors.New("group ID cannot be empty")
	ErrEmptyGroupName       = fmt.Errorf("%w: group name", ErrEmptyInput)
	ErrEmptyGroupCreator    = errors.New("group creator cannot be empty")
	ErrCreatorNotMember     = errors.New("group creator must be a member")
	ErrDuplicateGroupMember = errors.New("group member listed more than once")
)

// Group is a collaborative study circle. The creator is always the first
// member. StudyListIDs keeps insertion order; EventIDs is kept sorted
// ascending by event time by the store.
type Group struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description,omitempty"`
	Code         string      `json:"code"`
	CreatorID    uuid.UUID   `json:"creator_id"`
	MemberIDs    []uuid.UUID `json:"member_ids"`
	StudyListIDs []uuid.UUID `json:"study_list_ids"`
	EventIDs     []uuid.UUID `json:"event_ids"`
	CreatedAt    time.Time   `json:"created_at"`
}

// NewGroup creates a new Group whose only member is its creator.
// Returns an error if validation fails.
func NewGroup(name, description, code string, creatorID uuid.UUID) (*Group, error) {
	group := &Group{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(name),
		Description:  strings.TrimSpace(description),
		Code:         NormalizeJoinCode(code),
		CreatorID:    creatorID,
		MemberIDs:    []uuid.UUID{creatorID},
		StudyListIDs: []uuid.UUID{},
		EventIDs:     []uuid.UUID{},
		CreatedAt:    time.Now().UTC(),
	}

	if err := group.Validate(); err != nil {
		return nil, err
	}

	return group, nil
}

// Validate checks if the Group has valid data.
func (g *Group) Validate() error {
	if g.ID == uuid.Nil {
		return ErrEmptyGroupID
	}

	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyGroupName
	}

	if !ValidJoinCode(g.Code) {
		return ErrInvalidJoinCode
	}

	if g.CreatorID == uuid.Nil {
		return ErrEmptyGroupCreator
	}

	if !g.HasMember(g.CreatorID) {
		return ErrCreatorNotMember
	}

	seen := make(map[uuid.UUID]struct{}, len(g.MemberIDs))
	for _, id := range g.MemberIDs {
		if _, ok := seen[id]; ok {
			return ErrDuplicateGroupMember
		}
		seen[id] = struct{}{}
	}

	return nil
}

// HasMember reports whether userID is in the member list.
func (g *Group) HasMember(userID uuid.UUID) bool {
	return slices.Contains(g.MemberIDs, userID)
}

// IsCreator reports whether userID created the group.
func (g *Group) IsCreator(userID uuid.UUID) bool {
	return g.CreatorID == userID
}

// Clone returns a copy that shares no slices with g.
func (g *Group) Clone() *Group {
	c := *g
	c.MemberIDs = slices.Clone(g.MemberIDs)
	c.StudyListIDs = slices.Clone(g.StudyListIDs)
	c.EventIDs = slices.Clone(g.EventIDs)
	return &c
}
