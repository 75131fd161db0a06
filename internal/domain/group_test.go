package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewGroup(t *testing.T) {
	t.Parallel()

	creator := uuid.New()
	group, err := NewGroup(" React Study ", " hooks ", " react101 ", creator)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if group.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if group.Name != "React Study" || group.Description != "hooks" {
		t.Errorf("Expected trimmed name and description, got %q / %q", group.Name, group.Description)
	}

	if group.Code != "REACT101" {
		t.Errorf("Expected normalized code REACT101, got %s", group.Code)
	}

	if len(group.MemberIDs) != 1 || group.MemberIDs[0] != creator {
		t.Errorf("Expected members to be exactly the creator, got %v", group.MemberIDs)
	}

	if len(group.StudyListIDs) != 0 || len(group.EventIDs) != 0 {
		t.Error("Expected empty study lists and events")
	}

	if group.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}
}

func TestGroupValidate(t *testing.T) {
	t.Parallel()

	creator := uuid.New()
	valid := Group{
		ID:        uuid.New(),
		Name:      "Design Patterns",
		Code:      "DESIGNP202",
		CreatorID: creator,
		MemberIDs: []uuid.UUID{creator},
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(g *Group)
		wantErr error
	}{
		{"nil id", func(g *Group) { g.ID = uuid.Nil }, ErrEmptyGroupID},
		{"blank name", func(g *Group) { g.Name = "  " }, ErrEmptyInput},
		{"bad code", func(g *Group) { g.Code = "ab" }, ErrInvalidJoinCode},
		{"lower case code", func(g *Group) { g.Code = "react101" }, ErrInvalidJoinCode},
		{"nil creator", func(g *Group) { g.CreatorID = uuid.Nil }, ErrEmptyGroupCreator},
		{"creator missing", func(g *Group) { g.MemberIDs = []uuid.UUID{uuid.New()} }, ErrCreatorNotMember},
		{"duplicate member", func(g *Group) { g.MemberIDs = []uuid.UUID{creator, creator} }, ErrDuplicateGroupMember},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := valid.Clone()
			tc.mutate(g)
			if err := g.Validate(); !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestGroupClone(t *testing.T) {
	t.Parallel()

	creator := uuid.New()
	g, err := NewGroup("Data Structures", "", "DATA606", creator)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	c := g.Clone()
	c.MemberIDs = append(c.MemberIDs, uuid.New())
	c.MemberIDs[0] = uuid.New()

	if len(g.MemberIDs) != 1 || g.MemberIDs[0] != creator {
		t.Error("Expected clone mutations not to affect the original")
	}

	if !g.HasMember(creator) || !g.IsCreator(creator) {
		t.Error("Expected creator to be member and creator")
	}
}
