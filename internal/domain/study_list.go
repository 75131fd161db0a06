package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Study list validation errors
var (
	ErrEmptyStudyListID      = errors.New("study list ID cannot be empty")
	ErrEmptyStudyListGroupID = errors.New("study list group ID cannot be empty")
	ErrEmptyStudyListName    = fmt.Errorf("%w: study list name", ErrEmptyInput)
)

// StudyList is a named, ordered collection of topics inside a group.
// TopicIDs keeps insertion order and is never reordered automatically.
type StudyList struct {
	ID       uuid.UUID   `json:"id"`
	GroupID  uuid.UUID   `json:"group_id"`
	Name     string      `json:"name"`
	TopicIDs []uuid.UUID `json:"topic_ids"`
}

// NewStudyList creates an empty StudyList for the given group.
func NewStudyList(groupID uuid.UUID, name string) (*StudyList, error) {
	list := &StudyList{
		ID:       uuid.New(),
		GroupID:  groupID,
		Name:     strings.TrimSpace(name),
		TopicIDs: []uuid.UUID{},
	}

	if err := list.Validate(); err != nil {
		return nil, err
	}

	return list, nil
}

// Validate checks if the StudyList has valid data.
func (l *StudyList) Validate() error {
	if l.ID == uuid.Nil {
		return ErrEmptyStudyListID
	}

	if l.GroupID == uuid.Nil {
		return ErrEmptyStudyListGroupID
	}

	if strings.TrimSpace(l.Name) == "" {
		return ErrEmptyStudyListName
	}

	return nil
}

// Clone returns a copy that shares no slices with l.
func (l *StudyList) Clone() *StudyList {
	c := *l
	c.TopicIDs = slices.Clone(l.TopicIDs)
	return &c
}
