package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// TopicStatus represents how far the group has progressed on a topic.
type TopicStatus string

// Possible topic status values
const (
	TopicStatusNotStarted TopicStatus = "not_started"
	TopicStatusInReview   TopicStatus = "in_review"
	TopicStatusStudied    TopicStatus = "studied"
)

// IsValid reports whether s is a known status.
func (s TopicStatus) IsValid() bool {
	switch s {
	case TopicStatusNotStarted, TopicStatusInReview, TopicStatusStudied:
		return true
	default:
		return false
	}
}

// Priority ranks topics within a study list.
type Priority string

// Possible priority values
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// DefaultPriority is used when a topic is created without one.
const DefaultPriority = PriorityMedium

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Rank orders priorities from most (0) to least urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Topic validation errors
var (
	ErrEmptyTopicID     = errors.New("topic ID cannot be empty")
	ErrEmptyTopicListID = errors.New("topic study list ID cannot be empty")
	ErrEmptyTopicTitle  = fmt.Errorf("%w: topic title", ErrEmptyInput)
)

// Topic is a unit of study material. ResponsibleID is uuid.Nil when nobody
// is assigned. CommentIDs is append-only and kept in creation order.
type Topic struct {
	ID            uuid.UUID   `json:"id"`
	StudyListID   uuid.UUID   `json:"study_list_id"`
	Title         string      `json:"title"`
	Status        TopicStatus `json:"status"`
	Priority      Priority    `json:"priority"`
	ResponsibleID uuid.UUID   `json:"responsible_id"`
	CommentIDs    []uuid.UUID `json:"comment_ids"`
}

// NewTopic creates a not-started Topic in the given study list.
// An empty priority falls back to DefaultPriority.
func NewTopic(studyListID uuid.UUID, title string, priority Priority) (*Topic, error) {
	if priority == "" {
		priority = DefaultPriority
	}

	topic := &Topic{
		ID:          uuid.New(),
		StudyListID: studyListID,
		Title:       strings.TrimSpace(title),
		Status:      TopicStatusNotStarted,
		Priority:    priority,
		CommentIDs:  []uuid.UUID{},
	}

	if err := topic.Validate(); err != nil {
		return nil, err
	}

	return topic, nil
}

// Validate checks if the Topic has valid data.
func (t *Topic) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTopicID
	}

	if t.StudyListID == uuid.Nil {
		return ErrEmptyTopicListID
	}

	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTopicTitle
	}

	if !t.Status.IsValid() {
		return ErrInvalidTopicStatus
	}

	if !t.Priority.IsValid() {
		return ErrInvalidPriority
	}

	return nil
}

// UpdateStatus replaces the topic's status.
// Returns an error if the new status is invalid.
func (t *Topic) UpdateStatus(status TopicStatus) error {
	if !status.IsValid() {
		return ErrInvalidTopicStatus
	}

	t.Status = status
	return nil
}

// HasResponsible reports whether someone is assigned to the topic.
func (t *Topic) HasResponsible() bool {
	return t.ResponsibleID != uuid.Nil
}

// Clone returns a copy that shares no slices with t.
func (t *Topic) Clone() *Topic {
	c := *t
	c.CommentIDs = slices.Clone(t.CommentIDs)
	return &c
}
