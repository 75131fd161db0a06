package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Comment validation errors
var (
	ErrEmptyCommentID       = errors.New("comment ID cannot be empty")
	ErrEmptyCommentTopicID  = errors.New("comment topic ID cannot be empty")
	ErrEmptyCommentAuthorID = errors.New("comment author ID cannot be empty")
	ErrEmptyCommentText     = fmt.Errorf("%w: comment text", ErrEmptyInput)
)

// Comment is a note left on a topic. Comments are never edited or deleted
// individually.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	TopicID   uuid.UUID `json:"topic_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewComment creates a Comment stamped with createdAt.
// The text is trimmed; blank text is rejected with ErrEmptyCommentText.
func NewComment(topicID, authorID uuid.UUID, text string, createdAt time.Time) (*Comment, error) {
	comment := &Comment{
		ID:        uuid.New(),
		TopicID:   topicID,
		AuthorID:  authorID,
		Text:      strings.TrimSpace(text),
		CreatedAt: createdAt.UTC(),
	}

	if err := comment.Validate(); err != nil {
		return nil, err
	}

	return comment, nil
}

// Validate checks if the Comment has valid data.
func (c *Comment) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCommentID
	}

	if c.TopicID == uuid.Nil {
		return ErrEmptyCommentTopicID
	}

	if c.AuthorID == uuid.Nil {
		return ErrEmptyCommentAuthorID
	}

	if strings.TrimSpace(c.Text) == "" {
		return ErrEmptyCommentText
	}

	return nil
}
