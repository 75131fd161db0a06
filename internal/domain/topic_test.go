package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewTopic(t *testing.T) {
	t.Parallel()

	listID := uuid.New()
	topic, err := NewTopic(listID, "  useState e useEffect ", PriorityHigh)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if topic.Status != TopicStatusNotStarted {
		t.Errorf("Expected status %s, got %s", TopicStatusNotStarted, topic.Status)
	}

	if topic.Priority != PriorityHigh {
		t.Errorf("Expected priority %s, got %s", PriorityHigh, topic.Priority)
	}

	if topic.Title != "useState e useEffect" {
		t.Errorf("Expected trimmed title, got %q", topic.Title)
	}

	if topic.HasResponsible() {
		t.Error("Expected no responsible on a new topic")
	}

	defaulted, err := NewTopic(listID, "Singleton", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if defaulted.Priority != DefaultPriority {
		t.Errorf("Expected default priority %s, got %s", DefaultPriority, defaulted.Priority)
	}

	_, err = NewTopic(listID, "   ", PriorityLow)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Expected empty input error, got %v", err)
	}

	_, err = NewTopic(listID, "Factory", Priority("urgent"))
	if err != ErrInvalidPriority {
		t.Errorf("Expected error %v, got %v", ErrInvalidPriority, err)
	}

	_, err = NewTopic(uuid.Nil, "Factory", PriorityLow)
	if err != ErrEmptyTopicListID {
		t.Errorf("Expected error %v, got %v", ErrEmptyTopicListID, err)
	}
}

func TestTopicUpdateStatus(t *testing.T) {
	t.Parallel()

	topic, err := NewTopic(uuid.New(), "Builder", PriorityMedium)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := topic.UpdateStatus(TopicStatusStudied); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if topic.Status != TopicStatusStudied {
		t.Errorf("Expected status %s, got %s", TopicStatusStudied, topic.Status)
	}

	if err := topic.UpdateStatus(TopicStatus("done")); err != ErrInvalidTopicStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidTopicStatus, err)
	}
	if topic.Status != TopicStatusStudied {
		t.Error("Expected invalid update to leave status unchanged")
	}
}

func TestPriorityRank(t *testing.T) {
	t.Parallel()

	if !(PriorityHigh.Rank() < PriorityMedium.Rank() && PriorityMedium.Rank() < PriorityLow.Rank()) {
		t.Error("Expected high < medium < low ranking")
	}
}

func TestNewComment(t *testing.T) {
	t.Parallel()

	topicID, authorID := uuid.New(), uuid.New()
	comment, err := NewComment(topicID, authorID, " Podemos revisar? ", fixedTime)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if comment.Text != "Podemos revisar?" {
		t.Errorf("Expected trimmed text, got %q", comment.Text)
	}

	if !comment.CreatedAt.Equal(fixedTime) {
		t.Errorf("Expected CreatedAt %v, got %v", fixedTime, comment.CreatedAt)
	}

	_, err = NewComment(topicID, authorID, " \t\n", fixedTime)
	if err != ErrEmptyCommentText || !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Expected error %v, got %v", ErrEmptyCommentText, err)
	}

	_, err = NewComment(topicID, uuid.Nil, "text", fixedTime)
	if err != ErrEmptyCommentAuthorID {
		t.Errorf("Expected error %v, got %v", ErrEmptyCommentAuthorID, err)
	}
}
