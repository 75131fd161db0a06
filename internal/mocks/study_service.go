package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/domain"
	"github.com/phrazzld/studygroup-api/internal/service"
)

// MockStudyService implements service.StudyService for testing
type MockStudyService struct {
	CreateStudyListFn        func(ctx context.Context, groupID uuid.UUID, name string) (*domain.StudyList, error)
	CreateTopicFn            func(ctx context.Context, groupID, listID uuid.UUID, input service.TopicInput) (*domain.Topic, error)
	GetTopicFn               func(ctx context.Context, groupID, topicID uuid.UUID) (*domain.Topic, error)
	ListTopicsFn             func(ctx context.Context, groupID, listID uuid.UUID, query service.TopicQuery) ([]*domain.Topic, error)
	UpdateTopicStatusFn      func(ctx context.Context, groupID, topicID uuid.UUID, status domain.TopicStatus) (*domain.Topic, error)
	UpdateTopicResponsibleFn func(ctx context.Context, groupID, topicID, responsibleID uuid.UUID) (*domain.Topic, error)
	DeleteTopicFn            func(ctx context.Context, groupID, topicID uuid.UUID) error
	AddCommentFn             func(ctx context.Context, groupID, topicID, authorID uuid.UUID, text string) (*domain.Comment, error)

	// Default return values
	List         *domain.StudyList
	Topic        *domain.Topic
	Topics       []*domain.Topic
	Comment      *domain.Comment
	DefaultError error
}

var _ service.StudyService = (*MockStudyService)(nil)

// CreateStudyList implements the StudyService.CreateStudyList method
func (m *MockStudyService) CreateStudyList(ctx context.Context, groupID uuid.UUID, name string) (*domain.StudyList, error) {
	if m.CreateStudyListFn != nil {
		return m.CreateStudyListFn(ctx, groupID, name)
	}
	return m.List, m.DefaultError
}

// CreateTopic implements the StudyService.CreateTopic method
func (m *MockStudyService) CreateTopic(
	ctx context.Context,
	groupID, listID uuid.UUID,
	input service.TopicInput,
) (*domain.Topic, error) {
	if m.CreateTopicFn != nil {
		return m.CreateTopicFn(ctx, groupID, listID, input)
	}
	return m.Topic, m.DefaultError
}

// GetTopic implements the StudyService.GetTopic method
func (m *MockStudyService) GetTopic(ctx context.Context, groupID, topicID uuid.UUID) (*domain.Topic, error) {
	if m.GetTopicFn != nil {
		return m.GetTopicFn(ctx, groupID, topicID)
	}
	return m.Topic, m.DefaultError
}

// ListTopics implements the StudyService.ListTopics method
func (m *MockStudyService) ListTopics(
	ctx context.Context,
	groupID, listID uuid.UUID,
	query service.TopicQuery,
) ([]*domain.Topic, error) {
	if m.ListTopicsFn != nil {
		return m.ListTopicsFn(ctx, groupID, listID, query)
	}
	return m.Topics, m.DefaultError
}

// UpdateTopicStatus implements the StudyService.UpdateTopicStatus method
func (m *MockStudyService) UpdateTopicStatus(
	ctx context.Context,
	groupID, topicID uuid.UUID,
	status domain.TopicStatus,
) (*domain.Topic, error) {
	if m.UpdateTopicStatusFn != nil {
		return m.UpdateTopicStatusFn(ctx, groupID, topicID, status)
	}
	return m.Topic, m.DefaultError
}

// UpdateTopicResponsible implements the StudyService.UpdateTopicResponsible method
func (m *MockStudyService) UpdateTopicResponsible(
	ctx context.Context,
	groupID, topicID, responsibleID uuid.UUID,
) (*domain.Topic, error) {
	if m.UpdateTopicResponsibleFn != nil {
		return m.UpdateTopicResponsibleFn(ctx, groupID, topicID, responsibleID)
	}
	return m.Topic, m.DefaultError
}

// DeleteTopic implements the StudyService.DeleteTopic method
func (m *MockStudyService) DeleteTopic(ctx context.Context, groupID, topicID uuid.UUID) error {
	if m.DeleteTopicFn != nil {
		return m.DeleteTopicFn(ctx, groupID, topicID)
	}
	return m.DefaultError
}

// AddComment implements the StudyService.AddComment method
func (m *MockStudyService) AddComment(
	ctx context.Context,
	groupID, topicID, authorID uuid.UUID,
	text string,
) (*domain.Comment, error) {
	if m.AddCommentFn != nil {
		return m.AddCommentFn(ctx, groupID, topicID, authorID, text)
	}
	return m.Comment, m.DefaultError
}
