package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/domain"
	"github.com/phrazzld/studygroup-api/internal/events"
)

// TopicInput carries the fields of a new topic. An empty Priority means
// domain.DefaultPriority; uuid.Nil ResponsibleID means unassigned.
type TopicInput struct {
	Title         string
	Priority      domain.Priority
	ResponsibleID uuid.UUID
}

// TopicQuery narrows and orders ListTopics results.
type TopicQuery struct {
	Filter     domain.TopicFilter
	ByPriority bool
}

// StudyService manages a group's study lists, topics and comments.
type StudyService interface {
	// CreateStudyList appends an empty list to the group.
	CreateStudyList(ctx context.Context, groupID uuid.UUID, name string) (*domain.StudyList, error)

	// CreateTopic appends a not-started topic to a list of the group.
	// Returns ErrListNotFound if the list is not in the group. A responsible
	// who is not a member of the group is dropped and the topic is created
	// unassigned; this is lenient on purpose and never an error.
	CreateTopic(ctx context.Context, groupID, listID uuid.UUID, input TopicInput) (*domain.Topic, error)

	// GetTopic returns a topic held by a list of the group.
	GetTopic(ctx context.Context, groupID, topicID uuid.UUID) (*domain.Topic, error)

	// ListTopics returns a list's topics filtered and optionally sorted by priority.
	ListTopics(ctx context.Context, groupID, listID uuid.UUID, query TopicQuery) ([]*domain.Topic, error)

	// UpdateTopicStatus replaces only the topic's status.
	// Returns ErrTopicNotFound if no list of the group holds the topic.
	UpdateTopicStatus(ctx context.Context, groupID, topicID uuid.UUID, status domain.TopicStatus) (*domain.Topic, error)

	// UpdateTopicResponsible sets (or, with uuid.Nil, clears) only the
	// topic's responsible. Returns ErrTopicNotFound, or ErrNotMember when the
	// user is not in the group.
	UpdateTopicResponsible(ctx context.Context, groupID, topicID, responsibleID uuid.UUID) (*domain.Topic, error)

	// DeleteTopic removes the topic and its comments from whichever list
	// holds it. It runs unconditionally; confirmation is the caller's job.
	DeleteTopic(ctx context.Context, groupID, topicID uuid.UUID) error

	// AddComment appends a comment stamped with the current time.
	// Returns ErrTopicNotFound, or ErrEmptyText when text is blank.
	AddComment(ctx context.Context, groupID, topicID, authorID uuid.UUID, text string) (*domain.Comment, error)
}

// studyServiceImpl implements the StudyService interface
type studyServiceImpl struct {
	stores Stores
	clock  Clock
	pub    publisher
	logger *slog.Logger
}

// NewStudyService creates a new StudyService.
// It returns an error if any of the required dependencies are nil.
func NewStudyService(
	stores Stores,
	emitter events.EventEmitter,
	clock Clock,
	logger *slog.Logger,
) (StudyService, error) {
	if err := stores.validate("create_service"); err != nil {
		return nil, err
	}
	if emitter == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "emitter cannot be nil"}
	}
	if clock == nil {
		clock = SystemClock
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "study_service")

	return &studyServiceImpl{
		stores: stores,
		clock:  clock,
		pub:    publisher{emitter: emitter, clock: clock, logger: logger},
		logger: logger,
	}, nil
}

// CreateStudyList appends a new list to the group.
func (s *studyServiceImpl) CreateStudyList(
	ctx context.Context,
	groupID uuid.UUID,
	name string,
) (*domain.StudyList, error) {
	list, err := domain.NewStudyList(groupID, name)
	if err != nil {
		return nil, NewServiceError("create_study_list", "invalid study list", err)
	}

	if err := s.stores.Lists.Create(ctx, list); err != nil {
		return nil, NewServiceError("create_study_list", "failed to save study list", err)
	}

	s.logger.Info("study list created",
		"group_id", groupID,
		"list_id", list.ID)
	s.pub.publish(ctx, events.StudyListCreated, groupID, struct {
		ListID uuid.UUID `json:"list_id"`
		Name   string    `json:"name"`
	}{list.ID, list.Name})

	return list, nil
}

// listInGroup loads the list and checks it belongs to groupID.
func (s *studyServiceImpl) listInGroup(ctx context.Context, groupID, listID uuid.UUID) (*domain.StudyList, error) {
	if _, err := s.stores.Groups.GetByID(ctx, groupID); err != nil {
		return nil, NewServiceError("load_list", "failed to load group", err)
	}
	list, err := s.stores.Lists.GetByID(ctx, listID)
	if err != nil {
		return nil, NewServiceError("load_list", "failed to load study list", err)
	}
	if list.GroupID != groupID {
		return nil, ErrListNotFound
	}
	return list, nil
}

// topicInGroup loads the topic and checks a list of groupID holds it.
func (s *studyServiceImpl) topicInGroup(
	ctx context.Context,
	groupID, topicID uuid.UUID,
) (*domain.Group, *domain.Topic, error) {
	g, err := s.stores.Groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, nil, NewServiceError("load_topic", "failed to load group", err)
	}
	topic, err := s.stores.Topics.GetByID(ctx, topicID)
	if err != nil {
		return nil, nil, NewServiceError("load_topic", "failed to load topic", err)
	}
	list, err := s.stores.Lists.GetByID(ctx, topic.StudyListID)
	if err != nil || list.GroupID != groupID {
		return nil, nil, ErrTopicNotFound
	}
	return g, topic, nil
}

// CreateTopic appends a topic to a study list of the group.
func (s *studyServiceImpl) CreateTopic(
	ctx context.Context,
	groupID, listID uuid.UUID,
	input TopicInput,
) (*domain.Topic, error) {
	var topic *domain.Topic

	err := s.stores.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.listInGroup(ctx, groupID, listID); err != nil {
			return err
		}
		g, err := s.stores.Groups.GetByID(ctx, groupID)
		if err != nil {
			return NewServiceError("create_topic", "failed to load group", err)
		}

		t, err := domain.NewTopic(listID, input.Title, input.Priority)
		if err != nil {
			return NewServiceError("create_topic", "invalid topic", err)
		}

		if input.ResponsibleID != uuid.Nil {
			if g.HasMember(input.ResponsibleID) {
				t.ResponsibleID = input.ResponsibleID
			} else {
				s.logger.Debug("dropping responsible who is not a member",
					"group_id", groupID,
					"user_id", input.ResponsibleID)
			}
		}

		if err := s.stores.Topics.Create(ctx, t); err != nil {
			return NewServiceError("create_topic", "failed to save topic", err)
		}
		topic = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("topic created",
		"group_id", groupID,
		"list_id", listID,
		"topic_id", topic.ID)
	s.pub.publish(ctx, events.TopicCreated, groupID, struct {
		ListID   uuid.UUID       `json:"list_id"`
		TopicID  uuid.UUID       `json:"topic_id"`
		Priority domain.Priority `json:"priority"`
	}{listID, topic.ID, topic.Priority})

	return topic, nil
}

// GetTopic returns the topic if the group holds it.
func (s *studyServiceImpl) GetTopic(ctx context.Context, groupID, topicID uuid.UUID) (*domain.Topic, error) {
	var topic *domain.Topic
	err := s.stores.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
		_, t, err := s.topicInGroup(ctx, groupID, topicID)
		topic = t
		return err
	})
	if err != nil {
		return nil, err
	}
	return topic, nil
}

// ListTopics returns the list's topics narrowed by query.
func (s *studyServiceImpl) ListTopics(
	ctx context.Context,
	groupID, listID uuid.UUID,
	query TopicQuery,
) ([]*domain.Topic, error) {
	var topics []*domain.Topic

	err := s.stores.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.listInGroup(ctx, groupID, listID); err != nil {
			return err
		}
		all, err := s.stores.Topics.ListByStudyList(ctx, listID)
		if err != nil {
			return NewServiceError("list_topics", "failed to load topics", err)
		}
		topics = all
		return nil
	})
	if err != nil {
		return nil, err
	}

	topics = domain.FilterTopics(topics, query.Filter)
	if query.ByPriority {
		topics = domain.SortTopicsByPriority(topics)
	}
	return topics, nil
}

// UpdateTopicStatus replaces the topic's status.
func (s *studyServiceImpl) UpdateTopicStatus(
	ctx context.Context,
	groupID, topicID uuid.UUID,
	status domain.TopicStatus,
) (*domain.Topic, error) {
	if !status.IsValid() {
		return nil, NewServiceError("update_topic_status", "invalid status", domain.NewValidationError(
			"status", "must be one of not_started, in_review, studied", domain.ErrInvalidTopicStatus))
	}

	var (
		topic    *domain.Topic
		previous domain.TopicStatus
	)
	err := s.stores.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
		_, t, err := s.topicInGroup(ctx, groupID, topicID)
		if err != nil {
			return err
		}
		previous = t.Status
		if err := t.UpdateStatus(status); err != nil {
			return NewServiceError("update_topic_status", "invalid status", err)
		}
		if err := s.stores.Topics.Update(ctx, t); err != nil {
			return NewServiceError("update_topic_status", "failed to save topic", err)
		}
		topic = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("topic status updated",
		"group_id", groupID,
		"topic_id", topicID,
		"from", previous,
		"to", status)
	s.pub.publish(ctx, events.TopicStatusChanged, groupID, struct {
		TopicID uuid.UUID          `json:"topic_id"`
		From    domain.TopicStatus `json:"from"`
		To      domain.TopicStatus `json:"to"`
	}{topicID, previous, status})

	return topic, nil
}

// UpdateTopicResponsible sets or clears the topic's responsible.
func (s *studyServiceImpl) UpdateTopicResponsible(
	ctx context.Context,
	groupID, topicID, responsibleID uuid.UUID,
) (*domain.Topic, error) {
	var topic *domain.Topic

	err := s.stores.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
		g, t, err := s.topicInGroup(ctx, groupID, topicID)
		if err != nil {
			return err
		}
		if responsibleID != uuid.Nil && !g.HasMember(responsibleID) {
			return ErrNotMember
		}

		t.ResponsibleID = responsibleID
		if err := s.stores.Topics.Update(ctx, t); err != nil {
			return NewServiceError("update_topic_responsible", "failed to save topic", err)
		}
		topic = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("topic responsible updated",
		"group_id", groupID,
		"topic_id", topicID,
		"responsible_id", responsibleID)
	s.pub.publish(ctx, events.TopicResponsibleChanged, groupID, struct {
		TopicID       uuid.UUID `json:"topic_id"`
		ResponsibleID uuid.UUID `json:"responsible_id"`
	}{topicID, responsibleID})

	return topic, nil
}

// DeleteTopic removes the topic from its list.
func (s *studyServiceImpl) DeleteTopic(ctx context.Context, groupID, topicID uuid.UUID) error {
	var title string

	err := s.stores.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
		_, t, err := s.topicInGroup(ctx, groupID, topicID)
		if err != nil {
			return err
		}
		title = t.Title
		if err := s.stores.Topics.Delete(ctx, topicID); err != nil {
			return NewServiceError("delete_topic", "failed to delete topic", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("topic deleted",
		"group_id", groupID,
		"topic_id", topicID)
	s.pub.publish(ctx, events.TopicDeleted, groupID, struct {
		TopicID uuid.UUID `json:"topic_id"`
		Title   string    `json:"title"`
	}{topicID, title})

	return nil
}

// AddComment appends a comment to the topic.
func (s *studyServiceImpl) AddComment(
	ctx context.Context,
	groupID, topicID, authorID uuid.UUID,
	text string,
) (*domain.Comment, error) {
	var comment *domain.Comment

	err := s.stores.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, _, err := s.topicInGroup(ctx, groupID, topicID); err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return ErrEmptyText
		}

		c, err := domain.NewComment(topicID, authorID, text, s.clock())
		if err != nil {
			return NewServiceError("add_comment", "invalid comment", err)
		}
		if err := s.stores.Comments.Create(ctx, c); err != nil {
			return NewServiceError("add_comment", "failed to save comment", err)
		}
		comment = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("comment added",
		"group_id", groupID,
		"topic_id", topicID,
		"comment_id", comment.ID)
	s.pub.publish(ctx, events.CommentAdded, groupID, struct {
		TopicID   uuid.UUID `json:"topic_id"`
		CommentID uuid.UUID `json:"comment_id"`
	}{topicID, comment.ID})

	return comment, nil
}
