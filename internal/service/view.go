package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/domain"
)

// GroupView is a fully resolved snapshot of a group for rendering.
type GroupView struct {
	Group    *domain.Group
	Members  []*domain.User
	Lists    []StudyListView
	Upcoming []*domain.StudyEvent
	Past     []*domain.StudyEvent
	// Users resolves every id the snapshot refers to: members,
	// responsibles, comment authors and event creators.
	Users map[uuid.UUID]*domain.User
}

// StudyListView is a study list with its topics resolved.
type StudyListView struct {
	List     *domain.StudyList
	Topics   []TopicView
	Progress domain.Progress
}

// TopicView is a topic with its comments resolved.
type TopicView struct {
	Topic    *domain.Topic
	Comments []*domain.Comment
}

// GetGroup assembles the snapshot inside a transaction so it reflects a
// single consistent state.
func (s *groupServiceImpl) GetGroup(ctx context.Context, groupID, userID uuid.UUID) (*GroupView, error) {
	var view *GroupView

	err := s.stores.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.CheckAccess(ctx, groupID, userID); err != nil {
			return err
		}

		g, err := s.stores.Groups.GetByID(ctx, groupID)
		if err != nil {
			return NewServiceError("get_group", "failed to load group", err)
		}

		members, err := s.stores.Users.GetMany(ctx, g.MemberIDs)
		if err != nil {
			return NewServiceError("get_group", "failed to resolve members", err)
		}

		lists, err := s.stores.Lists.ListByGroup(ctx, groupID)
		if err != nil {
			return NewServiceError("get_group", "failed to load study lists", err)
		}

		listViews := make([]StudyListView, 0, len(lists))
		for _, l := range lists {
			lv, err := s.resolveList(ctx, l)
			if err != nil {
				return err
			}
			listViews = append(listViews, lv)
		}

		evs, err := s.stores.Events.ListByGroup(ctx, groupID)
		if err != nil {
			return NewServiceError("get_group", "failed to load events", err)
		}
		upcoming, past := domain.SplitEvents(evs, s.clock())

		view = &GroupView{
			Group:    g,
			Members:  members,
			Lists:    listViews,
			Upcoming: upcoming,
			Past:     past,
		}
		view.Users, err = s.resolveUsers(ctx, view, evs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *groupServiceImpl) resolveList(ctx context.Context, l *domain.StudyList) (StudyListView, error) {
	topics, err := s.stores.Topics.ListByStudyList(ctx, l.ID)
	if err != nil {
		return StudyListView{}, NewServiceError("get_group", "failed to load topics", err)
	}

	topicViews := make([]TopicView, 0, len(topics))
	for _, t := range topics {
		comments, err := s.stores.Comments.ListByTopic(ctx, t.ID)
		if err != nil {
			return StudyListView{}, NewServiceError("get_group", "failed to load comments", err)
		}
		topicViews = append(topicViews, TopicView{Topic: t, Comments: comments})
	}

	return StudyListView{
		List:     l,
		Topics:   topicViews,
		Progress: domain.TopicProgress(topics),
	}, nil
}

func (s *groupServiceImpl) resolveUsers(
	ctx context.Context,
	view *GroupView,
	evs []*domain.StudyEvent,
) (map[uuid.UUID]*domain.User, error) {
	users := make(map[uuid.UUID]*domain.User, len(view.Members))
	for _, m := range view.Members {
		users[m.ID] = m
	}

	var refs []uuid.UUID
	for _, lv := range view.Lists {
		for _, tv := range lv.Topics {
			if tv.Topic.HasResponsible() {
				refs = append(refs, tv.Topic.ResponsibleID)
			}
			for _, c := range tv.Comments {
				refs = append(refs, c.AuthorID)
			}
		}
	}
	for _, e := range evs {
		refs = append(refs, e.CreatorID)
	}

	for _, id := range refs {
		if _, ok := users[id]; ok {
			continue
		}
		u, err := s.stores.Users.GetByID(ctx, id)
		if err != nil {
			return nil, NewServiceError("get_group", "failed to resolve user", err)
		}
		users[id] = u
	}
	return users, nil
}
