package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/avatar"
	"github.com/phrazzld/studygroup-api/internal/domain"
	"github.com/phrazzld/studygroup-api/internal/service"
	"github.com/phrazzld/studygroup-api/internal/service/confirm"
)

// Request payloads. Free text is sanitized by the handlers after
// validation, so blank-after-sanitizing input reaches the services and is
// rejected there.

// CreateGroupRequest defines the payload for creating a group.
type CreateGroupRequest struct {
	Name        string `json:"name"        validate:"required,max=120"`
	Description string `json:"description" validate:"max=1000"`
}

// JoinGroupRequest defines the payload for joining a group by code.
type JoinGroupRequest struct {
	Code string `json:"code" validate:"required,max=32"`
}

// CreateStudyListRequest defines the payload for adding a study list.
type CreateStudyListRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

// CreateTopicRequest defines the payload for adding a topic to a list.
type CreateTopicRequest struct {
	Title    string `json:"title"    validate:"required,max=200"`
	Priority string `json:"priority" validate:"omitempty,oneof=high medium low"`
	// ResponsibleID is dropped silently when the user is not a member.
	ResponsibleID string `json:"responsible_id" validate:"omitempty,uuid"`
}

// UpdateTopicStatusRequest defines the payload for changing a topic's status.
type UpdateTopicStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=not_started in_review studied"`
}

// UpdateTopicResponsibleRequest defines the payload for (re)assigning a
// topic. An empty ResponsibleID clears the assignment.
type UpdateTopicResponsibleRequest struct {
	ResponsibleID string `json:"responsible_id" validate:"omitempty,uuid"`
}

// AddCommentRequest defines the payload for commenting on a topic.
type AddCommentRequest struct {
	Text string `json:"text" validate:"max=2000"`
}

// CreateEventRequest defines the payload for scheduling an event.
type CreateEventRequest struct {
	Name     string    `json:"name"      validate:"required,max=200"`
	Location string    `json:"location"  validate:"required,max=200"`
	DateTime time.Time `json:"date_time" validate:"required"`
}

// UserResponse is a user as rendered to clients.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url"`
}

// GroupSummaryResponse is a dashboard entry.
type GroupSummaryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Code        string    `json:"code"`
	CreatorID   uuid.UUID `json:"creator_id"`
	MemberCount int       `json:"member_count"`
	IsCreator   bool      `json:"is_creator"`
	CreatedAt   time.Time `json:"created_at"`
}

// GroupDetailResponse is a fully resolved group page.
type GroupDetailResponse struct {
	GroupSummaryResponse
	Members        []UserResponse      `json:"members"`
	StudyLists     []StudyListResponse `json:"study_lists"`
	UpcomingEvents []EventResponse     `json:"upcoming_events"`
	PastEvents     []EventResponse     `json:"past_events"`
}

// StudyListResponse is a study list with its topics.
type StudyListResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Progress       domain.Progress `json:"progress"`
	PercentStudied float64         `json:"percent_studied"`
	Topics         []TopicResponse `json:"topics"`
}

// TopicResponse is a topic. Responsible and Comments are only filled in
// the group page.
type TopicResponse struct {
	ID            uuid.UUID          `json:"id"`
	StudyListID   uuid.UUID          `json:"study_list_id"`
	Title         string             `json:"title"`
	Status        domain.TopicStatus `json:"status"`
	Priority      domain.Priority    `json:"priority"`
	ResponsibleID *uuid.UUID         `json:"responsible_id"`
	Responsible   *UserResponse      `json:"responsible,omitempty"`
	CommentCount  int                `json:"comment_count"`
	Comments      []CommentResponse  `json:"comments,omitempty"`
}

// CommentResponse is a comment on a topic.
type CommentResponse struct {
	ID        uuid.UUID     `json:"id"`
	TopicID   uuid.UUID     `json:"topic_id"`
	AuthorID  uuid.UUID     `json:"author_id"`
	Author    *UserResponse `json:"author,omitempty"`
	Text      string        `json:"text"`
	CreatedAt time.Time     `json:"created_at"`
}

// EventResponse is a scheduled study event.
type EventResponse struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Location  string        `json:"location"`
	DateTime  time.Time     `json:"date_time"`
	CreatorID uuid.UUID     `json:"creator_id"`
	Creator   *UserResponse `json:"creator,omitempty"`
	IsPast    bool          `json:"is_past"`
}

// PendingConfirmationResponse is returned by DELETE requests.
type PendingConfirmationResponse struct {
	Token     string       `json:"token"`
	Kind      confirm.Kind `json:"kind"`
	TargetID  uuid.UUID    `json:"target_id"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// ConfirmationResultResponse reports a confirmed delete.
type ConfirmationResultResponse struct {
	Kind     confirm.Kind `json:"kind"`
	TargetID uuid.UUID    `json:"target_id"`
	Status   string       `json:"status"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, AvatarURL: avatar.URL(u)}
}

// lookupUser resolves id through users, nil when unknown.
func lookupUser(users map[uuid.UUID]*domain.User, id uuid.UUID) *UserResponse {
	u, ok := users[id]
	if !ok || u == nil {
		return nil
	}
	resp := userToResponse(u)
	return &resp
}

func groupToSummary(g *domain.Group, viewerID uuid.UUID) GroupSummaryResponse {
	return GroupSummaryResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Code:        g.Code,
		CreatorID:   g.CreatorID,
		MemberCount: len(g.MemberIDs),
		IsCreator:   g.IsCreator(viewerID),
		CreatedAt:   g.CreatedAt,
	}
}

func topicToResponse(t *domain.Topic) TopicResponse {
	resp := TopicResponse{
		ID:           t.ID,
		StudyListID:  t.StudyListID,
		Title:        t.Title,
		Status:       t.Status,
		Priority:     t.Priority,
		CommentCount: len(t.CommentIDs),
	}
	if t.HasResponsible() {
		id := t.ResponsibleID
		resp.ResponsibleID = &id
	}
	return resp
}

func commentToResponse(c *domain.Comment, users map[uuid.UUID]*domain.User) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		TopicID:   c.TopicID,
		AuthorID:  c.AuthorID,
		Author:    lookupUser(users, c.AuthorID),
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

func eventToResponse(e *domain.StudyEvent, isPast bool, users map[uuid.UUID]*domain.User) EventResponse {
	return EventResponse{
		ID:        e.ID,
		Name:      e.Name,
		Location:  e.Location,
		DateTime:  e.DateTime,
		CreatorID: e.CreatorID,
		Creator:   lookupUser(users, e.CreatorID),
		IsPast:    isPast,
	}
}

func viewToResponse(view *service.GroupView, viewerID uuid.UUID) GroupDetailResponse {
	resp := GroupDetailResponse{
		GroupSummaryResponse: groupToSummary(view.Group, viewerID),
		Members:              make([]UserResponse, 0, len(view.Members)),
		StudyLists:           make([]StudyListResponse, 0, len(view.Lists)),
		UpcomingEvents:       make([]EventResponse, 0, len(view.Upcoming)),
		PastEvents:           make([]EventResponse, 0, len(view.Past)),
	}

	for _, m := range view.Members {
		resp.Members = append(resp.Members, userToResponse(m))
	}

	for _, lv := range view.Lists {
		list := StudyListResponse{
			ID:             lv.List.ID,
			Name:           lv.List.Name,
			Progress:       lv.Progress,
			PercentStudied: lv.Progress.PercentStudied(),
			Topics:         make([]TopicResponse, 0, len(lv.Topics)),
		}
		for _, tv := range lv.Topics {
			topic := topicToResponse(tv.Topic)
			if tv.Topic.HasResponsible() {
				topic.Responsible = lookupUser(view.Users, tv.Topic.ResponsibleID)
			}
			topic.Comments = make([]CommentResponse, 0, len(tv.Comments))
			for _, c := range tv.Comments {
				topic.Comments = append(topic.Comments, commentToResponse(c, view.Users))
			}
			list.Topics = append(list.Topics, topic)
		}
		resp.StudyLists = append(resp.StudyLists, list)
	}

	for _, e := range view.Upcoming {
		resp.UpcomingEvents = append(resp.UpcomingEvents, eventToResponse(e, false, view.Users))
	}
	for _, e := range view.Past {
		resp.PastEvents = append(resp.PastEvents, eventToResponse(e, true, view.Users))
	}

	return resp
}

func pendingToResponse(p confirm.Pending) PendingConfirmationResponse {
	return PendingConfirmationResponse{
		Token:     p.Token,
		Kind:      p.Kind,
		TargetID:  p.TargetID,
		ExpiresAt: p.ExpiresAt,
	}
}
