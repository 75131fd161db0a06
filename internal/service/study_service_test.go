package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/domain"
	"github.com/phrazzld/studygroup-api/internal/events"
	"github.com/phrazzld/studygroup-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type studyFixture struct {
	*harness
	group *domain.Group
	list  *domain.StudyList
	topic *domain.Topic
}

func newStudyFixture(t *testing.T) *studyFixture {
	t.Helper()
	ctx := context.Background()
	h := newHarness(t, service.GroupConfig{})
	g := h.group(t, h.alice)
	h.join(t, g, h.bob)

	list, err := h.study.CreateStudyList(ctx, g.ID, "Hooks e Conceitos Avançados")
	require.NoError(t, err)
	topic, err := h.study.CreateTopic(ctx, g.ID, list.ID, service.TopicInput{
		Title:         "useState e useEffect",
		Priority:      domain.PriorityHigh,
		ResponsibleID: h.alice.ID,
	})
	require.NoError(t, err)

	return &studyFixture{harness: h, group: g, list: list, topic: topic}
}

func TestCreateStudyListAppends(t *testing.T) {
	ctx := context.Background()
	f := newStudyFixture(t)

	second, err := f.study.CreateStudyList(ctx, f.group.ID, "Padrões")
	require.NoError(t, err)
	assert.Empty(t, second.TopicIDs)

	got := f.reload(t, f.group)
	assert.Equal(t, []uuid.UUID{f.list.ID, second.ID}, got.StudyListIDs)

	_, err = f.study.CreateStudyList(ctx, f.group.ID, "  ")
	assert.ErrorIs(t, err, service.ErrEmptyInput)

	_, err = f.study.CreateStudyList(ctx, uuid.New(), "Nowhere")
	assert.ErrorIs(t, err, service.ErrGroupNotFound)

	assert.Len(t, f.reload(t, f.group).StudyListIDs, 2)
}

func TestCreateTopicDefaults(t *testing.T) {
	ctx := context.Background()
	f := newStudyFixture(t)

	topic, err := f.study.CreateTopic(ctx, f.group.ID, f.list.ID, service.TopicInput{Title: "Renderização Condicional"})
	require.NoError(t, err)

	assert.Equal(t, domain.TopicStatusNotStarted, topic.Status)
	assert.Equal(t, domain.PriorityMedium, topic.Priority)
	assert.False(t, topic.HasResponsible())
	assert.Empty(t, topic.CommentIDs)

	topics, err := f.stores.Topics.ListByStudyList(ctx, f.list.ID)
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, topic.ID, topics[1].ID)
}

func TestCreateTopicDropsNonMemberResponsible(t *testing.T) {
	ctx := context.Background()
	f := newStudyFixture(t)

	for _, id := range []uuid.UUID{f.carol.ID, uuid.New()} {
		topic, err := f.study.CreateTopic(ctx, f.group.ID, f.list.ID, service.TopicInput{
			Title:         "Context",
			ResponsibleID: id,
		})
		require.NoError(t, err)
		assert.False(t, topic.HasResponsible())
	}

	topic, err := f.study.CreateTopic(ctx, f.group.ID, f.list.ID, service.TopicInput{
		Title:         "Redux",
		ResponsibleID: f.bob.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, f.bob.ID, topic.ResponsibleID)
}

func TestCreateTopicListNotFound(t *testing.T) {
	ctx := context.Background()
	f := newStudyFixture(t)
	other := f.group2(t)
	otherList, err := f.study.CreateStudyList(ctx, other.ID, "Elsewhere")
	require.NoError(t, err)

	before := f.reload(t, f.group)
	beforeTopics, err := f.stores.Topics.ListByStudyList(ctx, f.list.ID)
	require.NoError(t, err)

	for _, listID := range []uuid.UUID{uuid.New(), otherList.ID} {
		_, err := f.study.CreateTopic(ctx, f.group.ID, listID, service.TopicInput{Title: "Lost"})
		assert.ErrorIs(t, err, service.ErrListNotFound)
	}

	after := f.reload(t, f.group)
	assert.Equal(t, before.StudyListIDs, after.StudyListIDs)
	afterTopics, err := f.stores.Topics.ListByStudyList(ctx, f.list.ID)
	require.NoError(t, err)
	assert.Equal(t, beforeTopics, afterTopics)
}

func TestCreateTopicValidation(t *testing.T) {
	ctx := context.Background()
	f := newStudyFixture(t)

	_, err := f.study.CreateTopic(ctx, f.group.ID, f.list.ID, service.TopicInput{Title: " "})
	assert.ErrorIs(t, err, service.ErrEmptyInput)

	_, err = f.study.CreateTopic(ctx, f.group.ID, f.list.ID, service.TopicInput{Title: "x", Priority: "urgent"})
	assert.ErrorIs(t, err, domain.ErrInvalidPriority)
}

func TestUpdateTopicStatusScenario(t *testing.T) {
	ctx := context.Background()
	f := newStudyFixture(t)
	_, err := f.study.AddComment(ctx, f.group.ID, f.topic.ID, f.bob.ID, "Podemos revisar o useEffect?")
	require.NoError(t, err)

	before, err := f.stores.Topics.GetByID(ctx, f.topic.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TopicStatusNotStarted, before.Status)

	updated, err := f.study.UpdateTopicStatus(ctx, f.group.ID, f.topic.ID, domain.TopicStatusStudied)
	require.NoError(t, err)
	assert.Equal(t, domain.TopicStatusStudied, updated.Status)

	after, err := f.stores.Topics.GetByID(ctx, f.topic.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TopicStatusStudied, after.Status)

	// Everything else is untouched.
	expected := before.Clone()
	expected.Status = domain.TopicStatusStudied
	assert.Equal(t, expected, after)

	assert.Contains(t, f.recorder.types(), events.TopicStatusChanged)
}

func TestUpdateTopicStatusErrors(t *testing.T) {
	ctx := context.Background()
	f := newStudyFixture(t)
	other := f.group2(t)

	_, err := f.study.UpdateTopicStatus(ctx, f.group.ID, uuid.New(), domain.TopicStatusStudied)
	assert.ErrorIs(t, err, service.ErrTopicNotFound)

	// A topic of another group is not found through this group.
	_, err = f.study.UpdateTopicStatus(ctx, other.ID, f.topic.ID, domain.TopicStatusStudied)
	assert.ErrorIs(t, err, service.ErrTopicNotFound)

	_, err = f.study.UpdateTopicStatus(ctx, f.group.ID, f.topic.ID, "done")
	assert.ErrorIs(t, err, domain.ErrInvalidTopicStatus)
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := f.stores.Topics.GetByID(ctx, f.topic.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TopicStatusNotStarted, got.Status)
}

func TestUpdateTopicResponsible(t *testing.T) {
	ctx := context.Background()
	f := newStudyFixture(t)

	updated, err := f.study.UpdateTopicResponsible(ctx, f.group.ID, f.topic.ID, f.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, f.bob.ID, updated.ResponsibleID)
	assert.Equal(t, f.topic.Title, updated.Title)
	assert.Equal(t, f.topic.Priority, updated.Priority)

	cleared, err := f.study.UpdateTopicResponsible(ctx, f.group.ID, f.topic.ID, uuid.Nil)
	require.NoError(t, err)
	assert.False(t, cleared.HasResponsible())

	_, err = f.study.UpdateTopicResponsible(ctx, f.group.ID, f.topic.ID, f.carol.ID)
	assert.ErrorIs(t, err, service.ErrNotMember)

	_, err = f.study.UpdateTopicResponsible(ctx, f.group.ID, uuid.New(), f.bob.ID)
	assert.ErrorIs(t, err, service.ErrTopicNotFound)

	got, err := f.stores.Topics.GetByID(ctx, f.topic.ID)
	require.NoError(t, err)
	assert.False(t, got.HasResponsible())
}

func TestDeleteTopic(t *testing.T) {
	ctx := context.Background()
	f := newStudyFixture(t)
	keep, err := f.study.CreateTopic(ctx, f.group.ID, f.list.ID, service.TopicInput{Title: "keep"})
	require.NoError(t, err)

	require.NoError(t, f.study.DeleteTopic(ctx, f.group.ID, f.topic.ID))
	assert.ErrorIs(t, f.study.DeleteTopic(ctx, f.group.ID, f.topic.ID), service.ErrTopicNotFound)

	topics, err := f.stores.Topics.ListByStudyList(ctx, f.list.ID)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, keep.ID, topics[0].ID)

	_, err = f.study.GetTopic(ctx, f.group.ID, f.topic.ID)
	assert.ErrorIs(t, err, service.ErrTopicNotFound)
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()
	f := newStudyFixture(t)

	first, err := f.study.AddComment(ctx, f.group.ID, f.topic.ID, f.bob.ID, "  Podemos revisar?  ")
	require.NoError(t, err)
	assert.Equal(t, "Podemos revisar?", first.Text)
	assert.Equal(t, testNow, first.CreatedAt)
	assert.Equal(t, f.bob.ID, first.AuthorID)

	second, err := f.study.AddComment(ctx, f.group.ID, f.topic.ID, f.alice.ID, "Podemos revisar?")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID, "identical text is never deduplicated")

	comments, err := f.stores.Comments.ListByTopic(ctx, f.topic.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, first.ID, comments[0].ID)
	assert.Equal(t, second.ID, comments[1].ID)
}

func TestAddCommentBlankText(t *testing.T) {
	ctx := context.Background()
	f := newStudyFixture(t)
	_, err := f.study.AddComment(ctx, f.group.ID, f.topic.ID, f.bob.ID, "first")
	require.NoError(t, err)

	for _, text := range []string{"", " ", "\t\n  "} {
		_, err := f.study.AddComment(ctx, f.group.ID, f.topic.ID, f.bob.ID, text)
		assert.ErrorIs(t, err, service.ErrEmptyText)
		assert.ErrorIs(t, err, service.ErrEmptyInput)
	}

	comments, err := f.stores.Comments.ListByTopic(ctx, f.topic.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestAddCommentTopicNotFound(t *testing.T) {
	ctx := context.Background()
	f := newStudyFixture(t)

	_, err := f.study.AddComment(ctx, f.group.ID, uuid.New(), f.bob.ID, "hello")
	assert.ErrorIs(t, err, service.ErrTopicNotFound)

	// A missing topic wins over blank text.
	_, err = f.study.AddComment(ctx, f.group.ID, uuid.New(), f.bob.ID, " ")
	assert.ErrorIs(t, err, service.ErrTopicNotFound)
}

func TestListTopics(t *testing.T) {
	ctx := context.Background()
	f := newStudyFixture(t)
	low, err := f.study.CreateTopic(ctx, f.group.ID, f.list.ID, service.TopicInput{Title: "low", Priority: domain.PriorityLow})
	require.NoError(t, err)
	medium, err := f.study.CreateTopic(ctx, f.group.ID, f.list.ID, service.TopicInput{Title: "medium", ResponsibleID: f.bob.ID})
	require.NoError(t, err)
	_, err = f.study.UpdateTopicStatus(ctx, f.group.ID, medium.ID, domain.TopicStatusInReview)
	require.NoError(t, err)

	all, err := f.study.ListTopics(ctx, f.group.ID, f.list.ID, service.TopicQuery{})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f.topic.ID, low.ID, medium.ID}, topicIDs(all))

	sorted, err := f.study.ListTopics(ctx, f.group.ID, f.list.ID, service.TopicQuery{ByPriority: true})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f.topic.ID, medium.ID, low.ID}, topicIDs(sorted))

	reviewing, err := f.study.ListTopics(ctx, f.group.ID, f.list.ID, service.TopicQuery{
		Filter: domain.TopicFilter{Status: domain.TopicStatusInReview},
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{medium.ID}, topicIDs(reviewing))

	unassigned, err := f.study.ListTopics(ctx, f.group.ID, f.list.ID, service.TopicQuery{
		Filter: domain.TopicFilter{Unassigned: true},
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{low.ID}, topicIDs(unassigned))

	_, err = f.study.ListTopics(ctx, f.group.ID, uuid.New(), service.TopicQuery{})
	assert.ErrorIs(t, err, service.ErrListNotFound)
}

func topicIDs(topics []*domain.Topic) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(topics))
	for _, t := range topics {
		ids = append(ids, t.ID)
	}
	return ids
}

// group2 creates a second group owned by Carol.
func (h *harness) group2(t *testing.T) *domain.Group {
	t.Helper()
	return h.group(t, h.carol)
}
