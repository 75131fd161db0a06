package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/domain"
	"github.com/phrazzld/studygroup-api/internal/platform/logger"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db       *DB
	users    *UserStore
	groups   *GroupStore
	lists    *StudyListStore
	topics   *TopicStore
	comments *CommentStore
	events   *EventStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.Discard()
	db := NewDB(log)
	return &fixture{
		db:       db,
		users:    NewUserStore(db, log),
		groups:   NewGroupStore(db, log),
		lists:    NewStudyListStore(db, log),
		topics:   NewTopicStore(db, log),
		comments: NewCommentStore(db, log),
		events:   NewEventStore(db, log),
	}
}

func (f *fixture) user(t *testing.T, name string) *domain.User {
	t.Helper()
	u, err := domain.NewUser(name, "")
	require.NoError(t, err)
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) group(t *testing.T, code string, creator uuid.UUID) *domain.Group {
	t.Helper()
	g, err := domain.NewGroup("Group "+code, "", code, creator)
	require.NoError(t, err)
	require.NoError(t, f.groups.Create(context.Background(), g))
	return g
}

func (f *fixture) list(t *testing.T, groupID uuid.UUID, name string) *domain.StudyList {
	t.Helper()
	l, err := domain.NewStudyList(groupID, name)
	require.NoError(t, err)
	require.NoError(t, f.lists.Create(context.Background(), l))
	return l
}

func (f *fixture) topic(t *testing.T, listID uuid.UUID, title string, responsible uuid.UUID) *domain.Topic {
	t.Helper()
	tp, err := domain.NewTopic(listID, title, domain.PriorityMedium)
	require.NoError(t, err)
	tp.ResponsibleID = responsible
	require.NoError(t, f.topics.Create(context.Background(), tp))
	return tp
}

func (f *fixture) event(t *testing.T, groupID, creator uuid.UUID, name string, at time.Time) *domain.StudyEvent {
	t.Helper()
	e, err := domain.NewStudyEvent(groupID, name, "Library", at, creator)
	require.NoError(t, err)
	require.NoError(t, f.events.Create(context.Background(), e))
	return e
}
