package confirm_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/domain"
	"github.com/phrazzld/studygroup-api/internal/events"
	"github.com/phrazzld/studygroup-api/internal/mocks"
	"github.com/phrazzld/studygroup-api/internal/platform/logger"
	"github.com/phrazzld/studygroup-api/internal/platform/memory"
	"github.com/phrazzld/studygroup-api/internal/service"
	"github.com/phrazzld/studygroup-api/internal/service/confirm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicTarget(t *testing.T) {
	ctx := context.Background()
	groupID, topicID, requester := uuid.New(), uuid.New(), uuid.New()

	var deleted []uuid.UUID
	study := &mocks.MockStudyService{
		GetTopicFn: func(_ context.Context, g, id uuid.UUID) (*domain.Topic, error) {
			if g != groupID || id != topicID {
				return nil, service.ErrTopicNotFound
			}
			return &domain.Topic{ID: id}, nil
		},
		DeleteTopicFn: func(_ context.Context, g, id uuid.UUID) error {
			deleted = append(deleted, id)
			return nil
		},
	}
	gate := confirm.NewGate(time.Minute, nil, logger.Discard())
	confirm.RegisterDefaults(gate, &mocks.MockGroupService{}, study, &mocks.MockEventService{})

	_, err := gate.RequestDelete(ctx, confirm.KindTopic, groupID, uuid.New(), requester)
	assert.ErrorIs(t, err, service.ErrTopicNotFound)
	assert.Zero(t, gate.Len())

	p, err := gate.RequestDelete(ctx, confirm.KindTopic, groupID, topicID, requester)
	require.NoError(t, err)
	assert.Empty(t, deleted)

	got, err := gate.Confirm(ctx, p.Token, requester)
	require.NoError(t, err)
	assert.Equal(t, topicID, got.TargetID)
	assert.Equal(t, []uuid.UUID{topicID}, deleted)
}

func TestEventTargetPassesRequester(t *testing.T) {
	ctx := context.Background()
	groupID, eventID, creator, other := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	policy := func(requester uuid.UUID) error {
		if requester != creator {
			return service.ErrForbidden
		}
		return nil
	}
	deletes := 0
	schedule := &mocks.MockEventService{
		CanDeleteEventFn: func(_ context.Context, _, _, requester uuid.UUID) error {
			return policy(requester)
		},
		DeleteEventFn: func(_ context.Context, _, _, requester uuid.UUID) error {
			if err := policy(requester); err != nil {
				return err
			}
			deletes++
			return nil
		},
	}
	gate := confirm.NewGate(time.Minute, nil, logger.Discard())
	confirm.RegisterDefaults(gate, &mocks.MockGroupService{}, &mocks.MockStudyService{}, schedule)

	_, err := gate.RequestDelete(ctx, confirm.KindEvent, groupID, eventID, other)
	assert.ErrorIs(t, err, service.ErrForbidden)

	p, err := gate.RequestDelete(ctx, confirm.KindEvent, groupID, eventID, creator)
	require.NoError(t, err)
	_, err = gate.Confirm(ctx, p.Token, creator)
	require.NoError(t, err)
	assert.Equal(t, 1, deletes)
}

func TestEventTargetRechecksOnConfirm(t *testing.T) {
	ctx := context.Background()
	started := false
	schedule := &mocks.MockEventService{
		CanDeleteEventFn: func(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) error { return nil },
		DeleteEventFn: func(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) error {
			if started {
				return service.ErrPastEvent
			}
			return nil
		},
	}
	gate := confirm.NewGate(time.Minute, nil, logger.Discard())
	confirm.RegisterDefaults(gate, &mocks.MockGroupService{}, &mocks.MockStudyService{}, schedule)

	requester := uuid.New()
	p, err := gate.RequestDelete(ctx, confirm.KindEvent, uuid.New(), uuid.New(), requester)
	require.NoError(t, err)

	started = true
	_, err = gate.Confirm(ctx, p.Token, requester)
	assert.ErrorIs(t, err, service.ErrPastEvent)
}

func TestConfirmAfterLeavingGroup(t *testing.T) {
	ctx := context.Background()
	log := logger.Discard()
	now := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	db := memory.NewDB(log)
	stores := service.Stores{
		Tx:       db,
		Users:    memory.NewUserStore(db, log),
		Groups:   memory.NewGroupStore(db, log),
		Lists:    memory.NewStudyListStore(db, log),
		Topics:   memory.NewTopicStore(db, log),
		Comments: memory.NewCommentStore(db, log),
		Events:   memory.NewEventStore(db, log),
	}
	cfg := service.GroupConfig{LeaveMode: service.LeaveRemove}
	groups, err := service.NewGroupService(stores, events.NopEmitter{}, cfg, clock, log)
	require.NoError(t, err)
	study, err := service.NewStudyService(stores, events.NopEmitter{}, clock, log)
	require.NoError(t, err)
	schedule, err := service.NewEventService(stores, events.NopEmitter{}, clock, log)
	require.NoError(t, err)

	gate := confirm.NewGate(time.Minute, clock, log)
	confirm.RegisterDefaults(gate, groups, study, schedule)

	alice, err := domain.NewUser("Alice", "")
	require.NoError(t, err)
	require.NoError(t, stores.Users.Create(ctx, alice))
	bob, err := domain.NewUser("Bob", "")
	require.NoError(t, err)
	require.NoError(t, stores.Users.Create(ctx, bob))

	g, err := groups.CreateGroup(ctx, alice.ID, "React Avançado", "")
	require.NoError(t, err)
	_, err = groups.JoinGroup(ctx, g.Code, bob.ID)
	require.NoError(t, err)
	list, err := study.CreateStudyList(ctx, g.ID, "Hooks")
	require.NoError(t, err)
	topic, err := study.CreateTopic(ctx, g.ID, list.ID, service.TopicInput{Title: "useState"})
	require.NoError(t, err)

	p, err := gate.RequestDelete(ctx, confirm.KindTopic, g.ID, topic.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, groups.LeaveGroup(ctx, g.ID, bob.ID))

	_, err = gate.Confirm(ctx, p.Token, bob.ID)
	assert.ErrorIs(t, err, service.ErrGroupNotFound)

	_, err = study.GetTopic(ctx, g.ID, topic.ID)
	assert.NoError(t, err, "the topic survives")

	_, err = gate.RequestDelete(ctx, confirm.KindTopic, g.ID, topic.ID, bob.ID)
	assert.ErrorIs(t, err, service.ErrGroupNotFound)
}
