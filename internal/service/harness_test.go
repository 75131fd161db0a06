package service_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/studygroup-api/internal/domain"
	"github.com/phrazzld/studygroup-api/internal/events"
	"github.com/phrazzld/studygroup-api/internal/platform/memory"
	"github.com/phrazzld/studygroup-api/internal/service"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)

// recorder collects emitted domain events.
type recorder struct {
	mu     sync.Mutex
	events []*events.DomainEvent
}

func (r *recorder) HandleEvent(_ context.Context, e *events.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type harness struct {
	stores   service.Stores
	groups   service.GroupService
	study    service.StudyService
	schedule service.EventService
	recorder *recorder

	alice, bob, carol *domain.User
}

func newHarness(t *testing.T, cfg service.GroupConfig) *harness {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := memory.NewDB(logger)
	stores := service.Stores{
		Tx:       db,
		Users:    memory.NewUserStore(db, logger),
		Groups:   memory.NewGroupStore(db, logger),
		Lists:    memory.NewStudyListStore(db, logger),
		Topics:   memory.NewTopicStore(db, logger),
		Comments: memory.NewCommentStore(db, logger),
		Events:   memory.NewEventStore(db, logger),
	}

	rec := &recorder{}
	emitter := events.NewDispatcher(logger)
	emitter.RegisterHandler(rec)
	clock := func() time.Time { return testNow }

	groups, err := service.NewGroupService(stores, emitter, cfg, clock, logger)
	require.NoError(t, err)
	study, err := service.NewStudyService(stores, emitter, clock, logger)
	require.NoError(t, err)
	schedule, err := service.NewEventService(stores, emitter, clock, logger)
	require.NoError(t, err)

	h := &harness{
		stores:   stores,
		groups:   groups,
		study:    study,
		schedule: schedule,
		recorder: rec,
	}
	h.alice = h.user(t, "Alice")
	h.bob = h.user(t, "Bob")
	h.carol = h.user(t, "Carol")
	return h
}

func (h *harness) user(t *testing.T, name string) *domain.User {
	t.Helper()
	u, err := domain.NewUser(name, "")
	require.NoError(t, err)
	require.NoError(t, h.stores.Users.Create(context.Background(), u))
	return u
}

func (h *harness) group(t *testing.T, creator *domain.User) *domain.Group {
	t.Helper()
	g, err := h.groups.CreateGroup(context.Background(), creator.ID, "React Avançado", "")
	require.NoError(t, err)
	return g
}

func (h *harness) join(t *testing.T, g *domain.Group, u *domain.User) {
	t.Helper()
	_, err := h.groups.JoinGroup(context.Background(), g.Code, u.ID)
	require.NoError(t, err)
}

func (h *harness) reload(t *testing.T, g *domain.Group) *domain.Group {
	t.Helper()
	got, err := h.stores.Groups.GetByID(context.Background(), g.ID)
	require.NoError(t, err)
	return got
}

// sequenceCodes returns a generator that yields codes in order, then repeats the last.
func sequenceCodes(codes ...string) func() (string, error) {
	var mu sync.Mutex
	i := 0
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		c := codes[min(i, len(codes)-1)]
		i++
		return c, nil
	}
}
