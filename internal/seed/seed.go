// Package seed loads the demo data set into the stores.
//
// Every id is derived with uuid.NewSHA1 from a stable key, so a front end
// can address seeded entities across restarts.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/domain"
	"github.com/phrazzld/studygroup-api/internal/service"
	"github.com/phrazzld/studygroup-api/internal/store"
)

// namespace roots every seeded id.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://studygroup.local/seed"))

// ID returns the deterministic id for a seed key such as "user-4".
func ID(key string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(key))
}

// SessionUserKey is the seed key of the user a fresh session acts as.
const SessionUserKey = "user-4"

// SessionUserID is the id of the seeded session user (Gabriela).
var SessionUserID = ID(SessionUserKey)

type userSpec struct {
	key, name string
}

type commentSpec struct {
	key, author, text string
	at                time.Time
}

type topicSpec struct {
	key, title  string
	status      domain.TopicStatus
	priority    domain.Priority
	responsible string
	comments    []commentSpec
}

type listSpec struct {
	key, name string
	topics    []topicSpec
}

type eventSpec struct {
	key, name, location, creator string
	// at is used when fromNow is zero.
	at      time.Time
	fromNow time.Duration
}

type groupSpec struct {
	key, name, code, creator string
	members                  []string
	lists                    []listSpec
	events                   []eventSpec
}

var users = []userSpec{
	{"user-1", "Alice"},
	{"user-2", "Bob"},
	{"user-3", "Charlie"},
	{"user-4", "Gabriela"},
}

var groups = []groupSpec{
	{
		key:     "group-1",
		name:    "Grupo de Estudo de React",
		code:    "REACT101",
		creator: "user-1",
		members: []string{"user-1", "user-2", "user-3", "user-4"},
		lists: []listSpec{{
			key:  "list-1",
			name: "Hooks e Conceitos Avançados",
			topics: []topicSpec{
				{
					key: "topic-1", title: "useState e useEffect",
					status: domain.TopicStatusStudied, priority: domain.PriorityHigh, responsible: "user-1",
					comments: []commentSpec{{
						key: "comment-1", author: "user-2", text: "Podemos revisar o useEffect?",
						at: time.Date(2023, time.October, 27, 10, 0, 0, 0, time.UTC),
					}},
				},
				{
					key: "topic-2", title: "useContext e Redux",
					status: domain.TopicStatusInReview, priority: domain.PriorityHigh, responsible: "user-2",
				},
				{
					key: "topic-3", title: "Renderização Condicional",
					status: domain.TopicStatusNotStarted, priority: domain.PriorityMedium,
				},
			},
		}},
		events: []eventSpec{
			{
				key: "event-1", name: "Sessão de Dúvidas - Hooks",
				location: "Biblioteca Central, Sala 5", creator: "user-1",
				fromNow: 7 * 24 * time.Hour,
			},
			{
				key: "event-2", name: "Revisão Pré-Prova (Passado)",
				location: "Online - Google Meet", creator: "user-2",
				at: time.Date(2023, time.May, 20, 14, 0, 0, 0, time.UTC),
			},
		},
	},
	{
		key:     "group-2",
		name:    "Grupo de Estudo de Design Patterns",
		code:    "DESIGNP202",
		creator: "user-3",
		members: []string{"user-3", "user-1"},
		lists: []listSpec{{
			key:  "list-2",
			name: "Padrões Criacionais",
			topics: []topicSpec{
				{
					key: "topic-4", title: "Singleton",
					status: domain.TopicStatusStudied, priority: domain.PriorityHigh, responsible: "user-1",
				},
				{
					key: "topic-5", title: "Factory Method",
					status: domain.TopicStatusNotStarted, priority: domain.PriorityMedium, responsible: "user-3",
				},
			},
		}},
	},
	{
		key:     "group-3",
		name:    "Tópicos Avançados de Engenharia de Software e Arquitetura de Microsserviços",
		code:    "ARCH303",
		creator: "user-4",
		members: []string{"user-4", "user-2", "user-3"},
	},
	{
		key:     "group-4",
		name:    "UX/UI Design",
		code:    "UXUI404",
		creator: "user-1",
		members: []string{"user-1", "user-4"},
	},
	{
		key:     "group-5",
		name:    "Preparatório para Certificação AWS",
		code:    "AWS505",
		creator: "user-2",
		members: []string{"user-2", "user-1", "user-3", "user-4"},
	},
	{
		key:     "group-6",
		name:    "Estruturas de Dados",
		code:    "DATA606",
		creator: "user-4",
		members: []string{"user-4", "user-2"},
	},
}

// Summary counts what Load wrote.
type Summary struct {
	Users    int
	Groups   int
	Lists    int
	Topics   int
	Comments int
	Events   int
}

// Load writes the demo data set in a single transaction. Event times
// relative to the present are computed from now. Loading into stores that
// already hold the seed fails with a duplicate error and writes nothing.
func Load(ctx context.Context, stores service.Stores, now time.Time, logger *slog.Logger) (Summary, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "seed")

	var sum Summary
	err := stores.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
		sum = Summary{}
		for _, u := range users {
			user := &domain.User{ID: ID(u.key), Name: u.name, AvatarSeed: u.key}
			if err := stores.Users.Create(ctx, user); err != nil {
				return fmt.Errorf("seed user %s: %w", u.key, err)
			}
			sum.Users++
		}

		for _, g := range groups {
			if err := loadGroup(ctx, stores, g, now, &sum); err != nil {
				return fmt.Errorf("seed %s: %w", g.key, err)
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("failed to load seed data", "error", err)
		return Summary{}, err
	}

	logger.Info("seed data loaded",
		"users", sum.Users,
		"groups", sum.Groups,
		"lists", sum.Lists,
		"topics", sum.Topics,
		"comments", sum.Comments,
		"events", sum.Events)
	return sum, nil
}

func loadGroup(ctx context.Context, stores service.Stores, g groupSpec, now time.Time, sum *Summary) error {
	memberIDs := make([]uuid.UUID, 0, len(g.members))
	for _, key := range g.members {
		memberIDs = append(memberIDs, ID(key))
	}
	group := &domain.Group{
		ID:           ID(g.key),
		Name:         g.name,
		Code:         domain.NormalizeJoinCode(g.code),
		CreatorID:    ID(g.creator),
		MemberIDs:    memberIDs,
		StudyListIDs: []uuid.UUID{},
		EventIDs:     []uuid.UUID{},
		CreatedAt:    now.UTC(),
	}
	if err := stores.Groups.Create(ctx, group); err != nil {
		return err
	}
	for _, id := range memberIDs {
		if err := stores.Groups.Show(ctx, group.ID, id, store.DashboardAppend); err != nil {
			return err
		}
	}
	sum.Groups++

	for _, l := range g.lists {
		list := &domain.StudyList{ID: ID(l.key), GroupID: group.ID, Name: l.name, TopicIDs: []uuid.UUID{}}
		if err := stores.Lists.Create(ctx, list); err != nil {
			return err
		}
		sum.Lists++

		for _, t := range l.topics {
			topic := &domain.Topic{
				ID:          ID(t.key),
				StudyListID: list.ID,
				Title:       t.title,
				Status:      t.status,
				Priority:    t.priority,
				CommentIDs:  []uuid.UUID{},
			}
			if t.responsible != "" {
				topic.ResponsibleID = ID(t.responsible)
			}
			if err := stores.Topics.Create(ctx, topic); err != nil {
				return err
			}
			sum.Topics++

			for _, c := range t.comments {
				comment := &domain.Comment{
					ID:        ID(c.key),
					TopicID:   topic.ID,
					AuthorID:  ID(c.author),
					Text:      c.text,
					CreatedAt: c.at,
				}
				if err := stores.Comments.Create(ctx, comment); err != nil {
					return err
				}
				sum.Comments++
			}
		}
	}

	for _, e := range g.events {
		at := e.at
		if e.fromNow != 0 {
			at = now.Add(e.fromNow).UTC()
		}
		event := &domain.StudyEvent{
			ID:        ID(e.key),
			GroupID:   group.ID,
			Name:      e.name,
			Location:  e.location,
			DateTime:  at,
			CreatorID: ID(e.creator),
		}
		if err := stores.Events.Create(ctx, event); err != nil {
			return err
		}
		sum.Events++
	}
	return nil
}
