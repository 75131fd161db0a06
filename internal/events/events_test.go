package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDomainEvent(t *testing.T) {
	type testPayload struct {
		TopicID uuid.UUID `json:"topic_id"`
		Status  string    `json:"status"`
	}

	payload := testPayload{TopicID: uuid.New(), Status: "studied"}
	groupID := uuid.New()
	actorID := uuid.New()
	at := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.FixedZone("BRT", -3*3600))

	event, err := NewDomainEvent(TopicStatusChanged, groupID, actorID, payload, at)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TopicStatusChanged, event.Type)
	assert.Equal(t, groupID, event.GroupID)
	assert.Equal(t, actorID, event.ActorID)
	assert.Equal(t, time.UTC, event.OccurredAt.Location())
	assert.True(t, at.Equal(event.OccurredAt))

	var decoded testPayload
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, payload, decoded)

	raw, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"type":"topic.status_changed"`)
}

func TestNewDomainEventRejectsUnencodablePayload(t *testing.T) {
	_, err := NewDomainEvent(GroupCreated, uuid.New(), uuid.New(), make(chan int), time.Now())
	assert.Error(t, err)
}

func TestTypesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, typ := range Types() {
		assert.False(t, seen[typ], "duplicate event type %s", typ)
		seen[typ] = true
	}
	assert.Len(t, seen, 11)
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	// The last event received by this handler
	LastEvent *DomainEvent
	// Error to return from HandleEvent
	HandlerError error
	// Count of events handled
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *DomainEvent) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestHandlerFunc(t *testing.T) {
	var got *DomainEvent
	h := HandlerFunc(func(_ context.Context, e *DomainEvent) error {
		got = e
		return errors.New("nope")
	})

	event, err := NewDomainEvent(GroupJoined, uuid.New(), uuid.New(), nil, time.Now())
	require.NoError(t, err)

	assert.EqualError(t, h.HandleEvent(context.Background(), event), "nope")
	assert.Same(t, event, got)
}
