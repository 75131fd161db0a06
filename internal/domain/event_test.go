package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

var fixedTime = time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)

func mustEvent(t *testing.T, name string, at time.Time) *StudyEvent {
	t.Helper()
	e, err := NewStudyEvent(uuid.New(), name, "Biblioteca Central", at, uuid.New())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return e
}

func TestNewStudyEvent(t *testing.T) {
	t.Parallel()

	groupID, creatorID := uuid.New(), uuid.New()
	past := fixedTime.Add(-48 * time.Hour)

	event, err := NewStudyEvent(groupID, " Sessão ", " Online ", past, creatorID)
	if err != nil {
		t.Fatalf("Expected past instants to be accepted, got %v", err)
	}

	if event.Name != "Sessão" || event.Location != "Online" {
		t.Errorf("Expected trimmed fields, got %q / %q", event.Name, event.Location)
	}

	tests := []struct {
		name     string
		evName   string
		location string
		at       time.Time
		creator  uuid.UUID
		wantErr  error
	}{
		{"blank name", " ", "Sala 5", fixedTime, creatorID, ErrEmptyEventName},
		{"blank location", "Revisão", "", fixedTime, creatorID, ErrEmptyEventLocation},
		{"zero time", "Revisão", "Sala 5", time.Time{}, creatorID, ErrEmptyEventDateTime},
		{"nil creator", "Revisão", "Sala 5", fixedTime, uuid.Nil, ErrEmptyEventCreatorID},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewStudyEvent(groupID, tc.evName, tc.location, tc.at, tc.creator)
			if err != tc.wantErr {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestIsPast(t *testing.T) {
	t.Parallel()

	e := mustEvent(t, "A", fixedTime)

	if IsPast(e, fixedTime) {
		t.Error("Expected an event starting now not to be past")
	}

	if !IsPast(e, fixedTime.Add(time.Nanosecond)) {
		t.Error("Expected an event before now to be past")
	}

	if e.IsPast(fixedTime.Add(-time.Minute)) {
		t.Error("Expected a future event not to be past")
	}
}

func TestEventInsertIndex(t *testing.T) {
	t.Parallel()

	t1 := fixedTime
	t2 := fixedTime.Add(time.Hour)
	events := []*StudyEvent{mustEvent(t, "A", t1), mustEvent(t, "B", t2)}

	if got := EventInsertIndex(events, t1.Add(-time.Hour)); got != 0 {
		t.Errorf("Expected index 0, got %d", got)
	}

	if got := EventInsertIndex(events, t1); got != 1 {
		t.Errorf("Expected equal times to insert after existing ones (1), got %d", got)
	}

	if got := EventInsertIndex(events, t2.Add(time.Hour)); got != 2 {
		t.Errorf("Expected index 2, got %d", got)
	}

	if got := EventInsertIndex(nil, t1); got != 0 {
		t.Errorf("Expected index 0 for empty slice, got %d", got)
	}
}

func TestSplitEvents(t *testing.T) {
	t.Parallel()

	old := mustEvent(t, "old", fixedTime.Add(-time.Hour))
	soon := mustEvent(t, "soon", fixedTime.Add(time.Hour))
	later := mustEvent(t, "later", fixedTime.Add(2*time.Hour))

	upcoming, past := SplitEvents([]*StudyEvent{old, soon, later}, fixedTime)

	if len(past) != 1 || past[0] != old {
		t.Errorf("Expected past to hold only the old event, got %v", past)
	}

	if len(upcoming) != 2 || upcoming[0] != soon || upcoming[1] != later {
		t.Errorf("Expected upcoming events in order, got %v", upcoming)
	}
}
