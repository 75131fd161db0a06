package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Study event validation errors
var (
	ErrEmptyEventID        = errors.New("event ID cannot be empty")
	ErrEmptyEventGroupID   = errors.New("event group ID cannot be empty")
	ErrEmptyEventCreatorID = errors.New("event creator ID cannot be empty")
	ErrEmptyEventName      = fmt.Errorf("%w: event name", ErrEmptyInput)
	ErrEmptyEventLocation  = fmt.Errorf("%w: event location", ErrEmptyInput)
	ErrEmptyEventDateTime  = errors.New("event date and time cannot be empty")
)

// StudyEvent is a scheduled group meeting.
type StudyEvent struct {
	ID        uuid.UUID `json:"id"`
	GroupID   uuid.UUID `json:"group_id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	DateTime  time.Time `json:"date_time"`
	CreatorID uuid.UUID `json:"creator_id"`
}

// NewStudyEvent creates a StudyEvent. Past instants are accepted here;
// rejecting them is the input boundary's job.
func NewStudyEvent(
	groupID uuid.UUID,
	name, location string,
	dateTime time.Time,
	creatorID uuid.UUID,
) (*StudyEvent, error) {
	event := &StudyEvent{
		ID:        uuid.New(),
		GroupID:   groupID,
		Name:      strings.TrimSpace(name),
		Location:  strings.TrimSpace(location),
		DateTime:  dateTime.UTC(),
		CreatorID: creatorID,
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}

	return event, nil
}

// Validate checks if the StudyEvent has valid data.
func (e *StudyEvent) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyEventID
	}

	if e.GroupID == uuid.Nil {
		return ErrEmptyEventGroupID
	}

	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyEventName
	}

	if strings.TrimSpace(e.Location) == "" {
		return ErrEmptyEventLocation
	}

	if e.DateTime.IsZero() {
		return ErrEmptyEventDateTime
	}

	if e.CreatorID == uuid.Nil {
		return ErrEmptyEventCreatorID
	}

	return nil
}

// IsPast reports whether the event starts strictly before now.
func (e *StudyEvent) IsPast(now time.Time) bool {
	return IsPast(e, now)
}

// IsPast reports whether event starts strictly before now.
func IsPast(event *StudyEvent, now time.Time) bool {
	return event.DateTime.Before(now)
}

// EventInsertIndex returns the position at which an event starting at t
// must be inserted into events (sorted ascending by DateTime) so the slice
// stays sorted. Events with an equal time keep their relative order: the
// new one goes after them.
func EventInsertIndex(events []*StudyEvent, t time.Time) int {
	return sort.Search(len(events), func(i int) bool {
		return events[i].DateTime.After(t)
	})
}

// SplitEvents partitions sorted events into upcoming and past, preserving order.
func SplitEvents(events []*StudyEvent, now time.Time) (upcoming, past []*StudyEvent) {
	upcoming = make([]*StudyEvent, 0, len(events))
	past = make([]*StudyEvent, 0)
	for _, e := range events {
		if e.IsPast(now) {
			past = append(past, e)
		} else {
			upcoming = append(upcoming, e)
		}
	}
	return upcoming, past
}
