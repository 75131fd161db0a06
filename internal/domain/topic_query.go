package domain

import (
	"slices"

	"github.com/google/uuid"
)

// TopicFilter selects topics by any combination of fields.
// Zero-valued fields match everything.
type TopicFilter struct {
	Status        TopicStatus
	Priority      Priority
	ResponsibleID uuid.UUID
	// Unassigned selects only topics without a responsible; it takes
	// precedence over ResponsibleID.
	Unassigned bool
}

// Matches reports whether t passes the filter.
func (f TopicFilter) Matches(t *Topic) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Unassigned {
		return !t.HasResponsible()
	}
	if f.ResponsibleID != uuid.Nil && t.ResponsibleID != f.ResponsibleID {
		return false
	}
	return true
}

// FilterTopics returns the topics matching f, in their original order.
func FilterTopics(topics []*Topic, f TopicFilter) []*Topic {
	out := make([]*Topic, 0, len(topics))
	for _, t := range topics {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// SortTopicsByPriority returns a copy of topics ordered high to low.
// Topics of equal priority keep their list order.
func SortTopicsByPriority(topics []*Topic) []*Topic {
	out := slices.Clone(topics)
	slices.SortStableFunc(out, func(a, b *Topic) int {
		return a.Priority.Rank() - b.Priority.Rank()
	})
	return out
}

// Progress counts topics per status.
type Progress struct {
	NotStarted int `json:"not_started"`
	InReview   int `json:"in_review"`
	Studied    int `json:"studied"`
	Total      int `json:"total"`
}

// PercentStudied is the share of studied topics, 0 for an empty list.
func (p Progress) PercentStudied() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Studied) * 100 / float64(p.Total)
}

// TopicProgress tallies the statuses of topics.
func TopicProgress(topics []*Topic) Progress {
	var p Progress
	for _, t := range topics {
		switch t.Status {
		case TopicStatusNotStarted:
			p.NotStarted++
		case TopicStatusInReview:
			p.InReview++
		case TopicStatusStudied:
			p.Studied++
		}
		p.Total++
	}
	return p
}
