// Package confirm implements the two-phase protocol that guards destructive
// operations: a requester first asks to delete something and receives a
// pending confirmation, then confirms (or cancels) it with the token.
// The services it guards never see any of this state.
package confirm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind names what a confirmation deletes.
type Kind string

// Supported kinds
const (
	KindTopic Kind = "topic"
	KindEvent Kind = "event"
)

// Outcomes reported to an Observer.
const (
	OutcomeRequested = "requested"
	OutcomeConfirmed = "confirmed"
	OutcomeCanceled  = "canceled"
	OutcomeExpired   = "expired"
	OutcomeFailed    = "failed"
)

// DefaultTTL is used when the gate is built without a lifetime.
const DefaultTTL = 2 * time.Minute

var (
	// ErrConfirmationNotFound is returned for unknown, already used, or
	// foreign tokens.
	ErrConfirmationNotFound = errors.New("confirmation not found")

	// ErrConfirmationExpired is returned when a token is used after its expiry.
	// The token is consumed either way.
	ErrConfirmationExpired = errors.New("confirmation expired")

	// ErrUnknownKind is returned when no target is registered for the kind.
	ErrUnknownKind = errors.New("unknown confirmation kind")
)

// Pending is an outstanding delete request.
type Pending struct {
	Token       string    `json:"token"`
	Kind        Kind      `json:"kind"`
	GroupID     uuid.UUID `json:"group_id"`
	TargetID    uuid.UUID `json:"target_id"`
	RequesterID uuid.UUID `json:"requester_id"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Target performs deletes of one kind.
type Target struct {
	// Check runs when the delete is requested so callers learn about
	// NotFound or Forbidden before being asked to confirm. Optional.
	Check func(ctx context.Context, p Pending) error
	// Delete runs on confirmation. Required.
	Delete func(ctx context.Context, p Pending) error
}

// AccessChecker decides whether a user may still act on a group.
type AccessChecker interface {
	CheckAccess(ctx context.Context, groupID, userID uuid.UUID) error
}

// Observer is told about every outcome, e.g. to count them.
type Observer interface {
	ObserveConfirmation(kind, outcome string)
}

// Gate holds pending confirmations in memory.
type Gate struct {
	mu       sync.Mutex
	pending  map[string]Pending
	targets  map[Kind]Target
	access   AccessChecker
	ttl      time.Duration
	now      func() time.Time
	observer Observer
	logger   *slog.Logger
}

// NewGate creates a Gate whose confirmations live for ttl. A nil now uses
// the wall clock; a non-positive ttl uses DefaultTTL.
func NewGate(ttl time.Duration, now func() time.Time, logger *slog.Logger) *Gate {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		pending: make(map[string]Pending),
		targets: make(map[Kind]Target),
		ttl:     ttl,
		now:     now,
		logger:  logger.With("component", "confirmation_gate"),
	}
}

// Register installs the target for kind, replacing any previous one.
func (g *Gate) Register(kind Kind, target Target) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.targets[kind] = target
}

// SetObserver installs o. Call before serving requests.
func (g *Gate) SetObserver(o Observer) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.observer = o
}

// SetAccessChecker installs a. With a checker set, the requester's access to
// the group is checked on request and again on confirmation.
func (g *Gate) SetAccessChecker(a AccessChecker) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.access = a
}

// RequestDelete opens a pending confirmation for deleting targetID.
func (g *Gate) RequestDelete(
	ctx context.Context,
	kind Kind,
	groupID, targetID, requesterID uuid.UUID,
) (Pending, error) {
	g.mu.Lock()
	target, ok := g.targets[kind]
	access := g.access
	g.mu.Unlock()
	if !ok {
		return Pending{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	if access != nil {
		if err := access.CheckAccess(ctx, groupID, requesterID); err != nil {
			return Pending{}, err
		}
	}

	p := Pending{
		Token:       uuid.NewString(),
		Kind:        kind,
		GroupID:     groupID,
		TargetID:    targetID,
		RequesterID: requesterID,
		ExpiresAt:   g.now().Add(g.ttl).UTC(),
	}

	if target.Check != nil {
		if err := target.Check(ctx, p); err != nil {
			return Pending{}, err
		}
	}

	g.mu.Lock()
	g.pruneLocked()
	g.pending[p.Token] = p
	g.mu.Unlock()

	g.observe(kind, OutcomeRequested)
	g.logger.Debug("delete confirmation requested",
		"kind", kind,
		"group_id", groupID,
		"target_id", targetID,
		"requester_id", requesterID)
	return p, nil
}

// Confirm performs the pending delete. The token is single-use: it is
// consumed before the delete runs, so a failed delete must be requested
// again. A requester who lost access to the group since requesting gets the
// checker's error and nothing is deleted.
func (g *Gate) Confirm(ctx context.Context, token string, requesterID uuid.UUID) (Pending, error) {
	p, target, access, err := g.take(token, requesterID)
	if err != nil {
		return Pending{}, err
	}

	if access != nil {
		if err := access.CheckAccess(ctx, p.GroupID, requesterID); err != nil {
			g.observe(p.Kind, OutcomeFailed)
			g.logger.Debug("delete confirmation refused",
				"kind", p.Kind,
				"group_id", p.GroupID,
				"requester_id", requesterID,
				"error", err)
			return Pending{}, err
		}
	}

	if err := target.Delete(ctx, p); err != nil {
		g.observe(p.Kind, OutcomeFailed)
		return p, err
	}

	g.observe(p.Kind, OutcomeConfirmed)
	g.logger.Info("delete confirmed",
		"kind", p.Kind,
		"group_id", p.GroupID,
		"target_id", p.TargetID)
	return p, nil
}

// Cancel drops the pending delete without running it.
func (g *Gate) Cancel(_ context.Context, token string, requesterID uuid.UUID) error {
	g.mu.Lock()
	p, ok := g.pending[token]
	if !ok || p.RequesterID != requesterID {
		g.mu.Unlock()
		return ErrConfirmationNotFound
	}
	delete(g.pending, token)
	g.mu.Unlock()

	g.observe(p.Kind, OutcomeCanceled)
	return nil
}

// Len returns the number of outstanding confirmations, expired ones included
// until they are pruned.
func (g *Gate) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}

func (g *Gate) take(token string, requesterID uuid.UUID) (Pending, Target, AccessChecker, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.pending[token]
	if !ok || p.RequesterID != requesterID {
		return Pending{}, Target{}, nil, ErrConfirmationNotFound
	}
	delete(g.pending, token)

	if g.now().After(p.ExpiresAt) {
		g.observeLocked(p.Kind, OutcomeExpired)
		return Pending{}, Target{}, nil, ErrConfirmationExpired
	}

	target, ok := g.targets[p.Kind]
	if !ok {
		return Pending{}, Target{}, nil, fmt.Errorf("%w: %s", ErrUnknownKind, p.Kind)
	}
	return p, target, g.access, nil
}

// pruneLocked drops expired confirmations. Must be called with mu held.
func (g *Gate) pruneLocked() {
	now := g.now()
	for token, p := range g.pending {
		if now.After(p.ExpiresAt) {
			delete(g.pending, token)
			g.observeLocked(p.Kind, OutcomeExpired)
		}
	}
}

func (g *Gate) observe(kind Kind, outcome string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.observeLocked(kind, outcome)
}

func (g *Gate) observeLocked(kind Kind, outcome string) {
	if g.observer != nil {
		g.observer.ObserveConfirmation(string(kind), outcome)
	}
}
