package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/domain"
	"github.com/phrazzld/studygroup-api/internal/store"
)

// DB is the arena shared by every memory store.
type DB struct {
	// mu guards the maps below.
	mu sync.RWMutex
	// txMu is held exclusively by the running transaction or standalone
	// write, and shared by standalone reads.
	txMu sync.RWMutex

	users      map[uuid.UUID]*domain.User
	groups     map[uuid.UUID]*domain.Group
	codes      map[string]uuid.UUID
	lists      map[uuid.UUID]*domain.StudyList
	topics     map[uuid.UUID]*domain.Topic
	comments   map[uuid.UUID]*domain.Comment
	events     map[uuid.UUID]*domain.StudyEvent
	dashboards map[uuid.UUID][]uuid.UUID

	logger *slog.Logger
}

// Ensure DB implements store.Transactor interface
var _ store.Transactor = (*DB)(nil)

// NewDB creates an empty arena.
// If logger is nil, a default logger will be used.
func NewDB(logger *slog.Logger) *DB {
	if logger == nil {
		logger = slog.Default()
	}

	return &DB{
		users:      make(map[uuid.UUID]*domain.User),
		groups:     make(map[uuid.UUID]*domain.Group),
		codes:      make(map[string]uuid.UUID),
		lists:      make(map[uuid.UUID]*domain.StudyList),
		topics:     make(map[uuid.UUID]*domain.Topic),
		comments:   make(map[uuid.UUID]*domain.Comment),
		events:     make(map[uuid.UUID]*domain.StudyEvent),
		dashboards: make(map[uuid.UUID][]uuid.UUID),
		logger:     logger.With(slog.String("component", "memory_db")),
	}
}

// view runs fn under the read lock. Outside a transaction it also waits for
// the running transaction to finish, so readers never see writes that may
// still be rolled back.
func (db *DB) view(ctx context.Context, fn func()) {
	if db.txFromContext(ctx) == nil {
		db.txMu.RLock()
		defer db.txMu.RUnlock()
	}
	db.mu.RLock()
	defer db.mu.RUnlock()
	fn()
}

// update runs fn under the write lock. Inside a transaction the undo steps
// are kept on the transaction; otherwise the write is its own transaction.
// Either way a failing fn leaves no partial changes behind.
func (db *DB) update(ctx context.Context, fn func(w *writer) error) error {
	if t := db.txFromContext(ctx); t != nil {
		db.mu.Lock()
		defer db.mu.Unlock()

		mark := len(t.w.undo)
		if err := fn(&t.w); err != nil {
			t.w.rollbackTo(mark)
			return err
		}
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	db.txMu.Lock()
	defer db.txMu.Unlock()
	db.mu.Lock()
	defer db.mu.Unlock()

	var w writer
	if err := fn(&w); err != nil {
		w.rollbackTo(0)
		return err
	}
	return nil
}

// writer collects undo steps for the writes made through it.
type writer struct {
	undo []func()
}

func (w *writer) record(step func()) {
	w.undo = append(w.undo, step)
}

// rollbackTo undoes every step after mark, newest first.
func (w *writer) rollbackTo(mark int) {
	for i := len(w.undo) - 1; i >= mark; i-- {
		w.undo[i]()
	}
	w.undo = w.undo[:mark]
}

// put stores v under k and records how to restore the previous entry.
func put[K comparable, V any](w *writer, m map[K]V, k K, v V) {
	old, existed := m[k]
	w.record(func() {
		if existed {
			m[k] = old
		} else {
			delete(m, k)
		}
	})
	m[k] = v
}

// remove deletes k and records how to restore it.
func remove[K comparable, V any](w *writer, m map[K]V, k K) {
	old, existed := m[k]
	if !existed {
		return
	}
	w.record(func() { m[k] = old })
	delete(m, k)
}

// userExists must be called with mu held.
func (db *DB) userExists(id uuid.UUID) bool {
	_, ok := db.users[id]
	return ok
}
