package memory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/studygroup-api/internal/platform/logger"
	"github.com/phrazzld/studygroup-api/internal/store"
)

type txKey struct{}

type tx struct {
	db *DB
	w  writer
}

func (db *DB) txFromContext(ctx context.Context) *tx {
	t, ok := ctx.Value(txKey{}).(*tx)
	if !ok || t.db != db {
		return nil
	}
	return t
}

// RunInTransaction executes fn atomically.
// Store calls made with the ctx passed to fn join the transaction; a nested
// RunInTransaction call joins the outer one. If fn returns an error every
// write is undone and the error is returned unchanged. A panic is rolled
// back and re-raised.
//
// Store calls inside fn must use the ctx fn receives. A read or write made
// with an unrelated context waits for the transaction to finish.
func (db *DB) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	if db.txFromContext(ctx) != nil {
		return fn(ctx)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	log := logger.FromContextOrDefault(ctx, db.logger)

	db.txMu.Lock()
	defer db.txMu.Unlock()

	t := &tx{db: db}
	txCtx := context.WithValue(ctx, txKey{}, t)

	defer func() {
		if p := recover(); p != nil {
			db.rollback(t)
			log.Error("rolled back transaction after panic",
				slog.Any("panic", p))
			// ALLOW-PANIC: Propagating caught panic from transaction
			panic(p)
		}
	}()

	if err := fn(txCtx); err != nil {
		undone := len(t.w.undo)
		db.rollback(t)
		log.Debug("rolled back transaction due to error",
			slog.String("error", err.Error()),
			slog.Int("undone_writes", undone))
		return err
	}

	return nil
}

func (db *DB) rollback(t *tx) {
	db.mu.Lock()
	defer db.mu.Unlock()
	t.w.rollbackTo(0)
}
