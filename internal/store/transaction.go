package store

import "context"

// TxFn is a function that executes within a transaction. Store calls made
// with the ctx it receives join the transaction.
type TxFn func(ctx context.Context) error

// Transactor runs a function atomically: every store write made through the
// transaction's context is undone if fn returns an error or panics, and
// concurrent transactions never interleave.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn TxFn) error
}
