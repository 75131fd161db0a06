// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying storage mechanism from the
// application's core logic. Implementations keep entities in flat
// collections keyed by id; owners (groups, study lists, topics) hold the
// ordered id lists of what they own.
package store
