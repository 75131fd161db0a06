// Package memory provides the in-process implementation of the store
// interfaces.
//
// All entities live in flat maps keyed by id inside a single DB (the arena).
// Owners hold ordered id slices: a group lists its members, study lists and
// events; a study list lists its topics; a topic lists its comments. Stored
// values are never mutated in place. Writers clone, modify, and put the
// clone back, which lets every write register a cheap undo step.
//
// DB.RunInTransaction serialises writers and rolls back every write made
// through the transaction's context when the function fails or panics.
package memory
