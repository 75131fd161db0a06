// Package events provides types and interfaces for an event-driven architecture.
//
// Services emit a DomainEvent after every successful mutation without
// knowing which handlers will process it. Handlers are registered on an
// emitter at startup; the server wires a structured-log handler and a
// metrics handler.
//
// The primary components are:
// - DomainEvent: a record of something that happened in a group
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
