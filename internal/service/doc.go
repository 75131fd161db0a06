// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and stores
// (defined in internal/store) to fulfill application features.
//
// Key components:
//
// 1. Service Interfaces:
//   - GroupService: the group registry (create, join by code, leave, dashboards)
//   - StudyService: study lists, topics and comments
//   - EventService: the per-group event schedule and its deletion policy
//
// 2. Use Case Implementations:
//   - Every operation checks all of its preconditions and writes inside one
//     store transaction, so a failed operation leaves no partial mutation
//   - Committed changes are published as domain events (internal/events)
//
// 3. Dependency Management:
//   - Services receive stores, an event emitter, a clock and a logger
//     through constructor injection
//
// 4. Error Handling:
//   - Store errors are translated to the service sentinels in errors.go
//   - Unexpected failures are wrapped in ServiceError
//
// Destructive operations (DeleteTopic, DeleteEvent) run unconditionally once
// called; the two-phase confirmation protocol lives in the confirm
// subpackage.
package service
