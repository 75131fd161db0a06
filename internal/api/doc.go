// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the study group services, translating HTTP concerns to business
// operations.
//
// Routes live under /api and always act as the session user resolved by
// the identity middleware. Any route naming a group answers 404 unless the
// group is on that user's dashboard. Deleting a topic or an event is a two
// step exchange: the DELETE returns a pending confirmation token, and the
// delete happens only when the token is posted to /api/confirmations.
package api
