package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/studygroup-api/internal/api/shared"
	"github.com/phrazzld/studygroup-api/internal/platform/logger"
	"github.com/phrazzld/studygroup-api/internal/service"
	"github.com/phrazzld/studygroup-api/internal/service/confirm"
)

// EventHandler handles study event requests
type EventHandler struct {
	events service.EventService
	gate   *confirm.Gate
	clock  service.Clock
	logger *slog.Logger
}

// NewEventHandler creates a new EventHandler. A nil clock uses the wall clock.
func NewEventHandler(
	events service.EventService,
	gate *confirm.Gate,
	clock service.Clock,
	logger *slog.Logger,
) *EventHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for EventHandler")
	}
	if clock == nil {
		clock = service.SystemClock
	}
	return &EventHandler{
		events: events,
		gate:   gate,
		clock:  clock,
		logger: logger.With(slog.String("component", "event_handler")),
	}
}

// ListEvents handles GET /api/groups/{groupID}/events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "groupID")
	if !ok {
		return
	}

	evs, err := h.events.ListEvents(r.Context(), ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list events")
		return
	}

	resp := make([]EventResponse, 0, len(evs))
	for _, e := range evs {
		resp = append(resp, eventToResponse(e, h.events.IsPast(e), nil))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// CreateEvent handles POST /api/groups/{groupID}/events
// Instants before now are refused here; the scheduler itself accepts them.
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ids, ok := pathIDs(w, r, "groupID")
	if !ok {
		return
	}

	var req CreateEventRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if req.DateTime.Before(h.clock()) {
		log.Debug("rejecting event in the past", slog.Time("date_time", req.DateTime))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Event date must not be in the past")
		return
	}

	event, err := h.events.CreateEvent(r.Context(), ids[0], service.EventInput{
		Name:      shared.Sanitize(req.Name),
		Location:  shared.Sanitize(req.Location),
		DateTime:  req.DateTime,
		CreatorID: userID,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create event")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, eventToResponse(event, h.events.IsPast(event), nil))
}

// DeleteEvent handles DELETE /api/groups/{groupID}/events/{eventID}
// The deletion policy is checked now; the delete itself waits for
// confirmation.
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ids, ok := pathIDs(w, r, "groupID", "eventID")
	if !ok {
		return
	}

	pending, err := h.gate.RequestDelete(r.Context(), confirm.KindEvent, ids[0], ids[1], userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to request event deletion")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, pendingToResponse(pending))
}
