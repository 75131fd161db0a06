package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/studygroup-api/internal/api/shared"
	"github.com/phrazzld/studygroup-api/internal/platform/logger"
	"github.com/phrazzld/studygroup-api/internal/service"
)

// GroupHandler handles group registry and dashboard requests
type GroupHandler struct {
	groups service.GroupService
	logger *slog.Logger
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groups service.GroupService, logger *slog.Logger) *GroupHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GroupHandler")
	}
	return &GroupHandler{
		groups: groups,
		logger: logger.With(slog.String("component", "group_handler")),
	}
}

// Me handles GET /api/me
func (h *GroupHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User identity required")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// ListGroups handles GET /api/groups
// It returns the session user's dashboard in display order.
func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	groups, err := h.groups.ListGroups(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list groups")
		return
	}

	resp := make([]GroupSummaryResponse, 0, len(groups))
	for _, g := range groups {
		resp = append(resp, groupToSummary(g, userID))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// CreateGroup handles POST /api/groups
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateGroupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	g, err := h.groups.CreateGroup(r.Context(), userID,
		shared.Sanitize(req.Name), shared.Sanitize(req.Description))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create group")
		return
	}

	log.Debug("group created via API", slog.String("group_id", g.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, groupToSummary(g, userID))
}

// JoinGroup handles POST /api/groups/join
func (h *GroupHandler) JoinGroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req JoinGroupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	g, err := h.groups.JoinGroup(r.Context(), req.Code, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to join group")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, groupToSummary(g, userID))
}

// GetGroup handles GET /api/groups/{groupID}
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ids, ok := pathIDs(w, r, "groupID")
	if !ok {
		return
	}

	view, err := h.groups.GetGroup(r.Context(), ids[0], userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load group")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, viewToResponse(view, userID))
}

// LeaveGroup handles POST /api/groups/{groupID}/leave
func (h *GroupHandler) LeaveGroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ids, ok := pathIDs(w, r, "groupID")
	if !ok {
		return
	}

	if err := h.groups.LeaveGroup(r.Context(), ids[0], userID); err != nil {
		HandleAPIError(w, r, err, "Failed to leave group")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
