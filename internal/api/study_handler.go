package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/api/shared"
	"github.com/phrazzld/studygroup-api/internal/domain"
	"github.com/phrazzld/studygroup-api/internal/platform/logger"
	"github.com/phrazzld/studygroup-api/internal/service"
	"github.com/phrazzld/studygroup-api/internal/service/confirm"
)

// StudyHandler handles study list, topic and comment requests
type StudyHandler struct {
	study  service.StudyService
	gate   *confirm.Gate
	logger *slog.Logger
}

// NewStudyHandler creates a new StudyHandler
func NewStudyHandler(study service.StudyService, gate *confirm.Gate, logger *slog.Logger) *StudyHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StudyHandler")
	}
	return &StudyHandler{
		study:  study,
		gate:   gate,
		logger: logger.With(slog.String("component", "study_handler")),
	}
}

// CreateStudyList handles POST /api/groups/{groupID}/lists
func (h *StudyHandler) CreateStudyList(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "groupID")
	if !ok {
		return
	}

	var req CreateStudyListRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	list, err := h.study.CreateStudyList(r.Context(), ids[0], shared.Sanitize(req.Name))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create study list")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, StudyListResponse{
		ID:     list.ID,
		Name:   list.Name,
		Topics: []TopicResponse{},
	})
}

// ListTopics handles GET /api/groups/{groupID}/lists/{listID}/topics
//
// Query parameters: status, priority, responsible_id, unassigned=true and
// sort=priority.
func (h *StudyHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "groupID", "listID")
	if !ok {
		return
	}

	query, err := parseTopicQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	topics, err := h.study.ListTopics(r.Context(), ids[0], ids[1], query)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list topics")
		return
	}

	resp := make([]TopicResponse, 0, len(topics))
	for _, t := range topics {
		resp = append(resp, topicToResponse(t))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

func parseTopicQuery(r *http.Request) (service.TopicQuery, error) {
	q := r.URL.Query()
	var query service.TopicQuery

	if s := q.Get("status"); s != "" {
		status := domain.TopicStatus(s)
		if !status.IsValid() {
			return query, domain.NewValidationError("status", "is not a known status", domain.ErrInvalidTopicStatus)
		}
		query.Filter.Status = status
	}
	if p := q.Get("priority"); p != "" {
		priority := domain.Priority(p)
		if !priority.IsValid() {
			return query, domain.NewValidationError("priority", "is not a known priority", domain.ErrInvalidPriority)
		}
		query.Filter.Priority = priority
	}
	if id := q.Get("responsible_id"); id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return query, domain.NewValidationError("responsible_id", "has invalid format", domain.ErrInvalidID)
		}
		query.Filter.ResponsibleID = parsed
	}
	if u := q.Get("unassigned"); u != "" {
		unassigned, err := strconv.ParseBool(u)
		if err != nil {
			return query, domain.NewValidationError("unassigned", "must be a boolean", domain.ErrValidation)
		}
		query.Filter.Unassigned = unassigned
	}
	switch q.Get("sort") {
	case "":
	case "priority":
		query.ByPriority = true
	default:
		return query, domain.NewValidationError("sort", "must be priority", domain.ErrValidation)
	}
	return query, nil
}

// CreateTopic handles POST /api/groups/{groupID}/lists/{listID}/topics
func (h *StudyHandler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "groupID", "listID")
	if !ok {
		return
	}

	var req CreateTopicRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	input := service.TopicInput{
		Title:    shared.Sanitize(req.Title),
		Priority: domain.Priority(req.Priority),
	}
	if req.ResponsibleID != "" {
		// Already validated as a UUID.
		input.ResponsibleID = uuid.MustParse(req.ResponsibleID)
	}

	topic, err := h.study.CreateTopic(r.Context(), ids[0], ids[1], input)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create topic")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, topicToResponse(topic))
}

// UpdateTopicStatus handles PATCH /api/groups/{groupID}/topics/{topicID}/status
func (h *StudyHandler) UpdateTopicStatus(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "groupID", "topicID")
	if !ok {
		return
	}

	var req UpdateTopicStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	topic, err := h.study.UpdateTopicStatus(r.Context(), ids[0], ids[1], domain.TopicStatus(req.Status))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update topic status")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, topicToResponse(topic))
}

// UpdateTopicResponsible handles PATCH /api/groups/{groupID}/topics/{topicID}/responsible
func (h *StudyHandler) UpdateTopicResponsible(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "groupID", "topicID")
	if !ok {
		return
	}

	var req UpdateTopicResponsibleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	responsibleID := uuid.Nil
	if req.ResponsibleID != "" {
		responsibleID = uuid.MustParse(req.ResponsibleID)
	}

	topic, err := h.study.UpdateTopicResponsible(r.Context(), ids[0], ids[1], responsibleID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update topic responsible")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, topicToResponse(topic))
}

// AddComment handles POST /api/groups/{groupID}/topics/{topicID}/comments
// The session user is the author.
func (h *StudyHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ids, ok := pathIDs(w, r, "groupID", "topicID")
	if !ok {
		return
	}

	var req AddCommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	comment, err := h.study.AddComment(r.Context(), ids[0], ids[1], userID, shared.Sanitize(req.Text))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add comment")
		return
	}

	user, _ := shared.UserFromContext(r.Context())
	resp := commentToResponse(comment, nil)
	if user != nil {
		author := userToResponse(user)
		resp.Author = &author
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, resp)
}

// DeleteTopic handles DELETE /api/groups/{groupID}/topics/{topicID}
// Nothing is deleted yet: the response carries a confirmation token.
func (h *StudyHandler) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ids, ok := pathIDs(w, r, "groupID", "topicID")
	if !ok {
		return
	}

	pending, err := h.gate.RequestDelete(r.Context(), confirm.KindTopic, ids[0], ids[1], userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to request topic deletion")
		return
	}

	log.Debug("topic deletion pending", slog.String("topic_id", ids[1].String()))
	shared.RespondWithJSON(w, r, http.StatusAccepted, pendingToResponse(pending))
}
