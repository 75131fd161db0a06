package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/api/middleware"
	"github.com/phrazzld/studygroup-api/internal/service"
	"github.com/phrazzld/studygroup-api/internal/service/confirm"
)

// RouterDeps holds what the /api routes need.
type RouterDeps struct {
	Groups service.GroupService
	Study  service.StudyService
	Events service.EventService
	Gate   *confirm.Gate
	Users  middleware.UserLookup
	// DefaultUser acts when a request has no X-User-ID header.
	DefaultUser uuid.UUID
	Clock       service.Clock
	Logger      *slog.Logger
}

// NewRouter returns the handler to mount at /api. Trace and recovery
// middleware are the caller's concern.
func NewRouter(d RouterDeps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	identity := middleware.NewIdentityMiddleware(d.Users, d.DefaultUser, logger)
	groupHandler := NewGroupHandler(d.Groups, logger)
	studyHandler := NewStudyHandler(d.Study, d.Gate, logger)
	eventHandler := NewEventHandler(d.Events, d.Gate, d.Clock, logger)
	confirmationHandler := NewConfirmationHandler(d.Gate, logger)

	r := chi.NewRouter()
	r.Use(identity.Identify)

	r.Get("/me", groupHandler.Me)

	r.Route("/groups", func(r chi.Router) {
		r.Get("/", groupHandler.ListGroups)
		r.Post("/", groupHandler.CreateGroup)
		r.Post("/join", groupHandler.JoinGroup)

		r.Route("/{groupID}", func(r chi.Router) {
			r.Use(middleware.RequireGroupAccess(d.Groups, "groupID"))

			r.Get("/", groupHandler.GetGroup)
			r.Post("/leave", groupHandler.LeaveGroup)

			r.Post("/lists", studyHandler.CreateStudyList)
			r.Get("/lists/{listID}/topics", studyHandler.ListTopics)
			r.Post("/lists/{listID}/topics", studyHandler.CreateTopic)

			r.Patch("/topics/{topicID}/status", studyHandler.UpdateTopicStatus)
			r.Patch("/topics/{topicID}/responsible", studyHandler.UpdateTopicResponsible)
			r.Post("/topics/{topicID}/comments", studyHandler.AddComment)
			r.Delete("/topics/{topicID}", studyHandler.DeleteTopic)

			r.Get("/events", eventHandler.ListEvents)
			r.Post("/events", eventHandler.CreateEvent)
			r.Delete("/events/{eventID}", eventHandler.DeleteEvent)
		})
	})

	r.Post("/confirmations/{token}", confirmationHandler.Confirm)
	r.Delete("/confirmations/{token}", confirmationHandler.Cancel)

	return r
}
