package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/api/shared"
	"github.com/phrazzld/studygroup-api/internal/service"
)

// AccessChecker reports whether a group is on a user's dashboard.
// service.GroupService satisfies it.
type AccessChecker interface {
	CheckAccess(ctx context.Context, groupID, userID uuid.UUID) error
}

// RequireGroupAccess rejects requests for a group that is not on the
// session user's dashboard with 404, the same answer as for a group that
// does not exist. The group is read from the URL parameter param.
func RequireGroupAccess(checker AccessChecker, param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := shared.UserIDFromContext(r.Context())
			if !ok {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "User identity required")
				return
			}

			groupID, err := uuid.Parse(chi.URLParam(r, param))
			if err != nil {
				shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid group ID")
				return
			}

			if err := checker.CheckAccess(r.Context(), groupID, userID); err != nil {
				if errors.Is(err, service.ErrGroupNotFound) {
					shared.RespondWithError(w, r, http.StatusNotFound, "Group not found")
					return
				}
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "An unexpected error occurred", err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
