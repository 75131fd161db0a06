package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/api/shared"
	"github.com/phrazzld/studygroup-api/internal/domain"
	"github.com/phrazzld/studygroup-api/internal/platform/logger"
	"github.com/phrazzld/studygroup-api/internal/service"
	"github.com/phrazzld/studygroup-api/internal/store"
)

// UserHeader names the request header that selects the session user.
const UserHeader = "X-User-ID"

// UserLookup resolves user IDs. store.UserStore satisfies it.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// IdentityMiddleware resolves the session user. There is no real
// authentication: the user is named by the X-User-ID header, or is the
// configured default user when the header is absent.
type IdentityMiddleware struct {
	users       UserLookup
	defaultUser uuid.UUID
	logger      *slog.Logger
}

// NewIdentityMiddleware creates an IdentityMiddleware. defaultUser may be
// uuid.Nil, in which case requests without the header are rejected.
func NewIdentityMiddleware(users UserLookup, defaultUser uuid.UUID, logger *slog.Logger) *IdentityMiddleware {
	if users == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("users cannot be nil for IdentityMiddleware")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &IdentityMiddleware{
		users:       users,
		defaultUser: defaultUser,
		logger:      logger.With(slog.String("component", "identity_middleware")),
	}
}

// Identify puts the session user in the request context and marks it as
// the actor of any domain events the request causes.
func (m *IdentityMiddleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContextOrDefault(r.Context(), m.logger)

		userID := m.defaultUser
		if raw := strings.TrimSpace(r.Header.Get(UserHeader)); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				log.Debug("malformed user header", slog.String("value", raw))
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid user identity")
				return
			}
			userID = parsed
		}
		if userID == uuid.Nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "User identity required")
			return
		}

		user, err := m.users.GetByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				log.Debug("unknown session user", slog.String("user_id", userID.String()))
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Unknown user")
				return
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Identity error", err)
			return
		}

		ctx := shared.WithUser(r.Context(), user)
		ctx = service.WithActor(ctx, user.ID)
		ctx = logger.WithLogger(ctx, log.With(slog.String("user_id", user.ID.String())))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
