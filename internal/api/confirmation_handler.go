package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/studygroup-api/internal/api/shared"
	"github.com/phrazzld/studygroup-api/internal/service/confirm"
)

// ConfirmationHandler completes or cancels pending deletes
type ConfirmationHandler struct {
	gate   *confirm.Gate
	logger *slog.Logger
}

// NewConfirmationHandler creates a new ConfirmationHandler
func NewConfirmationHandler(gate *confirm.Gate, logger *slog.Logger) *ConfirmationHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ConfirmationHandler")
	}
	return &ConfirmationHandler{
		gate:   gate,
		logger: logger.With(slog.String("component", "confirmation_handler")),
	}
}

// Confirm handles POST /api/confirmations/{token}
// Only the user who requested the delete may confirm it.
func (h *ConfirmationHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	p, err := h.gate.Confirm(r.Context(), chi.URLParam(r, "token"), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to confirm deletion")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ConfirmationResultResponse{
		Kind:     p.Kind,
		TargetID: p.TargetID,
		Status:   "deleted",
	})
}

// Cancel handles DELETE /api/confirmations/{token}
func (h *ConfirmationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.gate.Cancel(r.Context(), chi.URLParam(r, "token"), userID); err != nil {
		HandleAPIError(w, r, err, "Failed to cancel deletion")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
