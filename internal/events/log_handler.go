package events

import (
	"context"
	"log/slog"

	"github.com/phrazzld/studygroup-api/internal/platform/logger"
	"github.com/phrazzld/studygroup-api/internal/redact"
)

// LogHandler writes one structured line per event. Join codes in
// payloads are masked.
type LogHandler struct {
	logger *slog.Logger
}

// NewLogHandler creates a LogHandler. If logger is nil, a default logger will be used.
func NewLogHandler(logger *slog.Logger) *LogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogHandler{logger: logger.With("component", "event_log")}
}

// HandleEvent implements EventHandler.
func (h *LogHandler) HandleEvent(ctx context.Context, event *DomainEvent) error {
	logger.FromContextOrDefault(ctx, h.logger).Info("domain event",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type),
		slog.String("group_id", event.GroupID.String()),
		slog.String("actor_id", event.ActorID.String()),
		slog.String("payload", redact.String(string(event.Payload))))
	return nil
}
