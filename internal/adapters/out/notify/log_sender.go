package notify

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
)

// LogSender writes events to the log. It is the channel used when no broker
// is configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender logs events through logger.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger.With("component", "notification_log")}
}

// Send writes one info line per event and never fails.
func (s *LogSender) Send(ctx context.Context, event ports.Event) error {
	recipients := make([]string, 0, len(event.Recipients))
	for _, r := range event.Recipients {
		recipients = append(recipients, r.String())
	}

	s.logger.InfoContext(ctx, "order notification",
		"type", event.Type,
		"order_id", event.OrderID.String(),
		"actor_id", event.ActorID.String(),
		"recipients", recipients,
		"status", event.Status,
	)
	return nil
}
