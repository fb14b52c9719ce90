package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/user"
	"fulfillment/internal/core/ports"
)

// RemindOverdueCompletionsCommandHandler does not change orders. It only reads
// pending completion requests and notifies every active admin about each
// overdue one.
type RemindOverdueCompletionsCommandHandler struct {
	reader   ports.OrderReader
	users    ports.UserRepository
	notifier ports.Notifier
	clock    func() time.Time
}

// NewRemindOverdueCompletionsCommandHandler reads orders through reader and
// resolves admin recipients through users.
//
// Example:
//
//	h := NewRemindOverdueCompletionsCommandHandler(reader, users, notifier)
//	cmd, _ := NewRemindOverdueCompletionsCommand(24 * time.Hour)
//	n, err := h.Handle(ctx, cmd)
func NewRemindOverdueCompletionsCommandHandler(
	reader ports.OrderReader,
	users ports.UserRepository,
	notifier ports.Notifier,
) RemindOverdueCompletionsCommandHandler {
	return RemindOverdueCompletionsCommandHandler{
		reader:   reader,
		users:    users,
		notifier: notifier,
		clock:    now,
	}
}

// Handle returns how many orders were reported.
func (h *RemindOverdueCompletionsCommandHandler) Handle(ctx context.Context, cmd RemindOverdueCompletionsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	requested := true
	cutoff := h.clock().Add(-cmd.OlderThan())
	overdue, err := h.reader.List(ctx, ports.OrderFilter{
		CompletionRequested: &requested,
		ExcludeStatuses:     []order.Status{order.Delivered, order.Cancelled},
		RequestedBefore:     &cutoff,
	})
	if err != nil {
		return 0, err
	}
	if len(overdue) == 0 {
		return 0, nil
	}

	admins, err := h.users.ListByRole(ctx, user.RoleAdmin)
	if err != nil {
		return 0, err
	}
	recipients := make([]kernel.UUID, 0, len(admins))
	for _, a := range admins {
		recipients = append(recipients, a.ID())
	}

	for _, o := range overdue {
		event := ports.Event{
			Type:       ports.EventCompletionOverdue,
			OrderID:    o.ID(),
			Recipients: recipients,
			Status:     o.Status().String(),
			OccurredAt: h.clock(),
		}
		if agent := o.AssignedTo(); agent != nil {
			event.ActorID = *agent
		}
		if at := o.CompletionRequestedAt(); at != nil {
			event.Attributes = map[string]string{"requestedAt": at.Format(time.RFC3339)}
		}
		h.notifier.Notify(ctx, event)
	}

	return len(overdue), nil
}
