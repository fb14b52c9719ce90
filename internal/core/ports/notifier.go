package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// EventType names an order change worth telling someone about.
type EventType string

const (
	EventOrderCreated        EventType = "order.created"
	EventOrderStatusChanged  EventType = "order.status_changed"
	EventOrderAssigned       EventType = "order.assigned"
	EventOrderNoteAdded      EventType = "order.note_added"
	EventCompletionRequested EventType = "order.completion_requested"
	EventOrderDelivered      EventType = "order.delivered"
	EventOrderDeleted        EventType = "order.deleted"
	EventCompletionOverdue   EventType = "order.completion_overdue"
)

// Event is the payload handed to the notification channel.
type Event struct {
	Type       EventType         `json:"type"`
	OrderID    kernel.UUID       `json:"orderId"`
	ActorID    kernel.UUID       `json:"actorId"`
	Recipients []kernel.UUID     `json:"recipients,omitempty"`
	Status     string            `json:"status,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// Notifier is fire-and-forget. Implementations must not block the caller on
// delivery and have no way to report failure back, so a committed transition
// is never undone by a notification problem.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}
