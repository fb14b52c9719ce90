package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// AddDeliveryNoteCommandHandler records delivery notes on assigned orders.
type AddDeliveryNoteCommandHandler struct {
	uowFactory OrderUoWFactory
	gate       services.RoleGate
	notifier   ports.Notifier
	maxNotes   int
}

// NewAddDeliveryNoteCommandHandler caps every order at maxNotes notes;
// maxNotes <= 0 uses order.DefaultMaxDeliveryNotes.
func NewAddDeliveryNoteCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	maxNotes int,
) AddDeliveryNoteCommandHandler {
	return AddDeliveryNoteCommandHandler{
		uowFactory: uowFactory,
		gate:       services.NewRoleGate(),
		notifier:   notifier,
		maxNotes:   maxNotes,
	}
}

// Handle appends the note and publishes it with the note-added event.
// Only the agent the order is assigned to may write notes.
//
// Example:
//
//	cmd, err := NewAddDeliveryNoteCommand(agent, orderID, "Left with the concierge")
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, cmd)
func (h *AddDeliveryNoteCommandHandler) Handle(ctx context.Context, cmd AddDeliveryNoteCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := mutateOrder(ctx, h.uowFactory.Create, cmd.OrderID(), func(_ OrderUoW, o *order.Order) error {
		if err := h.gate.Check(cmd.Actor(), services.ActionAddNote, o); err != nil {
			return err
		}
		return o.AddNote(cmd.Actor().ID, cmd.Text(), now(), h.maxNotes)
	}, saveOrder)
	if err != nil {
		return nil, err
	}

	event := newEvent(ports.EventOrderNoteAdded, o, cmd.Actor().ID)
	event.Attributes = map[string]string{"note": cmd.Text()}
	h.notifier.Notify(ctx, event)
	return o, nil
}
