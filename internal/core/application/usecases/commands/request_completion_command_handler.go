package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// RequestCompletionCommandHandler flags an order as ready for admin
// confirmation.
type RequestCompletionCommandHandler struct {
	uowFactory OrderUoWFactory
	gate       services.RoleGate
	notifier   ports.Notifier
}

// NewRequestCompletionCommandHandler creates the handler.
func NewRequestCompletionCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
) RequestCompletionCommandHandler {
	return RequestCompletionCommandHandler{
		uowFactory: uowFactory,
		gate:       services.NewRoleGate(),
		notifier:   notifier,
	}
}

// Handle records the request time and notifies admins. Asking twice fails with
// order.ErrDuplicateCompletionRequest.
//
// Example:
//
//	cmd, _ := NewRequestCompletionCommand(agent, orderID)
//	o, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	// o.CompletionRequested() is now true until an admin confirms
func (h *RequestCompletionCommandHandler) Handle(ctx context.Context, cmd RequestCompletionCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := mutateOrder(ctx, h.uowFactory.Create, cmd.OrderID(), func(_ OrderUoW, o *order.Order) error {
		if err := h.gate.Check(cmd.Actor(), services.ActionRequestCompletion, o); err != nil {
			return err
		}
		return o.RequestCompletion(cmd.Actor().ID, now())
	}, saveOrder)
	if err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, newEvent(ports.EventCompletionRequested, o, cmd.Actor().ID))
	return o, nil
}
