package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// AcceptOrderCommandHandler claims an order for the acting agent. Concurrent
// accepts and assigns race on the order version; exactly one wins and the rest
// see order.ErrAlreadyAssigned after reloading.
type AcceptOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	gate       services.RoleGate
	notifier   ports.Notifier
}

// NewAcceptOrderCommandHandler creates a handler for agent self-assignment.
// Requires an OrderUoWFactory for the versioned write and a Notifier for the
// assignment event.
func NewAcceptOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		gate:       services.NewRoleGate(),
		notifier:   notifier,
	}
}

// Handle assigns the order to the acting agent and records the assignment time.
// The order must be unassigned and not terminal.
//
// Example:
//
//	cmd, _ := NewAcceptOrderCommand(agent, orderID)
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrAlreadyAssigned) {
//	    // another agent claimed it first
//	}
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := mutateOrder(ctx, h.uowFactory.Create, cmd.OrderID(), func(_ OrderUoW, o *order.Order) error {
		if err := h.gate.Check(cmd.Actor(), services.ActionAcceptOrder, o); err != nil {
			return err
		}
		return o.Assign(cmd.Actor().ID, now())
	}, saveOrder)
	if err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, newEvent(ports.EventOrderAssigned, o, cmd.Actor().ID))
	return o, nil
}
