package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// DeleteOrderCommandHandler removes delivered orders.
//
// Example:
//
//	cmd, _ := NewDeleteOrderCommand(admin, orderID)
//	if err := handler.Handle(ctx, cmd); errors.Is(err, order.ErrOrderNotDeletable) {
//	    // only delivered orders may be deleted
//	}
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	gate       services.RoleGate
	notifier   ports.Notifier
}

// NewDeleteOrderCommandHandler creates the handler.
func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		gate:       services.NewRoleGate(),
		notifier:   notifier,
	}
}

// Handle deletes the order only if it is Delivered. Stock is not returned:
// the goods left the warehouse.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := mutateOrder(ctx, h.uowFactory.Create, cmd.OrderID(), func(_ OrderUoW, o *order.Order) error {
		if err := h.gate.Check(cmd.Actor(), services.ActionDeleteOrder, o); err != nil {
			return err
		}
		return o.EnsureDeletable()
	}, removeOrder)
	if err != nil {
		return err
	}

	h.notifier.Notify(ctx, newEvent(ports.EventOrderDeleted, o, cmd.Actor().ID))
	return nil
}
