package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ConfirmDeliveryCommandHandler finalizes a delivery the agent asked to close.
// It shares the version check with the admin override, so only one of the two
// paths to Delivered can win for a given order.
type ConfirmDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	gate       services.RoleGate
	notifier   ports.Notifier
}

// NewConfirmDeliveryCommandHandler creates the handler.
func NewConfirmDeliveryCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		gate:       services.NewRoleGate(),
		notifier:   notifier,
	}
}

// Handle marks the order Delivered. It fails with order.ErrNoPendingCompletionRequest
// unless the assigned agent asked to close the order first.
//
// Example:
//
//	cmd, _ := NewConfirmDeliveryCommand(admin, orderID)
//	o, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(o.DeliveredAt())
func (h *ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := mutateOrder(ctx, h.uowFactory.Create, cmd.OrderID(), func(_ OrderUoW, o *order.Order) error {
		if err := h.gate.Check(cmd.Actor(), services.ActionConfirmDelivery, o); err != nil {
			return err
		}
		return o.ConfirmDelivery(now())
	}, saveOrder)
	if err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, newEvent(ports.EventOrderDelivered, o, cmd.Actor().ID))
	return o, nil
}
