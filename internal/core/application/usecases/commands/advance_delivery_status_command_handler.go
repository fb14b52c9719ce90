package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// AdvanceDeliveryStatusCommandHandler moves an assigned order along its delivery
// stages on behalf of the agent.
type AdvanceDeliveryStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	gate       services.RoleGate
	notifier   ports.Notifier
}

// NewAdvanceDeliveryStatusCommandHandler creates the handler.
func NewAdvanceDeliveryStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
) AdvanceDeliveryStatusCommandHandler {
	return AdvanceDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
		gate:       services.NewRoleGate(),
		notifier:   notifier,
	}
}

// Handle applies the new status if the actor is the assigned agent.
//
// Example:
//
//	cmd, _ := NewAdvanceDeliveryStatusCommand(agent, orderID, order.OutForDelivery)
//	o, err := handler.Handle(ctx, cmd)
func (h *AdvanceDeliveryStatusCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceDeliveryStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := mutateOrder(ctx, h.uowFactory.Create, cmd.OrderID(), func(_ OrderUoW, o *order.Order) error {
		if err := h.gate.Check(cmd.Actor(), services.ActionAdvanceDeliveryStatus, o); err != nil {
			return err
		}
		return o.AdvanceDeliveryStatus(cmd.Actor().ID, cmd.Status())
	}, saveOrder)
	if err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, newEvent(ports.EventOrderStatusChanged, o, cmd.Actor().ID))
	return o, nil
}
