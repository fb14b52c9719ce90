package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ErrDirectDeliveryDisabled is returned when the admin override may not
// finalize delivery and the completion handshake must be used instead.
var ErrDirectDeliveryDisabled = errs.NewValueIsInvalidErrorWithCause(
	"status",
	errors.New("direct delivery is disabled, confirm a completion request instead"),
)

// SetOrderStatusCommandHandler applies the admin status override. Moving an
// order to Cancelled gives its stock back in the same transaction.
type SetOrderStatusCommandHandler struct {
	uowFactory          InventoryUoWFactory
	gate                services.RoleGate
	ledger              services.InventoryLedger
	notifier            ports.Notifier
	allowDirectDelivery bool
}

// NewSetOrderStatusCommandHandler creates the admin override handler. With
// allowDirectDelivery false, Delivered can only be reached by confirming a
// completion request.
func NewSetOrderStatusCommandHandler(
	uowFactory InventoryUoWFactory,
	notifier ports.Notifier,
	allowDirectDelivery bool,
) SetOrderStatusCommandHandler {
	return SetOrderStatusCommandHandler{
		uowFactory:          uowFactory,
		gate:                services.NewRoleGate(),
		ledger:              services.NewInventoryLedger(),
		notifier:            notifier,
		allowDirectDelivery: allowDirectDelivery,
	}
}

// Handle applies the status. Terminal orders refuse any further change.
//
// Example:
//
//	cmd, err := NewSetOrderStatusCommand(admin, orderID, order.Cancelled)
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, cmd)
//	// stock for every line is back and o.CompletionRequested() is false
func (h *SetOrderStatusCommandHandler) Handle(ctx context.Context, cmd SetOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if cmd.Status() == order.Delivered && !h.allowDirectDelivery {
		return nil, ErrDirectDeliveryDisabled
	}

	o, err := mutateOrder(ctx, h.uowFactory.Create, cmd.OrderID(), func(uow InventoryUoW, o *order.Order) error {
		if err := h.gate.Check(cmd.Actor(), services.ActionSetStatus, o); err != nil {
			return err
		}

		if err := o.SetStatus(cmd.Status(), now()); err != nil {
			return err
		}

		if cmd.Status() != order.Cancelled {
			return nil
		}
		return h.ledger.Release(ctx, uow.StockRepository(), services.LinesFromItems(o.Items()))
	}, saveOrder)
	if err != nil {
		return nil, err
	}

	eventType := ports.EventOrderStatusChanged
	if o.Status() == order.Delivered {
		eventType = ports.EventOrderDelivered
	}
	h.notifier.Notify(ctx, newEvent(eventType, o, cmd.Actor().ID))
	return o, nil
}
