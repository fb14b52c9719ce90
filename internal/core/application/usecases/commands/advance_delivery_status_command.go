package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAdvanceDeliveryStatusCommandIsNotConstructed = errs.NewValueIsRequiredError(
	"AdvanceDeliveryStatusCommand must be created via NewAdvanceDeliveryStatusCommand constructor",
)

// AdvanceDeliveryStatusCommand is the assigned agent's status update. The
// target is checked here so an out-of-range status is a validation error
// whoever sends it and whatever state the order is in.
type AdvanceDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	actor   services.Actor
	orderID kernel.UUID
	status  order.Status

	guard guard.ConstructorGuard
}

// NewAdvanceDeliveryStatusCommand rejects any status an agent may not set,
// such as Delivered or Cancelled.
func NewAdvanceDeliveryStatusCommand(
	actor services.Actor,
	orderID kernel.UUID,
	status order.Status,
) (AdvanceDeliveryStatusCommand, error) {
	cmd := AdvanceDeliveryStatusCommand{guard: guard.NewConstructorGuard()}

	var statusErr error
	if !status.IsAgentSettable() {
		statusErr = fmt.Errorf("%w: got %s", order.ErrInvalidStatusForRole, status)
	}

	if err := errors.Join(
		requireActor(actor),
		orderID.Validate(),
		statusErr,
	); err != nil {
		return AdvanceDeliveryStatusCommand{}, err
	}

	cmd.actor = actor
	cmd.orderID = orderID
	cmd.status = status
	return cmd, nil
}

// Validate ensures the command was built through its constructor.
func (c AdvanceDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceDeliveryStatusCommandIsNotConstructed)
}

// Actor returns the acting agent.
func (c AdvanceDeliveryStatusCommand) Actor() services.Actor {
	return c.actor
}

// OrderID returns the target order.
func (c AdvanceDeliveryStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the requested status.
func (c AdvanceDeliveryStatusCommand) Status() order.Status {
	return c.status
}

func requireActor(actor services.Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor", err)
	}
	return nil
}
