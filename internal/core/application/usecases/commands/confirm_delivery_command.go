package commands

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errs.NewValueIsRequiredError(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand is the admin half of the completion handshake.
type ConfirmDeliveryCommand struct {
	orderRef

	guard guard.ConstructorGuard
}

// NewConfirmDeliveryCommand creates a command for an admin to confirm orderID.
func NewConfirmDeliveryCommand(actor services.Actor, orderID kernel.UUID) (ConfirmDeliveryCommand, error) {
	ref, err := newOrderRef(actor, orderID)
	if err != nil {
		return ConfirmDeliveryCommand{}, err
	}
	return ConfirmDeliveryCommand{orderRef: ref, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was built through its constructor.
func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}
