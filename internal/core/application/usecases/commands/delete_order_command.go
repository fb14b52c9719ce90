package commands

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errs.NewValueIsRequiredError(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand removes a delivered order.
type DeleteOrderCommand struct {
	orderRef

	guard guard.ConstructorGuard
}

// NewDeleteOrderCommand creates a command for an admin to delete orderID.
func NewDeleteOrderCommand(actor services.Actor, orderID kernel.UUID) (DeleteOrderCommand, error) {
	ref, err := newOrderRef(actor, orderID)
	if err != nil {
		return DeleteOrderCommand{}, err
	}
	return DeleteOrderCommand{orderRef: ref, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was built through its constructor.
func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}
