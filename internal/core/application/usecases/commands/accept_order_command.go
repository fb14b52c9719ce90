package commands

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errs.NewValueIsRequiredError(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand lets a delivery agent claim an unassigned order.
type AcceptOrderCommand struct {
	orderRef

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand creates a command for the acting agent to claim orderID.
func NewAcceptOrderCommand(actor services.Actor, orderID kernel.UUID) (AcceptOrderCommand, error) {
	ref, err := newOrderRef(actor, orderID)
	if err != nil {
		return AcceptOrderCommand{}, err
	}
	return AcceptOrderCommand{orderRef: ref, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was built through NewAcceptOrderCommand.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}
