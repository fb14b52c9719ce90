package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errs.NewValueIsRequiredError(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand is an admin handing an order to a delivery agent.
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderRef
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand requires both the order and the agent ID.
func NewAssignOrderCommand(actor services.Actor, orderID, agentID kernel.UUID) (AssignOrderCommand, error) {
	ref, refErr := newOrderRef(actor, orderID)

	var agentErr error
	if err := agentID.Validate(); err != nil {
		agentErr = errs.NewValueIsRequiredErrorWithCause("agent", err)
	}

	if err := errors.Join(refErr, agentErr); err != nil {
		return AssignOrderCommand{}, err
	}

	return AssignOrderCommand{orderRef: ref, agentID: agentID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was built through its constructor.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// AgentID returns the agent receiving the order.
func (c AssignOrderCommand) AgentID() kernel.UUID {
	return c.agentID
}
