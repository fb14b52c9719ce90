package commands

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRequestCompletionCommandIsNotConstructed = errs.NewValueIsRequiredError(
	"RequestCompletionCommand must be created via NewRequestCompletionCommand constructor",
)

// RequestCompletionCommand is the agent half of the completion handshake.
type RequestCompletionCommand struct {
	orderRef

	guard guard.ConstructorGuard
}

// NewRequestCompletionCommand creates a command for the assigned agent to close
// orderID.
func NewRequestCompletionCommand(actor services.Actor, orderID kernel.UUID) (RequestCompletionCommand, error) {
	ref, err := newOrderRef(actor, orderID)
	if err != nil {
		return RequestCompletionCommand{}, err
	}
	return RequestCompletionCommand{orderRef: ref, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was built through its constructor.
func (c RequestCompletionCommand) Validate() error {
	return c.guard.Validate(ErrRequestCompletionCommandIsNotConstructed)
}
