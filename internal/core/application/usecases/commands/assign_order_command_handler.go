package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/user"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ErrInvalidAgent is returned when the assignee exists but is not an active
// delivery agent.
var ErrInvalidAgent = errs.NewValueIsInvalidErrorWithCause(
	"agent",
	errors.New("must be a delivery agent who is not blocked"),
)

// AssignOrderCommandHandler lets an admin hand an unassigned order to an agent.
//
// Example:
//
//	cmd, err := NewAssignOrderCommand(admin, orderID, agentID)
//	if err != nil {
//	    return err
//	}
//	if _, err = handler.Handle(ctx, cmd); errors.Is(err, ErrInvalidAgent) {
//	    // agentID is not an active delivery agent
//	}
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
	gate       services.RoleGate
	notifier   ports.Notifier
}

// NewAssignOrderCommandHandler needs a UoWFactory that also exposes users, since
// the assignee is checked in the same transaction.
func NewAssignOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		gate:       services.NewRoleGate(),
		notifier:   notifier,
	}
}

// Handle resolves the agent inside the same transaction as the order write, so
// the role and blocked flag it checked are the ones in effect at commit.
func (h *AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := mutateOrder(ctx, h.uowFactory.Create, cmd.OrderID(), func(uow UoW, o *order.Order) error {
		if err := h.gate.Check(cmd.Actor(), services.ActionAssignOrder, o); err != nil {
			return err
		}

		agent, err := uow.UserRepository().Get(ctx, cmd.AgentID())
		if err != nil {
			return err
		}
		if !agent.HasActiveRole(user.RoleDeliveryAgent) {
			return ErrInvalidAgent
		}

		return o.Assign(agent.ID(), now())
	}, saveOrder)
	if err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, newEvent(ports.EventOrderAssigned, o, cmd.Actor().ID))
	return o, nil
}
