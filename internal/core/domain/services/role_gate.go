package services

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/user"
	"fulfillment/internal/pkg/errs"
)

// Action is a tagged operation checked by RoleGate.
type Action int

const (
	ActionUnknown Action = iota
	ActionCreateOrder
	ActionViewOwnOrders
	ActionViewOrder
	ActionListAllOrders
	ActionSetStatus
	ActionDeleteOrder
	ActionAssignOrder
	ActionConfirmDelivery
	ActionListAvailable
	ActionListAssigned
	ActionListAllForAgent
	ActionAcceptOrder
	ActionAdvanceDeliveryStatus
	ActionRequestCompletion
	ActionAddNote
)

// String returns the action name used in AccessDeniedError messages.
func (a Action) String() string {
	switch a {
	case ActionCreateOrder:
		return "create order"
	case ActionViewOwnOrders:
		return "view own orders"
	case ActionViewOrder:
		return "view order"
	case ActionListAllOrders:
		return "list all orders"
	case ActionSetStatus:
		return "set order status"
	case ActionDeleteOrder:
		return "delete order"
	case ActionAssignOrder:
		return "assign order"
	case ActionConfirmDelivery:
		return "confirm delivery"
	case ActionListAvailable:
		return "list available orders"
	case ActionListAssigned:
		return "list assigned orders"
	case ActionListAllForAgent:
		return "list all orders for delivery"
	case ActionAcceptOrder:
		return "accept order"
	case ActionAdvanceDeliveryStatus:
		return "update delivery status"
	case ActionRequestCompletion:
		return "request completion"
	case ActionAddNote:
		return "add delivery note"
	default:
		return "unknown action"
	}
}

// requiredRole is the role table. ActionViewOrder is absent because it is open
// to several roles.
//
//nolint:exhaustive // ActionUnknown and ActionViewOrder are handled in Check
var requiredRole = map[Action]user.Role{
	ActionCreateOrder:           user.RoleCustomer,
	ActionViewOwnOrders:         user.RoleCustomer,
	ActionListAllOrders:         user.RoleAdmin,
	ActionSetStatus:             user.RoleAdmin,
	ActionDeleteOrder:           user.RoleAdmin,
	ActionAssignOrder:           user.RoleAdmin,
	ActionConfirmDelivery:       user.RoleAdmin,
	ActionListAvailable:         user.RoleDeliveryAgent,
	ActionListAssigned:          user.RoleDeliveryAgent,
	ActionListAllForAgent:       user.RoleDeliveryAgent,
	ActionAcceptOrder:           user.RoleDeliveryAgent,
	ActionAdvanceDeliveryStatus: user.RoleDeliveryAgent,
	ActionRequestCompletion:     user.RoleDeliveryAgent,
	ActionAddNote:               user.RoleDeliveryAgent,
}

var (
	ErrActorBlocked  = errs.NewAccessDeniedError("", "actor is blocked")
	ErrNotOrderOwner = errs.NewAccessDeniedError("", "order belongs to another customer")
	ErrUnknownAction = errs.NewAccessDeniedError("", "unknown action")
)

// Actor is the authenticated principal as seen by the core.
type Actor struct {
	ID      kernel.UUID
	Role    user.Role
	Blocked bool
}

// ActorFromUser builds the actor for an authenticated user.
func ActorFromUser(u *user.User) Actor {
	return Actor{ID: u.ID(), Role: u.Role(), Blocked: u.IsBlocked()}
}

// RoleGate decides whether an actor may perform an action on an order. It is
// pure: it reads the actor and the order and never changes either.
type RoleGate struct{}

// NewRoleGate creates the gate.
func NewRoleGate() RoleGate {
	return RoleGate{}
}

// Authorize reports whether Check passes.
func (g RoleGate) Authorize(actor Actor, action Action, o *order.Order) bool {
	return g.Check(actor, action, o) == nil
}

// Check returns nil when the action is allowed. Role failures are
// errs.AccessDeniedError; order-state failures are the order package sentinels
// so callers can tell "not allowed" from "someone already did this". Actions
// that need an order and get nil fail with errs.ValueIsRequiredError.
func (g RoleGate) Check(actor Actor, action Action, o *order.Order) error {
	if actor.Blocked {
		return denied(action, ErrActorBlocked)
	}

	if action == ActionViewOrder {
		return g.checkView(actor, o)
	}

	role, ok := requiredRole[action]
	if !ok {
		return ErrUnknownAction
	}
	if actor.Role != role {
		return errs.NewAccessDeniedError(action.String(), fmt.Sprintf("requires role %s", role))
	}

	switch action {
	case ActionCreateOrder, ActionListAllOrders, ActionListAvailable, ActionListAssigned, ActionListAllForAgent:
		return nil
	case ActionViewOwnOrders:
		if o != nil && !o.CustomerID().IsEqual(actor.ID) {
			return denied(action, ErrNotOrderOwner)
		}
		return nil
	}

	if o == nil {
		return errs.NewValueIsRequiredError("order")
	}

	//nolint:exhaustive // remaining actions have no order condition
	switch action {
	case ActionSetStatus, ActionAssignOrder:
		return notDelivered(o)
	case ActionDeleteOrder:
		if o.Status() != order.Delivered {
			return fmt.Errorf("%w: status is %s", order.ErrOrderNotDeletable, o.Status())
		}
	case ActionAcceptOrder:
		if o.IsAssigned() {
			return order.ErrAlreadyAssigned
		}
		if o.Status().IsTerminal() {
			return fmt.Errorf("%w: %s", order.ErrAlreadyTerminal, o.Status())
		}
	case ActionAdvanceDeliveryStatus:
		if !o.IsAssignedTo(actor.ID) {
			return order.ErrNotAssignedToActor
		}
		return notDelivered(o)
	case ActionRequestCompletion:
		if !o.IsAssignedTo(actor.ID) {
			return order.ErrNotAssignedToActor
		}
		if err := notDelivered(o); err != nil {
			return err
		}
		if o.CompletionRequested() {
			return order.ErrDuplicateCompletionRequest
		}
	case ActionAddNote:
		if !o.IsAssignedTo(actor.ID) {
			return order.ErrNotAssignedToActor
		}
	case ActionConfirmDelivery:
		if err := notDelivered(o); err != nil {
			return err
		}
		if !o.CompletionRequested() {
			return order.ErrNoPendingCompletionRequest
		}
	}
	return nil
}

// checkView lets the owner, any admin and the assigned agent read an order.
func (g RoleGate) checkView(actor Actor, o *order.Order) error {
	if o == nil {
		return errs.NewValueIsRequiredError("order")
	}

	switch actor.Role {
	case user.RoleAdmin:
		return nil
	case user.RoleCustomer:
		if o.CustomerID().IsEqual(actor.ID) {
			return nil
		}
		return denied(ActionViewOrder, ErrNotOrderOwner)
	case user.RoleDeliveryAgent:
		if o.IsAssignedTo(actor.ID) {
			return nil
		}
		return denied(ActionViewOrder, order.ErrNotAssignedToActor)
	default:
		return errs.NewAccessDeniedError(ActionViewOrder.String(), "unknown role")
	}
}

func notDelivered(o *order.Order) error {
	if o.Status() == order.Delivered {
		return fmt.Errorf("%w: %s", order.ErrAlreadyTerminal, o.Status())
	}
	return nil
}

func denied(action Action, reason error) error {
	return fmt.Errorf("%s: %w", action, reason)
}
