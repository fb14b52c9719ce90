package queries

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errs.NewValueIsRequiredError(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// Scope selects one of the order listings.
type Scope int

const (
	ScopeUnknown Scope = iota
	// ScopeMine is the acting customer's orders.
	ScopeMine
	// ScopeAll is every order, for admins.
	ScopeAll
	// ScopePendingCompletion is orders whose agent asked to close them.
	ScopePendingCompletion
	// ScopeAvailable is unassigned orders an agent may still accept.
	ScopeAvailable
	// ScopeAssigned is the acting agent's orders.
	ScopeAssigned
	// ScopeAllForAgent is every order, read-only, for agents.
	ScopeAllForAgent
)

// String returns the scope name used in logs.
func (s Scope) String() string {
	switch s {
	case ScopeMine:
		return "mine"
	case ScopeAll:
		return "all"
	case ScopePendingCompletion:
		return "pending-completion"
	case ScopeAvailable:
		return "available"
	case ScopeAssigned:
		return "assigned"
	case ScopeAllForAgent:
		return "all-for-agent"
	default:
		return "unknown"
	}
}

// action is the RoleGate action guarding the listing.
func (s Scope) action() services.Action {
	switch s {
	case ScopeMine:
		return services.ActionViewOwnOrders
	case ScopeAll, ScopePendingCompletion:
		return services.ActionListAllOrders
	case ScopeAvailable:
		return services.ActionListAvailable
	case ScopeAssigned:
		return services.ActionListAssigned
	case ScopeAllForAgent:
		return services.ActionListAllForAgent
	default:
		return services.ActionUnknown
	}
}

// filter builds the storage filter for actorID.
func (s Scope) filter(actorID kernel.UUID) ports.OrderFilter {
	requested := true

	//nolint:exhaustive // ScopeAll and ScopeAllForAgent do not filter
	switch s {
	case ScopeMine:
		return ports.OrderFilter{CustomerID: &actorID}
	case ScopePendingCompletion:
		return ports.OrderFilter{
			CompletionRequested: &requested,
			ExcludeStatuses:     []order.Status{order.Delivered, order.Cancelled},
		}
	case ScopeAvailable:
		return ports.OrderFilter{Unassigned: true, ExcludeStatuses: []order.Status{order.Delivered, order.Cancelled}}
	case ScopeAssigned:
		return ports.OrderFilter{AssignedTo: &actorID}
	default:
		return ports.OrderFilter{}
	}
}

// ListOrdersQuery asks for one of the role-specific order listings.
type ListOrdersQuery struct {
	actor services.Actor
	scope Scope

	guard guard.ConstructorGuard
}

// NewListOrdersQuery rejects an unknown scope. Whether the actor may use the
// scope is decided by the handler.
func NewListOrdersQuery(actor services.Actor, scope Scope) (ListOrdersQuery, error) {
	if err := actor.ID.Validate(); err != nil {
		return ListOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("actor", err)
	}
	if scope <= ScopeUnknown || scope > ScopeAllForAgent {
		return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("scope", fmt.Errorf("%d is not a known scope", scope))
	}
	return ListOrdersQuery{actor: actor, scope: scope, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was built through its constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Actor returns the reading principal.
func (q ListOrdersQuery) Actor() services.Actor {
	return q.actor
}

// Scope returns the requested listing.
func (q ListOrdersQuery) Scope() Scope {
	return q.scope
}

// ListOrdersQueryResponse carries the orders, newest first, and the sum of
// their total prices.
type ListOrdersQueryResponse struct {
	Orders      []*order.Order
	TotalAmount kernel.Money
}
