// Package queries contains read operations. They go through ports.OrderReader
// and apply the same RoleGate as the commands before returning anything.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errs.NewValueIsRequiredError(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads a single order as the owner, an admin or the assigned
// agent.
type GetOrderQuery struct {
	actor   services.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order. Visibility is checked by the
// handler once the order is loaded.
func NewGetOrderQuery(actor services.Actor, orderID kernel.UUID) (GetOrderQuery, error) {
	var actorErr error
	if err := actor.ID.Validate(); err != nil {
		actorErr = errs.NewValueIsRequiredErrorWithCause("actor", err)
	}
	if err := errors.Join(actorErr, orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was built through NewGetOrderQuery.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// Actor returns the reading principal.
func (q GetOrderQuery) Actor() services.Actor {
	return q.actor
}

// OrderID returns the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse carries the loaded order.
type GetOrderQueryResponse struct {
	Order *order.Order
}
