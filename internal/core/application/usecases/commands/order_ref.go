package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
)

// orderRef is the acting principal and the order it targets, shared by the
// commands that need nothing else.
type orderRef struct {
	actor   services.Actor
	orderID kernel.UUID
}

func newOrderRef(actor services.Actor, orderID kernel.UUID) (orderRef, error) {
	if err := errors.Join(requireActor(actor), orderID.Validate()); err != nil {
		return orderRef{}, err
	}
	return orderRef{actor: actor, orderID: orderID}, nil
}

// Actor returns the acting principal.
func (r orderRef) Actor() services.Actor {
	return r.actor
}

// OrderID returns the target order.
func (r orderRef) OrderID() kernel.UUID {
	return r.orderID
}
