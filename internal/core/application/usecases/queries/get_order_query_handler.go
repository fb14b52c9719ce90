package queries

import (
	"context"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// GetOrderQueryHandler loads one order and hides it from actors who may not
// see it.
type GetOrderQueryHandler struct {
	reader ports.OrderReader
	gate   services.RoleGate
}

// NewGetOrderQueryHandler creates the handler over reader.
func NewGetOrderQueryHandler(reader ports.OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: reader, gate: services.NewRoleGate()}
}

// Handle returns the order if the actor owns it, is an admin, or is an agent.
//
// Example:
//
//	q, _ := NewGetOrderQuery(actor, orderID)
//	resp, err := handler.Handle(ctx, q)
//	if errors.Is(err, errs.ErrAccessDenied) {
//	    // someone else's order
//	}
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	o, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if err = h.gate.Check(query.Actor(), services.ActionViewOrder, o); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return GetOrderQueryResponse{Order: o}, nil
}
