package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ListOrdersQueryHandler serves every order listing.
type ListOrdersQueryHandler struct {
	reader ports.OrderReader
	gate   services.RoleGate
}

// NewListOrdersQueryHandler creates the handler over reader.
func NewListOrdersQueryHandler(reader ports.OrderReader) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{reader: reader, gate: services.NewRoleGate()}
}

// Handle checks the scope against the actor role, loads the matching orders and
// sums their totals.
//
// Example:
//
//	q, _ := NewListOrdersQuery(admin, ScopePendingCompletion)
//	resp, err := handler.Handle(ctx, q)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(len(resp.Orders), resp.TotalAmount)
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	if err := h.gate.Check(query.Actor(), query.Scope().action(), nil); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	orders, err := h.reader.List(ctx, query.Scope().filter(query.Actor().ID))
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	total := kernel.ZeroMoney()
	for _, o := range orders {
		total = total.Add(o.Pricing().TotalPrice())
	}

	return ListOrdersQueryResponse{Orders: orders, TotalAmount: total}, nil
}
