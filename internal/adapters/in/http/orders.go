package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	var req CreateOrderRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	items, shipping, payment, tax, shippingPrice, err := req.toDomain()
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(actor, items, shipping, payment, tax, shippingPrice)
	if err != nil {
		return err
	}
	created, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, OrderResponse{Success: true, Order: toOrder(created)})
}

// GetOrder handles GET /order/:id. Owners, admins and the assigned agent may
// read an order.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	id, err := orderID(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(actor, id)
	if err != nil {
		return err
	}
	res, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, OrderResponse{Success: true, Order: toOrder(res.Order)})
}

// ListMyOrders handles GET /orders/mine.
func (s *Server) ListMyOrders(ctx echo.Context) error {
	return s.listOrders(ctx, queries.ScopeMine, false)
}

func (s *Server) listOrders(ctx echo.Context, scope queries.Scope, withTotal bool) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewListOrdersQuery(actor, scope)
	if err != nil {
		return err
	}
	res, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	body := OrdersResponse{Success: true, Orders: toOrders(res.Orders)}
	if withTotal {
		total := res.TotalAmount.String()
		body.TotalAmount = &total
	}
	return ctx.JSON(http.StatusOK, body)
}
