package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ListAllOrders handles GET /admin/orders. The body carries the sum of every
// listed order's total.
func (s *Server) ListAllOrders(ctx echo.Context) error {
	return s.listOrders(ctx, queries.ScopeAll, true)
}

// ListPendingCompletion handles GET /admin/orders/pending-completion.
func (s *Server) ListPendingCompletion(ctx echo.Context) error {
	return s.listOrders(ctx, queries.ScopePendingCompletion, false)
}

// SetOrderStatus handles PUT /admin/order/:id.
func (s *Server) SetOrderStatus(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	id, err := orderID(ctx)
	if err != nil {
		return err
	}
	var req StatusRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewSetOrderStatusCommand(actor, id, status)
	if err != nil {
		return err
	}
	updated, err := s.handlers.SetOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, OrderResponse{Success: true, Order: toOrder(updated)})
}

// DeleteOrder handles DELETE /admin/order/:id. Only delivered orders can be
// deleted.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	id, err := orderID(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteOrderCommand(actor, id)
	if err != nil {
		return err
	}
	if err := s.handlers.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Order deleted successfully"})
}

// AssignOrder handles PUT /admin/order/:id/assign.
func (s *Server) AssignOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	id, err := orderID(ctx)
	if err != nil {
		return err
	}
	var req AssignRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	agentID, err := kernel.UUIDFromBytes(req.AgentID[:])
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("agentId", err)
	}

	cmd, err := commands.NewAssignOrderCommand(actor, id, agentID)
	if err != nil {
		return err
	}
	updated, err := s.handlers.AssignOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, OrderResponse{Success: true, Order: toOrder(updated)})
}

// ConfirmDelivery handles PUT /admin/order/:id/confirm-delivery.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	id, err := orderID(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewConfirmDeliveryCommand(actor, id)
	if err != nil {
		return err
	}
	updated, err := s.handlers.ConfirmDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, OrderResponse{Success: true, Order: toOrder(updated)})
}
