package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// ListAvailableOrders handles GET /delivery/orders/available.
func (s *Server) ListAvailableOrders(ctx echo.Context) error {
	return s.listOrders(ctx, queries.ScopeAvailable, false)
}

// ListAssignedOrders handles GET /delivery/orders/mine.
func (s *Server) ListAssignedOrders(ctx echo.Context) error {
	return s.listOrders(ctx, queries.ScopeAssigned, false)
}

// ListAllOrdersForAgent handles GET /delivery/orders/all.
func (s *Server) ListAllOrdersForAgent(ctx echo.Context) error {
	return s.listOrders(ctx, queries.ScopeAllForAgent, false)
}

// AcceptOrder handles PUT /delivery/order/:id/accept. When several agents race
// for the same order exactly one wins; the others get state_conflict.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	id, err := orderID(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAcceptOrderCommand(actor, id)
	if err != nil {
		return err
	}
	updated, err := s.handlers.AcceptOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, OrderResponse{Success: true, Order: toOrder(updated)})
}

// AdvanceDeliveryStatus handles PUT /delivery/order/:id/status.
func (s *Server) AdvanceDeliveryStatus(ctx echo.Context) error {
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

	cmd, err := commands.NewAdvanceDeliveryStatusCommand(actor, id, status)
	if err != nil {
		return err
	}
	updated, err := s.handlers.AdvanceDeliveryStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, OrderResponse{Success: true, Order: toOrder(updated)})
}

// RequestCompletion handles PUT /delivery/order/:id/request-completion.
func (s *Server) RequestCompletion(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	id, err := orderID(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRequestCompletionCommand(actor, id)
	if err != nil {
		return err
	}
	updated, err := s.handlers.RequestCompletion.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, OrderResponse{Success: true, Order: toOrder(updated)})
}

// AddDeliveryNote handles POST /delivery/order/:id/note.
func (s *Server) AddDeliveryNote(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	id, err := orderID(ctx)
	if err != nil {
		return err
	}
	var req NoteRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewAddDeliveryNoteCommand(actor, id, req.Note)
	if err != nil {
		return err
	}
	updated, err := s.handlers.AddDeliveryNote.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, OrderResponse{Success: true, Order: toOrder(updated)})
}
