package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// CreateOrderCommandHandler reserves stock and stores the order in one
// transaction: if any line cannot be reserved nothing is persisted.
type CreateOrderCommandHandler struct {
	uowFactory InventoryUoWFactory
	gate       services.RoleGate
	ledger     services.InventoryLedger
	notifier   ports.Notifier
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires an InventoryUoWFactory so stock and orders share a transaction.
func NewCreateOrderCommandHandler(uowFactory InventoryUoWFactory, notifier ports.Notifier) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		gate:       services.NewRoleGate(),
		ledger:     services.NewInventoryLedger(),
		notifier:   notifier,
	}
}

// Handle builds the order, reserves stock for every line and stores it.
// A line that cannot be reserved fails the whole order with
// services.ErrInsufficientStock and leaves stock untouched.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.gate.Check(cmd.Actor(), services.ActionCreateOrder, nil); err != nil {
		return nil, err
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Actor().ID,
		cmd.Items(),
		cmd.Shipping(),
		cmd.Payment(),
		cmd.TaxPrice(),
		cmd.ShippingPrice(),
		now(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = h.ledger.Reserve(ctx, uow.StockRepository(), services.LinesFromItems(o.Items())); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, newEvent(ports.EventOrderCreated, o, cmd.Actor().ID))
	return o, nil
}
