// Package commands contains the operations that change orders. Every command
// follows the same pattern: constructor validation, a role check, one unit of
// work with a conditional write, and a notification after commit.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces narrow the transaction to what a handler touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	StockRepoFactory interface {
		StockRepository() ports.StockRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// OrderUoW is used by commands that only change the order.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// InventoryUoW is used by commands that move stock together with the
	// order, so a failed reservation or release rolls both back.
	InventoryUoW interface {
		TxManager
		OrderRepoFactory
		StockRepoFactory
	}

	InventoryUoWFactory interface {
		Create() InventoryUoW
	}

	// UoW spans orders, stock and users.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   agent, err := uow.UserRepository().Get(ctx, agentID)
	//   o, err := uow.OrderRepository().Get(ctx, orderID)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		StockRepoFactory
		UserRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
