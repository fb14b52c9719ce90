package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories returned by it
// take part in the transaction opened by Begin.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error

	// Rollback is a no-op after Commit, so it is safe to defer.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	StockRepository() StockRepository
	UserRepository() UserRepository
}
