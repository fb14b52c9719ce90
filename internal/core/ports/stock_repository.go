package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// StockRepository is the inventory catalog collaborator: a single global stock
// counter per product.
type StockRepository interface {
	// Decrement atomically subtracts quantity if at least quantity units are in
	// stock. It reports false without changing anything when stock is short and
	// returns errs.ObjectNotFoundError for unknown products.
	Decrement(ctx context.Context, productID kernel.UUID, quantity int) (bool, error)

	// Increment adds quantity back.
	Increment(ctx context.Context, productID kernel.UUID, quantity int) error

	// Available returns the current stock of a product.
	Available(ctx context.Context, productID kernel.UUID) (int, error)

	// Set creates or overwrites the stock of a product.
	Set(ctx context.Context, productID kernel.UUID, stock int) error
}
