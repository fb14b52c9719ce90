// Package ports defines the contracts between the fulfillment core and its
// infrastructure: storage, stock, identity lookups and notifications.
package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository is the write-side persistence contract for order aggregates.
//
// Every write is a conditional write on the version the aggregate was loaded
// with, so two handlers that loaded the same order cannot both commit a
// transition. The loser gets order.ErrConcurrentModification.
type OrderRepository interface {
	// Add stores a new order at version 1.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update stores the aggregate if the stored version still equals
	// aggregate.Version(), then bumps the version on both sides.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes the order if its stored version still equals
	// aggregate.Version().
	Delete(ctx context.Context, aggregate *order.Order) error
}

// OrderFilter narrows OrderReader.List. Zero fields do not filter.
type OrderFilter struct {
	CustomerID          *kernel.UUID
	AssignedTo          *kernel.UUID
	Unassigned          bool
	ExcludeStatuses     []order.Status
	CompletionRequested *bool
	// RequestedBefore keeps orders whose completion was requested before the
	// given instant.
	RequestedBefore *time.Time
}

// OrderReader serves the query side. Results are ordered by creation time,
// newest first.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*order.Order, error)
}
