package memory

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

type orderRepository struct {
	uow *UnitOfWork
}

// Add stores the aggregate at version 1.
func (r *orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()

	id := aggregate.ID()
	if _, exists := s.orders[id]; exists {
		return errs.NewStateConflictError("order", fmt.Sprintf("order %s already exists", id))
	}

	snap := aggregate.Snapshot()
	snap.Version = 1
	s.orders[id] = snap
	r.uow.record(func() { delete(s.orders, id) })

	aggregate.MarkPersisted(1)
	return nil
}

// Update replaces the stored snapshot if its version still matches.
func (r *orderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()

	id := aggregate.ID()
	prev, ok := s.orders[id]
	if !ok {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	if prev.Version != aggregate.Version() {
		return order.ErrConcurrentModification
	}

	snap := aggregate.Snapshot()
	snap.Version = prev.Version + 1
	s.orders[id] = snap
	r.uow.record(func() { s.orders[id] = prev })

	aggregate.MarkPersisted(snap.Version)
	return nil
}

// Get delegates to the store.
func (r *orderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.uow.store.Get(ctx, id)
}

// Delete removes the order under the same version check as Update.
func (r *orderRepository) Delete(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()

	id := aggregate.ID()
	prev, ok := s.orders[id]
	if !ok {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	if prev.Version != aggregate.Version() {
		return order.ErrConcurrentModification
	}

	delete(s.orders, id)
	r.uow.record(func() { s.orders[id] = prev })
	return nil
}
