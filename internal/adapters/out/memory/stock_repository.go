package memory

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

type stockRepository struct {
	uow *UnitOfWork
}

// Decrement takes quantity units only when that many are in stock.
func (r *stockRepository) Decrement(_ context.Context, productID kernel.UUID, quantity int) (bool, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.stock[productID]
	if !ok {
		return false, errs.NewObjectNotFoundError("product", productID.String())
	}
	if current < quantity {
		return false, nil
	}

	s.stock[productID] = current - quantity
	r.uow.record(func() { s.stock[productID] += quantity })
	return true, nil
}

// Increment returns quantity units to stock.
func (r *stockRepository) Increment(_ context.Context, productID kernel.UUID, quantity int) error {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.stock[productID]; !ok {
		return errs.NewObjectNotFoundError("product", productID.String())
	}

	s.stock[productID] += quantity
	r.uow.record(func() { s.stock[productID] -= quantity })
	return nil
}

// Available returns the units in stock.
func (r *stockRepository) Available(_ context.Context, productID kernel.UUID) (int, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.stock[productID]
	if !ok {
		return 0, errs.NewObjectNotFoundError("product", productID.String())
	}
	return current, nil
}

// Set creates or overwrites a stock counter.
func (r *stockRepository) Set(_ context.Context, productID kernel.UUID, stock int) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	if stock < 0 {
		return errs.NewValueIsOutOfRangeError("stock", stock, 0, "unbounded")
	}

	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.stock[productID]
	s.stock[productID] = stock
	r.uow.record(func() {
		if existed {
			s.stock[productID] = prev
		} else {
			delete(s.stock, productID)
		}
	})
	return nil
}
