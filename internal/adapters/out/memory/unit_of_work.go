package memory

import (
	"context"
	"slices"

	"fulfillment/internal/core/ports"
)

// UnitOfWorkFactory hands out units of work over a single Store.
type UnitOfWorkFactory struct {
	store *Store
}

// NewUnitOfWorkFactory creates a factory for store.
func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create returns an idle unit of work.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork records an undo step for every write made through its
// repositories. Rollback replays them in reverse; Commit forgets them.
type UnitOfWork struct {
	store  *Store
	active bool
	undo   []func()
}

// Begin starts recording undo steps.
func (u *UnitOfWork) Begin(_ context.Context) error {
	u.active = true
	u.undo = u.undo[:0]
	return nil
}

// Commit keeps every write and drops the undo log.
func (u *UnitOfWork) Commit(_ context.Context) error {
	u.active = false
	u.undo = nil
	return nil
}

// Rollback undoes the recorded writes, newest first. It is a no-op after Commit.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return nil
	}

	u.store.mu.Lock()
	for _, step := range slices.Backward(u.undo) {
		step()
	}
	u.store.mu.Unlock()

	u.active = false
	u.undo = nil
	return nil
}

// record keeps step for Rollback. It must be called with the store lock held.
func (u *UnitOfWork) record(step func()) {
	if u.active {
		u.undo = append(u.undo, step)
	}
}

// OrderRepository returns an order repository recording into u.
func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: u}
}

// StockRepository returns a stock repository recording into u.
func (u *UnitOfWork) StockRepository() ports.StockRepository {
	return &stockRepository{uow: u}
}

// UserRepository returns a user repository recording into u.
func (u *UnitOfWork) UserRepository() ports.UserRepository {
	return &userRepository{uow: u}
}
