// Package memory is the in-process storage driver. It keeps orders, users and
// stock behind one mutex and gives units of work the same conditional-write
// semantics as the postgres driver. Writes are applied immediately and undone
// on Rollback, so concurrent readers may observe a transaction before it
// commits.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/user"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// Store holds every record of the memory driver.
type Store struct {
	mu     sync.Mutex
	orders map[kernel.UUID]order.Snapshot
	users  map[kernel.UUID]*user.User
	stock  map[kernel.UUID]int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		orders: make(map[kernel.UUID]order.Snapshot),
		users:  make(map[kernel.UUID]*user.User),
		stock:  make(map[kernel.UUID]int),
	}
}

// Get implements ports.OrderReader.
func (s *Store) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	snap, ok := s.orders[id]
	s.mu.Unlock()

	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return order.RestoreOrder(snap)
}

// List implements ports.OrderReader.
func (s *Store) List(_ context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	s.mu.Lock()
	matched := make([]order.Snapshot, 0, len(s.orders))
	for _, snap := range s.orders {
		if matches(filter, snap) {
			matched = append(matched, snap)
		}
	}
	s.mu.Unlock()

	slices.SortFunc(matched, func(a, b order.Snapshot) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})

	orders := make([]*order.Order, 0, len(matched))
	for _, snap := range matched {
		o, err := order.RestoreOrder(snap)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func matches(f ports.OrderFilter, s order.Snapshot) bool {
	if f.CustomerID != nil && !s.CustomerID.IsEqual(*f.CustomerID) {
		return false
	}
	if f.AssignedTo != nil && (s.AssignedTo == nil || !s.AssignedTo.IsEqual(*f.AssignedTo)) {
		return false
	}
	if f.Unassigned && s.AssignedTo != nil {
		return false
	}
	if slices.Contains(f.ExcludeStatuses, s.Status) {
		return false
	}
	if f.CompletionRequested != nil && s.CompletionRequested != *f.CompletionRequested {
		return false
	}
	if f.RequestedBefore != nil {
		if s.CompletionRequestedAt == nil || !s.CompletionRequestedAt.Before(*f.RequestedBefore) {
			return false
		}
	}
	return true
}

// Users returns a user repository outside any unit of work. Its writes are
// final.
func (s *Store) Users() ports.UserRepository {
	return &userRepository{uow: &UnitOfWork{store: s}}
}

// Stock returns a stock repository outside any unit of work. Its writes are
// final.
func (s *Store) Stock() ports.StockRepository {
	return &stockRepository{uow: &UnitOfWork{store: s}}
}
