package memory

import (
	"context"
	"slices"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/user"
	"fulfillment/internal/pkg/errs"
)

type userRepository struct {
	uow *UnitOfWork
}

// Get loads a user by ID.
func (r *userRepository) Get(_ context.Context, id kernel.UUID) (*user.User, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("user", id.String())
	}
	return u, nil
}

// Add inserts or replaces a user by ID.
func (r *userRepository) Add(_ context.Context, u *user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()

	id := u.ID()
	prev, existed := s.users[id]
	s.users[id] = u
	r.uow.record(func() {
		if existed {
			s.users[id] = prev
		} else {
			delete(s.users, id)
		}
	})
	return nil
}

// ListByRole returns unblocked users holding role, ordered by ID.
func (r *userRepository) ListByRole(_ context.Context, role user.Role) ([]*user.User, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []*user.User
	for _, u := range s.users {
		if u.HasActiveRole(role) {
			users = append(users, u)
		}
	}
	slices.SortFunc(users, func(a, b *user.User) int {
		return strings.Compare(a.ID().String(), b.ID().String())
	})
	return users, nil
}
