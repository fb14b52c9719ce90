package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/user"
)

// UserRepository reads identities mirrored from the identity provider.
type UserRepository interface {
	// Get returns errs.ObjectNotFoundError when the user does not exist.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// Add stores a user. It is used when seeding and in tests; the core never
	// modifies users.
	Add(ctx context.Context, u *user.User) error

	// ListByRole returns the active users holding role.
	ListByRole(ctx context.Context, role user.Role) ([]*user.User, error)
}
