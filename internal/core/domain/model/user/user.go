package user

import (
	"errors"
	"net/mail"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUserIsNotConstructed = errs.NewValueIsRequiredError("user must be created via NewUser or RestoreUser")

// User is an identity known to the service. Blocked users keep their data but
// fail every authorization check.
type User struct {
	id      kernel.UUID
	name    string
	email   string
	role    Role
	blocked bool

	guard guard.ConstructorGuard
}

// NewUser creates an unblocked user.
func NewUser(id kernel.UUID, name, email string, role Role) (*User, error) {
	u := &User{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setEmail(email),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser rebuilds a stored user, including the blocked flag.
func RestoreUser(id kernel.UUID, name, email string, role Role, blocked bool) (*User, error) {
	u, err := NewUser(id, name, email, role)
	if err != nil {
		return nil, err
	}
	u.blocked = blocked
	return u, nil
}

// Validate ensures the user was built through NewUser or RestoreUser.
func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

// ID returns the user identity.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Name returns the display name.
func (u *User) Name() string {
	return u.name
}

// Email returns the login email.
func (u *User) Email() string {
	return u.email
}

// Role returns the permission group.
func (u *User) Role() Role {
	return u.role
}

// IsBlocked reports whether the user was blocked by an admin.
func (u *User) IsBlocked() bool {
	return u.blocked
}

// HasActiveRole reports whether the user holds role and is not blocked.
func (u *User) HasActiveRole(role Role) bool {
	return !u.blocked && u.role == role
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	u.name = name
	return nil
}

func (u *User) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	u.email = email
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
