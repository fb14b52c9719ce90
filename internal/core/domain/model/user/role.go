package user

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Role is the coarse permission group of a user.
type Role string

const (
	RoleCustomer      Role = "customer"
	RoleDeliveryAgent Role = "delivery-agent"
	RoleAdmin         Role = "admin"
)

// ParseRole accepts the stored and wire name of a role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// Validate rejects unknown roles.
func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleDeliveryAgent, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}

// String returns the stored name.
func (r Role) String() string {
	return string(r)
}
