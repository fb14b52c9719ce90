package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// MaxItemQuantity is the per-line quantity limit enforced at creation.
const MaxItemQuantity = 6

var (
	ErrOrderIsNotConstructed = errs.NewValueIsRequiredError("order must be created via NewOrder or RestoreOrder")

	ErrAlreadyTerminal            = errs.NewStateConflictError("order", "is already in a terminal state")
	ErrAlreadyAssigned            = errs.NewStateConflictError("order", "is already assigned")
	ErrDuplicateCompletionRequest = errs.NewStateConflictError("order", "already has a pending completion request")
	ErrNoPendingCompletionRequest = errs.NewStateConflictError("order", "has no pending completion request")
	ErrOrderNotDeletable          = errs.NewStateConflictError("order", "is not delivered and cannot be deleted")
	ErrNoteLimitReached           = errs.NewStateConflictError("order", "has reached the delivery note limit")

	// ErrConcurrentModification is returned by repositories when the stored
	// version moved on between load and save.
	ErrConcurrentModification = errs.NewStateConflictError("order", "was modified concurrently")

	ErrNotAssignedToActor   = errs.NewAccessDeniedError("", "order is not assigned to the acting agent")
	ErrInvalidStatusForRole = errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("delivery agents may only set %s, %s or %s", Prepared, Shipped, OutForDelivery),
	)
)

func terminalError(s Status) error {
	return fmt.Errorf("%w: %s", ErrAlreadyTerminal, s)
}
