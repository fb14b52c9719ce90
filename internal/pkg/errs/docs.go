// Package errs provides the error categories shared by the fulfillment service.
// Every category follows the same shape so that callers can classify failures with
// errors.Is against the category sentinel while still reading the details.
//
// Categories and how the transport layer reports them:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input (400)
//   - ObjectNotFoundError: the referenced order, agent or product is absent (404)
//   - AccessDeniedError: wrong role, blocked actor, or acting on someone else's order (403)
//   - StateConflictError: the order is not in a state that allows the request (400, code state_conflict)
//   - DependencyFailedError: a collaborator such as the inventory refused the request (400)
//
// Each error type carries:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() returning the sentinel
package errs
