// Package errs defines the typed errors shared across the service. Each type
// unwraps to a sentinel, which the HTTP layer maps to a status code.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrAccessDenied      = errors.New("access denied")
	ErrStateConflict     = errors.New("state conflict")
	ErrDependencyFailed  = errors.New("dependency failed")
)

// ObjectNotFoundError reports a lookup by ID that matched nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError reports that nothing named paramName matched id.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause is NewObjectNotFoundError carrying the
// underlying lookup failure.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

// Error includes the parameter name only when a cause is attached.
func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

// Unwrap returns ErrObjectNotFound so callers can match with errors.Is.
func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a value that is present but unacceptable.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError reports that paramName holds an unacceptable value.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause also records why the value was rejected.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

// Error formats the message.
func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

// Unwrap returns ErrValueIsInvalid.
func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError reports value falling outside [minValue, maxValue].
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause is NewValueIsOutOfRangeError with a cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

// Error formats the message.
func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid,
		sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

// Unwrap returns ErrValueIsOutOfRange.
func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError reports that paramName was left empty.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause is NewValueIsRequiredError with a cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

// Error formats the message.
func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

// Unwrap returns ErrValueIsRequired.
func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// AccessDeniedError reports an actor that may not perform an action.
type AccessDeniedError struct {
	Action string
	Reason string
	Cause  error
}

// NewAccessDeniedError reports that the current actor may not perform action.
// The reason is shown to the caller, so keep it free of internal detail.
func NewAccessDeniedError(action, reason string) *AccessDeniedError {
	return &AccessDeniedError{Action: action, Reason: reason}
}

// NewAccessDeniedErrorWithCause is NewAccessDeniedError with a cause.
func NewAccessDeniedErrorWithCause(action, reason string, cause error) *AccessDeniedError {
	return &AccessDeniedError{Action: action, Reason: reason, Cause: cause}
}

// Error formats the message.
func (e *AccessDeniedError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrAccessDenied, e.Reason)
	if e.Action != "" {
		msg = fmt.Sprintf("%s: %s: %s", ErrAccessDenied, e.Action, e.Reason)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

// Unwrap returns ErrAccessDenied.
func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}

// StateConflictError reports a request that is well formed but clashes with the
// current state of an entity, typically because someone else already acted on it.
type StateConflictError struct {
	Entity string
	Reason string
	Cause  error
}

// NewStateConflictError reports that entity cannot accept the request in its
// current state.
func NewStateConflictError(entity, reason string) *StateConflictError {
	return &StateConflictError{Entity: entity, Reason: reason}
}

// NewStateConflictErrorWithCause is NewStateConflictError with a cause. Domain
// sentinels such as order.ErrAlreadyTerminal are usually passed as the cause.
func NewStateConflictErrorWithCause(entity, reason string, cause error) *StateConflictError {
	return &StateConflictError{Entity: entity, Reason: reason, Cause: cause}
}

// Error formats the message.
func (e *StateConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s %s", ErrStateConflict, e.Entity, e.Reason)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

// Unwrap returns ErrStateConflict.
func (e *StateConflictError) Unwrap() error {
	return ErrStateConflict
}

// DependencyFailedError reports a collaborator that refused or failed a call.
type DependencyFailedError struct {
	Dependency string
	Cause      error
}

// NewDependencyFailedError reports that dependency failed without further detail.
func NewDependencyFailedError(dependency string) *DependencyFailedError {
	return &DependencyFailedError{Dependency: dependency}
}

// NewDependencyFailedErrorWithCause wraps the error returned by dependency.
func NewDependencyFailedErrorWithCause(dependency string, cause error) *DependencyFailedError {
	return &DependencyFailedError{Dependency: dependency, Cause: cause}
}

// Error formats the message.
func (e *DependencyFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrDependencyFailed, e.Dependency, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrDependencyFailed, e.Dependency)
}

// Unwrap returns ErrDependencyFailed.
func (e *DependencyFailedError) Unwrap() error {
	return ErrDependencyFailed
}

func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
