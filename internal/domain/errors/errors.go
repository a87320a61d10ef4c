// Package errors defines the domain error kinds. Two channels coexist on
// purpose: ValidationError values are returned by value-object constructors
// for expected validation failures, while the remaining kinds signal
// business-rule violations raised by aggregate behavior and are mapped to
// API failures at the use-case boundary.
package errors

import "fmt"

// DomainError is implemented by every error kind in this package.
type DomainError interface {
	error
	domainError()
}

// ValidationError reports an invalid value passed to a value-object
// constructor. It is an expected failure, not an invariant break.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidation creates a ValidationError for a named field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

func (e *ValidationError) domainError() {}

// InvariantViolationError reports a broken aggregate construction invariant.
type InvariantViolationError struct {
	Message string
}

// NewInvariantViolation creates an InvariantViolationError.
func NewInvariantViolation(message string) *InvariantViolationError {
	return &InvariantViolationError{Message: message}
}

func (e *InvariantViolationError) Error() string {
	return "invariant violation: " + e.Message
}

func (e *InvariantViolationError) domainError() {}

// IllegalStateTransitionError reports an attempt to move an aggregate out of
// a state that does not permit the transition.
type IllegalStateTransitionError struct {
	CurrentState        string
	AttemptedTransition string
}

// NewIllegalStateTransition creates an IllegalStateTransitionError.
func NewIllegalStateTransition(currentState, attemptedTransition string) *IllegalStateTransitionError {
	return &IllegalStateTransitionError{CurrentState: currentState, AttemptedTransition: attemptedTransition}
}

func (e *IllegalStateTransitionError) Error() string {
	return fmt.Sprintf("illegal state transition: cannot %s from %s", e.AttemptedTransition, e.CurrentState)
}

func (e *IllegalStateTransitionError) domainError() {}

// QuotaExceededError reports an operation that would push an aggregate past
// one of its quota ceilings.
type QuotaExceededError struct {
	QuotaType string
	Limit     int
	Attempted int
}

// NewQuotaExceeded creates a QuotaExceededError.
func NewQuotaExceeded(quotaType string, limit, attempted int) *QuotaExceededError {
	return &QuotaExceededError{QuotaType: quotaType, Limit: limit, Attempted: attempted}
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded for %s: limit %d, attempted %d", e.QuotaType, e.Limit, e.Attempted)
}

func (e *QuotaExceededError) domainError() {}

// AuthorizationError reports an operation denied by a policy or role guard.
type AuthorizationError struct {
	Reason string
}

// NewAuthorization creates an AuthorizationError.
func NewAuthorization(reason string) *AuthorizationError {
	return &AuthorizationError{Reason: reason}
}

func (e *AuthorizationError) Error() string {
	return "not authorized: " + e.Reason
}

func (e *AuthorizationError) domainError() {}

// NotFoundError reports a missing aggregate or entity.
type NotFoundError struct {
	Resource string
	ID       string
}

// NewNotFound creates a NotFoundError.
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) domainError() {}

// ConcurrentModificationError reports a lost optimistic-concurrency race:
// the persisted version no longer matches the version the aggregate was
// loaded with.
type ConcurrentModificationError struct {
	Resource        string
	ID              string
	ExpectedVersion int64
}

// NewConcurrentModification creates a ConcurrentModificationError.
func NewConcurrentModification(resource, id string, expectedVersion int64) *ConcurrentModificationError {
	return &ConcurrentModificationError{Resource: resource, ID: id, ExpectedVersion: expectedVersion}
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("concurrent modification of %s %s: version %d is stale", e.Resource, e.ID, e.ExpectedVersion)
}

func (e *ConcurrentModificationError) domainError() {}

// IsDomainError reports whether err is one of the domain error kinds.
func IsDomainError(err error) bool {
	_, ok := err.(DomainError)
	return ok
}
