// Package errs provides standardized error types for the parcel tracking service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used from the domain model up to the HTTP adapter.
//
// The package includes error types for the failure kinds the service distinguishes:
//   - ObjectNotFoundError: a referenced parcel, user or pickup point does not exist
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - InvalidStateError: an operation is not allowed in the entity's current state
//   - InvalidCodeError: a supplied pickup code does not match
//   - InvalidOperationError: a transition outside the state machine was requested
//   - ConflictError: a concurrent writer won the race, or a unique value is taken
//   - AccessDeniedError: the caller may not access this particular resource
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is works across layers
package errs
