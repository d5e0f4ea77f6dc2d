// Package errs provides standardized error types for the production tracker.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for the common failure scenarios:
//   - ValueIsRequiredError: for when a required value is missing
//   - ValueIsInvalidError: for when a value is invalid
//   - ObjectNotFoundError: for when an entity cannot be resolved
//   - InvalidStageError: for unknown production stage values
//   - InvalidMeasurementError: for non-numeric measurement input
//   - ReferentialConstraintError: for deletions blocked by dependents
//   - ConcurrencyConflictError: for transactional contention
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrInvalidStage) acting as a stable kind
//   - A struct type with fields for error details
//   - Constructor functions, with and without cause where a cause makes sense
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is can classify against the sentinel
//
// Callers classify errors with errors.Is against the sentinels rather than
// matching message strings, which keeps user-visible handling stable.
package errs
