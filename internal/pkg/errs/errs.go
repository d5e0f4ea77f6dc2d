package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used as stable kinds for classification with errors.Is.
var (
	ErrObjectNotFound        = errors.New("object not found")
	ErrValueIsInvalid        = errors.New("value is invalid")
	ErrValueIsRequired       = errors.New("value is required")
	ErrInvalidStage          = errors.New("stage is invalid")
	ErrInvalidMeasurement    = errors.New("measurement is invalid")
	ErrReferentialConstraint = errors.New("referential constraint violated")
	ErrConcurrencyConflict   = errors.New("concurrency conflict")
)

// sanitize flattens a value into a single-line string suitable for error messages.
func sanitize(v any) string {
	return strings.ReplaceAll(strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " "), "\r", " ")
}

// ObjectNotFoundError indicates that an entity could not be resolved by its identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without an underlying cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a supplied value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without an underlying cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsRequiredError indicates that a required value was not supplied.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without an underlying cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidStageError indicates that a stage value is not a member of the known stage set.
// The failed transition leaves no partial writes behind.
type InvalidStageError struct {
	Value string
}

// NewInvalidStageError creates an InvalidStageError for the rejected stage value.
func NewInvalidStageError(value string) *InvalidStageError {
	return &InvalidStageError{Value: value}
}

func (e *InvalidStageError) Error() string {
	return fmt.Sprintf("%s: %s is not a known stage", ErrInvalidStage, sanitize(e.Value))
}

func (e *InvalidStageError) Unwrap() error {
	return ErrInvalidStage
}

// InvalidMeasurementError indicates that a non-empty measurement value could not be
// coerced into a number. Callers decide whether to reject the request or fall back
// to the previously stored value.
type InvalidMeasurementError struct {
	FieldName string
	Raw       any
}

// NewInvalidMeasurementError creates an InvalidMeasurementError for the rejected raw value.
func NewInvalidMeasurementError(fieldName string, raw any) *InvalidMeasurementError {
	return &InvalidMeasurementError{FieldName: fieldName, Raw: raw}
}

func (e *InvalidMeasurementError) Error() string {
	return fmt.Sprintf("%s: %s value %q is not numeric", ErrInvalidMeasurement, e.FieldName, sanitize(e.Raw))
}

func (e *InvalidMeasurementError) Unwrap() error {
	return ErrInvalidMeasurement
}

// ReferentialConstraintError indicates that a destructive operation was blocked
// because dependent rows still reference the target entity.
type ReferentialConstraintError struct {
	ParamName      string
	ID             any
	DependentCount int
}

// NewReferentialConstraintError creates a ReferentialConstraintError describing the dependents.
func NewReferentialConstraintError(paramName string, id any, dependentCount int) *ReferentialConstraintError {
	return &ReferentialConstraintError{ParamName: paramName, ID: id, DependentCount: dependentCount}
}

func (e *ReferentialConstraintError) Error() string {
	return fmt.Sprintf("%s: %s %s has %d dependent record(s)",
		ErrReferentialConstraint, e.ParamName, sanitize(e.ID), e.DependentCount)
}

func (e *ReferentialConstraintError) Unwrap() error {
	return ErrReferentialConstraint
}

// ConcurrencyConflictError indicates that a transactional boundary could not be
// acquired or committed due to contention with a concurrent writer.
type ConcurrencyConflictError struct {
	ParamName string
	Cause     error
}

// NewConcurrencyConflictError creates a ConcurrencyConflictError wrapping the driver failure.
func NewConcurrencyConflictError(paramName string, cause error) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{ParamName: paramName, Cause: cause}
}

func (e *ConcurrencyConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrConcurrencyConflict, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrConcurrencyConflict, e.ParamName)
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}
