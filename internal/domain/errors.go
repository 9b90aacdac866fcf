package domain

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a state conflict such as duplicate entry or version mismatch.
	ErrConflict = errors.New("conflict")

	// ErrValidation indicates business rule validation failed.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable indicates a required dependency is unavailable.
	ErrUnavailable = errors.New("unavailable")

	// ErrQuotaExceeded indicates the free-tier quote limit would be exceeded.
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrExtractionFailed indicates the classifier could not produce a usable extraction.
	ErrExtractionFailed = errors.New("extraction failed")
)

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError provides context for conflict errors.
type ConflictError struct {
	Entity  string
	Reason  string
	Details string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s conflict: %s (%s)", e.Entity, e.Reason, e.Details)
	}

	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NewConflictError creates a conflict error with context.
func NewConflictError(entity, reason string) error {
	return &ConflictError{Entity: entity, Reason: reason}
}

// NewConflictErrorWithDetails creates a conflict error with additional details.
func NewConflictErrorWithDetails(entity, reason, details string) error {
	return &ConflictError{Entity: entity, Reason: reason, Details: details}
}

// ValidationError provides context for validation errors.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue creates a validation error including the invalid value.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// QuotaExceededError reports a refused add together with the numbers behind the refusal.
type QuotaExceededError struct {
	Used      int
	Limit     int
	Requested int
}

// Error implements the error interface.
func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded: %d stored, %d requested, limit %d", e.Used, e.Requested, e.Limit)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *QuotaExceededError) Unwrap() error {
	return ErrQuotaExceeded
}

// NewQuotaExceededError creates a quota error with context.
func NewQuotaExceededError(used, limit, requested int) error {
	return &QuotaExceededError{Used: used, Limit: limit, Requested: requested}
}

// AlreadyClaimedError is returned when the daily reward was already claimed today.
type AlreadyClaimedError struct {
	LastClaim time.Time
}

// Error implements the error interface.
func (e *AlreadyClaimedError) Error() string {
	return "daily reward already claimed on " + e.LastClaim.Format(time.DateOnly)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *AlreadyClaimedError) Unwrap() error {
	return ErrConflict
}

// NewAlreadyClaimedError creates an already-claimed error.
func NewAlreadyClaimedError(lastClaim time.Time) error {
	return &AlreadyClaimedError{LastClaim: lastClaim}
}

// ExtractionError wraps a failed image extraction.
// Message is safe to show to the user; Cause is kept for logs.
type ExtractionError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}

	return e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ExtractionError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrExtractionFailed}
	}

	return []error{ErrExtractionFailed, e.Cause}
}

// ExtractionFailedMessage is shown to users when image processing fails.
const ExtractionFailedMessage = "Failed to process images. Please try again."

// NewExtractionError creates an extraction error with the user-facing message.
func NewExtractionError(cause error) error {
	return &ExtractionError{Message: ExtractionFailedMessage, Cause: cause}
}

// UnavailableError provides context for unavailable errors.
type UnavailableError struct {
	Service string
	Reason  string
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsQuotaExceeded checks if an error is a quota refusal.
func IsQuotaExceeded(err error) bool {
	return errors.Is(err, ErrQuotaExceeded)
}

// IsAlreadyClaimed checks if an error reports a repeated daily claim.
func IsAlreadyClaimed(err error) bool {
	var claimed *AlreadyClaimedError

	return errors.As(err, &claimed)
}

// IsExtractionFailed checks if an error is an extraction failure.
func IsExtractionFailed(err error) bool {
	return errors.Is(err, ErrExtractionFailed)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
