// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrDataNotFound        = errors.New("data not found")
	ErrDatabaseError       = errors.New("database error")
	ErrInputValidation     = errors.New("input validation failed")
	ErrUnknownMood         = errors.New("unknown mood")
	ErrUnknownInvestment   = errors.New("unknown investment type")
	ErrUnknownIntensity    = errors.New("unknown exercise intensity")
	ErrInvalidDate         = errors.New("invalid date key")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrSyncDisabled        = errors.New("cloud sync is not configured")
	ErrConfigInvalid       = errors.New("invalid configuration")
)

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// Unwrap returns the underlying sentinel, falling back to ErrInputValidation.
func (e *ValidationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInputValidation, e.Err}
	}
	return []error{ErrInputValidation}
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NewValidationErrorWrap creates a ValidationError that also matches err.
func NewValidationErrorWrap(field string, value interface{}, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: err.Error(),
		Err:     err,
	}
}

// DataError represents a storage-related error for one journal category.
type DataError struct {
	Category string
	Date     string
	Message  string
	Err      error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data error [%s] %s: %s: %v", e.Category, e.Date, e.Message, e.Err)
	}
	return fmt.Sprintf("data error [%s] %s: %s", e.Category, e.Date, e.Message)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// NewDataError creates a new DataError.
func NewDataError(category, date, message string, err error) *DataError {
	return &DataError{
		Category: category,
		Date:     date,
		Message:  message,
		Err:      err,
	}
}

// ProviderError represents a failure talking to a remote metadata provider.
type ProviderError struct {
	Provider  string
	Operation string
	Status    int
	Err       error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("provider error [%s] %s: status %d", e.Provider, e.Operation, e.Status)
	}
	return fmt.Sprintf("provider error [%s] %s: %v", e.Provider, e.Operation, e.Err)
}

func (e *ProviderError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrProviderUnavailable, e.Err}
	}
	return []error{ErrProviderUnavailable}
}

// NewProviderError creates a new ProviderError.
func NewProviderError(provider, operation string, status int, err error) *ProviderError {
	return &ProviderError{
		Provider:  provider,
		Operation: operation,
		Status:    status,
		Err:       err,
	}
}

// IsTransient reports whether err is a provider failure worth retrying:
// a transport error, rate limiting or a server-side status.
func IsTransient(err error) bool {
	var pe *ProviderError
	if !errors.As(err, &pe) {
		return false
	}
	return pe.Status == 0 || pe.Status == 429 || pe.Status >= 500
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
