package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrBadRequest         = errors.New("bad request")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrNotEligible        = errors.New("customer not eligible")
	ErrLoanNotActive      = errors.New("loan not active")
)

// AppError represents application error with HTTP status
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrForbidden)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrAlreadyExists)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "internal server error", err)
}

// ValidationError carries every field-level violation found in one pass, so
// clients receive the full list instead of fixing one problem per round trip.
type ValidationError struct {
	Errors []string `json:"errors"`
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, "; ")
}

// NewValidationError creates a validation error from accumulated messages.
func NewValidationError(errs ...string) *ValidationError {
	return &ValidationError{Errors: errs}
}

// AsValidationError extracts a ValidationError from err's chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// StateTransitionError reports an operation attempted against a record whose
// current status does not permit it. The current status is echoed back so the
// client can explain the refusal.
type StateTransitionError struct {
	Op            string `json:"op"`
	CurrentStatus string `json:"currentStatus"`
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("cannot %s in status %s", e.Op, e.CurrentStatus)
}

// NewStateTransitionError creates a state transition error.
func NewStateTransitionError(op, currentStatus string) *StateTransitionError {
	return &StateTransitionError{Op: op, CurrentStatus: currentStatus}
}

// AsStateTransitionError extracts a StateTransitionError from err's chain.
func AsStateTransitionError(err error) (*StateTransitionError, bool) {
	var se *StateTransitionError
	ok := errors.As(err, &se)
	return se, ok
}

// IntegrityError signals a uniqueness collision in storage. Callers that
// generate identifiers retry a bounded number of times before giving up.
type IntegrityError struct {
	Key string
	Err error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity violation on %s: %v", e.Key, e.Err)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

// NewIntegrityError creates an integrity error for the given key.
func NewIntegrityError(key string, err error) *IntegrityError {
	return &IntegrityError{Key: key, Err: err}
}

// IsIntegrityError reports whether err's chain contains an IntegrityError.
func IsIntegrityError(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}
