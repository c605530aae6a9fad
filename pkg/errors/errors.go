package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Status  int      `json:"status"`
	Issues  []string `json:"eligibilityIssues,omitempty"`
	Err     error    `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors of the same kind so callers can use errors.Is against
// the predefined values even after Clone or WithIssues.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrUnauthenticated     = New("UNAUTHENTICATED", http.StatusUnauthorized, "authentication required")
	ErrNotAuthorized       = New("NOT_AUTHORIZED", http.StatusForbidden, "not authorized")
	ErrNotFound            = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrBenefitInactive     = New("BENEFIT_INACTIVE", http.StatusConflict, "Benefit is not active")
	ErrEligibilityFailed   = New("ELIGIBILITY_FAILED", http.StatusUnprocessableEntity, "Person does not meet the benefit eligibility requirements")
	ErrDuplicatePending    = New("DUPLICATE_PENDING", http.StatusConflict, "A pending voucher already exists for this person and benefit")
	ErrInvalidState        = New("INVALID_STATE", http.StatusConflict, "Voucher is not pending")
	ErrSeparationOfDuties  = New("SEPARATION_OF_DUTIES", http.StatusForbidden, "Cannot release a voucher you provided")
	ErrValidation          = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal            = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrServiceUnavailable  = New("SERVICE_UNAVAILABLE", http.StatusServiceUnavailable, "service unavailable")
	ErrCacheMiss           = New("CACHE_MISS", http.StatusNotFound, "cache miss")
	ErrInvalidRole         = New("INVALID_ROLE", http.StatusUnauthorized, "unrecognised role")
	ErrUnsupportedCategory = New("UNSUPPORTED_CATEGORY", http.StatusBadRequest, "unsupported identification category")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// WithIssues returns a copy of err carrying the provided detail list.
func WithIssues(err *Error, issues []string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	clone.Issues = append([]string(nil), issues...)
	return &clone
}
