package domain

import (
	"errors"
	"fmt"
)

// DomainError is a client-side error with a stable code of the form
// SP-<AREA>-<NNNN>. The numeric part mirrors the HTTP status family the
// error corresponds to where there is one.
type DomainError struct {
	Code    string // Error code (e.g., "SP-AUTH-4011")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// Wrap wraps an error with this domain error as the cause.
func (e *DomainError) Wrap(cause error) *DomainError {
	return e.WithCause(cause)
}

// IsDomainError reports whether err is a DomainError with the given code.
// An empty code matches any DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Authentication errors.
var (
	ErrNoCredential  = NewDomainError("SP-AUTH-4010", "not logged in")
	ErrAuthExpired   = NewDomainError("SP-AUTH-4011", "session expired, please log in again")
	ErrLoginRequired = NewDomainError("SP-AUTH-4012", "login required")
	ErrRefreshFailed = NewDomainError("SP-AUTH-4013", "token refresh failed")
	ErrBadLogin      = NewDomainError("SP-AUTH-4014", "invalid username or password")
)

// Transport errors.
var (
	ErrTransport = NewDomainError("SP-NET-5020", "transport failure")
)

// API errors, produced from non-2xx responses the caller chose to interpret.
var (
	ErrBadRequest = NewDomainError("SP-API-4000", "bad request")
	ErrForbidden  = NewDomainError("SP-API-4030", "forbidden")
	ErrNotFound   = NewDomainError("SP-API-4040", "not found")
	ErrConflict   = NewDomainError("SP-API-4090", "conflict")
	ErrRejected   = NewDomainError("SP-API-4220", "request rejected")
	ErrServer     = NewDomainError("SP-API-5000", "server error")
)

// Validation errors.
var (
	ErrValidation      = NewDomainError("SP-VAL-4001", "validation failed")
	ErrInvalidEmail    = NewDomainError("SP-VAL-4002", "invalid email address")
	ErrInvalidAmount   = NewDomainError("SP-VAL-4003", "amount must be positive")
	ErrInvalidDate     = NewDomainError("SP-VAL-4004", "date must be YYYY-MM-DD")
	ErrEmptySplit      = NewDomainError("SP-VAL-4005", "payment must be split with at least one member")
	ErrInvalidArgument = NewDomainError("SP-ARG-1001", "invalid argument")
	ErrMissingArgument = NewDomainError("SP-ARG-1002", "missing required argument")
)

// Credential storage errors.
var (
	ErrStorage           = NewDomainError("SP-STORE-5001", "credential storage error")
	ErrCredentialCorrupt = NewDomainError("SP-STORE-5002", "stored credential is unreadable")
	ErrStoreClosed       = NewDomainError("SP-STORE-5003", "credential store closed")
)

// ErrorForStatus maps an HTTP status to the API error it represents.
func ErrorForStatus(status int) *DomainError {
	switch {
	case status == 400:
		return ErrBadRequest
	case status == 401:
		return ErrAuthExpired
	case status == 403:
		return ErrForbidden
	case status == 404:
		return ErrNotFound
	case status == 409:
		return ErrConflict
	case status == 422:
		return ErrRejected
	case status >= 500:
		return ErrServer
	default:
		return ErrBadRequest
	}
}
