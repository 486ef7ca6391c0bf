package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name:     "error without details",
			err:      NewDomainError("SP-TEST-1000", "test message"),
			expected: "[SP-TEST-1000] test message",
		},
		{
			name:     "error with details",
			err:      NewDomainError("SP-TEST-1001", "test message").WithDetails("extra info"),
			expected: "[SP-TEST-1001] test message: extra info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDomainError_Is(t *testing.T) {
	err1 := NewDomainError("SP-TEST-1000", "message 1")
	err2 := NewDomainError("SP-TEST-1000", "message 2") // Same code, different message
	err3 := NewDomainError("SP-TEST-1001", "message 1") // Different code

	// Same code should match
	if !errors.Is(err1, err2) {
		t.Error("errors.Is should return true for same error code")
	}

	// Different code should not match
	if errors.Is(err1, err3) {
		t.Error("errors.Is should return false for different error code")
	}

	// Should not match non-DomainError
	if errors.Is(err1, fmt.Errorf("some error")) {
		t.Error("errors.Is should return false for non-DomainError")
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying cause")
	err := NewDomainError("SP-TEST-1000", "wrapper").WithCause(cause)

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Without cause
	errNoCause := NewDomainError("SP-TEST-1000", "no cause")
	if errors.Unwrap(errNoCause) != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestDomainError_WithDetails(t *testing.T) {
	original := NewDomainError("SP-TEST-1000", "original message")
	withDetails := original.WithDetails("additional details")

	// Check original is unchanged
	if original.Details != "" {
		t.Error("WithDetails should not modify original error")
	}

	// Check new error has details
	if withDetails.Details != "additional details" {
		t.Errorf("Details = %q, want %q", withDetails.Details, "additional details")
	}

	// Check code and message are preserved
	if withDetails.Code != original.Code {
		t.Errorf("Code = %q, want %q", withDetails.Code, original.Code)
	}
	if withDetails.Message != original.Message {
		t.Errorf("Message = %q, want %q", withDetails.Message, original.Message)
	}
}

func TestDomainError_WithCause(t *testing.T) {
	original := NewDomainError("SP-TEST-1000", "original message")
	cause := fmt.Errorf("root cause")
	withCause := original.WithCause(cause)

	// Check original is unchanged
	if original.Cause != nil {
		t.Error("WithCause should not modify original error")
	}

	// Check new error has cause
	if withCause.Cause != cause {
		t.Errorf("Cause = %v, want %v", withCause.Cause, cause)
	}

	// Check code and message are preserved
	if withCause.Code != original.Code {
		t.Errorf("Code = %q, want %q", withCause.Code, original.Code)
	}
}

func TestDomainError_Wrap(t *testing.T) {
	original := NewDomainError("SP-TEST-1000", "original")
	cause := fmt.Errorf("cause")
	wrapped := original.Wrap(cause)

	if wrapped.Cause != cause {
		t.Errorf("Wrap() should set cause, got %v", wrapped.Cause)
	}
}

func TestIsDomainError(t *testing.T) {
	err := ErrAuthExpired

	if !IsDomainError(err, "SP-AUTH-4011") {
		t.Error("IsDomainError should return true for matching code")
	}
	if IsDomainError(err, "SP-AUTH-9999") {
		t.Error("IsDomainError should return false for non-matching code")
	}
	if !IsDomainError(err, "") {
		t.Error("empty code should match any DomainError")
	}
	if IsDomainError(fmt.Errorf("regular error"), "SP-AUTH-4011") {
		t.Error("IsDomainError should return false for non-DomainError")
	}

	wrapped := fmt.Errorf("wrapped: %w", ErrAuthExpired)
	if !IsDomainError(wrapped, "SP-AUTH-4011") {
		t.Error("IsDomainError should work with wrapped errors")
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"domain error", ErrNoCredential, "SP-AUTH-4010"},
		{"wrapped domain error", fmt.Errorf("wrapped: %w", ErrTransport), "SP-NET-5020"},
		{"regular error", fmt.Errorf("regular error"), ""},
		{"nil error", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetErrorCode(tt.err); got != tt.expected {
				t.Errorf("GetErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   *DomainError
	}{
		{400, ErrBadRequest},
		{401, ErrAuthExpired},
		{403, ErrForbidden},
		{404, ErrNotFound},
		{409, ErrConflict},
		{422, ErrRejected},
		{418, ErrBadRequest},
		{500, ErrServer},
		{503, ErrServer},
	}

	for _, tt := range tests {
		if got := ErrorForStatus(tt.status); got != tt.want {
			t.Errorf("ErrorForStatus(%d) = %s, want %s", tt.status, got.Code, tt.want.Code)
		}
	}
}

func TestPredefinedErrors_UniqueCodes(t *testing.T) {
	all := []*DomainError{
		ErrNoCredential, ErrAuthExpired, ErrLoginRequired, ErrRefreshFailed, ErrBadLogin,
		ErrTransport,
		ErrBadRequest, ErrForbidden, ErrNotFound, ErrConflict, ErrRejected, ErrServer,
		ErrValidation, ErrInvalidEmail, ErrInvalidAmount, ErrInvalidDate, ErrEmptySplit,
		ErrInvalidArgument, ErrMissingArgument,
		ErrStorage, ErrCredentialCorrupt, ErrStoreClosed,
	}

	seen := make(map[string]bool)
	for _, err := range all {
		if seen[err.Code] {
			t.Errorf("duplicate code %s", err.Code)
		}
		seen[err.Code] = true
		if err.Message == "" {
			t.Errorf("%s has empty message", err.Code)
		}
	}
}
