package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/yndnr/securetoken-go/pkg/securetoken"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{"without details", NewDomainError("ST-TEST-1000", "test message"), "[ST-TEST-1000] test message"},
		{"with details", NewDomainError("ST-TEST-1001", "test message").WithDetails("extra"), "[ST-TEST-1001] test message: extra"},
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
	err1 := NewDomainError("ST-TEST-1000", "message 1")
	err2 := NewDomainError("ST-TEST-1000", "message 2")
	err3 := NewDomainError("ST-TEST-1001", "message 1")

	if !errors.Is(err1, err2) {
		t.Error("errors.Is should match on code")
	}
	if errors.Is(err1, err3) {
		t.Error("errors.Is should not match a different code")
	}
	if errors.Is(err1, fmt.Errorf("some error")) {
		t.Error("errors.Is should not match a plain error")
	}
}

func TestDomainError_Wrap(t *testing.T) {
	cause := fmt.Errorf("underlying cause")
	err := ErrTokenMalformed.WithDetails("bad input").Wrap(cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable")
	}
	if err.Details != "bad input" {
		t.Errorf("Details = %q, want %q", err.Details, "bad input")
	}
	if ErrTokenMalformed.Cause != nil || ErrTokenMalformed.Details != "" {
		t.Error("Wrap and WithDetails must not mutate the sentinel")
	}
}

func TestIsDomainError(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", ErrInvalidCount.WithDetails("0"))

	if !IsDomainError(wrapped, "") {
		t.Error("IsDomainError(any code) = false")
	}
	if !IsDomainError(wrapped, "ST-ISSU-4000") {
		t.Error("IsDomainError(ST-ISSU-4000) = false")
	}
	if IsDomainError(wrapped, "ST-TOKN-4000") {
		t.Error("IsDomainError(other code) = true")
	}
	if IsDomainError(errors.New("plain"), "") {
		t.Error("IsDomainError(plain) = true")
	}
	if got := GetErrorCode(wrapped); got != "ST-ISSU-4000" {
		t.Errorf("GetErrorCode() = %q", got)
	}
	if got := GetErrorCode(errors.New("plain")); got != "" {
		t.Errorf("GetErrorCode(plain) = %q, want empty", got)
	}
}

func TestFromTokenError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want *DomainError
	}{
		{"length", fmt.Errorf("%w: 3 bytes", securetoken.ErrInvalidLength), ErrTokenLength},
		{"malformed", fmt.Errorf("%w: bad base64", securetoken.ErrMalformed), ErrTokenMalformed},
		{"entropy", fmt.Errorf("%w: eof", securetoken.ErrEntropy), ErrEntropyExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromTokenError(tt.in)
			if !errors.Is(got, tt.want) {
				t.Errorf("FromTokenError() = %v, want code %s", got, tt.want.Code)
			}
			if !errors.Is(got, tt.in) {
				t.Error("original error not preserved")
			}
		})
	}

	if FromTokenError(nil) != nil {
		t.Error("FromTokenError(nil) != nil")
	}
	plain := errors.New("plain")
	if FromTokenError(plain) != plain {
		t.Error("unrelated errors should pass through")
	}
}
