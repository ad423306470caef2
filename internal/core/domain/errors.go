package domain

import (
	"errors"
	"fmt"

	"github.com/yndnr/securetoken-go/pkg/securetoken"
)

// DomainError is an error with a stable code.
type DomainError struct {
	Code    string
	Message string
	Details string
	Cause   error
}

func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches any DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a DomainError.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// WithDetails returns a copy carrying details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{Code: e.Code, Message: e.Message, Details: details, Cause: e.Cause}
}

// Wrap returns a copy whose cause is err.
func (e *DomainError) Wrap(err error) *DomainError {
	return &DomainError{Code: e.Code, Message: e.Message, Details: e.Details, Cause: err}
}

// IsDomainError reports whether err is a DomainError with the given code.
// An empty code matches any DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return code == "" || de.Code == code
	}
	return false
}

// GetErrorCode returns the code of the first DomainError in err's chain.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

var (
	ErrInvalidCount = NewDomainError("ST-ISSU-4000", "invalid token count")

	ErrTokenMalformed   = NewDomainError("ST-TOKN-4000", "malformed token")
	ErrTokenLength      = NewDomainError("ST-TOKN-4001", "unsupported token length")
	ErrUnknownEncoding  = NewDomainError("ST-TOKN-4002", "unknown token encoding")
	ErrDigestMismatch   = NewDomainError("ST-TOKN-4010", "digest does not match token")
	ErrEntropyExhausted = NewDomainError("ST-SYS-5000", "secure random source failed")
)

// FromTokenError maps a securetoken error onto its DomainError. Other errors
// are returned unchanged.
func FromTokenError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, securetoken.ErrInvalidLength):
		return ErrTokenLength.Wrap(err)
	case errors.Is(err, securetoken.ErrMalformed):
		return ErrTokenMalformed.Wrap(err)
	case errors.Is(err, securetoken.ErrEntropy):
		return ErrEntropyExhausted.Wrap(err)
	default:
		return err
	}
}
