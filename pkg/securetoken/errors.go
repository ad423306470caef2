package securetoken

import "errors"

var (
	// ErrInvalidLength is returned when input bytes do not match the token size.
	ErrInvalidLength = errors.New("securetoken: invalid token length")

	// ErrMalformed is returned when an encoded token cannot be decoded.
	ErrMalformed = errors.New("securetoken: malformed token encoding")

	// ErrEntropy wraps the panic value raised when the random source fails.
	ErrEntropy = errors.New("securetoken: random source failed")
)
