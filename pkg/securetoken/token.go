package securetoken

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/tink-crypto/tink-go/v2/insecuresecretdataaccess"
)

// randReader is the entropy source. Tests replace it to exercise failure.
var randReader io.Reader = rand.Reader

// Token is an opaque secret of exactly S.Len() random bytes.
//
// The zero Token holds no bytes and is not valid; see IsValid. Token holds a
// slice, so it cannot be compared with ==. Use Equal.
type Token[S Size] struct {
	data []byte
}

// Generate returns a token filled from crypto/rand.
//
// There is no error return. If the random source fails, Generate panics with
// an error wrapping ErrEntropy rather than return a predictable token.
func Generate[S Size]() Token[S] {
	data := make([]byte, sizeOf[S]())
	if _, err := io.ReadFull(randReader, data); err != nil {
		clear(data)
		panic(fmt.Errorf("%w: %w", ErrEntropy, err))
	}
	return Token[S]{data: data}
}

// FromBytes wraps b as a token without any entropy or provenance check.
//
// The caller asserts that b was produced by a secure source or arrived over a
// trusted channel. Passing predictable bytes is a security bug that cannot be
// detected here. b is copied. The only error is ErrInvalidLength.
func FromBytes[S Size](b []byte, _ insecuresecretdataaccess.Token) (Token[S], error) {
	return fromBytes[S](b)
}

func fromBytes[S Size](b []byte) (Token[S], error) {
	if n := sizeOf[S](); len(b) != n {
		return Token[S]{}, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidLength, len(b), n)
	}
	return Token[S]{data: bytes.Clone(b)}, nil
}

// Bytes returns a copy of the token bytes.
func (t Token[S]) Bytes(_ insecuresecretdataaccess.Token) []byte {
	return bytes.Clone(t.data)
}

// Len returns the number of bytes held, which is S.Len() for a valid token.
func (t Token[S]) Len() int {
	return len(t.data)
}

// IsValid reports whether t holds exactly S.Len() bytes.
func (t Token[S]) IsValid() bool {
	return len(t.data) == sizeOf[S]()
}

// Clone returns a deep copy that does not share storage with t.
func (t Token[S]) Clone() Token[S] {
	return Token[S]{data: bytes.Clone(t.data)}
}

// Clear overwrites the token bytes with zeros.
//
// Every Token value sharing this storage observes the zeros. Clear must not
// run concurrently with reads of the same token.
func (t *Token[S]) Clear() {
	if t == nil {
		return
	}
	clear(t.data)
}

func (t Token[S]) raw() []byte {
	return t.data
}

// String never reveals the token bytes.
func (t Token[S]) String() string {
	return "Token" + strconv.Itoa(sizeOf[S]()) + "(REDACTED)"
}

// GoString never reveals the token bytes.
func (t Token[S]) GoString() string {
	return "securetoken." + t.String()
}

// LogValue implements slog.LogValuer.
func (t Token[S]) LogValue() slog.Value {
	return slog.StringValue(t.String())
}
