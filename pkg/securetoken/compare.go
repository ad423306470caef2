package securetoken

import (
	"bytes"
	"cmp"
	"crypto/subtle"
)

// View is a token of any size. *Token[S] implements View for every S.
type View interface {
	Len() int
	Digest() string
	VerifyDigest(digest string) bool
	String() string
	Clear()
	raw() []byte
}

// Equal reports whether t and other hold the same bytes.
//
// Every byte pair is visited regardless of where a mismatch occurs.
func (t Token[S]) Equal(other Token[S]) bool {
	return subtle.ConstantTimeCompare(t.data, other.data) == 1
}

// Compare orders t and other by length, then by the first differing byte.
//
// Compare returns early on the first difference and is NOT constant time.
// It exists for sorting and indexing; authenticate with Equal.
func (t Token[S]) Compare(other Token[S]) int {
	return compareBytes(t.data, other.data)
}

// Equal reports whether a and b hold the same bytes.
//
// Tokens of different lengths are unequal and are rejected without a
// constant-time pass; length is not secret. Equal lengths are compared in
// constant time.
func Equal(a, b View) bool {
	x, y := a.raw(), b.raw()
	if len(x) != len(y) {
		return false
	}
	return subtle.ConstantTimeCompare(x, y) == 1
}

// Compare orders a and b the same way Token.Compare does. Shorter tokens sort
// first regardless of content. It is NOT constant time.
func Compare(a, b View) int {
	return compareBytes(a.raw(), b.raw())
}

func compareBytes(a, b []byte) int {
	if len(a) != len(b) {
		return cmp.Compare(len(a), len(b))
	}
	return bytes.Compare(a, b)
}
