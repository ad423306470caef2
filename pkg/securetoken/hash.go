package securetoken

import (
	"crypto/subtle"
	"encoding/hex"
	"io"

	"github.com/spaolacci/murmur3"
	"golang.org/x/crypto/blake2b"
)

// WriteTo writes the raw token bytes to w.
//
// It is meant for feeding a hash accumulator (hash.Hash, *maphash.Hash);
// writing a token anywhere else exposes it.
func (t Token[S]) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(t.data)
	return int64(n), err
}

// Sum64 returns the seeded murmur3 hash of the token bytes.
//
// Not a MAC. Use it for sharding and bucketing only.
func (t Token[S]) Sum64(seed uint32) uint64 {
	return murmur3.Sum64WithSeed(t.data, seed)
}

// Digest returns the hex encoded BLAKE2b-256 digest of the token bytes.
//
// A digest can be stored in place of the token itself.
func (t Token[S]) Digest() string {
	sum := blake2b.Sum256(t.data)
	return hex.EncodeToString(sum[:])
}

// VerifyDigest reports whether digest matches t.Digest().
//
// Uses constant-time comparison to prevent timing attacks.
func (t Token[S]) VerifyDigest(digest string) bool {
	return subtle.ConstantTimeCompare([]byte(t.Digest()), []byte(digest)) == 1
}
