// Package securetoken provides a fixed-size opaque token backed by random bytes.
//
// A Token[S] holds exactly S.Len() bytes. Token[Size16] and Token[Size32] are
// distinct types, so tokens of different sizes cannot be mixed by accident.
//
// Construction:
//
//   - Generate draws the bytes from crypto/rand. It is the only production path.
//   - FromBytes wraps caller bytes without any entropy check. It requires an
//     insecuresecretdataaccess.Token argument so that every call site is visibly
//     marked as handling trusted secret material.
//
// Comparison:
//
//   - Equal runs in constant time with respect to the token bytes.
//   - Compare orders by length, then by the first differing byte. It is NOT
//     constant time and must never gate an authentication decision.
//
// Hashing:
//
//   - WriteTo feeds the bytes into any hash accumulator.
//   - Sum64 is a seeded murmur3 hash for sharding.
//   - Digest is a hex BLAKE2b-256 digest for storing a reference to a token.
//
// Memory:
//
// Go has no deterministic destruction, so tokens are never zeroed
// automatically. Call Clear before dropping the last reference:
//
//	tok := securetoken.Generate[securetoken.Size32]()
//	defer tok.Clear()
//
// Assigning a Token value shares its storage; use Clone for an independent copy.
package securetoken
