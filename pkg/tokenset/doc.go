// Package tokenset provides a concurrent set of secure tokens.
//
// Tokens cannot be map keys (they are not comparable, by design), so the set
// buckets them by a seeded murmur3 hash and resolves membership inside a
// bucket with the constant-time Token.Equal.
//
//   - Sharding: Configurable shard count for parallelism
//   - Fine-grained Locking: Per-shard RWMutex for minimal contention
//   - Ownership: The set stores clones and zeroes them on Remove and Reset
//
// Usage:
//
//	set := tokenset.New[securetoken.Size32]()
//	set.Add(tok)
//	ok := set.Contains(tok)
//
// Thread Safety:
//
// All operations are thread-safe. Read operations (Contains, Len, Range) use
// RLock, write operations (Add, Remove, Reset) use Lock.
package tokenset
