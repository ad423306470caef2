package tokenset

import (
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/yndnr/securetoken-go/pkg/securetoken"
)

// DefaultShardCount is the default number of shards.
const DefaultShardCount = 16

// Set is a concurrent-safe sharded set of tokens of one size.
type Set[S securetoken.Size] struct {
	shards    []*shard[S]
	shardMask uint64
	seed      uint32
}

type shard[S securetoken.Size] struct {
	mu      sync.RWMutex
	buckets map[uint64][]securetoken.Token[S]
	count   int
}

// New creates a new set with the default shard count.
func New[S securetoken.Size]() *Set[S] {
	return NewWithShards[S](DefaultShardCount)
}

// NewWithShards creates a new set with the specified shard count.
// shardCount must be a power of 2.
func NewWithShards[S securetoken.Size](shardCount int) *Set[S] {
	if shardCount <= 0 || shardCount&(shardCount-1) != 0 {
		shardCount = DefaultShardCount
	}

	s := &Set[S]{
		shards:    make([]*shard[S], shardCount),
		shardMask: uint64(shardCount - 1),
		seed:      rand.Uint32(),
	}

	for i := 0; i < shardCount; i++ {
		s.shards[i] = &shard[S]{
			buckets: make(map[uint64][]securetoken.Token[S]),
		}
	}

	return s
}

func (s *Set[S]) locate(tok securetoken.Token[S]) (*shard[S], uint64) {
	h := tok.Sum64(s.seed)
	return s.shards[h&s.shardMask], h
}

// Add stores a clone of tok. It returns false if an equal token is already
// present or tok is not a valid token.
func (s *Set[S]) Add(tok securetoken.Token[S]) bool {
	if !tok.IsValid() {
		return false
	}

	sh, h := s.locate(tok)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	bucket := sh.buckets[h]
	if indexOf(bucket, tok) >= 0 {
		return false
	}
	sh.buckets[h] = append(bucket, tok.Clone())
	sh.count++
	return true
}

// Contains reports whether an equal token is present.
func (s *Set[S]) Contains(tok securetoken.Token[S]) bool {
	sh, h := s.locate(tok)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return indexOf(sh.buckets[h], tok) >= 0
}

// Remove deletes the stored token equal to tok and zeroes it.
// Returns true if a token was removed.
func (s *Set[S]) Remove(tok securetoken.Token[S]) bool {
	sh, h := s.locate(tok)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	bucket := sh.buckets[h]
	i := indexOf(bucket, tok)
	if i < 0 {
		return false
	}

	bucket[i].Clear()
	bucket = slices.Delete(bucket, i, i+1)
	if len(bucket) == 0 {
		delete(sh.buckets, h)
	} else {
		sh.buckets[h] = bucket
	}
	sh.count--
	return true
}

// indexOf scans the whole bucket with the constant-time Equal.
func indexOf[S securetoken.Size](bucket []securetoken.Token[S], tok securetoken.Token[S]) int {
	found := -1
	for i := range bucket {
		if bucket[i].Equal(tok) && found < 0 {
			found = i
		}
	}
	return found
}

// Len returns the total number of tokens.
func (s *Set[S]) Len() int {
	count := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		count += sh.count
		sh.mu.RUnlock()
	}
	return count
}

// Range iterates over all tokens.
//
// The callback returns false to stop iteration. It receives the stored token
// and must neither retain nor Clear it; use Sorted for owned copies.
// Note: This acquires locks shard by shard, so the view may not be consistent.
func (s *Set[S]) Range(fn func(tok securetoken.Token[S]) bool) {
	for _, sh := range s.shards {
		sh.mu.RLock()
		for _, bucket := range sh.buckets {
			for _, tok := range bucket {
				if !fn(tok) {
					sh.mu.RUnlock()
					return
				}
			}
		}
		sh.mu.RUnlock()
	}
}

// Sorted returns clones of all tokens ordered by Token.Compare.
func (s *Set[S]) Sorted() []securetoken.Token[S] {
	out := make([]securetoken.Token[S], 0, s.Len())
	s.Range(func(tok securetoken.Token[S]) bool {
		out = append(out, tok.Clone())
		return true
	})
	slices.SortFunc(out, func(a, b securetoken.Token[S]) int {
		return a.Compare(b)
	})
	return out
}

// Reset zeroes and removes all tokens.
func (s *Set[S]) Reset() {
	for _, sh := range s.shards {
		sh.mu.Lock()
		for _, bucket := range sh.buckets {
			for i := range bucket {
				bucket[i].Clear()
			}
		}
		sh.buckets = make(map[uint64][]securetoken.Token[S])
		sh.count = 0
		sh.mu.Unlock()
	}
}

// ShardCount returns the number of shards.
func (s *Set[S]) ShardCount() int {
	return len(s.shards)
}

// ShardStats returns statistics about each shard.
type ShardStats struct {
	Index   int
	Count   int
	Buckets int
}

// Stats returns statistics about all shards.
func (s *Set[S]) Stats() []ShardStats {
	stats := make([]ShardStats, len(s.shards))
	for i, sh := range s.shards {
		sh.mu.RLock()
		stats[i] = ShardStats{
			Index:   i,
			Count:   sh.count,
			Buckets: len(sh.buckets),
		}
		sh.mu.RUnlock()
	}
	return stats
}
