package benchmark

import (
	"fmt"
	"testing"

	"github.com/yndnr/securetoken-go/pkg/securetoken"
)

var sink bool

func benchEqualAt[S securetoken.Size](pos int) func(*testing.B) {
	return func(b *testing.B) {
		x, y := pair[S](pos)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			sink = x.Equal(y)
		}
	}
}

// BenchmarkEqualTiming compares tokens differing at the first, middle and
// last byte. The three results should be indistinguishable.
func BenchmarkEqualTiming(b *testing.B) {
	b.Run("32B/first", benchEqualAt[securetoken.Size32](0))
	b.Run("32B/middle", benchEqualAt[securetoken.Size32](16))
	b.Run("32B/last", benchEqualAt[securetoken.Size32](31))
	b.Run("64B/first", benchEqualAt[securetoken.Size64](0))
	b.Run("64B/last", benchEqualAt[securetoken.Size64](63))
}

// BenchmarkEqualTiming_Identical is the baseline for a full match.
func BenchmarkEqualTiming_Identical(b *testing.B) {
	tok := securetoken.Generate[securetoken.Size32]()
	other := tok.Clone()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		sink = tok.Equal(other)
	}
}

// BenchmarkCompareEarlyExit shows that ordering is not constant time.
func BenchmarkCompareEarlyExit(b *testing.B) {
	for _, pos := range []int{0, 31} {
		x, y := pair[securetoken.Size32](pos)
		b.Run(fmt.Sprintf("diff_at_%d", pos), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = x.Compare(y)
			}
		})
	}
}

// BenchmarkVerifyDigest measures constant-time digest verification.
func BenchmarkVerifyDigest(b *testing.B) {
	tok := securetoken.Generate[securetoken.Size32]()
	digest := tok.Digest()
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		sink = tok.VerifyDigest(digest)
	}
}
