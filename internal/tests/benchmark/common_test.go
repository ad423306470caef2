package benchmark

import (
	"fmt"

	"github.com/tink-crypto/tink-go/v2/insecuresecretdataaccess"

	"github.com/yndnr/securetoken-go/pkg/securetoken"
	"github.com/yndnr/securetoken-go/pkg/tokenset"
)

// SetCounts are the set sizes used by lookup benchmarks.
var SetCounts = []int{1000, 10000, 100000}

// SmallSetCounts for quick benchmarks.
var SmallSetCounts = []int{100, 1000}

func sizeLabel(size int) string {
	return fmt.Sprintf("%dB", size)
}

func countLabel(count int) string {
	return fmt.Sprintf("tokens_%d", count)
}

// pair returns two tokens that differ only at index pos.
func pair[S securetoken.Size](pos int) (securetoken.Token[S], securetoken.Token[S]) {
	a := securetoken.Generate[S]()
	raw := a.Bytes(insecuresecretdataaccess.Token{})
	raw[pos] ^= 0xFF
	b, err := securetoken.FromBytes[S](raw, insecuresecretdataaccess.Token{})
	clear(raw)
	if err != nil {
		panic(err)
	}
	return a, b
}

// prefill returns a set of count random tokens and the tokens themselves.
func prefill[S securetoken.Size](count int) (*tokenset.Set[S], []securetoken.Token[S]) {
	set := tokenset.New[S]()
	tokens := make([]securetoken.Token[S], 0, count)
	for len(tokens) < count {
		tok := securetoken.Generate[S]()
		if set.Add(tok) {
			tokens = append(tokens, tok)
		}
	}
	return set, tokens
}

func encode[S securetoken.Size](tok securetoken.Token[S]) string {
	text, err := tok.MarshalText()
	if err != nil {
		panic(err)
	}
	return string(text)
}

