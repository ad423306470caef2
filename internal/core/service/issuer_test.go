package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yndnr/securetoken-go/internal/core/domain"
	"github.com/yndnr/securetoken-go/internal/telemetry/metric"
	"github.com/yndnr/securetoken-go/pkg/securetoken"
)

func TestNewIssuer_Defaults(t *testing.T) {
	is := NewIssuer(IssuerConfig{}, nil, nil)
	if is.MaxBatch() != DefaultMaxBatch {
		t.Errorf("MaxBatch() = %d, want %d", is.MaxBatch(), DefaultMaxBatch)
	}
	if is.log == nil {
		t.Error("nil logger should be replaced")
	}
}

func TestIssue(t *testing.T) {
	reg := metric.NewRegistry()
	is := NewIssuer(IssuerConfig{}, reg, nil)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	is.now = func() time.Time { return fixed }

	batch, err := Issue[securetoken.Size32](context.Background(), is, 50)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	defer batch.Clear()

	if batch.Len() != 50 {
		t.Fatalf("Len() = %d, want 50", batch.Len())
	}
	if !batch.IssuedAt.Equal(fixed) {
		t.Errorf("IssuedAt = %v, want %v", batch.IssuedAt, fixed)
	}
	if got := ulid.Time(batch.ID.Time()); !got.Equal(fixed) {
		t.Errorf("batch ID time = %v, want %v", got, fixed)
	}

	for i, tok := range batch.Tokens {
		if !tok.IsValid() {
			t.Fatalf("token %d is not valid", i)
		}
		for j := range i {
			if tok.Equal(batch.Tokens[j]) {
				t.Fatalf("tokens %d and %d are equal", i, j)
			}
		}
	}

	if got := testutil.ToFloat64(reg.TokensGenerated.WithLabelValues("32")); got != 50 {
		t.Errorf("tokens_generated_total{size=32} = %v, want 50", got)
	}
	if got := testutil.CollectAndCount(reg.IssueDuration); got != 1 {
		t.Errorf("issue_duration_seconds series = %d, want 1", got)
	}
}

func TestIssue_Sizes(t *testing.T) {
	is := NewIssuer(IssuerConfig{}, nil, nil)
	ctx := context.Background()

	b16, err := Issue[securetoken.Size16](ctx, is, 1)
	if err != nil || b16.Tokens[0].Len() != 16 {
		t.Errorf("Issue[Size16] = %v, %v", b16, err)
	}
	b64, err := Issue[securetoken.Size64](ctx, is, 1)
	if err != nil || b64.Tokens[0].Len() != 64 {
		t.Errorf("Issue[Size64] = %v, %v", b64, err)
	}
	if b16.ID == b64.ID {
		t.Error("batch IDs should differ")
	}
}

func TestIssue_InvalidCount(t *testing.T) {
	is := NewIssuer(IssuerConfig{MaxBatch: 10}, nil, nil)

	for _, count := range []int{-1, 0, 11} {
		batch, err := Issue[securetoken.Size32](context.Background(), is, count)
		if !errors.Is(err, domain.ErrInvalidCount) {
			t.Errorf("Issue(%d) error = %v, want ErrInvalidCount", count, err)
		}
		if batch != nil {
			t.Errorf("Issue(%d) returned a batch", count)
		}
	}
}

func TestIssue_Cancelled(t *testing.T) {
	reg := metric.NewRegistry()
	is := NewIssuer(IssuerConfig{}, reg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Issue[securetoken.Size32](ctx, is, 5)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Issue() error = %v, want context.Canceled", err)
	}
	if got := testutil.ToFloat64(reg.TokensGenerated.WithLabelValues("32")); got != 0 {
		t.Errorf("tokens generated after cancel = %v, want 0", got)
	}
}

func TestIssue_CancelMidBatchClears(t *testing.T) {
	reg := metric.NewRegistry()
	is := NewIssuer(IssuerConfig{Rate: 1, Burst: 2}, reg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := Issue[securetoken.Size16](ctx, is, 5)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Issue() error = %v, want context.Canceled", err)
	}
	if got := testutil.ToFloat64(reg.TokensGenerated.WithLabelValues("16")); got != 2 {
		t.Errorf("tokens generated = %v, want 2 (the burst)", got)
	}
	if got := testutil.ToFloat64(reg.TokensCleared); got != 2 {
		t.Errorf("tokens cleared = %v, want 2", got)
	}
}

func TestIssue_RateLimited(t *testing.T) {
	is := NewIssuer(IssuerConfig{Rate: 100, Burst: 1}, nil, nil)

	start := time.Now()
	batch, err := Issue[securetoken.Size16](context.Background(), is, 5)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	defer batch.Clear()

	// One token from the burst, then four at 10ms intervals.
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("Issue() took %v, want at least ~40ms", elapsed)
	}
}

func TestBatch_Clear(t *testing.T) {
	is := NewIssuer(IssuerConfig{}, nil, nil)
	batch, err := Issue[securetoken.Size32](context.Background(), is, 3)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if n := batch.Clear(); n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}

	var zero [32]byte
	for i, tok := range batch.Tokens {
		raw, err := tok.MarshalBinary()
		if err != nil {
			t.Fatalf("MarshalBinary() error = %v", err)
		}
		if [32]byte(raw) != zero {
			t.Errorf("token %d not zeroed", i)
		}
	}
}

func BenchmarkIssue(b *testing.B) {
	is := NewIssuer(IssuerConfig{}, nil, nil)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		batch, err := Issue[securetoken.Size32](ctx, is, 16)
		if err != nil {
			b.Fatal(err)
		}
		batch.Clear()
	}
}
