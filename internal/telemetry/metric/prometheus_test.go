package metric

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func scrape(t *testing.T, r *Registry) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "securetoken.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	return string(data)
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if r.registry == nil {
		t.Error("registry field is nil")
	}
	if r.TokensGenerated == nil || r.Comparisons == nil || r.IssueDuration == nil {
		t.Error("metric vectors not initialised")
	}
}

func TestRuntimeCollectors(t *testing.T) {
	body := scrape(t, NewRegistry())

	if !strings.Contains(body, "go_goroutines") {
		t.Error("expected go_goroutines metric")
	}
	if !strings.Contains(body, "process_") {
		t.Error("expected process metrics")
	}
}

func TestGenerationMetrics(t *testing.T) {
	r := NewRegistry()

	r.RecordGenerated(32, 5)
	r.RecordGenerated(32, 1)
	r.RecordGenerated(16, 2)
	r.RecordCleared(3)
	r.RecordCollision()

	if got := testutil.ToFloat64(r.TokensGenerated.WithLabelValues("32")); got != 6 {
		t.Errorf("tokens_generated_total{size=32} = %v, want 6", got)
	}
	if got := testutil.ToFloat64(r.TokensGenerated.WithLabelValues("16")); got != 2 {
		t.Errorf("tokens_generated_total{size=16} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.TokensCleared); got != 3 {
		t.Errorf("tokens_cleared_total = %v, want 3", got)
	}
	if got := testutil.ToFloat64(r.Collisions); got != 1 {
		t.Errorf("token_collisions_total = %v, want 1", got)
	}
}

func TestComparisonMetrics(t *testing.T) {
	r := NewRegistry()

	r.RecordComparison(true)
	r.RecordComparison(true)
	r.RecordComparison(false)
	r.RecordDecodeError("length")

	body := scrape(t, r)
	for _, want := range []string{
		`securetoken_token_comparisons_total{result="match"} 2`,
		`securetoken_token_comparisons_total{result="mismatch"} 1`,
		`securetoken_token_decode_errors_total{reason="length"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %s", want)
		}
	}
}

func TestIssueDuration(t *testing.T) {
	r := NewRegistry()

	r.ObserveIssueDuration(32, 2*time.Millisecond)
	r.ObserveIssueDuration(32, 5*time.Millisecond)

	if got := testutil.CollectAndCount(r.IssueDuration); got != 1 {
		t.Errorf("issue_duration_seconds series = %d, want 1", got)
	}
	if !strings.Contains(scrape(t, r), `securetoken_issue_duration_seconds_count{size="32"} 2`) {
		t.Error("expected two observations for size 32")
	}
}

func TestNilRegistry(t *testing.T) {
	var r *Registry
	r.RecordGenerated(32, 1)
	r.RecordCleared(1)
	r.RecordCollision()
	r.RecordComparison(true)
	r.RecordDecodeError("length")
	r.ObserveIssueDuration(32, time.Millisecond)
}

func TestWriteTextfile(t *testing.T) {
	r := NewRegistry()
	r.RecordGenerated(64, 4)

	if !strings.Contains(scrape(t, r), `securetoken_tokens_generated_total{size="64"} 4`) {
		t.Error("textfile missing generated counter")
	}
	if err := r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom")); err == nil {
		t.Error("WriteTextfile() into a missing directory should fail")
	}
}
