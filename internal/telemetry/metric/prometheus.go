package metric

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "securetoken"

// Registry holds all token operation metrics.
//
// All Record methods are safe on a nil *Registry, which lets callers run
// without metrics.
type Registry struct {
	registry *prometheus.Registry

	TokensGenerated *prometheus.CounterVec
	TokensCleared   prometheus.Counter
	Collisions      prometheus.Counter
	Comparisons     *prometheus.CounterVec
	DecodeErrors    *prometheus.CounterVec
	IssueDuration   *prometheus.HistogramVec
}

// NewRegistry creates a registry with token metrics plus the Go runtime and
// process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		TokensGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_generated_total",
			Help:      "Tokens drawn from the secure random source, by size in bytes.",
		}, []string{"size"}),
		TokensCleared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_cleared_total",
			Help:      "Tokens whose backing bytes were zeroed.",
		}),
		Collisions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_collisions_total",
			Help:      "Generated tokens discarded because an equal token was already issued in the batch.",
		}),
		Comparisons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_comparisons_total",
			Help:      "Constant-time token comparisons, by result.",
		}, []string{"result"}),
		DecodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_decode_errors_total",
			Help:      "Token decode failures, by reason.",
		}, []string{"reason"}),
		IssueDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "issue_duration_seconds",
			Help:      "Time to issue a batch of tokens, including rate limiting.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"size"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.TokensGenerated,
		r.TokensCleared,
		r.Collisions,
		r.Comparisons,
		r.DecodeErrors,
		r.IssueDuration,
	)

	return r
}

// RecordGenerated adds n generated tokens of the given byte size.
func (r *Registry) RecordGenerated(size, n int) {
	if r == nil {
		return
	}
	r.TokensGenerated.WithLabelValues(strconv.Itoa(size)).Add(float64(n))
}

// RecordCleared adds n zeroed tokens.
func (r *Registry) RecordCleared(n int) {
	if r == nil {
		return
	}
	r.TokensCleared.Add(float64(n))
}

// RecordCollision counts a discarded duplicate token.
func (r *Registry) RecordCollision() {
	if r == nil {
		return
	}
	r.Collisions.Inc()
}

// RecordComparison counts one constant-time comparison.
func (r *Registry) RecordComparison(match bool) {
	if r == nil {
		return
	}
	result := "mismatch"
	if match {
		result = "match"
	}
	r.Comparisons.WithLabelValues(result).Inc()
}

// RecordDecodeError counts a decode failure.
func (r *Registry) RecordDecodeError(reason string) {
	if r == nil {
		return
	}
	r.DecodeErrors.WithLabelValues(reason).Inc()
}

// ObserveIssueDuration records how long issuing a batch took.
func (r *Registry) ObserveIssueDuration(size int, d time.Duration) {
	if r == nil {
		return
	}
	r.IssueDuration.WithLabelValues(strconv.Itoa(size)).Observe(d.Seconds())
}

// WriteTextfile writes the current metrics to path in the text exposition
// format, for node_exporter's textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
