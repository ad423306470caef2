package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/yndnr/securetoken-go/internal/core/domain"
	"github.com/yndnr/securetoken-go/internal/telemetry/logger"
	"github.com/yndnr/securetoken-go/internal/telemetry/metric"
	"github.com/yndnr/securetoken-go/pkg/securetoken"
)

// Matcher compares encoded tokens. Every decoded token is cleared before
// the call that decoded it returns.
type Matcher struct {
	encoding domain.Encoding
	metrics  *metric.Registry
	log      logger.Logger
}

// MatcherConfig configures a Matcher.
type MatcherConfig struct {
	// Encoding of every input token. Empty means detect per token.
	Encoding domain.Encoding
}

// NewMatcher creates a Matcher. metrics and log may be nil.
func NewMatcher(cfg MatcherConfig, metrics *metric.Registry, log logger.Logger) *Matcher {
	if log == nil {
		log = logger.Discard()
	}
	return &Matcher{encoding: cfg.Encoding, metrics: metrics, log: log}
}

// Comparison is the outcome of comparing two encoded tokens.
type Comparison struct {
	Equal bool `json:"equal" yaml:"equal"`
	// Order is -1, 0 or 1 by length then bytes.
	Order int `json:"order" yaml:"order"`
}

// Match reports whether presented and stored encode the same token. The
// byte comparison is constant time; tokens of different sizes never match.
func (m *Matcher) Match(ctx context.Context, presented, stored string) (bool, error) {
	c, err := m.Compare(ctx, presented, stored)
	if err != nil {
		return false, err
	}
	return c.Equal, nil
}

// Compare returns both the constant-time equality and the ordering of two
// encoded tokens.
func (m *Matcher) Compare(ctx context.Context, a, b string) (Comparison, error) {
	x, err := m.decode(a, "first")
	if err != nil {
		return Comparison{}, err
	}
	defer m.clear(x)

	y, err := m.decode(b, "second")
	if err != nil {
		return Comparison{}, err
	}
	defer m.clear(y)

	c := Comparison{
		Equal: securetoken.Equal(x, y),
		Order: securetoken.Compare(x, y),
	}
	m.metrics.RecordComparison(c.Equal)
	m.log.WithContext(ctx).Debug("tokens compared", "equal", c.Equal, "sizes", []int{x.Len(), y.Len()})

	return c, nil
}

// MatchDigest reports whether presented hashes to digest. It lets a caller
// keep only the digest of an issued token.
func (m *Matcher) MatchDigest(ctx context.Context, presented, digest string) (bool, error) {
	v, err := m.decode(presented, "presented")
	if err != nil {
		return false, err
	}
	defer m.clear(v)

	ok := v.VerifyDigest(strings.ToLower(strings.TrimSpace(digest)))
	m.metrics.RecordComparison(ok)
	m.log.WithContext(ctx).Debug("digest checked", "equal", ok)
	return ok, nil
}

// Order sorts encoded tokens by length, then bytes, and returns them
// trimmed. With unique set, later duplicates are dropped. Ordering is not
// constant time.
func (m *Matcher) Order(texts []string, unique bool) ([]string, error) {
	type entry struct {
		text string
		view securetoken.View
	}

	entries := make([]entry, 0, len(texts))
	defer func() {
		for _, e := range entries {
			m.clear(e.view)
		}
	}()

	for i, text := range texts {
		v, err := m.decode(text, fmt.Sprintf("#%d", i+1))
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{text: strings.TrimSpace(text), view: v})
	}

	slices.SortStableFunc(entries, func(a, b entry) int {
		return securetoken.Compare(a.view, b.view)
	})

	out := make([]string, 0, len(entries))
	for i, e := range entries {
		if unique && i > 0 && securetoken.Equal(entries[i-1].view, e.view) {
			continue
		}
		out = append(out, e.text)
	}
	return out, nil
}

// Inspection describes an encoded token without revealing it.
type Inspection struct {
	Size     int    `json:"size" yaml:"size"`
	Encoding string `json:"encoding" yaml:"encoding"`
	Masked   string `json:"masked" yaml:"masked"`
	Digest   string `json:"digest" yaml:"digest"`
}

// Inspect decodes text and reports its size and digest.
func (m *Matcher) Inspect(text string) (*Inspection, error) {
	v, err := m.decode(text, "token")
	if err != nil {
		return nil, err
	}
	defer m.clear(v)

	text = strings.TrimSpace(text)
	return &Inspection{
		Size:     v.Len(),
		Encoding: string(m.encodingOf(text)),
		Masked:   domain.MaskToken(text),
		Digest:   v.Digest(),
	}, nil
}

func (m *Matcher) decode(text, which string) (securetoken.View, error) {
	v, err := domain.DecodeView(text, m.encoding)
	if err != nil {
		m.metrics.RecordDecodeError(decodeReason(err))
		return nil, fmt.Errorf("%s token: %w", which, err)
	}
	return v, nil
}

func (m *Matcher) encodingOf(text string) domain.Encoding {
	if m.encoding != "" {
		return m.encoding
	}
	return domain.DetectEncoding(text)
}

func (m *Matcher) clear(v securetoken.View) {
	v.Clear()
	m.metrics.RecordCleared(1)
}

func decodeReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenLength):
		return "length"
	case errors.Is(err, domain.ErrTokenMalformed):
		return "malformed"
	default:
		return "other"
	}
}
