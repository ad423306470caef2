package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/securetoken-go/internal/core/domain"
	"github.com/yndnr/securetoken-go/internal/telemetry/logger"
	"github.com/yndnr/securetoken-go/internal/telemetry/metric"
	"github.com/yndnr/securetoken-go/pkg/securetoken"
	"github.com/yndnr/securetoken-go/pkg/tokenset"
)

// DefaultMaxBatch caps a batch when IssuerConfig.MaxBatch is unset.
const DefaultMaxBatch = 10000

// IssuerConfig configures an Issuer.
type IssuerConfig struct {
	// Rate is tokens per second. Zero or negative disables limiting.
	Rate float64

	// Burst is the number of tokens that may be drawn without waiting.
	Burst int

	// MaxBatch caps the count accepted by Issue.
	MaxBatch int
}

// Issuer draws batches of distinct tokens.
type Issuer struct {
	limiter  *rate.Limiter
	maxBatch int
	metrics  *metric.Registry
	log      logger.Logger
	now      func() time.Time
}

// NewIssuer creates an Issuer. metrics and log may be nil.
func NewIssuer(cfg IssuerConfig, metrics *metric.Registry, log logger.Logger) *Issuer {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Rate), max(cfg.Burst, 1))
	}
	if cfg.MaxBatch <= 0 {
		cfg.MaxBatch = DefaultMaxBatch
	}
	if log == nil {
		log = logger.Discard()
	}

	return &Issuer{
		limiter:  limiter,
		maxBatch: cfg.MaxBatch,
		metrics:  metrics,
		log:      log,
		now:      time.Now,
	}
}

// MaxBatch returns the largest count Issue accepts.
func (is *Issuer) MaxBatch() int {
	return is.maxBatch
}

// Batch is a set of distinct tokens issued together.
type Batch[S securetoken.Size] struct {
	ID       ulid.ULID
	IssuedAt time.Time
	Tokens   []securetoken.Token[S]
}

// Len returns the number of tokens in the batch.
func (b *Batch[S]) Len() int {
	return len(b.Tokens)
}

// Clear zeroes every token in the batch and returns how many were cleared.
func (b *Batch[S]) Clear() int {
	return clearTokens(b.Tokens)
}

// Issue draws count distinct tokens of size S.
//
// Each token waits on the issuer's rate limiter. If ctx ends first, the
// tokens drawn so far are zeroed and ctx's error is returned. A failing
// random source is reported as domain.ErrEntropyExhausted rather than a
// panic.
func Issue[S securetoken.Size](ctx context.Context, is *Issuer, count int) (*Batch[S], error) {
	if count < 1 || count > is.maxBatch {
		return nil, domain.ErrInvalidCount.WithDetails(fmt.Sprintf("%d (want 1..%d)", count, is.maxBatch))
	}

	var s S
	size := s.Len()
	start := is.now()

	seen := tokenset.New[S]()
	defer seen.Reset()

	tokens := make([]securetoken.Token[S], 0, count)
	fail := func(err error) (*Batch[S], error) {
		is.metrics.RecordCleared(clearTokens(tokens))
		is.log.WithContext(ctx).Warn("issue aborted",
			"size", size, "requested", count, "drawn", len(tokens), "error", err)
		return nil, err
	}

	repeats := 0
	for len(tokens) < count {
		if err := is.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = ctxErr
			}
			return fail(fmt.Errorf("issue: %w", err))
		}

		tok, err := generate[S]()
		if err != nil {
			return fail(err)
		}
		is.metrics.RecordGenerated(size, 1)

		if !seen.Add(tok) {
			tok.Clear()
			is.metrics.RecordCollision()
			is.metrics.RecordCleared(1)
			if repeats++; repeats > count {
				return fail(domain.ErrEntropyExhausted.WithDetails("random source keeps repeating"))
			}
			continue
		}
		tokens = append(tokens, tok)
	}

	issuedAt := is.now()
	batch := &Batch[S]{
		ID:       ulid.MustNew(ulid.Timestamp(issuedAt), ulid.DefaultEntropy()),
		IssuedAt: issuedAt,
		Tokens:   tokens,
	}

	is.metrics.ObserveIssueDuration(size, issuedAt.Sub(start))
	is.log.WithContext(ctx).Debug("batch issued", "batch_id", batch.ID.String(),
		"size", size, "count", count, "collisions", repeats)

	return batch, nil
}

// generate turns the entropy panic from securetoken.Generate into an error.
func generate[S securetoken.Size]() (tok securetoken.Token[S], err error) {
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(error)
			if !ok || !errors.Is(perr, securetoken.ErrEntropy) {
				panic(r)
			}
			err = domain.FromTokenError(perr)
		}
	}()
	return securetoken.Generate[S](), nil
}

func clearTokens[S securetoken.Size](tokens []securetoken.Token[S]) int {
	for i := range tokens {
		tokens[i].Clear()
	}
	return len(tokens)
}
