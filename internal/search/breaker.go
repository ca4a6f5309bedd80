// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/pdiddy/trademark-engine/pkg/types"
)

const (
	defaultBreakerFailures = 5
	defaultBreakerTimeout  = 30 * time.Second
)

// breakerSource guards a remote source with a circuit breaker so a registry
// that keeps failing is skipped quickly instead of consuming its full
// timeout on every search.
type breakerSource struct {
	Source
	cb *gobreaker.CircuitBreaker
}

// WithCircuitBreaker wraps src. While the breaker is open, Search fails
// immediately with a SourceUnavailableError. A nil logger discards state
// change logs.
func WithCircuitBreaker(src Source, cfg types.BreakerConfig, logger *zap.Logger) Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	threshold := cfg.ConsecutiveFailures
	if threshold == 0 {
		threshold = defaultBreakerFailures
	}
	timeout := cfg.OpenTimeout
	if timeout <= 0 {
		timeout = defaultBreakerTimeout
	}

	settings := gobreaker.Settings{
		Name:        src.Name(),
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// A caller that gave up is not evidence against the source.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("source", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	}
	return &breakerSource{Source: src, cb: gobreaker.NewCircuitBreaker(settings)}
}

// Search runs the wrapped source through the breaker.
func (b *breakerSource) Search(ctx context.Context, q types.SearchQuery) ([]types.SearchResult, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		results, err := b.Source.Search(ctx, q)
		if err != nil {
			return nil, err
		}
		return results, nil
	})
	if err != nil {
		return nil, unavailable(b.Name(), err)
	}
	results, _ := out.([]types.SearchResult)
	return results, nil
}
