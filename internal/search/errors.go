// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuery is returned when the caller's request cannot be
	// normalized. It is never retried.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrSourceUnavailable matches every *SourceUnavailableError.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrAllSourcesUnavailable is returned alongside a degraded result when
	// every applicable source failed.
	ErrAllSourcesUnavailable = errors.New("all sources unavailable")

	// ErrNoSources is returned when an aggregator is built without sources.
	ErrNoSources = errors.New("no search sources configured")

	// ErrStoreRequired is returned when a local source is built without a store.
	ErrStoreRequired = errors.New("local store required")
)

// SourceUnavailableError reports a transport, availability, or decoding
// failure of one source. The condition is retryable.
type SourceUnavailableError struct {
	Source   string
	Err      error
	TimedOut bool
}

func (e *SourceUnavailableError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("source %s timed out: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("source %s unavailable: %v", e.Source, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrSourceUnavailable) hold for every instance.
func (e *SourceUnavailableError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// unavailable wraps err for source unless it already is a
// SourceUnavailableError.
func unavailable(source string, err error) error {
	var sue *SourceUnavailableError
	if errors.As(err, &sue) {
		return err
	}
	return &SourceUnavailableError{Source: source, Err: err}
}

func invalidQuery(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}
