// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search fans a trademark query out to local and remote registries,
// normalizes every hit into one result shape, scores it against the query,
// and returns a single deterministically ordered result.
package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/trademark-engine/internal/metrics"
	"github.com/pdiddy/trademark-engine/pkg/types"
)

const (
	defaultSourceTimeout = 10 * time.Second
	defaultDeadline      = 20 * time.Second
)

// Aggregator runs searches across a fixed set of sources.
type Aggregator struct {
	sources       []Source
	sourceTimeout time.Duration
	deadline      time.Duration
	policy        types.ScoringPolicy
	logger        *zap.Logger
	metrics       *metrics.Metrics
}

// Option configures an Aggregator.
type Option func(*Aggregator) error

// WithSourceTimeout bounds each source call. Default is 10s.
func WithSourceTimeout(d time.Duration) Option {
	return func(a *Aggregator) error {
		if d > 0 {
			a.sourceTimeout = d
		}
		return nil
	}
}

// WithDeadline bounds the whole search. Default is 20s.
func WithDeadline(d time.Duration) Option {
	return func(a *Aggregator) error {
		if d > 0 {
			a.deadline = d
		}
		return nil
	}
}

// WithScoringPolicy selects how source-supplied scores are treated.
// Default is types.ScoreUniform.
func WithScoringPolicy(p types.ScoringPolicy) Option {
	return func(a *Aggregator) error {
		switch p {
		case "":
			return nil
		case types.ScoreUniform, types.ScoreFillMissing:
			a.policy = p
			return nil
		}
		return fmt.Errorf("unknown scoring policy %q", p)
	}
}

// WithLogger sets the logger. Default discards logs.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Aggregator) error {
		if logger != nil {
			a.logger = logger
		}
		return nil
	}
}

// WithMetrics records per-source telemetry into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Aggregator) error {
		a.metrics = m
		return nil
	}
}

// NewAggregator creates an aggregator over sources. Source names must be
// unique since they are used as provenance.
func NewAggregator(sources []Source, opts ...Option) (*Aggregator, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	seen := make(map[string]bool, len(sources))
	for _, s := range sources {
		if s == nil {
			return nil, fmt.Errorf("nil search source")
		}
		if seen[s.Name()] {
			return nil, fmt.Errorf("duplicate search source %q", s.Name())
		}
		seen[s.Name()] = true
	}

	a := &Aggregator{
		sources:       sources,
		sourceTimeout: defaultSourceTimeout,
		deadline:      defaultDeadline,
		policy:        types.ScoreUniform,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// SourceNames returns the configured source names in registration order.
func (a *Aggregator) SourceNames() []string {
	names := make([]string, len(a.sources))
	for i, s := range a.sources {
		names[i] = s.Name()
	}
	return names
}

// Search normalizes req and aggregates it. An invalid request fails with
// ErrInvalidQuery before any source is invoked.
func (a *Aggregator) Search(ctx context.Context, req types.SearchRequest) (types.CombinedSearchResult, error) {
	q, err := Normalize(req)
	if err != nil {
		a.metrics.ObserveSearch(metrics.SearchInvalid)
		return types.CombinedSearchResult{}, err
	}
	return a.Aggregate(ctx, q)
}

type sourceOutcome struct {
	index   int
	results []types.SearchResult
	err     error
}

// Aggregate queries every applicable source concurrently and merges the
// results. Source failures are recorded in the result, never returned as
// errors, except that ErrAllSourcesUnavailable accompanies a degraded result
// when every applicable source failed. When the overall deadline expires,
// results gathered so far are returned and outstanding sources are flagged
// as timed out.
func (a *Aggregator) Aggregate(ctx context.Context, q types.SearchQuery) (types.CombinedSearchResult, error) {
	start := time.Now()
	log := a.logger.With(zap.String("search_id", uuid.NewString()), zap.String("query", q.Text))

	out := types.CombinedSearchResult{
		Query:        q,
		Results:      []types.SearchResult{},
		SourceCounts: map[string]int{},
	}

	var applicable []Source
	for _, s := range a.sources {
		if s.Applicable(q) {
			applicable = append(applicable, s)
		} else {
			out.Skipped = append(out.Skipped, s.Name())
		}
	}
	sort.Strings(out.Skipped)

	if len(applicable) == 0 {
		log.Info("no applicable sources", zap.Strings("skipped", out.Skipped))
		a.metrics.ObserveSearch(metrics.SearchComplete)
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, a.deadline)
	defer cancel()

	// Buffered so sources finishing after the deadline never block.
	ch := make(chan sourceOutcome, len(applicable))
	for i, s := range applicable {
		log.Debug("dispatching source", zap.String("source", s.Name()))
		go func(i int, s Source) {
			results, err := a.callSource(ctx, s, q)
			ch <- sourceOutcome{index: i, results: results, err: err}
		}(i, s)
	}

	var (
		all      []types.SearchResult
		reported = make([]bool, len(applicable))
		pending  = len(applicable)
	)
	handle := func(o sourceOutcome) {
		pending--
		reported[o.index] = true
		name := applicable[o.index].Name()
		if o.err != nil {
			f := failureOf(name, o.err)
			out.Failures = append(out.Failures, f)
			log.Warn("source failed",
				zap.String("source", name),
				zap.Bool("timed_out", f.TimedOut),
				zap.Error(o.err),
			)
			return
		}
		out.SourceCounts[name] = len(o.results)
		all = append(all, o.results...)
	}

collect:
	for pending > 0 {
		select {
		case o := <-ch:
			handle(o)
		case <-ctx.Done():
			// Keep whatever already arrived, then stop waiting.
			for pending > 0 {
				select {
				case o := <-ch:
					handle(o)
				default:
					break collect
				}
			}
		}
	}

	for i, ok := range reported {
		if ok {
			continue
		}
		name := applicable[i].Name()
		out.Failures = append(out.Failures, types.SourceFailure{
			Source:   name,
			Reason:   "search deadline exceeded before source responded",
			TimedOut: true,
		})
		log.Warn("source abandoned at deadline", zap.String("source", name))
	}
	sort.Slice(out.Failures, func(i, j int) bool {
		return out.Failures[i].Source < out.Failures[j].Source
	})

	a.score(q, all)
	sortResults(all)
	if all != nil {
		out.Results = all
	}
	out.TotalCount = len(out.Results)

	outcome := metrics.SearchComplete
	if len(out.Failures) > 0 {
		outcome = metrics.SearchPartial
	}
	var err error
	if len(out.Failures) == len(applicable) {
		out.Degraded = true
		outcome = metrics.SearchDegraded
		names := make([]string, len(out.Failures))
		for i, f := range out.Failures {
			names[i] = f.Source
		}
		err = fmt.Errorf("%w: %s", ErrAllSourcesUnavailable, strings.Join(names, ", "))
	}
	a.metrics.ObserveSearch(outcome)

	log.Info("search complete",
		zap.Int("total", out.TotalCount),
		zap.Int("sources", len(applicable)),
		zap.Int("failed", len(out.Failures)),
		zap.Int("skipped", len(out.Skipped)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return out, err
}

// callSource runs one source under the per-source timeout, tags its results
// with provenance, and converts panics and errors into SourceUnavailableError.
func (a *Aggregator) callSource(ctx context.Context, s Source, q types.SearchQuery) (results []types.SearchResult, err error) {
	name := s.Name()
	sctx, cancel := context.WithTimeout(ctx, a.sourceTimeout)
	defer cancel()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			results, err = nil, &SourceUnavailableError{Source: name, Err: fmt.Errorf("panic: %v", r)}
		}
		outcome := metrics.OutcomeOK
		if err != nil {
			outcome = metrics.OutcomeError
			var sue *SourceUnavailableError
			if errors.As(err, &sue) && sue.TimedOut {
				outcome = metrics.OutcomeTimeout
			}
		}
		a.metrics.ObserveSource(name, outcome, len(results), time.Since(start))
	}()

	raw, err := s.Search(sctx, q)
	if err != nil {
		timedOut := errors.Is(err, context.DeadlineExceeded) || errors.Is(sctx.Err(), context.DeadlineExceeded)
		var sue *SourceUnavailableError
		if !errors.As(err, &sue) {
			sue = &SourceUnavailableError{Source: name, Err: err}
		} else {
			copied := *sue
			sue = &copied
		}
		sue.TimedOut = sue.TimedOut || timedOut
		return nil, sue
	}

	results = make([]types.SearchResult, len(raw))
	for i, r := range raw {
		r.Provenance = name
		results[i] = r
	}
	return results, nil
}

// score applies the scoring policy in place.
func (a *Aggregator) score(q types.SearchQuery, results []types.SearchResult) {
	for i := range results {
		r := &results[i]
		if a.policy == types.ScoreFillMissing && r.SimilarityScore > 0 {
			r.SimilarityScore = clampScore(r.SimilarityScore)
			continue
		}
		r.SimilarityScore = Score(q, *r)
	}
}

// sortResults orders by score descending, then provenance, then source ID,
// so the order never depends on which source answered first.
func sortResults(results []types.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.SimilarityScore != b.SimilarityScore {
			return a.SimilarityScore > b.SimilarityScore
		}
		if a.Provenance != b.Provenance {
			return a.Provenance < b.Provenance
		}
		return a.SourceID < b.SourceID
	})
}

func failureOf(source string, err error) types.SourceFailure {
	f := types.SourceFailure{Source: source, Reason: err.Error()}
	var sue *SourceUnavailableError
	if errors.As(err, &sue) {
		f.TimedOut = sue.TimedOut
		if sue.Err != nil {
			f.Reason = sue.Err.Error()
		}
	}
	return f
}
