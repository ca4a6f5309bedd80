// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/trademark-engine/internal/metrics"
	"github.com/pdiddy/trademark-engine/internal/search"
	"github.com/pdiddy/trademark-engine/internal/store"
	"github.com/pdiddy/trademark-engine/pkg/types"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("search.timeout", 15*time.Second)
	v.SetDefault("search.user_agent", "trademark-engine/"+version)
	v.SetDefault("search.max_retries", 3)
	v.SetDefault("search.source_timeout", 10*time.Second)
	v.SetDefault("search.deadline", 20*time.Second)
	v.SetDefault("search.max_results", 50)
	v.SetDefault("search.scoring", string(types.ScoreUniform))
	v.SetDefault("search.breaker.enabled", true)
	v.SetDefault("search.breaker.consecutive_failures", 5)
	v.SetDefault("search.breaker.open_timeout", 30*time.Second)

	for _, name := range []string{"tmview", "euipo", "wipo", "national"} {
		v.SetDefault("sources."+name+".enabled", false)
		v.SetDefault("sources."+name+".base_url", "")
		v.SetDefault("sources."+name+".api_key", "")
	}
	v.SetDefault("sources.euipo.jurisdictions", []string{"EU"})
	v.SetDefault("sources.national.jurisdictions", []string{"GR"})

	v.SetDefault("store.path", "data/trademarks.db")
	v.SetDefault("store.max_results", 100)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.environment", "production")

	v.SetDefault("server.addr", ":8080")
}

func loadConfig() (types.Config, error) {
	var c types.Config
	if err := viper.Unmarshal(&c); err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	return c, nil
}

// openStore opens the local record store configured in c.
func openStore(c types.Config) (*store.Store, error) {
	st, err := store.NewStore(c.Store)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", c.Store.Path, err)
	}
	return st, nil
}

// buildSources returns the local source plus every enabled registry. Remote
// registries are wrapped in a circuit breaker when configured.
func buildSources(c types.Config, local search.LocalStore, logger *zap.Logger) ([]search.Source, error) {
	localSrc, err := search.NewLocalSource(local, c.Store.MaxResults)
	if err != nil {
		return nil, err
	}
	sources := []search.Source{localSrc}

	client := &http.Client{Timeout: c.Search.Timeout}
	registries := []struct {
		reg   types.RegistryConfig
		build func(search.RegistryOptions) search.Source
	}{
		{c.Sources.TMview, func(o search.RegistryOptions) search.Source { return search.NewTMviewSource(o) }},
		{c.Sources.EUIPO, func(o search.RegistryOptions) search.Source { return search.NewEUIPOSource(o) }},
		{c.Sources.WIPO, func(o search.RegistryOptions) search.Source { return search.NewWIPOSource(o) }},
		{c.Sources.National, func(o search.RegistryOptions) search.Source { return search.NewNationalOfficeSource(o) }},
	}
	for _, r := range registries {
		if !r.reg.Enabled {
			continue
		}
		src := r.build(search.RegistryOptionsFrom(client, c.Search, r.reg))
		if c.Search.Breaker.Enabled {
			src = search.WithCircuitBreaker(src, c.Search.Breaker, logger)
		}
		sources = append(sources, src)
		logger.Debug("registry enabled", zap.String("source", src.Name()), zap.String("base_url", r.reg.BaseURL))
	}
	return sources, nil
}

// newAggregator opens the store and builds an aggregator over every
// configured source. The caller closes the returned store.
func newAggregator(c types.Config, logger *zap.Logger, m *metrics.Metrics) (*search.Aggregator, *store.Store, error) {
	st, err := openStore(c)
	if err != nil {
		return nil, nil, err
	}
	sources, err := buildSources(c, st, logger)
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	agg, err := search.NewAggregator(sources,
		search.WithSourceTimeout(c.Search.SourceTimeout),
		search.WithDeadline(c.Search.Deadline),
		search.WithScoringPolicy(c.Search.Scoring),
		search.WithLogger(logger),
		search.WithMetrics(m),
	)
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return agg, st, nil
}
