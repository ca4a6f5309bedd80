// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/trademark-engine/internal/httputil"
	"github.com/pdiddy/trademark-engine/pkg/types"
)

const (
	defaultRegistryResults = 50
	maxRegistryResults     = 500
	defaultUserAgent       = "trademark-engine/0.1"
)

// RegistryOptions configures a remote registry source. Each source gets its
// own copy; nothing is shared through package state.
type RegistryOptions struct {
	Client    *http.Client
	BaseURL   string
	APIKey    string
	UserAgent string

	// MaxRetries bounds retries on HTTP 429/503.
	MaxRetries int

	// MaxResults caps the hits requested per search (default 50, max 500).
	MaxResults int

	// Jurisdictions scopes a regional or national registry.
	Jurisdictions []string
}

// RegistryOptionsFrom builds options for one registry from the loaded
// configuration.
func RegistryOptionsFrom(client *http.Client, search types.SearchConfig, reg types.RegistryConfig) RegistryOptions {
	return RegistryOptions{
		Client:        client,
		BaseURL:       reg.BaseURL,
		APIKey:        reg.APIKey,
		UserAgent:     search.UserAgent,
		MaxRetries:    search.MaxRetries,
		MaxResults:    search.MaxResults,
		Jurisdictions: reg.Jurisdictions,
	}
}

func (o RegistryOptions) limit() int {
	switch {
	case o.MaxResults <= 0:
		return defaultRegistryResults
	case o.MaxResults > maxRegistryResults:
		return maxRegistryResults
	}
	return o.MaxResults
}

// baseParams returns the query parameters every registry understands.
func (o RegistryOptions) baseParams(q types.SearchQuery) url.Values {
	params := url.Values{
		"q":     {q.Text},
		"limit": {strconv.Itoa(o.limit())},
	}
	if len(q.ClassificationCodes) > 0 {
		params.Set("classes", joinInts(q.ClassificationCodes))
	}
	return params
}

// fetch performs GET {BaseURL}/search with params and decodes the JSON body
// into out. Errors are returned unwrapped; callers attribute them to their
// source.
func (o RegistryOptions) fetch(ctx context.Context, name string, params url.Values, out any) error {
	if o.BaseURL == "" {
		return fmt.Errorf("%s base URL not configured", name)
	}
	client := o.Client
	if client == nil {
		client = http.DefaultClient
	}
	userAgent := o.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	reqURL := strings.TrimRight(o.BaseURL, "/") + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if o.APIKey != "" {
		req.Header.Set("X-Api-Key", o.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, o.MaxRetries)
	if err != nil {
		return fmt.Errorf("%s API request: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			return fmt.Errorf("%s rate limit exceeded, retry after %s seconds", name, retryAfter)
		}
		return fmt.Errorf("%s rate limit exceeded (HTTP 429)", name)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s API returned HTTP %d", name, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing %s response: %w", name, err)
	}
	return nil
}

// parseDate accepts the date layouts registries send. Unparseable or empty
// values yield nil.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "20060102"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// passesFilters applies the query's type and status filters, which the
// registry APIs do not take as parameters.
func passesFilters(q types.SearchQuery, r types.SearchResult) bool {
	if q.TrademarkType != "" && r.TrademarkType != q.TrademarkType {
		return false
	}
	if q.Status != "" && r.Status != q.Status {
		return false
	}
	return true
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}
