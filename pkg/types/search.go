// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strconv"
	"strings"
	"time"
)

// SearchRequest is raw, unvalidated caller input for a trademark search.
type SearchRequest struct {
	Text                string
	Jurisdiction        string
	ClassificationCodes []int
	TrademarkType       string
	Status              string
}

// SearchQuery is a validated, canonical search. Build it with
// search.Normalize; a SearchQuery never carries empty text.
type SearchQuery struct {
	Text                string          `json:"text" yaml:"text"`
	Jurisdiction        string          `json:"jurisdiction,omitempty" yaml:"jurisdiction,omitempty"`
	ClassificationCodes []int           `json:"classificationCodes,omitempty" yaml:"classificationCodes,omitempty"`
	TrademarkType       TrademarkType   `json:"trademarkType,omitempty" yaml:"trademarkType,omitempty"`
	Status              TrademarkStatus `json:"status,omitempty" yaml:"status,omitempty"`
}

// HasClass reports whether code is among the query's classification codes.
func (q SearchQuery) HasClass(code int) bool {
	for _, c := range q.ClassificationCodes {
		if c == code {
			return true
		}
	}
	return false
}

// Key returns a canonical string identifying the query. Two normalized
// queries with equal keys are equal, so they produce identical results
// down to the echoed query. Text is kept as given because registries may
// treat case differently.
func (q SearchQuery) Key() string {
	codes := make([]string, len(q.ClassificationCodes))
	for i, c := range q.ClassificationCodes {
		codes[i] = strconv.Itoa(c)
	}
	return strings.Join([]string{
		q.Text,
		q.Jurisdiction,
		strings.Join(codes, ","),
		string(q.TrademarkType),
		string(q.Status),
	}, "|")
}

// SearchResult is one hit from one source, normalized to the canonical shape.
type SearchResult struct {
	// SourceID is the identifier of the record within its source.
	SourceID string `json:"sourceId" yaml:"sourceId"`

	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	TrademarkType TrademarkType   `json:"trademarkType" yaml:"trademarkType"`
	Status        TrademarkStatus `json:"status" yaml:"status"`

	Jurisdiction        string `json:"jurisdiction" yaml:"jurisdiction"`
	ClassificationCodes []int  `json:"classificationCodes" yaml:"classificationCodes"`
	GoodsAndServices    string `json:"goodsAndServices,omitempty" yaml:"goodsAndServices,omitempty"`

	ApplicationNumber  string     `json:"applicationNumber,omitempty" yaml:"applicationNumber,omitempty"`
	RegistrationNumber string     `json:"registrationNumber,omitempty" yaml:"registrationNumber,omitempty"`
	FilingDate         *time.Time `json:"filingDate,omitempty" yaml:"filingDate,omitempty"`
	RegistrationDate   *time.Time `json:"registrationDate,omitempty" yaml:"registrationDate,omitempty"`

	// Owner is the applicant or holder as reported by the source.
	Owner string `json:"owner,omitempty" yaml:"owner,omitempty"`

	// SimilarityScore is the relevance to the query, between 0.0 and 1.0.
	SimilarityScore float64 `json:"similarityScore" yaml:"similarityScore"`

	// Provenance names the source that produced the hit (e.g. "TMview").
	Provenance string `json:"provenance" yaml:"provenance"`
}

// SourceFailure records a source that was consulted but produced no usable
// answer.
type SourceFailure struct {
	Source   string `json:"source" yaml:"source"`
	Reason   string `json:"reason" yaml:"reason"`
	TimedOut bool   `json:"timedOut,omitempty" yaml:"timedOut,omitempty"`
}

// CombinedSearchResult is the merged answer of every applicable source.
type CombinedSearchResult struct {
	Results      []SearchResult  `json:"results" yaml:"results"`
	TotalCount   int             `json:"totalCount" yaml:"totalCount"`
	Query        SearchQuery     `json:"query" yaml:"query"`
	SourceCounts map[string]int  `json:"sourceCounts" yaml:"sourceCounts"`
	Failures     []SourceFailure `json:"failures,omitempty" yaml:"failures,omitempty"`

	// Skipped lists sources that were not applicable to the query. They are
	// not failures.
	Skipped []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`

	// Degraded is set when every applicable source failed, distinguishing
	// "service down" from "zero matches".
	Degraded bool `json:"degraded,omitempty" yaml:"degraded,omitempty"`
}
