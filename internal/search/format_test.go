// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/trademark-engine/pkg/types"
)

func sampleCombined() types.CombinedSearchResult {
	r1 := hit("018123456", "ACME")
	r1.Jurisdiction = "EU"
	r1.ClassificationCodes = []int{9, 35}
	r1.SimilarityScore = 1
	r1.Provenance = EUIPOName

	r2 := hit("tm-2", "ACME TOOLS AND HARDWARE FOR EVERY KIND OF WORKSHOP")
	r2.Jurisdiction = "GR"
	r2.SimilarityScore = 0.8
	r2.Provenance = LocalName

	return types.CombinedSearchResult{
		Results:      []types.SearchResult{r1, r2},
		TotalCount:   2,
		Query:        types.SearchQuery{Text: "ACME", ClassificationCodes: []int{9}},
		SourceCounts: map[string]int{EUIPOName: 1, LocalName: 1},
		Failures:     []types.SourceFailure{{Source: WIPOName, Reason: "context deadline exceeded", TimedOut: true}},
		Skipped:      []string{NationalName},
	}
}

// --- FormatTable ---

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(sampleCombined(), &buf)
	out := buf.String()

	assert.Contains(t, out, "Rank")
	assert.Contains(t, out, "ACME")
	assert.Contains(t, out, "9,35")
	assert.Contains(t, out, "1.00")
	assert.Contains(t, out, "...", "long names are truncated")
	assert.Contains(t, out, "2 results (EUIPO: 1, Local: 1)")
	assert.Contains(t, out, "warning: source WIPO timed out: context deadline exceeded")
	assert.NotContains(t, out, "every applicable source failed")
}

func TestFormatTableEmptyAndDegraded(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(types.CombinedSearchResult{
		Failures: []types.SourceFailure{{Source: "TMview", Reason: "HTTP 503"}},
		Degraded: true,
	}, &buf)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "No results found."))
	assert.Contains(t, out, "warning: source TMview unavailable: HTTP 503")
	assert.Contains(t, out, "every applicable source failed")
}

// --- FormatJSON ---

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(sampleCombined(), &buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.EqualValues(t, 2, decoded["totalCount"])
	assert.Contains(t, decoded, "sourceCounts")

	results, ok := decoded["results"].([]any)
	require.True(t, ok)
	first := results[0].(map[string]any)
	assert.Equal(t, "EUIPO", first["provenance"])
	assert.Equal(t, "018123456", first["sourceId"])
}

// --- query files ---

func TestQueryFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acme.yaml")
	in := sampleCombined()
	require.NoError(t, WriteQueryFile(path, in))

	qf, err := ReadQueryFile(path)
	require.NoError(t, err)
	assert.Equal(t, in.Query, qf.Query)
	assert.Equal(t, 2, qf.Summary.Total)
	assert.Equal(t, []string{WIPOName}, qf.Summary.Failed)
	assert.False(t, qf.Summary.Timestamp.IsZero())
	require.Len(t, qf.Result.Results, 2)
	assert.Equal(t, in.Results[0].SourceID, qf.Result.Results[0].SourceID)
	assert.Equal(t, in.SourceCounts, qf.Result.SourceCounts)
}

func TestReadQueryFileErrors(t *testing.T) {
	_, err := ReadQueryFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading query file")

	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, WriteQueryFile(path, types.CombinedSearchResult{}))
	_, err = ReadQueryFile(path)
	assert.ErrorContains(t, err, "no query text")
}
