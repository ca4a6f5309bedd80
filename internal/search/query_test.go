// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/trademark-engine/pkg/types"
)

// --- Normalize ---

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		req  types.SearchRequest
		want types.SearchQuery
	}{
		{
			name: "text only",
			req:  types.SearchRequest{Text: "ACME"},
			want: types.SearchQuery{Text: "ACME"},
		},
		{
			name: "trims text",
			req:  types.SearchRequest{Text: "  ACME  "},
			want: types.SearchQuery{Text: "ACME"},
		},
		{
			name: "uppercases jurisdiction",
			req:  types.SearchRequest{Text: "ACME", Jurisdiction: " gr "},
			want: types.SearchQuery{Text: "ACME", Jurisdiction: "GR"},
		},
		{
			name: "dedups and sorts classes",
			req:  types.SearchRequest{Text: "ACME", ClassificationCodes: []int{35, 9, 35, 25}},
			want: types.SearchQuery{Text: "ACME", ClassificationCodes: []int{9, 25, 35}},
		},
		{
			name: "canonical type and status",
			req:  types.SearchRequest{Text: "ACME", TrademarkType: "word", Status: "registered"},
			want: types.SearchQuery{Text: "ACME", TrademarkType: types.TypeWord, Status: types.StatusRegistered},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeInvalid(t *testing.T) {
	tests := []struct {
		name string
		req  types.SearchRequest
	}{
		{"empty text", types.SearchRequest{}},
		{"whitespace text", types.SearchRequest{Text: " \t\n"}},
		{"jurisdiction too short", types.SearchRequest{Text: "ACME", Jurisdiction: "G"}},
		{"jurisdiction with digits", types.SearchRequest{Text: "ACME", Jurisdiction: "G1"}},
		{"zero class", types.SearchRequest{Text: "ACME", ClassificationCodes: []int{9, 0}}},
		{"negative class", types.SearchRequest{Text: "ACME", ClassificationCodes: []int{-3}}},
		{"unknown type", types.SearchRequest{Text: "ACME", TrademarkType: "hologram"}},
		{"unknown status", types.SearchRequest{Text: "ACME", Status: "pending-ish"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidQuery)
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	q, err := Normalize(types.SearchRequest{Text: " acme ", Jurisdiction: "eu", ClassificationCodes: []int{35, 9}})
	require.NoError(t, err)

	again, err := Normalize(types.SearchRequest{
		Text:                q.Text,
		Jurisdiction:        q.Jurisdiction,
		ClassificationCodes: q.ClassificationCodes,
	})
	require.NoError(t, err)
	assert.Equal(t, q, again)
	assert.Equal(t, q.Key(), again.Key())
}

func TestQueryKey(t *testing.T) {
	norm := func(req types.SearchRequest) types.SearchQuery {
		t.Helper()
		q, err := Normalize(req)
		require.NoError(t, err)
		return q
	}

	a := norm(types.SearchRequest{Text: "ACME", ClassificationCodes: []int{9, 35}})
	b := norm(types.SearchRequest{Text: " ACME ", ClassificationCodes: []int{35, 9, 9}})
	assert.Equal(t, a.Key(), b.Key())

	lower := norm(types.SearchRequest{Text: "acme", ClassificationCodes: []int{9, 35}})
	assert.NotEqual(t, a.Key(), lower.Key(), "text casing is part of the key")

	scoped := norm(types.SearchRequest{Text: "ACME", Jurisdiction: "eu", ClassificationCodes: []int{9, 35}})
	assert.NotEqual(t, a.Key(), scoped.Key())
}

// --- ParseClasses ---

func TestParseClasses(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []int
		wantErr bool
	}{
		{"empty", "", nil, false},
		{"single", "9", []int{9}, false},
		{"list with spaces", "9, 35 ,42", []int{9, 35, 42}, false},
		{"trailing comma", "9,", []int{9}, false},
		{"not a number", "9,abc", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClasses(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidQuery)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// --- vocabulary ---

func TestCanonicalStatus(t *testing.T) {
	tests := []struct {
		in   string
		want types.TrademarkStatus
	}{
		{"Registered", types.StatusRegistered},
		{"application filed", types.StatusSubmitted},
		{"Opposition period", types.StatusPublished},
		{"refused", types.StatusRejected},
		{"lapsed", types.StatusExpired},
		{"something new", types.StatusOther},
		{"", types.StatusOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, canonicalStatus(tt.in), "canonicalStatus(%q)", tt.in)
	}
}

func TestCanonicalType(t *testing.T) {
	tests := []struct {
		in   string
		want types.TrademarkType
	}{
		{"word", types.TypeWord},
		{"Word and device", types.TypeCombined},
		{"3-D", types.TypeThreeDimensional},
		{"colour", types.TypeColor},
		{"hologram", types.TypeOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, canonicalType(tt.in), "canonicalType(%q)", tt.in)
	}
}
