// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"math"
	"testing"

	"github.com/pdiddy/trademark-engine/pkg/types"
)

// --- Score ---

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		query string
		mark  string
		want  float64
	}{
		{"exact match", "ACME", "ACME", 1.0},
		{"exact match ignores case", "acme", "AcMe", 1.0},
		{"name contains query", "ACME", "ACME PLUS", 0.8},
		{"query contains name", "ACME PLUS", "ACME", 0.8},
		// {a,c,m,e} vs {z,e,b,r,a}: 2 shared of 7 distinct.
		{"character overlap", "ACME", "ZEBRA", 2.0 / 7.0},
		{"no overlap", "ACME", "XYZ", 0},
		{"empty name", "ACME", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(types.SearchQuery{Text: tt.query}, types.SearchResult{Name: tt.mark})
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score(%q, %q) = %v, want %v", tt.query, tt.mark, got, tt.want)
			}
		})
	}
}

func TestScoreBounds(t *testing.T) {
	names := []string{"", "a", "ACME", "acme corp", "Ω-mega", "12345", "the quick brown fox"}
	for _, q := range names[1:] {
		for _, n := range names {
			got := Score(types.SearchQuery{Text: q}, types.SearchResult{Name: n})
			if got < 0 || got > 1 {
				t.Errorf("Score(%q, %q) = %v, outside [0, 1]", q, n, got)
			}
		}
	}
}

func TestScoreSymmetric(t *testing.T) {
	pairs := [][2]string{{"ACME", "ZEBRA"}, {"Nike", "Nikon"}, {"apple", "APPLE PIE"}}
	for _, p := range pairs {
		ab := nameSimilarity(p[0], p[1])
		ba := nameSimilarity(p[1], p[0])
		if ab != ba {
			t.Errorf("nameSimilarity(%q, %q) = %v but reversed = %v", p[0], p[1], ab, ba)
		}
	}
}

// --- clampScore ---

func TestClampScore(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.5, 0.5},
		{-0.1, 0},
		{1.7, 1},
		{math.NaN(), 0},
		{0, 0},
		{1, 1},
	}
	for _, tt := range tests {
		if got := clampScore(tt.in); got != tt.want {
			t.Errorf("clampScore(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
