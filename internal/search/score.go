// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"strings"

	"github.com/pdiddy/trademark-engine/pkg/types"
)

const (
	exactMatchScore     = 1.0
	substringMatchScore = 0.8
)

// Score rates how closely result's name matches the query text:
// 1.0 for a case-insensitive exact match, 0.8 when either string contains
// the other, otherwise the Jaccard similarity of their character sets.
// An empty string on either side scores 0.
func Score(q types.SearchQuery, r types.SearchResult) float64 {
	return nameSimilarity(q.Text, r.Name)
}

func nameSimilarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return exactMatchScore
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return substringMatchScore
	}
	return jaccard(runeSet(a), runeSet(b))
}

func runeSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}
	return set
}

func jaccard(a, b map[rune]struct{}) float64 {
	inter := 0
	for r := range a {
		if _, ok := b[r]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// clampScore forces s into [0, 1].
func clampScore(s float64) float64 {
	switch {
	case s != s, s < 0: // NaN or negative
		return 0
	case s > 1:
		return 1
	}
	return s
}
