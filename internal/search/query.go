// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/trademark-engine/pkg/types"
)

// Normalize validates a raw request and returns its canonical SearchQuery.
// Text is trimmed, the jurisdiction is uppercased, and classification codes
// are deduplicated and sorted. Every failure wraps ErrInvalidQuery.
func Normalize(req types.SearchRequest) (types.SearchQuery, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return types.SearchQuery{}, invalidQuery("text is empty")
	}

	q := types.SearchQuery{Text: text}

	if j := strings.TrimSpace(req.Jurisdiction); j != "" {
		j = strings.ToUpper(j)
		if !validJurisdiction(j) {
			return types.SearchQuery{}, invalidQuery("jurisdiction %q is not a 2-4 letter code", req.Jurisdiction)
		}
		q.Jurisdiction = j
	}

	if len(req.ClassificationCodes) > 0 {
		seen := make(map[int]bool, len(req.ClassificationCodes))
		for _, c := range req.ClassificationCodes {
			if c <= 0 {
				return types.SearchQuery{}, invalidQuery("classification code %d is not positive", c)
			}
			if seen[c] {
				continue
			}
			seen[c] = true
			q.ClassificationCodes = append(q.ClassificationCodes, c)
		}
		sort.Ints(q.ClassificationCodes)
	}

	if t := strings.TrimSpace(req.TrademarkType); t != "" {
		tt := types.TrademarkType(strings.ToUpper(t))
		if !tt.Valid() {
			return types.SearchQuery{}, invalidQuery("unknown trademark type %q", req.TrademarkType)
		}
		q.TrademarkType = tt
	}

	if s := strings.TrimSpace(req.Status); s != "" {
		st := types.TrademarkStatus(strings.ToUpper(s))
		if !st.Valid() {
			return types.SearchQuery{}, invalidQuery("unknown status %q", req.Status)
		}
		q.Status = st
	}

	return q, nil
}

// validJurisdiction reports whether j is 2 to 4 uppercase ASCII letters.
func validJurisdiction(j string) bool {
	if len(j) < 2 || len(j) > 4 {
		return false
	}
	for i := 0; i < len(j); i++ {
		if j[i] < 'A' || j[i] > 'Z' {
			return false
		}
	}
	return true
}

// ParseClasses parses a comma-separated list of classification codes as
// accepted on the command line and in query strings. Validation of the
// values is left to Normalize.
func ParseClasses(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, invalidQuery("classification code %q is not a number", part)
		}
		out = append(out, n)
	}
	return out, nil
}
