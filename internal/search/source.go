// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"strings"

	"github.com/pdiddy/trademark-engine/pkg/types"
)

// Source searches one trademark data source and normalizes its records.
//
// Search returns an empty slice and a nil error when nothing matches. Any
// transport, availability, or decoding failure is returned as a
// *SourceUnavailableError so the aggregator can tell "no matches" from
// "source down".
type Source interface {
	Name() string

	// Applicable reports whether the source should be consulted for q.
	Applicable(q types.SearchQuery) bool

	Search(ctx context.Context, q types.SearchQuery) ([]types.SearchResult, error)
}

// inScope reports whether a source scoped to jurisdictions serves q. Sources
// without a scope serve every query, and so does a query without a
// jurisdiction.
func inScope(jurisdictions []string, q types.SearchQuery) bool {
	if len(jurisdictions) == 0 || q.Jurisdiction == "" {
		return true
	}
	for _, j := range jurisdictions {
		if strings.EqualFold(j, q.Jurisdiction) {
			return true
		}
	}
	return false
}

// statusVocabulary maps registry status labels onto the canonical set.
var statusVocabulary = map[string]types.TrademarkStatus{
	"DRAFT":             types.StatusDraft,
	"FILED":             types.StatusSubmitted,
	"SUBMITTED":         types.StatusSubmitted,
	"PENDING":           types.StatusSubmitted,
	"APPLICATION_FILED": types.StatusSubmitted,
	"EXAMINATION":       types.StatusUnderExamination,
	"UNDER_EXAMINATION": types.StatusUnderExamination,
	"EXAMINED":          types.StatusUnderExamination,
	"PUBLISHED":         types.StatusPublished,
	"PUBLICATION":       types.StatusPublished,
	"OPPOSITION":        types.StatusPublished,
	"OPPOSITION_PERIOD": types.StatusPublished,
	"REGISTERED":        types.StatusRegistered,
	"RENEWED":           types.StatusRegistered,
	"REJECTED":          types.StatusRejected,
	"REFUSED":           types.StatusRejected,
	"ABANDONED":         types.StatusAbandoned,
	"WITHDRAWN":         types.StatusAbandoned,
	"SURRENDERED":       types.StatusAbandoned,
	"EXPIRED":           types.StatusExpired,
	"LAPSED":            types.StatusExpired,
	"CANCELLED":         types.StatusExpired,
}

// typeVocabulary maps registry mark-kind labels onto the canonical set.
var typeVocabulary = map[string]types.TrademarkType{
	"WORD":              types.TypeWord,
	"VERBAL":            types.TypeWord,
	"FIGURATIVE":        types.TypeFigurative,
	"DEVICE":            types.TypeFigurative,
	"IMAGE":             types.TypeFigurative,
	"COMBINED":          types.TypeCombined,
	"MIXED":             types.TypeCombined,
	"WORD_AND_DEVICE":   types.TypeCombined,
	"THREE_DIMENSIONAL": types.TypeThreeDimensional,
	"3D":                types.TypeThreeDimensional,
	"3_D":               types.TypeThreeDimensional,
	"SHAPE":             types.TypeThreeDimensional,
	"SOUND":             types.TypeSound,
	"COLOR":             types.TypeColor,
	"COLOUR":            types.TypeColor,
}

// canonicalStatus maps a source status label; unknown labels become
// StatusOther.
func canonicalStatus(s string) types.TrademarkStatus {
	if st, ok := statusVocabulary[vocabKey(s)]; ok {
		return st
	}
	return types.StatusOther
}

// canonicalType maps a source mark-kind label; unknown labels become
// TypeOther.
func canonicalType(s string) types.TrademarkType {
	if t, ok := typeVocabulary[vocabKey(s)]; ok {
		return t
	}
	return types.TypeOther
}

func vocabKey(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
