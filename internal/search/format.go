// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pdiddy/trademark-engine/pkg/types"
)

// FormatTable writes a combined result as a human-readable table to w.
func FormatTable(out types.CombinedSearchResult, w io.Writer) {
	if len(out.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
	} else {
		fmt.Fprintf(w, "%-4s  %-36s  %-17s  %-4s  %-24s  %-6s  %s\n",
			"Rank", "Name", "Status", "Jur.", "Classes", "Score", "Source")
		fmt.Fprintln(w, strings.Repeat("-", 112))

		for i, r := range out.Results {
			fmt.Fprintf(w, "%-4d  %-36s  %-17s  %-4s  %-24s  %-6.2f  %s\n",
				i+1, truncate(r.Name, 36), r.Status, r.Jurisdiction,
				truncate(joinInts(r.ClassificationCodes), 24), r.SimilarityScore, r.Provenance)
		}
		fmt.Fprintf(w, "\n%d results", out.TotalCount)
		if counts := formatCounts(out.SourceCounts); counts != "" {
			fmt.Fprintf(w, " (%s)", counts)
		}
		fmt.Fprintln(w)
	}

	for _, f := range out.Failures {
		label := "unavailable"
		if f.TimedOut {
			label = "timed out"
		}
		fmt.Fprintf(w, "warning: source %s %s: %s\n", f.Source, label, f.Reason)
	}
	if out.Degraded {
		fmt.Fprintln(w, "warning: every applicable source failed; results are incomplete")
	}
}

// FormatJSON writes the combined result as indented JSON to w.
func FormatJSON(out types.CombinedSearchResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// formatCounts renders per-source counts in name order.
func formatCounts(counts map[string]int) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %d", name, counts[name])
	}
	return strings.Join(parts, ", ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
