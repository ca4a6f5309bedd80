// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/trademark-engine/pkg/types"
)

// QueryFile is the on-disk representation of a search and its combined
// result, so a clearance search can be reviewed later without querying the
// registries again.
type QueryFile struct {
	Query   types.SearchQuery          `yaml:"query"`
	Result  types.CombinedSearchResult `yaml:"result"`
	Summary QuerySummary               `yaml:"summary"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total     int       `yaml:"total"`
	Failed    []string  `yaml:"failed,omitempty"`
	Degraded  bool      `yaml:"degraded,omitempty"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves a combined result to a YAML file.
func WriteQueryFile(path string, out types.CombinedSearchResult) error {
	qf := QueryFile{
		Query:  out.Query,
		Result: out,
		Summary: QuerySummary{
			Total:     out.TotalCount,
			Degraded:  out.Degraded,
			Timestamp: time.Now().UTC(),
		},
	}
	for _, f := range out.Failures {
		qf.Summary.Failed = append(qf.Summary.Failed, f.Source)
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	if qf.Query.Text == "" {
		return nil, fmt.Errorf("query file %s has no query text", path)
	}
	return &qf, nil
}
