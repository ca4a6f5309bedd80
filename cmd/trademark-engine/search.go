// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/trademark-engine/internal/search"
	"github.com/pdiddy/trademark-engine/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Search every applicable trademark source",
	Long: `Search queries the local record store and every enabled registry
concurrently for marks similar to the given text. Results are scored
against the query and ranked; sources that fail or time out are reported
without aborting the search.

Use --save to keep the query and its result in a YAML file and --load to
display a saved result again without querying any source.`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if loadPath, _ := cmd.Flags().GetString("load"); loadPath != "" {
		qf, err := search.ReadQueryFile(loadPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved search %q from %s\n", qf.Query.Text, qf.Summary.Timestamp.Format("2006-01-02 15:04"))
		return printResult(qf.Result, jsonOutput)
	}

	req, err := searchRequestFromFlags(cmd, args)
	if err != nil {
		return err
	}

	// Validate before opening the store so a bad query has no side effects.
	q, err := search.Normalize(req)
	if err != nil {
		return err
	}

	agg, st, err := newAggregator(cfg, log, nil)
	if err != nil {
		return err
	}
	defer st.Close()

	out, searchErr := agg.Aggregate(cmd.Context(), q)

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := search.WriteQueryFile(savePath, out); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved search to %s\n", savePath)
	}

	if err := printResult(out, jsonOutput); err != nil {
		return err
	}
	return searchErr
}

func searchRequestFromFlags(cmd *cobra.Command, args []string) (types.SearchRequest, error) {
	jurisdiction, _ := cmd.Flags().GetString("jurisdiction")
	classList, _ := cmd.Flags().GetString("classes")
	markType, _ := cmd.Flags().GetString("type")
	status, _ := cmd.Flags().GetString("status")

	classes, err := search.ParseClasses(classList)
	if err != nil {
		return types.SearchRequest{}, err
	}
	return types.SearchRequest{
		Text:                strings.Join(args, " "),
		Jurisdiction:        jurisdiction,
		ClassificationCodes: classes,
		TrademarkType:       markType,
		Status:              status,
	}, nil
}

func printResult(out types.CombinedSearchResult, jsonOutput bool) error {
	if jsonOutput {
		return search.FormatJSON(out, os.Stdout)
	}
	search.FormatTable(out, os.Stdout)
	return nil
}

func init() {
	searchCmd.Flags().String("jurisdiction", "", "office or region code (e.g. GR, EU, US)")
	searchCmd.Flags().String("classes", "", "Nice classes (comma-separated, e.g. 9,35)")
	searchCmd.Flags().String("type", "", "mark type: word, figurative, combined, three_dimensional, sound, color")
	searchCmd.Flags().String("status", "", "status filter (e.g. registered, published)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("save", "", "save the query and result to a YAML file")
	searchCmd.Flags().String("load", "", "display a saved search instead of querying")

	rootCmd.AddCommand(searchCmd)
}
