// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/trademark-engine/internal/search"
	"github.com/pdiddy/trademark-engine/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the local trademark record store",
	Long: `Store manages the local SQLite database of trademark records that
backs the "Local" search source. Use subcommands to import records from
YAML, delete records, list them with filters, or find registrations due
for renewal.`,
}

// --- import subcommand ---

var storeImportCmd = &cobra.Command{
	Use:   "import FILE...",
	Short: "Import trademark records from YAML files",
	Long: `Import reads YAML lists of trademark records and upserts them into the
store. Records are keyed by id; importing the same file twice replaces
the earlier copies.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStoreImport,
}

func runStoreImport(cmd *cobra.Command, args []string) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	var failed int
	for _, path := range args {
		n, err := st.ImportFile(cmd.Context(), path)
		if err != nil {
			log.Error("import failed", zap.String("file", path), zap.Error(err))
			fmt.Fprintf(os.Stdout, "failed   %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(os.Stdout, "imported %s (%d records)\n", path, n)
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed to import", failed)
	}
	return nil
}

// --- delete subcommand ---

var storeDeleteCmd = &cobra.Command{
	Use:   "delete ID...",
	Short: "Delete trademark records by id",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStoreDelete,
}

func runStoreDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	var failed int
	for _, id := range args {
		if err := st.Delete(cmd.Context(), id); err != nil {
			log.Error("delete failed", zap.String("id", id), zap.Error(err))
			fmt.Fprintf(os.Stdout, "failed   %s: %v\n", id, err)
			failed++
			continue
		}
		fmt.Fprintf(os.Stdout, "deleted  %s\n", id)
	}
	if failed > 0 {
		return fmt.Errorf("%d record(s) could not be deleted", failed)
	}
	return nil
}

// --- list subcommand ---

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored records matching filters",
	RunE:  runStoreList,
}

func runStoreList(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	jurisdiction, _ := cmd.Flags().GetString("jurisdiction")
	classList, _ := cmd.Flags().GetString("classes")
	markType, _ := cmd.Flags().GetString("type")
	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	classes, err := search.ParseClasses(classList)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := st.QueryTrademarks(cmd.Context(), types.TrademarkFilter{
		NameContains: name,
		Jurisdiction: jurisdiction,
		Classes:      classes,
		Type:         types.TrademarkType(strings.ToUpper(markType)),
		Status:       types.TrademarkStatus(strings.ToUpper(status)),
		Offset:       offset,
		Limit:        limit,
	})
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return printRecords(records, jsonOutput)
}

// --- expiring subcommand ---

var storeExpiringCmd = &cobra.Command{
	Use:   "expiring",
	Short: "List registered marks expiring soon",
	RunE:  runStoreExpiring,
}

func runStoreExpiring(cmd *cobra.Command, args []string) error {
	days, _ := cmd.Flags().GetInt("days")
	if days <= 0 {
		return fmt.Errorf("--days must be positive")
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := st.ExpiringSoon(cmd.Context(), time.Duration(days)*24*time.Hour)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return printRecords(records, jsonOutput)
}

// --- stats subcommand ---

var storeStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count stored records per jurisdiction",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		counts, err := st.Count(cmd.Context())
		if err != nil {
			return err
		}
		jurisdictions := make([]string, 0, len(counts))
		total := 0
		for j, n := range counts {
			jurisdictions = append(jurisdictions, j)
			total += n
		}
		sort.Strings(jurisdictions)
		for _, j := range jurisdictions {
			fmt.Printf("%-6s %d\n", j, counts[j])
		}
		fmt.Printf("%-6s %d\n", "total", total)
		return nil
	},
}

func printRecords(records []types.TrademarkRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No records found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-14s  %-32s  %-17s  %-4s  %-16s  %s\n",
		"ID", "Name", "Status", "Jur.", "Classes", "Expires")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, r := range records {
		expires := ""
		if r.ExpirationDate != nil {
			expires = r.ExpirationDate.Format("2006-01-02")
		}
		classes := make([]string, len(r.NiceClasses))
		for i, c := range r.NiceClasses {
			classes[i] = fmt.Sprint(c)
		}
		name := r.Name
		if len(name) > 32 {
			name = name[:29] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-14s  %-32s  %-17s  %-4s  %-16s  %s\n",
			r.ID, name, r.Status, r.Jurisdiction, strings.Join(classes, ","), expires)
	}
	fmt.Fprintf(os.Stdout, "\n%d records\n", len(records))
	return nil
}

func init() {
	storeListCmd.Flags().String("name", "", "name contains (case-insensitive)")
	storeListCmd.Flags().String("jurisdiction", "", "filter by jurisdiction")
	storeListCmd.Flags().String("classes", "", "require all of these Nice classes (comma-separated)")
	storeListCmd.Flags().String("type", "", "filter by mark type")
	storeListCmd.Flags().String("status", "", "filter by status")
	storeListCmd.Flags().Int("limit", 0, "maximum records (default from store.max_results)")
	storeListCmd.Flags().Int("offset", 0, "records to skip")
	storeListCmd.Flags().Bool("json", false, "output records as JSON")

	storeExpiringCmd.Flags().Int("days", 90, "expiration window in days")
	storeExpiringCmd.Flags().Bool("json", false, "output records as JSON")

	storeCmd.AddCommand(storeImportCmd, storeDeleteCmd, storeListCmd, storeExpiringCmd, storeStatsCmd)
	rootCmd.AddCommand(storeCmd)
}
