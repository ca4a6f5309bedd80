// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/trademark-engine/internal/fees"
	"github.com/pdiddy/trademark-engine/internal/search"
)

var feesCmd = &cobra.Command{
	Use:   "fees",
	Short: "Estimate official filing fees",
}

var feesNationalCmd = &cobra.Command{
	Use:   "national",
	Short: "Estimate national office fees (EUR)",
	RunE: func(cmd *cobra.Command, args []string) error {
		classes, err := classesFlag(cmd)
		if err != nil {
			return err
		}
		f, err := fees.National(classes)
		if err != nil {
			return err
		}
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return printJSON(f)
		}
		fmt.Printf("%-24s %14s\n", "Base fee", f.BaseFee)
		fmt.Printf("%-24s %14s\n", fmt.Sprintf("Class fees (%d x %s)", len(f.Classes), f.ClassFee), f.TotalClassFees)
		fmt.Println(strings.Repeat("-", 39))
		fmt.Printf("%-24s %14s\n", "Total", f.Total)
		return nil
	},
}

var feesMadridCmd = &cobra.Command{
	Use:   "madrid",
	Short: "Estimate Madrid System international fees (CHF)",
	RunE: func(cmd *cobra.Command, args []string) error {
		classes, err := classesFlag(cmd)
		if err != nil {
			return err
		}
		countries, _ := cmd.Flags().GetStringSlice("countries")
		f, err := fees.Madrid(classes, countries)
		if err != nil {
			return err
		}
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return printJSON(f)
		}

		fmt.Printf("%-32s %14s\n", "Basic fee", f.BaseFee)
		designations := make([]string, 0, len(f.IndividualFees))
		for c := range f.IndividualFees {
			designations = append(designations, c)
		}
		sort.Strings(designations)
		for _, c := range designations {
			fmt.Printf("%-32s %14s\n", "Individual fee "+c, f.IndividualFees[c])
		}
		if len(f.ComplementaryCountries) > 0 {
			fmt.Printf("%-32s %14s\n", "Complementary ("+strings.Join(f.ComplementaryCountries, ",")+")", f.TotalComplementaryFees)
		}
		if f.SupplementaryClassCount > 0 {
			fmt.Printf("%-32s %14s\n", fmt.Sprintf("Supplementary (%d classes)", f.SupplementaryClassCount), f.TotalSupplementaryFees)
		}
		fmt.Println(strings.Repeat("-", 47))
		fmt.Printf("%-32s %14s\n", "Total", f.Total)
		return nil
	},
}

func classesFlag(cmd *cobra.Command) ([]int, error) {
	s, _ := cmd.Flags().GetString("classes")
	return search.ParseClasses(s)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	for _, c := range []*cobra.Command{feesNationalCmd, feesMadridCmd} {
		c.Flags().String("classes", "", "Nice classes (comma-separated, e.g. 9,35)")
		c.Flags().Bool("json", false, "output the fee breakdown as JSON")
	}
	feesMadridCmd.Flags().StringSlice("countries", nil, "designated countries (comma-separated, e.g. US,JP,EU)")

	feesCmd.AddCommand(feesNationalCmd, feesMadridCmd)
	rootCmd.AddCommand(feesCmd)
}
