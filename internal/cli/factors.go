package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/engine"
	"github.com/rshade/footprint/internal/factors"
)

// factorEntry is one row of the factors listing.
type factorEntry struct {
	Category   factors.Category `json:"category"`
	Activity   string           `json:"activity"`
	Factor     float64          `json:"factor"`
	Suggestion string           `json:"suggestion"`
}

// NewFactorsCmd creates the factors command, which prints the emission
// factors and suggestions the analyzer uses.
func NewFactorsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "factors",
		Short: "List emission factors",
		Long:  "List the emission factor (kg CO2e per unit) of every known activity, grouped by category.",
		Example: `  # Show the factor table
  footprint factors

  # Export the factors as JSON
  footprint factors --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFactors(cmd, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", engine.OutputTable, "output format: table, json")

	return cmd
}

// runFactors renders the default factor table in the requested format.
func runFactors(cmd *cobra.Command, output string) error {
	table := factors.Default()
	suggestions := factors.DefaultSuggestions()

	var entries []factorEntry
	for _, cat := range table.Categories() {
		for _, name := range table.Activities(cat) {
			factor, _ := table.Factor(cat, name)
			entries = append(entries, factorEntry{
				Category:   cat,
				Activity:   name,
				Factor:     factor,
				Suggestion: suggestions.For(cat),
			})
		}
	}

	switch output {
	case engine.OutputJSON:
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("encoding factors: %w", err)
		}
		return nil
	case engine.OutputTable:
		return writeFactorTable(cmd.OutOrStdout(), entries)
	default:
		return fmt.Errorf("invalid output format %q, must be table or json", output)
	}
}

// writeFactorTable writes entries as an aligned table.
func writeFactorTable(out io.Writer, entries []factorEntry) error {
	const tabPadding = 2
	w := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', 0)

	if _, err := fmt.Fprintln(w, "CATEGORY\tACTIVITY\tFACTOR (kg CO2e/unit)"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--------\t--------\t---------------------"); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n",
			e.Category, e.Activity, strconv.FormatFloat(e.Factor, 'f', -1, 64)); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing factors: %w", err)
	}
	return nil
}
