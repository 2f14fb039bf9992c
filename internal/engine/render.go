package engine

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/rshade/footprint/internal/greenops"
)

// Output formats.
const (
	OutputText   = "text"
	OutputTable  = "table"
	OutputJSON   = "json"
	OutputNDJSON = "ndjson"
)

// DefaultPrecision is the number of decimals used for emission values.
const DefaultPrecision = 2

// tabwriterPadding is the minimum padding between table columns.
const tabwriterPadding = 2

// ValidOutputFormats lists the formats Render accepts.
func ValidOutputFormats() []string {
	return []string{OutputText, OutputTable, OutputJSON, OutputNDJSON}
}

// IsValidOutputFormat reports whether format is one of ValidOutputFormats.
func IsValidOutputFormat(format string) bool {
	for _, f := range ValidOutputFormats() {
		if f == format {
			return true
		}
	}
	return false
}

// Render writes res to w in the given format.
func Render(w io.Writer, format string, res *Result, precision int) error {
	switch format {
	case OutputText, "":
		return RenderText(w, res, precision)
	case OutputTable:
		return RenderTable(w, res, precision)
	case OutputJSON:
		return RenderJSON(w, res)
	case OutputNDJSON:
		return RenderNDJSON(w, res)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// RenderText writes one block per category followed by the overall total:
//
//	Total emissions for diet: 6.00 kg CO2e
//	Consider reducing meat consumption and opting for plant-based alternatives.
//	Overall total emissions: 6.00 kg CO2e
func RenderText(w io.Writer, res *Result, precision int) error {
	if res == nil {
		res = &Result{}
	}
	for _, c := range res.Categories {
		if _, err := fmt.Fprintf(w, "Total emissions for %s: %s %s\n",
			c.Category, formatKg(c.Subtotal, precision), Unit); err != nil {
			return fmt.Errorf("writing category: %w", err)
		}
		if _, err := fmt.Fprintln(w, c.Suggestion); err != nil {
			return fmt.Errorf("writing suggestion: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, "Overall total emissions: %s %s\n", formatKg(res.TotalKg, precision), Unit); err != nil {
		return fmt.Errorf("writing total: %w", err)
	}
	return nil
}

// RenderTable writes an activity breakdown table, the suggestions and the
// equivalency line.
func RenderTable(w io.Writer, res *Result, precision int) error {
	if res == nil {
		res = &Result{}
	}
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	if _, err := fmt.Fprintf(tw, "CATEGORY\tACTIVITY\tQUANTITY\tFACTOR\tEMISSIONS (%s)\n", Unit); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "--------\t--------\t--------\t------\t-----------------\n"); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}

	for _, c := range res.Categories {
		for _, a := range c.Activities {
			if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				c.Category, a.Name,
				strconv.FormatFloat(a.Quantity, 'f', -1, 64),
				strconv.FormatFloat(a.Factor, 'f', -1, 64),
				greenops.FormatFloat(a.Emission, precision),
			); err != nil {
				return fmt.Errorf("writing row: %w", err)
			}
		}
		if _, err := fmt.Fprintf(tw, "%s\tsubtotal\t\t\t%s\n",
			c.Category, greenops.FormatFloat(c.Subtotal, precision)); err != nil {
			return fmt.Errorf("writing subtotal: %w", err)
		}
	}
	if _, err := fmt.Fprintf(tw, "TOTAL\t\t\t\t%s\n", greenops.FormatFloat(res.TotalKg, precision)); err != nil {
		return fmt.Errorf("writing total: %w", err)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	return renderFooter(w, res)
}

// renderFooter writes suggestions, the equivalency line and skipped categories.
func renderFooter(w io.Writer, res *Result) error {
	if len(res.Categories) > 0 {
		if _, err := fmt.Fprintln(w, "\nSuggestions:"); err != nil {
			return err
		}
		for _, c := range res.Categories {
			if _, err := fmt.Fprintf(w, "  %s: %s\n", c.Category, c.Suggestion); err != nil {
				return err
			}
		}
	}
	if res.Equivalency != nil && res.Equivalency.DisplayText != "" {
		if _, err := fmt.Fprintf(w, "\n%s\n", res.Equivalency.DisplayText); err != nil {
			return err
		}
	}
	if len(res.Warnings) > 0 {
		if _, err := fmt.Fprintf(w, "\nSkipped %d category(ies):\n", len(res.Warnings)); err != nil {
			return err
		}
		for _, warn := range res.Warnings {
			if _, err := fmt.Fprintf(w, "  %s: %s\n", warn.Category, warn.Message); err != nil {
				return err
			}
		}
	}
	return nil
}

// RenderJSON writes res as an indented JSON document.
func RenderJSON(w io.Writer, res *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}

// ndjsonTotal is the final NDJSON record.
type ndjsonTotal struct {
	Type     string    `json:"type"`
	TotalKg  float64   `json:"total_kg"`
	Unit     string    `json:"unit"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// ndjsonCategory is one per-category NDJSON record.
type ndjsonCategory struct {
	Type string `json:"type"`
	CategoryResult
}

// RenderNDJSON writes one JSON record per category followed by a total record.
func RenderNDJSON(w io.Writer, res *Result) error {
	if res == nil {
		res = &Result{Unit: Unit}
	}
	enc := json.NewEncoder(w)
	for _, c := range res.Categories {
		if err := enc.Encode(ndjsonCategory{Type: "category", CategoryResult: c}); err != nil {
			return fmt.Errorf("encoding category: %w", err)
		}
	}
	if err := enc.Encode(ndjsonTotal{
		Type:     "total",
		TotalKg:  res.TotalKg,
		Unit:     Unit,
		Warnings: res.Warnings,
	}); err != nil {
		return fmt.Errorf("encoding total: %w", err)
	}
	return nil
}

// formatKg formats an emission value with a fixed number of decimals.
func formatKg(v float64, precision int) string {
	if precision < 0 {
		precision = DefaultPrecision
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
