package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/footprint/internal/engine"
	"github.com/rshade/footprint/internal/greenops"
)

// boxBorderColor returns the lipgloss.Color used for summary box borders.
func boxBorderColor() lipgloss.Color { return lipgloss.Color("240") }

// boxTitleColor returns the lipgloss.Color used for the summary title.
func boxTitleColor() lipgloss.Color { return lipgloss.Color("42") }

// colorWarning returns the lipgloss.Color used for skipped categories.
func colorWarning() lipgloss.Color { return lipgloss.Color("214") }

// isWriterTerminal reports whether w is an *os.File attached to a terminal.
// Any other writer, such as a bytes.Buffer in tests, is not a terminal.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isTerminal(f)
	}
	return false
}

// renderStyledSummary writes a bordered box with the total, the equivalency
// line and the number of skipped categories.
func renderStyledSummary(w io.Writer, res *engine.Result, precision int) error {
	if res == nil {
		return nil
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(boxTitleColor())

	borderStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(boxBorderColor()).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString(titleStyle.Render("CARBON FOOTPRINT"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Total: %s %s", greenops.FormatFloat(res.TotalKg, precision), engine.Unit)

	if res.Equivalency != nil && res.Equivalency.CompactText != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("246")).
			Render(res.Equivalency.CompactText))
		if trees, ok := res.Equivalency.Find(greenops.TreeSeedlings); ok {
			fmt.Fprintf(&b, "\nOffset by ~%s %s", trees.Formatted, trees.Label)
		}
	}
	if res.HasWarnings() {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(colorWarning()).Bold(true).
			Render(fmt.Sprintf("%d category(ies) skipped", len(res.Warnings))))
	}

	_, err := fmt.Fprintln(w, "\n"+borderStyle.Render(b.String()))
	return err
}
