package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/engine"
	"github.com/rshade/footprint/internal/ingest"
	"github.com/rshade/footprint/internal/logging"
)

// analyzeOptions holds the flags shared by the root and analyze commands.
type analyzeOptions struct {
	output      string
	inputFormat string
	strict      bool
	failOnError bool
}

// addAnalyzeFlags registers the analysis flags on cmd.
func addAnalyzeFlags(cmd *cobra.Command, opts *analyzeOptions) {
	cmd.Flags().StringVarP(&opts.output, "output", "o", engine.OutputText,
		"output format: "+strings.Join(engine.ValidOutputFormats(), ", "))
	cmd.Flags().StringVar(&opts.inputFormat, "format", "",
		"input document format: json or yaml (default: detect from the file extension)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false,
		"reject categories that name unknown activities")
	cmd.Flags().BoolVar(&opts.failOnError, "fail-on-error", false,
		fmt.Sprintf("exit with code %d when the activity document cannot be loaded", ExitCodeLoadFailed))
}

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Calculate emissions for an activity document",
		Long: `Loads an activity document, computes the emissions of each known category and
prints the per-category totals, a reduction suggestion for each, and the overall total.

Categories that are not recognized or whose details are malformed are reported on
stderr and skipped; the remaining categories are still analyzed. A document that
cannot be read or parsed is reported and treated as empty.

Use "-" as the file to read the document from standard input.`,
		Example: `  # Analyze a document
  footprint analyze activities.json

  # Show a breakdown table with equivalencies
  footprint analyze activities.json --output table

  # Machine-readable output
  footprint analyze activities.yaml --output json

  # Fail the pipeline when the document cannot be loaded
  footprint analyze activities.json --fail-on-error`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	addAnalyzeFlags(cmd, &opts)

	return cmd
}

// runAnalyze loads, analyzes and renders one activity document.
func runAnalyze(cmd *cobra.Command, args []string, opts analyzeOptions) error {
	ctx := cmd.Context()
	cfg := configFromContext(ctx)
	log := logging.FromContext(ctx)

	path := cfg.Input.DefaultFile
	if len(args) == 1 {
		path = args[0]
	}

	output := cfg.Output.DefaultFormat
	if cmd.Flags().Changed("output") {
		output = opts.output
	}
	if !engine.IsValidOutputFormat(output) {
		return fmt.Errorf("invalid output format %q, must be one of: %s",
			output, strings.Join(engine.ValidOutputFormats(), ", "))
	}

	strict := cfg.Analysis.Strict
	if cmd.Flags().Changed("strict") {
		strict = opts.strict
	}

	loader := &ingest.Loader{Stdin: cmd.InOrStdin()}
	if opts.inputFormat != "" {
		loader.Format = ingest.ParseFormat(opts.inputFormat)
		if loader.Format == "" {
			return fmt.Errorf("invalid input format %q, must be json or yaml", opts.inputFormat)
		}
	}

	log.Debug().
		Ctx(ctx).
		Str("operation", "analyze").
		Str("source", path).
		Str("output", output).
		Bool("strict", strict).
		Msg("starting analysis")

	doc, loadErr := loader.Load(ctx, path)
	if loadErr != nil {
		printDiagnostic(cmd.ErrOrStderr(), loadErr)
	}

	eng := engine.NewDefault(
		engine.WithStrict(strict),
		engine.WithMaxConcurrency(cfg.Analysis.MaxConcurrency),
	)
	res := eng.Analyze(ctx, doc)
	for _, w := range res.Warnings {
		printDiagnostic(cmd.ErrOrStderr(), w.Err)
	}

	out := cmd.OutOrStdout()
	if err := engine.Render(out, output, res, cfg.Output.Precision); err != nil {
		return fmt.Errorf("rendering results: %w", err)
	}
	if output == engine.OutputTable && isWriterTerminal(out) {
		if err := renderStyledSummary(out, res, cfg.Output.Precision); err != nil {
			return fmt.Errorf("rendering summary: %w", err)
		}
	}

	if loadErr != nil && opts.failOnError {
		return &ExitError{Code: ExitCodeLoadFailed, Reason: fmt.Sprintf("could not load %s", path)}
	}
	return nil
}

// printDiagnostic writes the user-facing line for err to w.
func printDiagnostic(w io.Writer, err error) {
	var diag interface{ Diagnostic() string }
	if errors.As(err, &diag) {
		_, _ = fmt.Fprintln(w, diag.Diagnostic())
		return
	}
	_, _ = fmt.Fprintf(w, "An error occurred: %v\n", err)
}
