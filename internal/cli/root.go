package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/footprint/internal/config"
	"github.com/rshade/footprint/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// annotationSkipConfig marks commands that must run even when the
// configuration file cannot be loaded.
const annotationSkipConfig = "footprint/skip-config"

type configKey struct{}

// contextWithConfig stores cfg in ctx.
func contextWithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFromContext returns the configuration loaded for this invocation, or
// the defaults when there is none.
func configFromContext(ctx context.Context) *config.Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
			return cfg
		}
	}
	return config.New()
}

// NewRootCmd creates the root Cobra command for the footprint CLI.
// Run without a subcommand it analyzes the given activity document.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult *logging.LoggerResult
		opts      analyzeOptions
	)

	cmd := &cobra.Command{
		Use:   "footprint [file]",
		Short: "Personal carbon footprint calculator",
		Long: `footprint estimates the carbon emissions of everyday activities.

It reads an activity document (JSON, or YAML for .yaml/.yml files) that maps
categories such as transportation, energy and diet to activity quantities, and
reports the emissions per category, a reduction suggestion for each, and the
overall total in kg CO2e.`,
		Version:       ver,
		Example:       rootCmdExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cmd.SetContext(contextWithConfig(cmd.Context(), cfg))

			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return logResult.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "configuration file (default $FOOTPRINT_HOME/config.yaml or ~/.footprint/config.yaml)")
	addAnalyzeFlags(cmd, &opts)

	cmd.AddCommand(NewAnalyzeCmd(), NewFactorsCmd(), newConfigCmd())
	closeOnRunError(cmd, func() error { return logResult.Close() })

	return cmd
}

// closeOnRunError wraps the RunE of cmd and every subcommand so closer runs
// when the command fails. Cobra skips PersistentPostRunE after a RunE error.
func closeOnRunError(cmd *cobra.Command, closer func() error) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(c *cobra.Command, args []string) error {
			err := run(c, args)
			if err != nil {
				if closeErr := closer(); closeErr != nil {
					logger.Debug().Err(closeErr).Msg("closing log file")
				}
			}
			return err
		}
	}
	for _, sub := range cmd.Commands() {
		closeOnRunError(sub, closer)
	}
}

// loadConfig loads the configuration named by --config. Commands annotated
// with annotationSkipConfig fall back to defaults when loading fails.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if cmd.Annotations[annotationSkipConfig] != "true" {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	cfg = config.New()
	if path != "" {
		cfg.SetConfigPath(path)
	}
	return cfg, nil
}

const rootCmdExample = `  # Analyze activities.json (or input.default_file from the configuration)
  footprint

  # Analyze a specific document
  footprint week.json

  # Analyze a YAML document and show a breakdown table
  footprint analyze week.yaml --output table

  # Read the document from standard input
  cat week.json | footprint analyze -

  # Show the emission factors in use
  footprint factors

  # Initialize configuration
  footprint config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigValidateCmd())
	return cmd
}
