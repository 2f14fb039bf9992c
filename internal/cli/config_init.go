package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values at
$FOOTPRINT_HOME/config.yaml (default ~/.footprint/config.yaml), or at the
path given with --config.`,
		Example: `  # Create the configuration file
  footprint config init

  # Create configuration, overwriting existing
  footprint config init --force`,
		Annotations: map[string]string{annotationSkipConfig: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

// runConfigInit writes the default configuration to the configured path.
func runConfigInit(cmd *cobra.Command, force bool) error {
	path := configFromContext(cmd.Context()).ConfigPath()

	// Check if config already exists and force isn't set
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	cfg := defaultConfigAt(path)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", cfg.ConfigPath())

	return nil
}

// defaultConfigAt returns the built-in defaults bound to path. Environment
// overrides are not applied so they never leak into the saved file.
func defaultConfigAt(path string) *config.Config {
	cfg := config.New()
	cfg.SetConfigPath(path)
	return cfg
}
