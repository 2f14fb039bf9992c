// Package config loads, validates and saves the footprint configuration
// file (~/.footprint/config.yaml by default).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rshade/footprint/internal/engine"
	"github.com/rshade/footprint/internal/logging"
)

// Environment variables read by Load.
const (
	EnvHome         = "FOOTPRINT_HOME"
	EnvOutputFormat = "FOOTPRINT_OUTPUT_FORMAT"
	EnvLogLevel     = logging.EnvLogLevel
	EnvStrict       = "FOOTPRINT_STRICT"
)

// Defaults.
const (
	DefaultInputFile = "activities.json"
	DefaultLogLevel  = "error"
	MaxPrecision     = 6

	configDirName  = ".footprint"
	configFileName = "config.yaml"
)

// Validation errors.
var (
	ErrInvalidOutputFormat = errors.New("output format must be one of text, table, json, ndjson")
	ErrPrecisionOutOfRange = errors.New("output precision must be between 0 and 6")
	ErrInvalidLogLevel     = errors.New("invalid log level")
	ErrInvalidLogFormat    = errors.New("log format must be one of console, text, json")
	ErrNegativeConcurrency = errors.New("analysis max_concurrency cannot be negative")
)

// InputConfig selects the activity document analyzed when none is given.
type InputConfig struct {
	DefaultFile string `yaml:"default_file"`
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Precision     int    `yaml:"precision"`
}

// AnalysisConfig controls the emission engine.
type AnalysisConfig struct {
	// Strict rejects a category that names an activity missing from the
	// factor table.
	Strict bool `yaml:"strict"`
	// MaxConcurrency bounds concurrent category computation. 0 and 1 keep
	// analysis sequential.
	MaxConcurrency int `yaml:"max_concurrency"`
}

// LoggingConfig is the logging section of the configuration file.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
	Caller bool   `yaml:"caller,omitempty"`
}

// Config is the full configuration.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Logging  LoggingConfig  `yaml:"logging"`

	configPath string
}

// GetConfigDir returns $FOOTPRINT_HOME, or ~/.footprint when it is unset.
func GetConfigDir() string {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return configDirName
	}
	return filepath.Join(home, configDirName)
}

// DefaultConfigPath returns the config.yaml path inside GetConfigDir.
func DefaultConfigPath() string {
	return filepath.Join(GetConfigDir(), configFileName)
}

// New returns a Config holding the built-in defaults, bound to
// DefaultConfigPath. It does not read any file.
func New() *Config {
	return &Config{
		Input: InputConfig{DefaultFile: DefaultInputFile},
		Output: OutputConfig{
			DefaultFormat: engine.OutputText,
			Precision:     engine.DefaultPrecision,
		},
		Analysis: AnalysisConfig{},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: logging.FormatConsole,
		},
		configPath: DefaultConfigPath(),
	}
}

// Load builds a Config from the defaults, the file at path (DefaultConfigPath
// when empty) and the environment, in that order. A missing file is not an
// error. The result is not validated.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an explicit environment lookup.
func LoadWithEnv(path string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := New()
	if path != "" {
		cfg.configPath = path
	}

	_, err := os.Stat(cfg.configPath)
	switch {
	case err == nil:
		if mergeErr := ShallowMergeYAML(cfg, cfg.configPath); mergeErr != nil {
			return nil, mergeErr
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("cannot access config path %s: %w", cfg.configPath, err)
	}

	if err = cfg.applyEnv(lookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookupEnv func(string) (string, bool)) error {
	if lookupEnv == nil {
		return nil
	}
	if v, ok := lookupEnv(EnvOutputFormat); ok && v != "" {
		c.Output.DefaultFormat = v
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvStrict); ok && v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvStrict, err)
		}
		c.Analysis.Strict = strict
	}
	return nil
}

// ConfigPath returns the file the configuration is loaded from and saved to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file Save writes to.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", c.configPath, err)
	}
	return nil
}

// Validate reports every invalid setting, joined into one error.
func (c *Config) Validate() error {
	var errs []error

	if !engine.IsValidOutputFormat(c.Output.DefaultFormat) {
		errs = append(errs, fmt.Errorf("%w: got %q", ErrInvalidOutputFormat, c.Output.DefaultFormat))
	}
	if c.Output.Precision < 0 || c.Output.Precision > MaxPrecision {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrPrecisionOutOfRange, c.Output.Precision))
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil || c.Logging.Level == "" {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level))
	}
	switch c.Logging.Format {
	case logging.FormatConsole, logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("%w: got %q", ErrInvalidLogFormat, c.Logging.Format))
	}
	if c.Analysis.MaxConcurrency < 0 {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrNegativeConcurrency, c.Analysis.MaxConcurrency))
	}

	return errors.Join(errs...)
}
