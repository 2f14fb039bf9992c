package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for merge.
const (
	keyInput    = "input"
	keyOutput   = "output"
	keyAnalysis = "analysis"
	keyLogging  = "logging"
)

// ShallowMergeYAML loads a YAML file and merges its top-level sections onto
// target. Within a section only the keys present in the file change; absent
// sections and keys keep their current value. Unknown top-level keys are
// ignored.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	// Empty or comment-only file: nothing to merge.
	if len(overlay) == 0 {
		return nil
	}

	for key, node := range overlay {
		if err = decodeSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// decodeSection decodes node onto the field of target named by key.
// Decoding onto the existing value keeps keys the overlay leaves out.
func decodeSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyInput:
		return node.Decode(&target.Input)
	case keyOutput:
		return node.Decode(&target.Output)
	case keyAnalysis:
		return node.Decode(&target.Analysis)
	case keyLogging:
		return node.Decode(&target.Logging)
	default:
		return nil
	}
}
