package cli_test

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactors_Table(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := execute(t, "", "factors")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2+9, "header, separator and one row per activity")
	assert.Contains(t, lines[0], "CATEGORY")
	assert.Contains(t, lines[2], "transportation")
	assert.Contains(t, stdout, "electricity")
	assert.Contains(t, stdout, "0.45")
	assert.Contains(t, lines[len(lines)-1], "diet")
}

func TestFactors_JSON(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := execute(t, "", "factors", "--output", "json")
	require.NoError(t, err)

	var entries []struct {
		Category   string  `json:"category"`
		Activity   string  `json:"activity"`
		Factor     float64 `json:"factor"`
		Suggestion string  `json:"suggestion"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries))
	require.Len(t, entries, 9)

	found := false
	for _, e := range entries {
		if e.Category == "energy" && e.Activity == "gas" {
			found = true
			assert.InDelta(t, 2.5, e.Factor, 1e-9)
			assert.Contains(t, e.Suggestion, "renewable")
		}
	}
	assert.True(t, found, "energy/gas listed")
}

func TestFactors_InvalidOutput(t *testing.T) {
	isolateEnv(t)

	_, _, err := execute(t, "", "factors", "--output", "ndjson")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestFactors_DebugLogsCaller(t *testing.T) {
	isolateEnv(t)

	_, stderr, err := execute(t, "", "factors", "--debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, "command started")
	assert.Contains(t, stderr, "logging_setup.go")
}
