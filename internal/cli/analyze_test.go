package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/footprint/internal/cli"
)

const sampleActivities = `{
  "transportation": {"car": 20, "bus": 10},
  "energy": {"electricity": 30},
  "diet": {"meat": 2, "vegetarian": 3}
}`

const sampleText = `Total emissions for transportation: 5.30 kg CO2e
Consider walking, cycling, or using public transport to reduce emissions.
Total emissions for energy: 13.50 kg CO2e
Try to reduce energy consumption or use renewable energy sources.
Total emissions for diet: 16.00 kg CO2e
Consider reducing meat consumption and opting for plant-based alternatives.
Overall total emissions: 34.80 kg CO2e
`

const emptyTotal = "Overall total emissions: 0.00 kg CO2e\n"

// isolateEnv points the configuration at an empty home and clears overrides.
func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("FOOTPRINT_HOME", home)
	t.Setenv("FOOTPRINT_LOG_LEVEL", "")
	t.Setenv("FOOTPRINT_OUTPUT_FORMAT", "")
	t.Setenv("FOOTPRINT_STRICT", "")
	return home
}

// execute runs the root command with args and returns stdout, stderr and the error.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// writeFile writes content to name inside a temp dir and returns the path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRoot_AnalyzesFile(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, "activities.json", sampleActivities)

	stdout, stderr, err := execute(t, "", path)
	require.NoError(t, err)
	assert.Equal(t, sampleText, stdout)
	assert.Empty(t, stderr)
}

func TestAnalyze_TextScenarios(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		content    string
		wantStdout string
		wantStderr string
	}{
		{
			name:       "sample document",
			file:       "activities.json",
			content:    sampleActivities,
			wantStdout: sampleText,
		},
		{
			name:    "vegan only",
			file:    "vegan.json",
			content: `{"diet": {"vegan": 4}}`,
			wantStdout: "Total emissions for diet: 6.00 kg CO2e\n" +
				"Consider reducing meat consumption and opting for plant-based alternatives.\n" +
				"Overall total emissions: 6.00 kg CO2e\n",
		},
		{
			name:       "empty object",
			file:       "empty.json",
			content:    `{}`,
			wantStdout: emptyTotal,
		},
		{
			name:       "misspelled category",
			file:       "travel.json",
			content:    `{"travel": {"car": 5}}`,
			wantStdout: emptyTotal,
			wantStderr: "Error: 'travel' is not a valid activity type.\n",
		},
		{
			name:       "malformed json",
			file:       "broken.json",
			content:    `{"diet": {"meat": 2}`,
			wantStdout: emptyTotal,
			wantStderr: "Error: The file is not a valid JSON.\n",
		},
		{
			name:       "malformed yaml",
			file:       "broken.yaml",
			content:    "diet: [meat\n",
			wantStdout: emptyTotal,
			wantStderr: "Error: The file is not a valid YAML.\n",
		},
		{
			name:    "yaml document",
			file:    "week.yml",
			content: "energy:\n  gas: 2\n",
			wantStdout: "Total emissions for energy: 5.00 kg CO2e\n" +
				"Try to reduce energy consumption or use renewable energy sources.\n" +
				"Overall total emissions: 5.00 kg CO2e\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			path := writeFile(t, tt.file, tt.content)

			stdout, stderr, err := execute(t, "", "analyze", path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStdout, stdout)
			assert.Equal(t, tt.wantStderr, stderr)
		})
	}
}

func TestAnalyze_BadCategoryDoesNotStopOthers(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, "mixed.json", `{"diet": 3, "energy": {"electricity": 10}}`)

	stdout, stderr, err := execute(t, "", "analyze", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Activity details for 'diet' should be a dictionary")
	assert.Equal(t, "Total emissions for energy: 4.50 kg CO2e\n"+
		"Try to reduce energy consumption or use renewable energy sources.\n"+
		"Overall total emissions: 4.50 kg CO2e\n", stdout)
}

func TestAnalyze_MissingFile(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "missing.json")

	stdout, stderr, err := execute(t, "", "analyze", path)
	require.NoError(t, err, "a missing document is not a failure without --fail-on-error")
	assert.Equal(t, emptyTotal, stdout)
	assert.Equal(t, "Error: The file "+path+" was not found.\n", stderr)
}

func TestAnalyze_FailOnError(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "missing.json")

	stdout, _, err := execute(t, "", "analyze", path, "--fail-on-error")
	require.Error(t, err)

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, cli.ExitCodeLoadFailed, exitErr.Code)
	assert.Equal(t, emptyTotal, stdout, "results are still printed")

	_, _, err = execute(t, "", "analyze", writeFile(t, "ok.json", `{}`), "--fail-on-error")
	assert.NoError(t, err)
}

func TestAnalyze_Stdin(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := execute(t, sampleActivities, "analyze", "-")
	require.NoError(t, err)
	assert.Equal(t, sampleText, stdout)

	stdout, _, err = execute(t, "diet:\n  vegan: 4\n", "analyze", "-", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Overall total emissions: 6.00 kg CO2e")
}

func TestAnalyze_Strict(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, "rocket.json", `{"transportation": {"car": 10, "rocket": 1}}`)

	stdout, stderr, err := execute(t, "", "analyze", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Total emissions for transportation: 2.40 kg CO2e")
	assert.Empty(t, stderr)

	stdout, stderr, err = execute(t, "", "analyze", path, "--strict")
	require.NoError(t, err)
	assert.Equal(t, emptyTotal, stdout)
	assert.Equal(t, "Error: 'rocket' is not a valid activity for 'transportation'.\n", stderr)
}

func TestAnalyze_OutputFormats(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, "activities.json", sampleActivities)

	stdout, _, err := execute(t, "", "analyze", path, "--output", "table")
	require.NoError(t, err)
	assert.Contains(t, stdout, "CATEGORY")
	assert.Contains(t, stdout, "TOTAL")
	assert.Contains(t, stdout, "34.80")
	assert.Contains(t, stdout, "Equivalent to driving ~181 miles")

	stdout, _, err = execute(t, "", "analyze", path, "-o", "json")
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.InDelta(t, 34.8, decoded["total_kg"], 1e-9)

	stdout, _, err = execute(t, "", "analyze", path, "-o", "ndjson")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(stdout), "\n"), 4)
}

func TestAnalyze_InvalidFlags(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, "activities.json", sampleActivities)

	_, _, err := execute(t, "", "analyze", path, "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")

	_, _, err = execute(t, "", "analyze", path, "--format", "toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid input format")

	_, _, err = execute(t, "", "analyze", path, "extra")
	require.Error(t, err)
}

func TestRoot_UsesConfiguredDefaults(t *testing.T) {
	home := isolateEnv(t)
	path := writeFile(t, "week.json", `{"diet": {"vegan": 4}}`)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(
		"input:\n  default_file: "+path+"\noutput:\n  precision: 3\n"), 0o600))

	stdout, _, err := execute(t, "")
	require.NoError(t, err)
	assert.Equal(t, "Total emissions for diet: 6.000 kg CO2e\n"+
		"Consider reducing meat consumption and opting for plant-based alternatives.\n"+
		"Overall total emissions: 6.000 kg CO2e\n", stdout)
}

func TestRoot_EnvOutputFormat(t *testing.T) {
	isolateEnv(t)
	t.Setenv("FOOTPRINT_OUTPUT_FORMAT", "json")
	path := writeFile(t, "activities.json", `{"diet": {"vegan": 4}}`)

	stdout, _, err := execute(t, "", path)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
}

func TestRoot_InvalidConfigFile(t *testing.T) {
	isolateEnv(t)
	cfgPath := writeFile(t, "config.yaml", "output: [broken\n")
	path := writeFile(t, "activities.json", `{}`)

	_, _, err := execute(t, "", "--config", cfgPath, "analyze", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading configuration")
}
