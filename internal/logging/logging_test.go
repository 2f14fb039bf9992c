package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/footprint/internal/logging"
)

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{name: "debug", level: "debug", want: zerolog.DebugLevel},
		{name: "upper case", level: "WARN", want: zerolog.WarnLevel},
		{name: "empty defaults to info", level: "", want: zerolog.InfoLevel},
		{name: "garbage defaults to info", level: "loud", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			result := logging.NewLogger(logging.Config{Level: tt.level, Format: logging.FormatJSON}, &buf)
			assert.Equal(t, tt.want, result.Logger.GetLevel())
			assert.False(t, result.UsingFile)
		})
	}
}

func TestNewLogger_JSONToWriter(t *testing.T) {
	var buf bytes.Buffer
	result := logging.NewLogger(logging.Config{Level: "info", Format: logging.FormatJSON}, &buf)

	logger := logging.ComponentLogger(result.Logger, "ingest")
	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"ingest"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestNewLogger_Caller(t *testing.T) {
	var buf bytes.Buffer
	result := logging.NewLogger(logging.Config{Level: "info", Format: logging.FormatJSON, Caller: true}, &buf)
	result.Logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), `"caller":`)
	assert.Contains(t, buf.String(), "logging_test.go")

	buf.Reset()
	result = logging.NewLogger(logging.Config{Level: "info", Format: logging.FormatJSON}, &buf)
	result.Logger.Info().Msg("hello")
	assert.NotContains(t, buf.String(), `"caller":`)
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "footprint.log")
	result := logging.NewLogger(logging.Config{
		Level:  "info",
		Format: logging.FormatJSON,
		Output: logging.OutputFile,
		File:   path,
	}, &bytes.Buffer{})
	require.True(t, result.UsingFile)
	assert.Equal(t, path, result.FilePath)

	result.Logger.Info().Msg("to file")
	require.NoError(t, result.Close())
	require.NoError(t, result.Close(), "second close is a no-op")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestNewLogger_FileFallback(t *testing.T) {
	var buf bytes.Buffer
	result := logging.NewLogger(logging.Config{
		Level:  "info",
		Output: logging.OutputFile,
		File:   filepath.Join(t.TempDir(), "missing", "dir", "x.log"),
	}, &buf)

	assert.False(t, result.UsingFile)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)
}

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, logging.TraceIDFromContext(ctx))

	id := logging.GetOrGenerateTraceID(ctx)
	require.Len(t, id, 26, "ULID string form")

	ctx = logging.ContextWithTraceID(ctx, id)
	assert.Equal(t, id, logging.TraceIDFromContext(ctx))
	assert.Equal(t, id, logging.GetOrGenerateTraceID(ctx))
}

func TestFromContext(t *testing.T) {
	//nolint:staticcheck // nil context is exercised on purpose.
	assert.NotNil(t, logging.FromContext(nil))

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx := logger.WithContext(context.Background())
	logging.FromContext(ctx).Info().Msg("via context")
	assert.Contains(t, buf.String(), "via context")
}
