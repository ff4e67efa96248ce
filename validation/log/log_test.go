package log

import (
	"bytes"
	"context"
	stdlog "log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(42), "unknown"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.level.String())
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{input: "debug", want: LevelDebug},
		{input: "INFO", want: LevelInfo},
		{input: "warn", want: LevelWarn},
		{input: "warning", want: LevelWarn},
		{input: "Error", want: LevelError},
		{input: "trace", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldConstructors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Field{Key: "k", Value: "v"}, String("k", "v"))
	assert.Equal(t, Field{Key: "n", Value: 7}, Int("n", 7))
	assert.Equal(t, Field{Key: "b", Value: true}, Bool("b", true))
	assert.Equal(t, Field{Key: "a", Value: 1.5}, Any("a", 1.5))

	err := assert.AnError
	assert.Equal(t, Field{Key: "error", Value: err}, Err(err))
}

func TestNopLogger(t *testing.T) {
	t.Parallel()

	logger := NewNop()

	assert.False(t, logger.Enabled(LevelError))
	assert.Same(t, logger, logger.With(String("k", "v")))
	assert.Same(t, logger, logger.WithGroup("group"))
	require.NoError(t, logger.Sync(context.Background()))

	// Must not panic.
	logger.Log(context.Background(), LevelInfo, "dropped")
}

// captureOutput redirects the standard library logger into a buffer for the
// duration of fn. Tests using it must not run in parallel.
func captureOutput(fn func()) string {
	var buf bytes.Buffer

	prevWriter := stdlog.Writer()
	prevFlags := stdlog.Flags()

	stdlog.SetOutput(&buf)
	stdlog.SetFlags(0)

	defer func() {
		stdlog.SetOutput(prevWriter)
		stdlog.SetFlags(prevFlags)
	}()

	fn()

	return buf.String()
}

func TestGoLogger_Enabled(t *testing.T) {
	t.Parallel()

	logger := &GoLogger{Level: LevelInfo}

	assert.True(t, logger.Enabled(LevelError))
	assert.True(t, logger.Enabled(LevelWarn))
	assert.True(t, logger.Enabled(LevelInfo))
	assert.False(t, logger.Enabled(LevelDebug))

	var nilLogger *GoLogger

	assert.False(t, nilLogger.Enabled(LevelError))
}

func TestGoLogger_Log(t *testing.T) {
	out := captureOutput(func() {
		logger := &GoLogger{Level: LevelInfo}
		logger.Log(context.Background(), LevelWarn, "invalid record", Int("index", 3))
	})

	assert.Contains(t, out, "[warn]")
	assert.Contains(t, out, "index=3")
	assert.Contains(t, out, "invalid record")
}

func TestGoLogger_Log_SuppressedBelowCeiling(t *testing.T) {
	out := captureOutput(func() {
		logger := &GoLogger{Level: LevelWarn}
		logger.Log(context.Background(), LevelDebug, "hidden")
	})

	assert.Empty(t, out)
}

func TestGoLogger_With(t *testing.T) {
	out := captureOutput(func() {
		logger := (&GoLogger{Level: LevelInfo}).With(String("run_id", "abc"))
		logger.Log(context.Background(), LevelInfo, "batch done")
	})

	assert.Contains(t, out, "run_id=abc")
	assert.Contains(t, out, "batch done")
}

func TestGoLogger_WithGroup(t *testing.T) {
	out := captureOutput(func() {
		logger := (&GoLogger{Level: LevelInfo}).WithGroup("batch")
		logger.Log(context.Background(), LevelInfo, "done", Int("total", 2))
	})

	assert.Contains(t, out, "batch.total=2")
}

func TestGoLogger_SanitizesMessages(t *testing.T) {
	out := captureOutput(func() {
		logger := &GoLogger{Level: LevelInfo}
		logger.Log(context.Background(), LevelInfo, "line1\nFAKE ENTRY", String("loc", "a\tb"))
	})

	assert.Contains(t, out, `line1\nFAKE ENTRY`)
	assert.Contains(t, out, `a\tb`)
	assert.NotContains(t, out, "line1\nFAKE")
}
