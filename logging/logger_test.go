package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	entries []string
}

func (r *recordingLogger) Debug(msg string, _ ...any) { r.entries = append(r.entries, "debug:"+msg) }
func (r *recordingLogger) Info(msg string, _ ...any)  { r.entries = append(r.entries, "info:"+msg) }
func (r *recordingLogger) Warn(msg string, _ ...any)  { r.entries = append(r.entries, "warn:"+msg) }
func (r *recordingLogger) Error(msg string, _ ...any) { r.entries = append(r.entries, "error:"+msg) }

func TestNew(t *testing.T) {
	custom := &recordingLogger{}

	tests := []struct {
		name     string
		opts     Options
		wantNop  bool
		wantSame Logger
		level    Level
	}{
		{
			name:     "caller logger always wins",
			opts:     Options{Logger: custom, Verbose: true, Level: LevelError},
			wantSame: custom,
		},
		{
			name:    "defaults discard",
			opts:    Options{},
			wantNop: true,
		},
		{
			name:  "verbose uses console at debug",
			opts:  Options{Verbose: true, Level: LevelWarn, Output: &bytes.Buffer{}},
			level: LevelDebug,
		},
		{
			name:  "non default level uses console",
			opts:  Options{Level: LevelWarn, Output: &bytes.Buffer{}},
			level: LevelWarn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.opts)

			switch {
			case tt.wantSame != nil:
				assert.Same(t, tt.wantSame, got)
			case tt.wantNop:
				assert.True(t, IsNop(got))
			default:
				console, ok := got.(*ZerologLogger)
				require.True(t, ok, "expected console logger, got %T", got)
				assert.Equal(t, tt.level, console.Level())
			}
		})
	}
}

func TestZerologLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsole(&buf, LevelWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message", "field", "value")
	logger.Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "field=value")
	assert.Contains(t, out, "error message")
	assert.Contains(t, out, "component=adkit")
}

func TestZerologLoggerSetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsole(&buf, LevelDebug)

	logger.Debug("first")
	logger.SetLevel(LevelInfo)
	logger.Debug("second")
	logger.Error("third")

	out := buf.String()
	assert.Contains(t, out, "first")
	assert.NotContains(t, out, "second")
	assert.Contains(t, out, "third")
}

func TestFromZerolog(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).Level(zerolog.WarnLevel)

	logger := FromZerolog(zl)
	assert.Equal(t, LevelWarn, logger.Level())

	logger.Info("hidden")
	logger.Warn("shown", "request_id", "abc")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"request_id":"abc"`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"trace", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.True(t, LevelDebug < LevelInfo && LevelInfo < LevelWarn && LevelWarn < LevelError)
}
