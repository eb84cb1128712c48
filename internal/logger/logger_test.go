package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T, level string, noColor bool, fn func()) string {
	t.Helper()
	buf := &bytes.Buffer{}
	SetTestOutput(buf)
	defer UnsetTestOutput()

	previous := slog.Default()
	defer slog.SetDefault(previous)

	logger = nil
	InitLogger(level, noColor)

	fn()
	return buf.String()
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		logFn    func()
		contains []string
		excludes []string
	}{
		{
			name:  "info log",
			level: "info",
			logFn: func() {
				Info("test info message")
			},
			contains: []string{"test info message", "INF"},
		},
		{
			name:  "debug log with debug level",
			level: "debug",
			logFn: func() {
				Debug("test debug message")
			},
			contains: []string{"test debug message", "DBG"},
		},
		{
			name:  "debug log with info level",
			level: "info",
			logFn: func() {
				Debug("test debug message")
			},
			excludes: []string{"test debug message"},
		},
		{
			name:  "error log",
			level: "error",
			logFn: func() {
				Error("test error message")
			},
			contains: []string{"test error message", "ERR"},
		},
		{
			name:  "warn log with fields",
			level: "warn",
			logFn: func() {
				Warn("test warning", Fields{"key1": "value1", "key2": 42})
			},
			contains: []string{"test warning", "WRN", "key1=value1", "key2=42"},
		},
		{
			name:  "info suppressed at warn level",
			level: "warn",
			logFn: func() {
				Infof("formatted %s", "message")
			},
			excludes: []string{"formatted message"},
		},
		{
			name:  "success log",
			level: "info",
			logFn: func() {
				Success("operation completed")
			},
			contains: []string{"operation completed", "status=success"},
		},
		{
			name:  "formatted logs",
			level: "debug",
			logFn: func() {
				Debugf("processing item %d", 1)
				Warnf("retry %d of %d", 2, 3)
				Errorf("failed: %s", "boom")
			},
			contains: []string{"processing item 1", "retry 2 of 3", "failed: boom"},
		},
		{
			name:  "library logging goes through the default logger",
			level: "info",
			logFn: func() {
				slog.Info("from library", slog.String("file", "a.txt"))
			},
			contains: []string{"from library", "file=a.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureOutput(t, tt.level, true, tt.logFn)
			for _, want := range tt.contains {
				assert.Contains(t, output, want)
			}
			for _, notWant := range tt.excludes {
				assert.NotContains(t, output, notWant)
			}
			assert.NotContains(t, output, "\x1b[", "no-color output must not contain escape codes")
		})
	}
}

func TestColorOutput(t *testing.T) {
	output := captureOutput(t, "info", false, func() {
		Info("coloured")
	})
	assert.Contains(t, output, "coloured")
	assert.Contains(t, output, "\x1b[")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("whatever"))
}

func TestGetLogger_InitializesIfNil(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	logger = nil
	assert.NotPanics(t, func() {
		lg := GetLogger()
		assert.NotNil(t, lg)
		lg.Info("test message")
	})
}
