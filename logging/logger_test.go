package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerIsCachedPerComponent(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	a := NewLogger("tour-test-cache")
	b := NewLogger("tour-test-cache")
	assert.Same(t, a, b)
	assert.Equal(t, "tour-test-cache", a.Data["component"])
}

func TestLevelPrecedence(t *testing.T) {
	t.Setenv("TOUR_LOG_LEVEL", "")
	entry := newLogger("c", Config{Level: "warn"}, true)
	assert.Equal(t, logrus.WarnLevel, entry.Logger.GetLevel())

	t.Setenv("TOUR_LOG_LEVEL", "debug")
	entry = newLogger("c", Config{Level: "warn"}, true)
	assert.Equal(t, logrus.DebugLevel, entry.Logger.GetLevel())

	t.Setenv("TOUR_LOG_LEVEL", "nonsense")
	entry = newLogger("c", Config{}, true)
	assert.Equal(t, logrus.InfoLevel, entry.Logger.GetLevel())
}

func TestStderrPolicy(t *testing.T) {
	t.Setenv("TOUR_DEBUG", "")

	tests := []struct {
		name        string
		mode        string
		level       logrus.Level
		interactive bool
		want        bool
	}{
		{"auto interactive info", "", logrus.InfoLevel, true, false},
		{"auto interactive debug", "auto", logrus.DebugLevel, true, true},
		{"auto piped", "auto", logrus.InfoLevel, false, true},
		{"always", "always", logrus.InfoLevel, true, true},
		{"never", "never", logrus.DebugLevel, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldLogToStderr(tt.mode, tt.level, tt.interactive))
		})
	}
}

func TestLoggerWritesThroughGlobalOutput(t *testing.T) {
	t.Setenv("TOUR_LOG_LEVEL", "")
	var buf bytes.Buffer
	previous := SetGlobalOutput(&buf)
	defer SetGlobalOutput(previous)

	entry := newLogger("tour", Config{Format: FormatConfig{DisableTimestamp: true}}, false)
	entry.WithField("index", 2).Info("Tour step advanced")

	out := buf.String()
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "[tour]")
	assert.Contains(t, out, "Tour step advanced index=2")
}

func TestInteractiveLoggerIsSilent(t *testing.T) {
	t.Setenv("TOUR_LOG_LEVEL", "")
	t.Setenv("TOUR_DEBUG", "")
	var buf bytes.Buffer
	previous := SetGlobalOutput(&buf)
	defer SetGlobalOutput(previous)

	newLogger("tour", Config{}, true).Info("hidden")
	assert.Empty(t, buf.String())
}

func TestFileSink(t *testing.T) {
	t.Setenv("TOUR_LOG_LEVEL", "")
	path := filepath.Join(t.TempDir(), "logs", "tour.log")

	entry := newLogger("tour", Config{
		File:   FileSinkConfig{Path: path},
		Format: FormatConfig{Preset: "json", StructuredToStderr: "never"},
	}, true)
	entry.Warn("Failed to persist tour completion")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Failed to persist tour completion"`)
	assert.Contains(t, string(data), `"component":"tour"`)
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name    string
		config  FormatConfig
		entry   *logrus.Entry
		want    []string
		notWant []string
	}{
		{
			name:   "default format",
			config: FormatConfig{},
			entry: &logrus.Entry{
				Level:   logrus.InfoLevel,
				Message: "Tour transition",
				Data: logrus.Fields{
					"component": "tour",
					"to":        "active",
					"from":      "pending",
				},
			},
			want: []string{"[INFO]", "[tour]", "Tour transition from=pending to=active"},
		},
		{
			name:   "simple format",
			config: FormatConfig{DisableTimestamp: true, DisableComponent: true},
			entry: &logrus.Entry{
				Level:   logrus.WarnLevel,
				Message: "write failed",
				Data:    logrus.Fields{"component": "state"},
			},
			want:    []string{"[WARN] write failed"},
			notWant: []string{"[state]", "component="},
		},
		{
			name:   "error last and spaced values quoted",
			config: FormatConfig{DisableTimestamp: true},
			entry: &logrus.Entry{
				Level:   logrus.WarnLevel,
				Message: "Failed to persist completion flag",
				Data: logrus.Fields{
					"error": errors.New("disk full"),
					"key":   "onboarding_completed_v1",
					"step":  "Top Picks",
				},
			},
			want: []string{`key=onboarding_completed_v1 step="Top Picks" error="disk full"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &TextFormatter{Config: tt.config}
			out, err := f.Format(tt.entry)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, string(out), w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, string(out), nw)
			}
			assert.True(t, strings.HasSuffix(string(out), "\n"))
		})
	}
}

func TestPrettyLogger(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrettyLogger().WithWriter(&buf)

	p.Success("Tour reset")
	p.Field("completed", false)
	p.Path("state", "/tmp/state.yml")
	p.ErrorPretty("reset failed", errors.New("read-only"))

	out := buf.String()
	assert.Contains(t, out, "Tour reset")
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "/tmp/state.yml")
	assert.Contains(t, out, "reset failed")
	assert.Contains(t, out, "read-only")
}
