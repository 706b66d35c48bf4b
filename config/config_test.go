package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/tour/errors"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// isolate points the global config lookup at an empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	return xdg
}

func TestLoadFromBytesDefaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(""), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, DefaultVersion, cfg.Version)
	assert.Equal(t, DefaultTheme, cfg.TUI.Theme)
	assert.Equal(t, DefaultFrameRate, cfg.TUI.FrameRate)
	assert.Equal(t, 10*time.Second, cfg.Notifications.TimeoutDuration())
	assert.Empty(t, cfg.Notifications.Command)
	assert.Equal(t, time.Second/60, cfg.TUI.FrameInterval())
}

func TestLoadFromBytesYAMLAndTOMLAgree(t *testing.T) {
	yamlDoc := `
version: "1.0"
state:
  path: /var/lib/tour/state.yml
notifications:
  command: ["notify-send", "Morning alerts enabled"]
  timeout: 5s
tui:
  theme: terminal
  frame_rate: 30
logging:
  level: debug
`
	tomlDoc := `
version = "1.0"

[state]
path = "/var/lib/tour/state.yml"

[notifications]
command = ["notify-send", "Morning alerts enabled"]
timeout = "5s"

[tui]
theme = "terminal"
frame_rate = 30

[logging]
level = "debug"
`
	fromYAML, err := LoadFromBytes([]byte(yamlDoc), FormatYAML)
	require.NoError(t, err)
	fromTOML, err := LoadFromBytes([]byte(tomlDoc), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, fromYAML, fromTOML)
	assert.Equal(t, "/var/lib/tour/state.yml", fromYAML.State.Path)
	assert.Equal(t, []string{"notify-send", "Morning alerts enabled"}, fromYAML.Notifications.Command)
	assert.Equal(t, 5*time.Second, fromYAML.Notifications.TimeoutDuration())
	assert.Equal(t, 30, fromYAML.TUI.FrameRate)
}

func TestExtensions(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
logging:
  level: warn
  report_caller: true
scoreboard:
  sample_games: 4
`), FormatYAML)
	require.NoError(t, err)

	type loggingExt struct {
		Level        string `yaml:"level"`
		ReportCaller bool   `yaml:"report_caller"`
	}
	var logCfg loggingExt
	require.NoError(t, cfg.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "warn", logCfg.Level)
	assert.True(t, logCfg.ReportCaller)

	var board struct {
		SampleGames int `yaml:"sample_games"`
	}
	require.NoError(t, cfg.UnmarshalExtension("scoreboard", &board))
	assert.Equal(t, 4, board.SampleGames)

	var missing loggingExt
	require.NoError(t, cfg.UnmarshalExtension("absent", &missing))
	assert.Equal(t, loggingExt{}, missing)
}

func TestEnvExpansion(t *testing.T) {
	t.Setenv("TOUR_TEST_STATE", "/srv/tour.yml")

	cfg, err := LoadFromBytes([]byte(`
state:
  path: ${TOUR_TEST_STATE}
tui:
  theme: ${TOUR_TEST_UNSET_THEME:-terminal}
`), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "/srv/tour.yml", cfg.State.Path)
	assert.Equal(t, "terminal", cfg.TUI.Theme)
}

func TestLoadFromBytesErrors(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		format Format
		code   errors.ErrorCode
	}{
		{"malformed yaml", "tui: [", FormatYAML, errors.ErrCodeConfigInvalid},
		{"malformed toml", "tui = {", FormatTOML, errors.ErrCodeConfigInvalid},
		{"schema violation", "tui:\n  theme: neon\n", FormatYAML, errors.ErrCodeConfigInvalid},
		{"bad timeout", "notifications:\n  timeout: soon\n", FormatYAML, errors.ErrCodeConfigValidation},
		{"negative timeout", "notifications:\n  timeout: -1s\n", FormatYAML, errors.ErrCodeConfigValidation},
		{"blank program", "notifications:\n  command: [\"  \"]\n", FormatYAML, errors.ErrCodeConfigValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.doc), tt.format)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestSchemaViolationDetails(t *testing.T) {
	_, err := LoadFromBytes([]byte("tui:\n  theme: neon\n  frame_rate: 0\n"), FormatYAML)
	require.Error(t, err)

	tourErr, ok := err.(*errors.TourError)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"/tui/theme", "/tui/frame_rate"}, tourErr.Details["violations"])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "tour.yml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
}

func TestFindConfigFile(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	_, err := FindConfigFile(nested)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))

	tomlPath := writeConfig(t, root, "tour.toml", "version = \"1.0\"\n")
	got, err := FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, tomlPath, got)

	yamlPath := writeConfig(t, root, "tour.yml", "version: \"1.0\"\n")
	got, err = FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, yamlPath, got, "tour.yml takes precedence over tour.toml")

	closer := writeConfig(t, filepath.Join(root, "a"), ".tour.yml", "version: \"1.0\"\n")
	got, err = FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, closer, got, "nearest directory wins")
}

func TestFindConfigFileFallsBackToXDG(t *testing.T) {
	xdg := isolate(t)
	global := writeConfig(t, xdg, filepath.Join("grove", "tour.yml"), "version: \"1.0\"\n")

	got, err := FindConfigFile(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, global, got)
}

func TestLoadFromLayersGlobalAndProject(t *testing.T) {
	xdg := isolate(t)
	writeConfig(t, xdg, filepath.Join("grove", "tour.yml"), `
notifications:
  command: ["notify-send", "global"]
  timeout: 3s
tui:
  theme: terminal
logging:
  level: info
  report_caller: true
`)
	project := t.TempDir()
	writeConfig(t, project, "tour.yml", `
notifications:
  timeout: 7s
tui:
  frame_rate: 24
logging:
  level: debug
`)

	cfg, err := LoadFrom(project)
	require.NoError(t, err)

	assert.Equal(t, []string{"notify-send", "global"}, cfg.Notifications.Command)
	assert.Equal(t, 7*time.Second, cfg.Notifications.TimeoutDuration())
	assert.Equal(t, "terminal", cfg.TUI.Theme)
	assert.Equal(t, 24, cfg.TUI.FrameRate)

	var logCfg struct {
		Level        string `yaml:"level"`
		ReportCaller bool   `yaml:"report_caller"`
	}
	require.NoError(t, cfg.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "debug", logCfg.Level)
	assert.True(t, logCfg.ReportCaller)
}

func TestLoadFromWithoutFiles(t *testing.T) {
	isolate(t)
	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme, cfg.TUI.Theme)
}

func TestLoadFromRejectsBrokenProjectConfig(t *testing.T) {
	isolate(t)
	project := t.TempDir()
	path := writeConfig(t, project, "tour.yml", "tui: [")

	_, err := LoadFrom(project)
	require.Error(t, err)
	tourErr, ok := err.(*errors.TourError)
	require.True(t, ok)
	assert.Equal(t, path, tourErr.Details["path"])
}

func TestStatePath(t *testing.T) {
	t.Setenv("HOME", "/home/fan")
	t.Setenv("GROVE_HOME", "")

	cfg := &Config{}
	got, err := cfg.StatePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/fan", ".grove", "tour", "state.yml"), got)

	cfg.State = &StateConfig{Path: "~/scores/state.yml"}
	got, err = cfg.StatePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/fan", "scores", "state.yml"), got)

	cfg.State.Path = "/abs/state.yml"
	got, err = cfg.StatePath()
	require.NoError(t, err)
	assert.Equal(t, "/abs/state.yml", got)
}
