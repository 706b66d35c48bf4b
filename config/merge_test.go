package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeConfigs(t *testing.T) {
	base := &Config{
		Version:       "1.0",
		State:         &StateConfig{Path: "/base/state.yml"},
		Notifications: &NotificationsConfig{Command: []string{"base"}, Timeout: "2s"},
		Extensions: map[string]interface{}{
			"logging": map[string]interface{}{"level": "info", "report_caller": true},
			"keep":    "me",
		},
	}
	override := &Config{
		Notifications: &NotificationsConfig{Timeout: "9s"},
		TUI:           &TUIConfig{Theme: "terminal"},
		Extensions: map[string]interface{}{
			"logging": map[string]interface{}{"level": "debug"},
		},
	}

	merged := mergeConfigs(base, override)

	assert.Equal(t, "1.0", merged.Version)
	assert.Equal(t, "/base/state.yml", merged.State.Path)
	assert.Equal(t, []string{"base"}, merged.Notifications.Command)
	assert.Equal(t, "9s", merged.Notifications.Timeout)
	assert.Equal(t, "terminal", merged.TUI.Theme)
	assert.Equal(t, map[string]interface{}{"level": "debug", "report_caller": true}, merged.Extensions["logging"])
	assert.Equal(t, "me", merged.Extensions["keep"])

	assert.Equal(t, "2s", base.Notifications.Timeout, "base is not modified")
	assert.Nil(t, base.TUI)
}

func TestMergeEmptyCommandOverride(t *testing.T) {
	base := &Config{Notifications: &NotificationsConfig{Command: []string{"notify-send"}}}
	override := &Config{Notifications: &NotificationsConfig{Command: []string{}}}

	merged := mergeConfigs(base, override)
	assert.Empty(t, merged.Notifications.Command, "an explicit empty list disables the command")
}
