package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/grovetools/tour/pkg/paths"
)

//go:generate go run ../tools/schema-generator/

// Defaults applied by SetDefaults.
const (
	DefaultVersion             = "1.0"
	DefaultTheme               = "kanagawa"
	DefaultFrameRate           = 60
	DefaultNotificationTimeout = "10s"
)

// StateConfig locates the durable state file.
type StateConfig struct {
	Path string `yaml:"path,omitempty" toml:"path,omitempty" mapstructure:"path" jsonschema:"description=Path to the YAML state file holding the completion flag (default: ~/.grove/tour/state.yml)"`
}

// NotificationsConfig configures the notification permission helper.
type NotificationsConfig struct {
	Command []string `yaml:"command,omitempty" toml:"command,omitempty" mapstructure:"command" jsonschema:"description=Command and arguments run to request notification permission; exit status 0 means granted. Empty disables the request"`
	Timeout string   `yaml:"timeout,omitempty" toml:"timeout,omitempty" mapstructure:"timeout" jsonschema:"description=Maximum time the permission command may run (default: 10s)"`
}

// TimeoutDuration parses Timeout. Call after Validate.
func (n *NotificationsConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(n.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// TUIConfig holds terminal host settings.
type TUIConfig struct {
	Theme     string `yaml:"theme,omitempty" toml:"theme,omitempty" mapstructure:"theme" jsonschema:"description=Color theme for the terminal host,enum=kanagawa,enum=terminal"`
	FrameRate int    `yaml:"frame_rate,omitempty" toml:"frame_rate,omitempty" mapstructure:"frame_rate" jsonschema:"description=Animation frames per second (default: 60),minimum=1,maximum=120"`
}

// FrameInterval is the time between animation frames.
func (t *TUIConfig) FrameInterval() time.Duration {
	if t.FrameRate <= 0 {
		return time.Second / DefaultFrameRate
	}
	return time.Second / time.Duration(t.FrameRate)
}

// Config represents tour.yml.
type Config struct {
	Version       string               `yaml:"version" toml:"version" mapstructure:"version" jsonschema:"description=Configuration version (e.g. 1.0)"`
	State         *StateConfig         `yaml:"state,omitempty" toml:"state,omitempty" mapstructure:"state" jsonschema:"description=State file settings"`
	Notifications *NotificationsConfig `yaml:"notifications,omitempty" toml:"notifications,omitempty" mapstructure:"notifications" jsonschema:"description=Notification permission settings"`
	TUI           *TUIConfig           `yaml:"tui,omitempty" toml:"tui,omitempty" mapstructure:"tui" jsonschema:"description=Terminal host appearance"`

	// Extensions holds every other top-level key, e.g. logging.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" mapstructure:",remain" jsonschema:"-"`
}

// SetDefaults fills unset values.
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.State == nil {
		c.State = &StateConfig{}
	}
	if c.Notifications == nil {
		c.Notifications = &NotificationsConfig{}
	}
	if c.Notifications.Timeout == "" {
		c.Notifications.Timeout = DefaultNotificationTimeout
	}
	if c.TUI == nil {
		c.TUI = &TUIConfig{}
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = DefaultTheme
	}
	if c.TUI.FrameRate == 0 {
		c.TUI.FrameRate = DefaultFrameRate
	}
}

// StatePath returns the configured state file path with ~ and environment
// variables expanded, or the default state file when none is set.
func (c *Config) StatePath() (string, error) {
	if c.State == nil || c.State.Path == "" {
		return paths.StateFile()
	}
	return paths.Expand(c.State.Path)
}

// UnmarshalExtension decodes the extension section under key into target,
// which must be a pointer. A missing key leaves target untouched.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
