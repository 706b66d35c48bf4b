package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/grovetools/tour/errors"
)

var validThemes = map[string]bool{
	"kanagawa": true,
	"terminal": true,
}

// Validate checks semantic constraints the schema cannot express. Call it
// after SetDefaults.
func (c *Config) Validate() error {
	if c.State != nil {
		if err := validatePath("state.path", c.State.Path); err != nil {
			return err
		}
	}

	if c.Notifications != nil {
		if err := validateNotifications(c.Notifications); err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigValidation, "invalid notifications configuration")
		}
	}

	if c.TUI != nil {
		if c.TUI.Theme != "" && !validThemes[c.TUI.Theme] {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("unknown theme: %s", c.TUI.Theme)).
				WithDetail("theme", c.TUI.Theme)
		}
		if c.TUI.FrameRate < 0 || c.TUI.FrameRate > 120 {
			return errors.New(errors.ErrCodeConfigValidation, "tui.frame_rate must be between 1 and 120").
				WithDetail("frameRate", c.TUI.FrameRate)
		}
	}

	return nil
}

func validateNotifications(n *NotificationsConfig) error {
	if len(n.Command) > 0 && strings.TrimSpace(n.Command[0]) == "" {
		return errors.New(errors.ErrCodeConfigValidation, "notifications.command must start with a program name")
	}
	if n.Timeout == "" {
		return nil
	}
	d, err := time.ParseDuration(n.Timeout)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, fmt.Sprintf("invalid notifications.timeout: %s", n.Timeout)).
			WithDetail("timeout", n.Timeout)
	}
	if d <= 0 {
		return errors.New(errors.ErrCodeConfigValidation, "notifications.timeout must be positive").
			WithDetail("timeout", n.Timeout)
	}
	return nil
}

// validatePath validates that a path is appropriate for the current OS
func validatePath(fieldName, path string) error {
	if path == "" {
		return nil
	}

	if runtime.GOOS != "windows" && filepath.IsAbs(path) && strings.Contains(path, "\\") {
		return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("%s contains Windows-style path on Unix system", fieldName)).
			WithDetail("path", path)
	}

	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "//") {
		return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("%s contains Unix-style path on Windows system", fieldName)).
			WithDetail("path", path)
	}

	return nil
}
