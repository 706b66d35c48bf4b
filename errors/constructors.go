package errors

import (
	"fmt"
	"os/exec"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *TourError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *TourError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// StateReadFailed reports a state file that exists but could not be read or parsed.
func StateReadFailed(path string, err error) *TourError {
	return Wrap(err, ErrCodeStateRead, "failed to read state").
		WithDetail("path", path)
}

// StateWriteFailed reports a state file that could not be written.
func StateWriteFailed(path string, err error) *TourError {
	return Wrap(err, ErrCodeStateWrite, "failed to write state").
		WithDetail("path", path)
}

// IllegalTransition rejects a tour action that is not valid in the current phase.
func IllegalTransition(action, phase string, index int) *TourError {
	return New(ErrCodeIllegalTransition,
		fmt.Sprintf("%s is not allowed while %s", action, phase)).
		WithDetail("action", action).
		WithDetail("phase", phase).
		WithDetail("index", index)
}

// NotificationFailed wraps a failure of the notification permission request.
func NotificationFailed(err error) *TourError {
	return Wrap(err, ErrCodeNotificationFailed, "notification request failed")
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmd string, err error) *TourError {
	tourErr := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmd)).
		WithDetail("command", cmd)

	// Extract exit code if available
	if exitErr, ok := err.(*exec.ExitError); ok {
		tourErr = tourErr.WithDetail("exitCode", exitErr.ExitCode())
	}

	return tourErr
}

// CommandNotFound reports a missing executable.
func CommandNotFound(cmd string, err error) *TourError {
	return Wrap(err, ErrCodeCommandNotFound, fmt.Sprintf("command not found: %s", cmd)).
		WithDetail("command", cmd)
}
