package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/tour/errors"
	"github.com/grovetools/tour/tui/theme"
)

// ErrorHandler turns errors into friendly messages on stderr.
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a handler writing to stderr.
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle prints a message for err and returns it unchanged.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	prefix := theme.DefaultTheme.Error.Render(theme.IconError)

	tourErr, _ := errors.As(err)
	detail := func(key string) interface{} {
		if tourErr == nil {
			return nil
		}
		return tourErr.Details[key]
	}

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(h.Out, "%s Configuration not found at %v\n", prefix, detail("path"))
		fmt.Fprintln(h.Out, "Create a tour.yml or drop --config to use defaults.")

	case errors.ErrCodeConfigInvalid, errors.ErrCodeConfigValidation:
		fmt.Fprintf(h.Out, "%s Invalid configuration: %v\n", prefix, err)
		fmt.Fprintln(h.Out, "Run 'tour schema' to see the accepted keys.")

	case errors.ErrCodeStateRead:
		fmt.Fprintf(h.Out, "%s Could not read tour state from %v\n", prefix, detail("path"))
		fmt.Fprintln(h.Out, "Run 'tour reset' to start from a clean state.")

	case errors.ErrCodeStateWrite:
		fmt.Fprintf(h.Out, "%s Could not write tour state to %v\n", prefix, detail("path"))

	case errors.ErrCodeCommandNotFound:
		fmt.Fprintf(h.Out, "%s Notification command %v not found. Check notifications.command in tour.yml.\n", prefix, detail("command"))

	default:
		fmt.Fprintf(h.Out, "%s Error: %v\n", prefix, err)
	}

	if h.Verbose && tourErr != nil {
		fmt.Fprintf(h.Out, "\nError details:\n%s\n", tourErr.ToJSON())
	}
	return err
}

