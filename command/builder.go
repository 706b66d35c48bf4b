package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds a command when the caller sets none.
	DefaultTimeout = 30 * time.Second

	// MaxTimeout is the maximum allowed timeout
	MaxTimeout = 5 * time.Minute
)

// waitDelay bounds how long Run waits for output pipes after a kill.
const waitDelay = 500 * time.Millisecond

// executablePattern rejects control characters and shell metacharacters.
// Spaces are allowed since commands never pass through a shell.
var executablePattern = regexp.MustCompile("^[^\\x00-\\x1f;|&$`<>*?]+$")

// SafeBuilder validates and builds commands for external helpers such as the
// notification permission command.
type SafeBuilder struct {
	defaultTimeout time.Duration
	validators     map[string]func(string) error
	executor       Executor
}

// NewSafeBuilder creates a new SafeBuilder backed by OSExecutor.
func NewSafeBuilder() *SafeBuilder {
	return NewSafeBuilderWithExecutor(OSExecutor)
}

// NewSafeBuilderWithExecutor creates a new SafeBuilder with a custom Executor
func NewSafeBuilderWithExecutor(exec Executor) *SafeBuilder {
	return &SafeBuilder{
		defaultTimeout: DefaultTimeout,
		validators:     makeDefaultValidators(),
		executor:       exec,
	}
}

func makeDefaultValidators() map[string]func(string) error {
	return map[string]func(string) error{
		"executable": validateExecutable,
		"argument":   validateArgument,
	}
}

// validateExecutable accepts a bare program name or a path to one.
func validateExecutable(name string) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if !executablePattern.MatchString(name) {
		return fmt.Errorf("invalid command name: %q", name)
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("command name cannot start with '-': %q", name)
	}
	return nil
}

// validateArgument rejects control characters. Arguments are passed to exec
// directly, never through a shell.
func validateArgument(arg string) error {
	if strings.ContainsAny(arg, "\x00\n\r") {
		return fmt.Errorf("argument contains control characters: %q", arg)
	}
	return nil
}

// Command is a validated command ready to run.
type Command struct {
	name     string
	args     []string
	timeout  time.Duration
	executor Executor
}

// Build validates name and args and returns a command using the builder's
// default timeout.
func (sb *SafeBuilder) Build(name string, args ...string) (*Command, error) {
	if err := sb.Validate("executable", name); err != nil {
		return nil, err
	}
	for _, arg := range args {
		if err := sb.Validate("argument", arg); err != nil {
			return nil, err
		}
	}

	return &Command{
		name:     name,
		args:     args,
		timeout:  sb.defaultTimeout,
		executor: sb.executor,
	}, nil
}

// WithTimeout sets a custom timeout for the command, capped at MaxTimeout.
// A non-positive timeout keeps the current one.
func (c *Command) WithTimeout(timeout time.Duration) *Command {
	if timeout <= 0 {
		return c
	}
	if timeout > MaxTimeout {
		timeout = MaxTimeout
	}
	c.timeout = timeout
	return c
}

// Timeout returns the command's timeout.
func (c *Command) Timeout() time.Duration { return c.timeout }

// String renders the command line for logs.
func (c *Command) String() string {
	return strings.Join(append([]string{c.name}, c.args...), " ")
}

// Validate validates specific arguments
func (sb *SafeBuilder) Validate(argType string, value string) error {
	validator, exists := sb.validators[argType]
	if !exists {
		return fmt.Errorf("no validator for argument type: %s", argType)
	}

	return validator(value)
}

// Result is the outcome of a command that started.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Run executes the command under ctx and the command timeout. A non-zero
// exit is reported in Result, not as an error; err is set only when the
// command could not be started or was cancelled.
func (c *Command) Run(ctx context.Context) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := c.executor.CommandContext(ctx, c.name, c.args...) //nolint:gosec // SafeBuilder provides validation
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return res, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, fmt.Errorf("%s: %w", c.name, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return res, err
}
