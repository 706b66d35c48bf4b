// Package notify implements the tour's notification permission gateway.
//
// Permission is granted by an external helper command configured under
// notifications.command: exit status 0 means granted, any other status means
// denied. Failing to run the helper at all is reported as an error, which the
// tour logs and otherwise ignores.
package notify

import (
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/tour/command"
	tourerrors "github.com/grovetools/tour/errors"
	"github.com/grovetools/tour/tour"
)

// Disabled never grants permission.
type Disabled struct{}

// Request implements tour.NotificationGateway.
func (Disabled) Request(context.Context) (tour.NotificationResult, error) {
	return tour.NotificationResult{}, nil
}

// CommandNotifier asks an external command for permission.
type CommandNotifier struct {
	builder *command.SafeBuilder
	argv    []string
	timeout time.Duration
	log     *logrus.Entry
}

// Option configures a CommandNotifier.
type Option func(*CommandNotifier)

// WithExecutor swaps the process executor.
func WithExecutor(exec command.Executor) Option {
	return func(n *CommandNotifier) {
		n.builder = command.NewSafeBuilderWithExecutor(exec)
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(n *CommandNotifier) { n.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(log *logrus.Entry) Option {
	return func(n *CommandNotifier) { n.log = log }
}

// New returns a gateway for argv. An empty argv yields Disabled.
func New(argv []string, opts ...Option) tour.NotificationGateway {
	if len(argv) == 0 {
		return Disabled{}
	}
	return NewCommandNotifier(argv, opts...)
}

// NewCommandNotifier returns a notifier running argv[0] with argv[1:].
func NewCommandNotifier(argv []string, opts ...Option) *CommandNotifier {
	n := &CommandNotifier{
		builder: command.NewSafeBuilder(),
		argv:    append([]string(nil), argv...),
		log:     logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Request implements tour.NotificationGateway.
func (n *CommandNotifier) Request(ctx context.Context) (tour.NotificationResult, error) {
	if len(n.argv) == 0 {
		return tour.NotificationResult{}, nil
	}

	cmd, err := n.builder.Build(n.argv[0], n.argv[1:]...)
	if err != nil {
		return tour.NotificationResult{}, tourerrors.Wrap(err, tourerrors.ErrCodeInvalidInput, "invalid notification command")
	}
	cmd.WithTimeout(n.timeout)

	log := n.log.WithField("command", cmd.String())
	log.Debug("Running notification permission command")

	res, err := cmd.Run(ctx)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return tour.NotificationResult{}, tourerrors.CommandNotFound(n.argv[0], err)
		}
		return tour.NotificationResult{}, tourerrors.CommandFailed(cmd.String(), err)
	}

	if res.ExitCode != 0 {
		log.WithField("exit_code", res.ExitCode).Info("Notification permission denied")
		return tour.NotificationResult{Success: false}, nil
	}

	log.Info("Notification permission granted")
	return tour.NotificationResult{Success: true}, nil
}
