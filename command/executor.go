package command

import (
	"context"
	"os/exec"
)

// Executor creates the exec.Cmd a Command runs.
type Executor interface {
	CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// CommandContext calls f.
func (f ExecutorFunc) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	return f(ctx, name, args...)
}

// OSExecutor runs commands with os/exec.
var OSExecutor Executor = ExecutorFunc(exec.CommandContext)
