package notify

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/tour/command"
	"github.com/grovetools/tour/errors"
	"github.com/grovetools/tour/tour"
)

var _ tour.NotificationGateway = (*CommandNotifier)(nil)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestNewWithoutCommandIsDisabled(t *testing.T) {
	gw := New(nil)
	assert.IsType(t, Disabled{}, gw)

	res, err := gw.Request(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestCommandNotifierOutcomes(t *testing.T) {
	requireShell(t)

	tests := []struct {
		name    string
		script  string
		success bool
	}{
		{"exit zero grants", "exit 0", true},
		{"exit one denies", "exit 1", false},
		{"other status denies", "echo no >&2; exit 7", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewCommandNotifier([]string{"sh", "-c", tt.script})
			res, err := n.Request(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.success, res.Success)
		})
	}
}

func TestCommandNotifierMissingBinary(t *testing.T) {
	n := NewCommandNotifier([]string{"grove-tour-missing-helper"})
	res, err := n.Request(context.Background())
	require.Error(t, err)
	assert.False(t, res.Success)
	assert.True(t, errors.Is(err, errors.ErrCodeCommandNotFound))
}

func TestCommandNotifierInvalidCommand(t *testing.T) {
	n := NewCommandNotifier([]string{"notify;reboot"})
	_, err := n.Request(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestCommandNotifierTimeout(t *testing.T) {
	requireShell(t)

	n := NewCommandNotifier([]string{"sh", "-c", "exec sleep 5"}, WithTimeout(50*time.Millisecond))
	start := time.Now()
	_, err := n.Request(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeCommandFailed))
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestCommandNotifierUsesExecutor(t *testing.T) {
	requireShell(t)

	var gotName string
	var gotArgs []string
	executor := command.ExecutorFunc(func(ctx context.Context, name string, args ...string) *exec.Cmd {
		gotName, gotArgs = name, args
		return command.OSExecutor.CommandContext(ctx, "sh", "-c", "exit 0")
	})

	n := NewCommandNotifier([]string{"grant-notifications", "--app", "scores"}, WithExecutor(executor))
	res, err := n.Request(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "grant-notifications", gotName)
	assert.Equal(t, []string{"--app", "scores"}, gotArgs)
}
