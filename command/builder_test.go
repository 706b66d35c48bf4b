package command

import (
	"context"
	"os/exec"
	"testing"
	"time"
)

func TestValidateExecutable(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"bare name", "osascript", false},
		{"absolute path", "/usr/bin/notify-send", false},
		{"relative path", "./bin/grant-notifications", false},
		{"empty name", "", true},
		{"shell metacharacters", "notify; rm -rf /", true},
		{"path with spaces", "/Applications/My Helper/notify", false},
		{"newline", "notify\nsend", true},
		{"nul", "notify\x00", true},
		{"starts with hyphen", "-rf", true},
		{"subshell", "$(whoami)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateExecutable(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateExecutable(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateArgument(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain", "--urgency=low", false},
		{"spaces are fine", "Scores are ready", false},
		{"empty", "", false},
		{"newline", "a\nb", true},
		{"nul", "a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateArgument(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateArgument(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestSafeBuilder(t *testing.T) {
	sb := NewSafeBuilder()

	t.Run("rejects invalid command", func(t *testing.T) {
		if _, err := sb.Build("bad;cmd"); err == nil {
			t.Error("Build() expected error")
		}
	})

	t.Run("rejects invalid argument", func(t *testing.T) {
		if _, err := sb.Build("echo", "line\nbreak"); err == nil {
			t.Error("Build() expected error")
		}
	})

	t.Run("unknown validator", func(t *testing.T) {
		if err := sb.Validate("unknown", "x"); err == nil {
			t.Error("Validate() expected error for unknown type")
		}
	})

	t.Run("timeout handling", func(t *testing.T) {
		cmd, err := sb.Build("echo", "test")
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if cmd.Timeout() != DefaultTimeout {
			t.Errorf("Timeout() = %v, want %v", cmd.Timeout(), DefaultTimeout)
		}

		cmd.WithTimeout(10 * time.Second)
		if cmd.Timeout() != 10*time.Second {
			t.Errorf("Timeout() = %v, want 10s", cmd.Timeout())
		}

		cmd.WithTimeout(20 * time.Minute)
		if cmd.Timeout() != MaxTimeout {
			t.Errorf("Timeout() = %v, want %v", cmd.Timeout(), MaxTimeout)
		}

		cmd.WithTimeout(0)
		if cmd.Timeout() != MaxTimeout {
			t.Errorf("WithTimeout(0) changed timeout to %v", cmd.Timeout())
		}
	})

	t.Run("string form", func(t *testing.T) {
		cmd, err := sb.Build("notify-send", "Scores", "ready")
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if got := cmd.String(); got != "notify-send Scores ready" {
			t.Errorf("String() = %q", got)
		}
	})
}

func TestCommandRun(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	sb := NewSafeBuilder()
	ctx := context.Background()

	t.Run("success captures output", func(t *testing.T) {
		cmd, _ := sb.Build("sh", "-c", "echo granted")
		res, err := cmd.Run(ctx)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if res.ExitCode != 0 || res.Stdout != "granted\n" {
			t.Errorf("Run() = %+v", res)
		}
	})

	t.Run("non-zero exit is not an error", func(t *testing.T) {
		cmd, _ := sb.Build("sh", "-c", "echo denied >&2; exit 3")
		res, err := cmd.Run(ctx)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if res.ExitCode != 3 {
			t.Errorf("ExitCode = %d, want 3", res.ExitCode)
		}
		if res.Stderr != "denied\n" {
			t.Errorf("Stderr = %q", res.Stderr)
		}
	})

	t.Run("timeout is an error", func(t *testing.T) {
		cmd, _ := sb.Build("sh", "-c", "exec sleep 5")
		cmd.WithTimeout(50 * time.Millisecond)
		if _, err := cmd.Run(ctx); err == nil {
			t.Error("Run() expected timeout error")
		}
	})

	t.Run("missing binary is an error", func(t *testing.T) {
		cmd, _ := sb.Build("grove-tour-definitely-missing")
		if _, err := cmd.Run(ctx); err == nil {
			t.Error("Run() expected start error")
		}
	})
}
