package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/tour/cli"
	"github.com/grovetools/tour/config"
	"github.com/grovetools/tour/state"
	"github.com/grovetools/tour/testutil"
	"github.com/grovetools/tour/tour"
)

// setup writes a config pointing at a temporary state file.
func setup(t *testing.T) (configPath, statePath string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	statePath = filepath.Join(dir, "state", "state.yml")
	configPath = filepath.Join(dir, "tour.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("state:\n  path: "+statePath+"\n"), 0644))
	return configPath, statePath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := cli.NewStandardCommand("tour", "test")
	root.AddCommand(NewStatusCmd(), NewResetCmd(), NewSchemaCmd(), NewConfigCmd(), NewVersionCmd())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func statusJSON(t *testing.T, configPath string) Status {
	t.Helper()
	out, err := execute(t, "status", "--json", "-c", configPath)
	require.NoError(t, err)
	var st Status
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	return st
}

func TestStatusFreshInstall(t *testing.T) {
	configPath, statePath := setup(t)

	st := statusJSON(t, configPath)
	assert.False(t, st.Completed)
	assert.Equal(t, statePath, st.StatePath)
}

func TestStatusCompleted(t *testing.T) {
	configPath, statePath := setup(t)
	testutil.WriteFile(t, statePath, "onboarding_completed_v1: \"1\"\nnotifications.morning_alerts: enabled\n")

	st := statusJSON(t, configPath)
	assert.True(t, st.Completed)
	assert.Equal(t, "1", st.Value)
	assert.Equal(t, "enabled", st.MorningAlerts)

	out, err := execute(t, "status", "-c", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Onboarding tour completed")
}

func TestStatusCorruptStateFile(t *testing.T) {
	configPath, statePath := setup(t)
	testutil.WriteFile(t, statePath, "key: [unterminated")

	_, err := execute(t, "status", "-c", configPath)
	require.Error(t, err)
}

func TestResetClearsFlag(t *testing.T) {
	configPath, statePath := setup(t)
	testutil.WriteFile(t, statePath, "onboarding_completed_v1: \"1\"\nnotifications.morning_alerts: enabled\n")

	_, err := execute(t, "reset", "-c", configPath)
	require.NoError(t, err)
	st := statusJSON(t, configPath)
	assert.False(t, st.Completed)
	assert.Equal(t, "enabled", st.MorningAlerts)

	_, err = execute(t, "reset", "--all", "-c", configPath)
	require.NoError(t, err)
	assert.Empty(t, statusJSON(t, configPath).MorningAlerts)
}

func TestSchemaCommand(t *testing.T) {
	out, err := execute(t, "schema")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))

	out, err = execute(t, "schema", "--generated")
	require.NoError(t, err)
	assert.Contains(t, out, "Grove Tour Configuration")
}

func TestConfigCommand(t *testing.T) {
	configPath, statePath := setup(t)

	out, err := execute(t, "config", "-c", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "# Source: "+configPath)
	assert.Contains(t, out, statePath)
	assert.Contains(t, out, "theme: kanagawa")
}

func TestMissingConfigFile(t *testing.T) {
	_, err := execute(t, "status", "-c", filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestControllerRecordsMorningAlerts(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	_, statePath := setup(t)
	store := state.NewStore(statePath)
	cfg, err := config.LoadFromBytes([]byte("notifications:\n  command: [\"true\"]\n"), config.FormatYAML)
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)
	clock := testutil.NewFakeClock(time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC))

	ctl, err := newController(cfg, store, logrus.NewEntry(log), clock)
	require.NoError(t, err)

	ctx := context.Background()
	op, err := ctl.Start()
	require.NoError(t, err)
	require.NoError(t, ctl.Deliver(op(ctx)))
	require.Equal(t, tour.PhasePending, ctl.State().Phase)

	clock.Advance(tour.ActivationDelay)
	ctl.Tick(ctx)
	require.Equal(t, tour.PhaseActive, ctl.State().Phase)

	notifications := ctl.Catalog().Index(tour.KeyNotifications)
	for ctl.State().CurrentStepIndex < notifications {
		require.NoError(t, ctl.Next())
	}

	op, err = ctl.EnableNotifications()
	require.NoError(t, err)
	require.NoError(t, ctl.Deliver(op(ctx)))

	alerts, err := store.GetString(MorningAlertsKey)
	require.NoError(t, err)
	assert.Equal(t, "enabled", alerts)
}
