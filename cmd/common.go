// Package cmd implements the tour subcommands.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/tour/cli"
	"github.com/grovetools/tour/config"
	"github.com/grovetools/tour/state"
	"github.com/grovetools/tour/tour"
)

// MorningAlertsKey records that the user enabled morning alerts from the tour.
const MorningAlertsKey = "notifications.morning_alerts"

// openStore loads the config and opens the state file it names.
func openStore(cmd *cobra.Command) (*config.Config, *state.Store, error) {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	path, err := cfg.StatePath()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve state path: %w", err)
	}
	return cfg, state.NewStore(path), nil
}

// Status is the persisted tour state as reported by `tour status`.
type Status struct {
	Completed     bool   `json:"completed"`
	Value         string `json:"value,omitempty"`
	MorningAlerts string `json:"morning_alerts,omitempty"`
	StatePath     string `json:"state_path"`
}

func readStatus(ctx context.Context, store *state.Store) (Status, error) {
	gw := state.NewGateway(store)
	value, ok, err := gw.Get(ctx, tour.CompletionKey)
	if err != nil {
		return Status{}, err
	}
	alerts, _, err := gw.Get(ctx, MorningAlertsKey)
	if err != nil {
		return Status{}, err
	}
	return Status{
		Completed:     ok && tour.IsCompleted(value),
		Value:         value,
		MorningAlerts: alerts,
		StatePath:     store.Path(),
	}, nil
}
