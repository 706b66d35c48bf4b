package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/grovetools/tour/cli"
	"github.com/grovetools/tour/logging"
	"github.com/grovetools/tour/state"
)

func NewStatusCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether the onboarding tour has been completed",
		Long: `Show whether the onboarding tour has been completed and where the
flag is stored.

Examples:
  tour status
  tour status --json
  # print a new line every time the state file changes
  tour status --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openStore(cmd)
			if err != nil {
				return err
			}
			asJSON := cli.GetOptions(cmd).JSONOutput
			out := cmd.OutOrStdout()

			show := func() error {
				st, err := readStatus(cmd.Context(), store)
				if err != nil {
					return err
				}
				return printStatus(out, st, asJSON)
			}
			if err := show(); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			log := cli.GetLogger(cmd)
			return store.Watch(cmd.Context(), state.DefaultDebounce, log, func() {
				if !asJSON {
					logging.NewPrettyLogger().WithWriter(out).Divider()
				}
				if err := show(); err != nil {
					logging.NewPrettyLogger().WithWriter(cmd.ErrOrStderr()).ErrorPretty("Failed to read state", err)
				}
			})
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep running and print the status whenever the state file changes")
	return cmd
}

func printStatus(w io.Writer, st Status, asJSON bool) error {
	if asJSON {
		data, err := json.Marshal(st)
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	p := logging.NewPrettyLogger().WithWriter(w)
	if st.Completed {
		p.Success("Onboarding tour completed")
	} else {
		p.InfoPretty("Onboarding tour not completed; it will show on the next launch")
	}
	if st.MorningAlerts != "" {
		p.Field("morning alerts", st.MorningAlerts)
	}
	p.Path("state", st.StatePath)
	return nil
}

// statusOnce is used by other commands to report the resulting state.
func statusOnce(ctx context.Context, w io.Writer, store *state.Store, asJSON bool) error {
	st, err := readStatus(ctx, store)
	if err != nil {
		return err
	}
	return printStatus(w, st, asJSON)
}
