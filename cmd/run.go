package cmd

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grovetools/tour/cli"
	"github.com/grovetools/tour/config"
	"github.com/grovetools/tour/logging"
	"github.com/grovetools/tour/notify"
	"github.com/grovetools/tour/state"
	"github.com/grovetools/tour/tour"
	"github.com/grovetools/tour/tui"
	"github.com/grovetools/tour/tui/components/scoreboard"
	"github.com/grovetools/tour/tui/components/tourview"
	"github.com/grovetools/tour/tui/keymap"
	"github.com/grovetools/tour/tui/theme"
)

func NewRunCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the game summaries screen with the onboarding tour",
		Long: `Open the game summaries screen. On first launch the onboarding tour
appears after a short delay; once finished or skipped it stays hidden on
later launches.

Examples:
  tour run
  # show the tour again
  tour run --reset`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := openStore(cmd)
			if err != nil {
				return err
			}
			log := cli.GetLogger(cmd)

			if reset {
				if err := store.Delete(tour.CompletionKey); err != nil {
					return err
				}
			}

			ctl, err := newController(cfg, store, log, tour.SystemClock)
			if err != nil {
				return err
			}

			tui.InitializeTUI()
			overlay := tourview.New(ctl,
				tourview.WithKeys(keymap.Load(cfg)),
				tourview.WithTheme(theme.NewThemeWithName(cfg.TUI.Theme)),
				tourview.WithFrameInterval(cfg.TUI.FrameInterval()),
				tourview.WithContext(cmd.Context()),
				tourview.WithLogger(logging.NewLogger("tourview")),
			)

			// Log lines must not tear through the alt screen; file sinks
			// still receive them.
			previous := logging.SetGlobalOutput(io.Discard)
			defer logging.SetGlobalOutput(previous)

			p := tea.NewProgram(scoreboard.New(overlay),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := p.Run(); err != nil {
				return err
			}

			log.WithField("phase", ctl.State().Phase.String()).Debug("Tour host exited")
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Clear the completion flag first so the tour shows again")
	return cmd
}

// newController wires the controller to the state file and the configured
// notification command. Enabling notifications is recorded in the same
// state file.
func newController(cfg *config.Config, store *state.Store, log *logrus.Entry, clock tour.Clock) (*tour.Controller, error) {
	notifier := notify.New(cfg.Notifications.Command,
		notify.WithTimeout(cfg.Notifications.TimeoutDuration()),
		notify.WithLogger(logging.NewLogger("notify")),
	)

	return tour.NewController(tour.Options{
		Persistence:   state.NewGateway(store),
		Notifications: notifier,
		Logger:        logging.NewLogger("tour"),
		Clock:         clock,
		OnComplete: func() {
			log.Debug("Onboarding tour completed")
		},
		OnNotificationsEnabled: func() {
			if err := store.Set(MorningAlertsKey, "enabled"); err != nil {
				log.WithError(err).Warn("Failed to record morning alerts preference")
			}
		},
	})
}
