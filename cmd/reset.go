package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/tour/cli"
	"github.com/grovetools/tour/tour"
)

func NewResetCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the completion flag so the tour shows again",
		Long: `Clear the completion flag so the tour shows on the next launch.

Examples:
  tour reset
  # also forget the morning alerts choice
  tour reset --all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openStore(cmd)
			if err != nil {
				return err
			}
			log := cli.GetLogger(cmd)

			if err := store.Delete(tour.CompletionKey); err != nil {
				return err
			}
			if all {
				if err := store.Delete(MorningAlertsKey); err != nil {
					return err
				}
			}
			log.WithField("path", store.Path()).Debug("Tour state reset")

			return statusOnce(cmd.Context(), cmd.OutOrStdout(), store, cli.GetOptions(cmd).JSONOutput)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Also clear the morning alerts preference")
	return cmd
}
