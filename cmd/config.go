package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/tour/cli"
	"github.com/grovetools/tour/config"
)

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Display the effective configuration",
		Long: `Shows the configuration the tour runs with: the global file
($XDG_CONFIG_HOME/grove/tour.yml) merged with the nearest project tour.yml,
with defaults filled in.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if path := cli.GetOptions(cmd).ConfigFile; path != "" {
				fmt.Fprintf(out, "# Source: %s\n", path)
			} else if cwd, err := os.Getwd(); err == nil {
				if path, err := config.FindConfigFile(cwd); err == nil {
					fmt.Fprintf(out, "# Source: %s\n", path)
				} else {
					fmt.Fprintln(out, "# Source: defaults")
				}
			}

			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprint(out, string(data))
			return nil
		},
	}
	return cmd
}
