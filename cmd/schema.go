package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/tour/config"
	"github.com/grovetools/tour/schema"
)

func NewSchemaCmd() *cobra.Command {
	var generated bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of tour.yml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			if generated {
				var err error
				if data, err = config.GenerateSchema(); err != nil {
					return err
				}
			} else {
				data = schema.Schema()
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&generated, "generated", false, "Reflect the schema from the config types instead of printing the embedded one")
	return cmd
}
