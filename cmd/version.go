package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/tour/cli"
)

func NewVersionCmd() *cobra.Command {
	return cli.NewVersionCommand("tour")
}
