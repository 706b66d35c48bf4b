package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grovetools/tour/cli"
	"github.com/grovetools/tour/cmd"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"tour",
		"Guided onboarding tour for the game summaries screen",
	)

	rootCmd.AddCommand(cmd.NewRunCmd())
	rootCmd.AddCommand(cmd.NewStatusCmd())
	rootCmd.AddCommand(cmd.NewResetCmd())
	rootCmd.AddCommand(cmd.NewConfigCmd())
	rootCmd.AddCommand(cmd.NewSchemaCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())
	cli.ApplyStyledHelpRecursive(rootCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		cli.NewErrorHandler(verbose).Handle(err)
		stop()
		os.Exit(1)
	}
}
