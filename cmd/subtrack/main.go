package main

import (
	"os"

	"github.com/spf13/cobra"

	"subtrack/internal/interfaces/cli/migrate"
	"subtrack/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "subtrack",
		Short: "Subtrack - subscription lifecycle service",
		Long:  `Subtrack manages subscription lifecycles: plan purchase, plan changes, cancellation and automatic expiration.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
