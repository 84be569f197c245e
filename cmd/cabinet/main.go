package main

import (
	"os"

	"github.com/spf13/cobra"

	"cabinet/internal/interfaces/cli/inbox"
	"cabinet/internal/interfaces/cli/migrate"
	"cabinet/internal/interfaces/cli/server"
	"cabinet/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "cabinet",
		Short:        "Cabinet - internal messaging and notifications for practice workspaces",
		Version:      version.String(),
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		inbox.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
