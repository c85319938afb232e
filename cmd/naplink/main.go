package main

import (
	"os"

	"github.com/spf13/cobra"

	"naplink/internal/interfaces/cli/migrate"
	"naplink/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "naplink",
		Short: "naplink - ISP access network back office",
		Long:  `naplink manages NAP capacity, port allocation and the connection lifecycle for an ISP back office.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
