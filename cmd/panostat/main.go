// Package main provides the entry point for the panostat CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sumidera/panostat/cmd/panostat/commands"
	"github.com/sumidera/panostat/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "panostat",
		Short: "Panostat - labeled radiograph corpus statistics",
		Long: `Panostat explores a labeled panoramic-radiograph corpus.

Commands:
  stats     Aggregate corpus statistics in a single pass`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add commands.
	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "panostat %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
