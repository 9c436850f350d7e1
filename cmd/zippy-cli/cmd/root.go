package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "zippy-cli",
	Short: "ZippyTrip CLI tool",
	Long: `zippy-cli inspects and prepares a ZippyTrip deployment.

It prints the navigation gate's decision table, lists the travel catalog
and applies the SurrealDB schema.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
