// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "daily-contrib",
	Short: "A CLI tool to report daily contributor activity for a GitHub repository.",
	Long: `daily-contrib checks, for every contributor of a source repository, whether
they had qualifying activity (pushes or branch/repository creation) on the
current calendar day in a fixed timezone, and publishes the summary as a new
issue on a destination repository.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}
