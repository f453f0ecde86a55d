package main

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dripfeed",
	Short: "Dripfeed - rate-limited line-by-line paste delivery bot",
	Long: `Dripfeed delivers text files to chat targets one line at a time on a
fixed interval, so long pastes never flood a channel. Pastes survive
disconnects and can be stopped and resumed per target.`,
	Version: Version,
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}
