package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/strumyk"
	"github.com/aretw0/strumyk/internal/presentation/tui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of strumyk",
	Run: func(cmd *cobra.Command, args []string) {
		tui.PrintBanner(cmd.OutOrStdout(), strumyk.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
