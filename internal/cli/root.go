// Package cli implements the lifegame command-line interface using
// Cobra. Each subcommand maps to one tracker or sync operation.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lifegame",
	Short: "lifegame — Turn your habits into a game",
	Long: `lifegame is a local-first habit tracker.
Complete daily goals, earn XP, level up, and keep your streak alive.
All data lives on your machine; sync to a backup server is optional.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var cliVersion = "dev"

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	cliVersion = version
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
