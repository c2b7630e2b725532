// Package commands provides the CLI commands for the gala tool.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gala",
	Short: "GALA initialization-safety checker",
	Long: `GALA checks class bodies for initialization-safety violations: reads of
fields before they're set, calls to overridable methods during
construction, and leaks of partially-built "this" across assignments and
constructor calls.

Usage:
  gala check fixture.json [more.json...]   Check one or more class fixtures
  gala version                             Print version`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}
