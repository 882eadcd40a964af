// Package cli provides the gunsmith command-line front end: a thin cobra
// wrapper around the same mediator pipeline the HTTP API uses, for
// scripting and local debugging without standing up a server.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// NewRootCommand creates the root gunsmith command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gunsmith",
		Short: "Gunsmith - Tarkov weapon loadout optimizer",
		Long: `Gunsmith builds and solves an optimal weapon loadout under budget,
ergonomics, and recoil constraints.

Examples:
  gunsmith serve
  gunsmith optimize --weapon 5447a9cd4bdc2dbd208b4567 --max-price 500000
  gunsmith explore --weapon 5447a9cd4bdc2dbd208b4567 --ignore price`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")

	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewOptimizeCommand())
	rootCmd.AddCommand(NewExploreCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
