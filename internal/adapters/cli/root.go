package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "prodplan",
		Short: "prodplan - BUY-vs-MAKE production planning over crafting recipes",
		Long: `prodplan explores chained crafting recipes against exchange prices and
ranks production scenarios by profit per unit of factory area.

Examples:
  prodplan report --ticker POW --exchange AI1 --kind ask
  prodplan report --ticker HAL --exchange NC1 --kind avg7 --demand 250 --top 5
  prodplan report --ticker POW --exchange AI1 --force-buy LI --exclude-recipe "POW:3xHAL"
  prodplan precompute --exchange AI1 --kind ask
  prodplan fetch --exchange AI1 --out data/prices.json`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewReportCommand())
	rootCmd.AddCommand(NewPrecomputeCommand())
	rootCmd.AddCommand(NewFetchCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
