// Command kaki is the declaration-set inspector for the Kaki object-model
// runtime: it loads trait/type declarations from YAML (or a compiled
// bundle), and exposes linearization, member resolution, call binding, and
// the operator table for inspection.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kaki",
	Short: "Kaki object-model runtime inspector",
	Long:  "Inspect Kaki declaration sets: trait linearization, member resolution, call binding, and operator dispatch.",
}

func main() {
	rootCmd.AddCommand(linCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(bindCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(opsCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
