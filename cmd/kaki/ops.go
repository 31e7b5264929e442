package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaki-lang/kaki/internal/kernel"
)

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "List the overloadable binary operators and their dispatch members",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		setupColor(cmd)
		headColor.Printf("%-10s %-10s %s\n", "operator", "forward", "reverse")
		for _, spec := range kernel.BinaryOps() {
			fmt.Printf("%-10s %-10s %s\n", spec.Name, spec.Forward, spec.Reverse)
		}
		return nil
	},
}
