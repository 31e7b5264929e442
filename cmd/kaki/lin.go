package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var linCmd = &cobra.Command{
	Use:   "lin <declfile> <Type>",
	Short: "Show a type's trait application order and merged member table",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		setupColor(cmd)
		k, err := loadKernel(args[0])
		if err != nil {
			return fail(err)
		}
		t, ok := k.Store().Type(args[1])
		if !ok {
			return fail(fmt.Errorf("unknown type %s", args[1]))
		}
		rt, err := k.Linearize(t)
		if err != nil {
			return fail(err)
		}

		headColor.Println("application order:")
		for i, d := range rt.Order {
			fmt.Printf("  %2d. %s\n", i+1, d.DeclName())
		}

		headColor.Println("merged members:")
		names := rt.Members()
		sort.Strings(names)
		for _, name := range names {
			m, _ := rt.Lookup(name)
			fmt.Printf("  %-20s %-14s %-8s owner=%s\n", name, m.Kind, m.Visibility, m.Owner.DeclName())
		}
		return nil
	},
}
