package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <declfile>",
	Short: "Validate a declaration set",
	Long: `Loads every declaration and linearizes every type, surfacing composition
cycles, unresolved abstract members, and malformed parameter lists.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setupColor(cmd)
		k, err := loadKernel(args[0])
		if err != nil {
			return fail(err)
		}
		names := k.Store().TypeNames()
		sort.Strings(names)
		bad := 0
		for _, name := range names {
			t, _ := k.Store().Type(name)
			if _, err := k.Linearize(t); err != nil {
				errColor.Printf("  %s: %v\n", name, err)
				bad++
				continue
			}
			okColor.Printf("  %s: ok\n", name)
		}
		if bad > 0 {
			return fmt.Errorf("%d of %d types failed", bad, len(names))
		}
		fmt.Printf("%d types checked\n", len(names))
		return nil
	},
}
