package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaki-lang/kaki/internal/kernel"
)

var bindCmd = &cobra.Command{
	Use:   "bind <declfile> <Type> <member> [arg|name=val|*seq|**map ...]",
	Short: "Dry-run the call binder against a member's parameter list",
	Long: `Binds a call site against a member's formal parameters without invoking
anything, printing the bound record or the typed binding failure.`,
	Args: cobra.MinimumNArgs(3),
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
		m, err := k.Resolve(rt, args[2], nil, kernel.Context{}, kernel.ViaInstance)
		if err != nil {
			return fail(err)
		}

		var callArgs []kernel.Argument
		for _, token := range args[3:] {
			a, err := parseArgument(token)
			if err != nil {
				return fail(err)
			}
			callArgs = append(callArgs, a)
		}
		bound, err := kernel.Bind(m.Sig, kernel.Args(callArgs...))
		if err != nil {
			return fail(err)
		}
		okColor.Printf("bound %s.%s:\n", m.Owner.DeclName(), m.Name)
		printBound(bound)
		return nil
	},
}
