package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaki-lang/kaki/internal/kernel"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <declfile> <Type> <member>",
	Short: "Resolve a member name against a type's merged table",
	Args:  cobra.ExactArgs(3),
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

		via := kernel.ViaInstance
		if throughType, _ := cmd.Flags().GetBool("via-type"); throughType {
			via = kernel.ViaType
		}
		ctx := kernel.Context{}
		if from, _ := cmd.Flags().GetString("from"); from != "" {
			d, ok := k.Store().Trait(from)
			if !ok {
				ty, ok2 := k.Store().Type(from)
				if !ok2 {
					return fail(fmt.Errorf("unknown declaration %s", from))
				}
				ctx = kernel.In(ty)
			} else {
				ctx = kernel.In(d)
			}
		}
		var hint *kernel.TraitDecl
		if owner, _ := cmd.Flags().GetString("owner"); owner != "" {
			tr, ok := k.Store().Trait(owner)
			if !ok {
				return fail(fmt.Errorf("unknown trait %s", owner))
			}
			hint = tr
		}

		m, err := k.Resolve(rt, args[2], hint, ctx, via)
		if err != nil {
			return fail(err)
		}
		okColor.Printf("%s.%s\n", m.Owner.DeclName(), m.Name)
		fmt.Printf("  kind:       %s\n", m.Kind)
		fmt.Printf("  visibility: %s\n", m.Visibility)
		for _, p := range m.Sig.Params() {
			fmt.Printf("  param:      %s (%s)\n", p.Name, p.Class)
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().Bool("via-type", false, "resolve through a bare type reference instead of an instance")
	resolveCmd.Flags().String("from", "", "lexical context (declaration name) for visibility checks")
	resolveCmd.Flags().String("owner", "", "disambiguate with an explicit owning trait (Trait.member)")
}
