package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kaki-lang/kaki/internal/bundle"
	"github.com/kaki-lang/kaki/internal/config"
)

var compileCmd = &cobra.Command{
	Use:   "compile <declfile>",
	Short: "Compile a YAML declaration set into a bundle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setupColor(cmd)
		src, err := os.ReadFile(args[0])
		if err != nil {
			return fail(err)
		}
		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			out = strings.TrimSuffix(strings.TrimSuffix(args[0], ".yaml"), ".yml") + config.BundleFileExt
		}
		if err := bundle.Write(out, src); err != nil {
			return fail(err)
		}
		fmt.Printf("wrote %s\n", out)
		return nil
	},
}

func init() {
	compileCmd.Flags().StringP("output", "o", "", "output bundle path")
}
