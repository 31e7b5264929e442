package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kaki-lang/kaki/internal/bundle"
	"github.com/kaki-lang/kaki/internal/config"
	"github.com/kaki-lang/kaki/internal/declfile"
	"github.com/kaki-lang/kaki/internal/kernel"
	"github.com/kaki-lang/kaki/internal/value"
)

// setupColor applies the --color flag; "auto" means color only on a tty.
func setupColor(cmd *cobra.Command) {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isatty.IsTerminal(os.Stdout.Fd())
	}
}

var (
	headColor = color.New(color.FgCyan, color.Bold)
	okColor   = color.New(color.FgGreen)
	errColor  = color.New(color.FgRed, color.Bold)
)

func fail(err error) error {
	errColor.Fprintln(os.Stderr, "error:", err)
	return err
}

// loadKernel builds a kernel and loads the declaration file (YAML) or
// compiled bundle at path into its store.
func loadKernel(path string) (*kernel.Kernel, error) {
	k := kernel.New()
	if strings.HasSuffix(path, config.BundleFileExt) {
		p, err := bundle.Read(path)
		if err != nil {
			return nil, err
		}
		if err := declfile.Build(&p.File, k.Store()); err != nil {
			return nil, err
		}
		return k, nil
	}
	recognized := false
	for _, ext := range config.DeclFileExtensions {
		if strings.HasSuffix(path, ext) {
			recognized = true
			break
		}
	}
	if !recognized {
		return nil, fmt.Errorf("%s: expected a declaration file (%s) or bundle (%s)",
			path, strings.Join(config.DeclFileExtensions, ", "), config.BundleFileExt)
	}
	if err := declfile.LoadFile(path, k.Store()); err != nil {
		return nil, err
	}
	return k, nil
}

// parseArgument turns a CLI token into a call-site argument: `name=value`
// is a keyword argument, a `*` prefix spreads a sequence, `**` spreads a
// mapping, everything else is positional. Values are YAML scalars.
func parseArgument(token string) (kernel.Argument, error) {
	spread := false
	spreadNamed := false
	if strings.HasPrefix(token, "**") {
		spreadNamed = true
		token = token[2:]
	} else if strings.HasPrefix(token, "*") {
		spread = true
		token = token[1:]
	}
	name := ""
	if !spread && !spreadNamed {
		if eq := strings.Index(token, "="); eq > 0 {
			name = token[:eq]
			token = token[eq+1:]
		}
	}
	var raw any
	if err := yaml.Unmarshal([]byte(token), &raw); err != nil {
		return kernel.Argument{}, fmt.Errorf("argument %q: %w", token, err)
	}
	v, err := declfile.ScalarValue(raw)
	if err != nil {
		return kernel.Argument{}, fmt.Errorf("argument %q: %w", token, err)
	}
	switch {
	case spreadNamed:
		return kernel.SpreadNamed(v), nil
	case spread:
		return kernel.Spread(v), nil
	case name != "":
		return kernel.Named(name, v), nil
	default:
		return kernel.Pos(v), nil
	}
}

func printBound(b *kernel.BoundArguments) {
	for _, name := range b.Names() {
		fmt.Printf("  %s = %s\n", name, b.Get(name).Inspect())
	}
	if b.Len() == 0 {
		fmt.Println("  (no parameters)")
	}
}

func inspectOrNone(v value.Value) string {
	if v == nil {
		return value.None.Inspect()
	}
	return v.Inspect()
}
