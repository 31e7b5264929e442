package kernel

import (
	"sort"

	"github.com/kaki-lang/kaki/internal/config"
)

// OpSpec maps an overloadable binary operator to the member names its two
// dispatch phases resolve: the forward member declared by the left
// operand's type and the separately declared reverse member on the right
// operand's type. Unary, call, and subscript operators are plain
// single-dispatch members and do not appear here.
type OpSpec struct {
	Name    string
	Forward string
	Reverse string
}

// binaryOps is the overloadable binary operator set of the Kaki grammar.
// Forward members are named by the operator symbol itself; reverse members
// carry the `r` prefix.
var binaryOps = map[string]OpSpec{}

func init() {
	for _, sym := range []string{
		"&", "^", "==", "!=", ">", ">=", ">>", "<", "<=", "<<",
		"-", "%", "|", "+", "/", "//", "*", "**",
	} {
		binaryOps[sym] = OpSpec{Name: sym, Forward: sym, Reverse: config.ReverseOpPrefix + sym}
	}
}

// LookupOp returns the dispatch spec for an operator symbol.
func LookupOp(sym string) (OpSpec, bool) {
	spec, ok := binaryOps[sym]
	return spec, ok
}

// BinaryOps returns the overloadable operator symbols, sorted.
func BinaryOps() []OpSpec {
	out := make([]OpSpec, 0, len(binaryOps))
	for _, spec := range binaryOps {
		out = append(out, spec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
