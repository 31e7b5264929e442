package value

import "fmt"

// Block is a closure passed as a trailing block argument (`&ref` or a
// literal block at the call site). The kernel treats it as opaque: the
// binder only routes it into the block parameter slot, and member bodies
// invoke it through Call.
type Block struct {
	Name string // empty for literal blocks
	Fn   func(args []Value) (Value, error)
}

func (b *Block) Kind() Kind { return BLOCK_VAL }
func (b *Block) Inspect() string {
	if b.Name != "" {
		return fmt.Sprintf("<block %s>", b.Name)
	}
	return "<block>"
}
func (b *Block) Hash() uint32 { return hashString(b.Name) }

// Call invokes the block body. A nil Fn is a loader stub that was never
// given an implementation; calling it is a host error.
func (b *Block) Call(args ...Value) (Value, error) {
	if b.Fn == nil {
		return nil, fmt.Errorf("block %q has no implementation attached", b.Name)
	}
	return b.Fn(args)
}
