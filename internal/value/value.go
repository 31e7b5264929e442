// Package value defines the runtime value representation shared by the
// object-model kernel, the declaration loader, and the CLI. The kernel
// itself only depends on a handful of operations: kind inspection, the two
// sentinel singletons, and the ordered sequence/mapping types used for
// variadic collection and spread expansion.
package value

import "hash/fnv"

type Kind string

const (
	NONE_VAL     = "NONE"
	NOT_IMPL_VAL = "NOT_IMPLEMENTED"
	BOOL_VAL     = "BOOL"
	INT_VAL      = "INT"
	FLOAT_VAL    = "FLOAT"
	STR_VAL      = "STR"
	SEQ_VAL      = "SEQ"
	MAP_VAL      = "MAP"
	BLOCK_VAL    = "BLOCK"
	INSTANCE_VAL = "INSTANCE"
	TYPE_VAL     = "TYPE"
)

type Value interface {
	Kind() Kind
	Inspect() string
	Hash() uint32
}

// Helper for hashing strings
func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

// IsNone reports whether v is the absent sentinel. A nil Value is treated
// as absent as well, so callers never observe a Go nil escaping the kernel.
func IsNone(v Value) bool {
	return v == nil || v == None
}

// IsNotImplemented reports whether v is the operator fallback sentinel.
// The check is identity-based; no coercion or comparison protocol runs.
func IsNotImplemented(v Value) bool {
	return v == NotImplemented
}
