package value

import (
	"fmt"
	"math"
	"strconv"
)

// Bool
type Bool struct {
	Value bool
}

func (b *Bool) Kind() Kind      { return BOOL_VAL }
func (b *Bool) Inspect() string { return fmt.Sprintf("%t", b.Value) }
func (b *Bool) Hash() uint32 {
	if b.Value {
		return 1
	}
	return 0
}

// Int
type Int struct {
	Value int64
}

func (i *Int) Kind() Kind      { return INT_VAL }
func (i *Int) Inspect() string { return strconv.FormatInt(i.Value, 10) }
func (i *Int) Hash() uint32 {
	return uint32(i.Value ^ (i.Value >> 32))
}

// Float
type Float struct {
	Value float64
}

func (f *Float) Kind() Kind      { return FLOAT_VAL }
func (f *Float) Inspect() string { return fmt.Sprintf("%g", f.Value) }
func (f *Float) Hash() uint32 {
	bits := math.Float64bits(f.Value)
	return uint32(bits ^ (bits >> 32))
}

// Str
type Str struct {
	Value string
}

func (s *Str) Kind() Kind      { return STR_VAL }
func (s *Str) Inspect() string { return strconv.Quote(s.Value) }
func (s *Str) Hash() uint32    { return hashString(s.Value) }

var (
	TRUE  = &Bool{Value: true}
	FALSE = &Bool{Value: false}
)

// FromBool returns the shared Bool singleton for b.
func FromBool(b bool) *Bool {
	if b {
		return TRUE
	}
	return FALSE
}
