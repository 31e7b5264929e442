package kernel

import (
	"fmt"
	"math"
	"strings"

	"github.com/kaki-lang/kaki/internal/value"
)

// The prelude gives primitive values real type declarations so they take
// part in dispatch and operator brokering exactly like user instances.
// Operator bodies return the NotImplemented sentinel for operand kinds
// they do not recognize, which is what feeds the broker's reverse phase.

// binOp builds a public forward (or reverse) operator member with the
// single required operand parameter every binary operator takes.
func binOp(name string, fn func(k *Kernel, self, other value.Value) (value.Value, error)) *Member {
	return &Member{
		Name:       name,
		Kind:       MethodMember,
		Visibility: PublicVis,
		Sig:        MustDescriptor(Param{Name: "other", Class: RequiredParam}),
		Body: func(c *Call) (value.Value, error) {
			return fn(c.Kernel, c.Self, c.Args.Get("other"))
		},
	}
}

func method(name string, sig *CallableDescriptor, body Fn) *Member {
	return &Member{Name: name, Kind: MethodMember, Visibility: PublicVis, Sig: sig, Body: body}
}

// universalMembers is the contribution of the universal base trait: string
// rendering, hashing, and identity equality. Types override `==` freely;
// these are the floor every value stands on.
func universalMembers() []*Member {
	return []*Member{
		method("str", emptyDescriptor, func(c *Call) (value.Value, error) {
			return &value.Str{Value: c.Self.Inspect()}, nil
		}),
		method("hash", emptyDescriptor, func(c *Call) (value.Value, error) {
			return &value.Int{Value: int64(c.Self.Hash())}, nil
		}),
		binOp("==", func(k *Kernel, self, other value.Value) (value.Value, error) {
			return value.FromBool(self == other), nil
		}),
		binOp("!=", func(k *Kernel, self, other value.Value) (value.Value, error) {
			return value.FromBool(self != other), nil
		}),
	}
}

func (k *Kernel) registerPrelude() {
	k.RegisterBuiltin(value.INT_VAL, NewType(TypeSpec{Name: "Int", Members: intMembers()}))
	k.RegisterBuiltin(value.FLOAT_VAL, NewType(TypeSpec{Name: "Float", Members: floatMembers()}))
	k.RegisterBuiltin(value.BOOL_VAL, NewType(TypeSpec{Name: "Bool", Members: boolMembers()}))
	k.RegisterBuiltin(value.STR_VAL, NewType(TypeSpec{Name: "Str", Members: strMembers()}))
	k.RegisterBuiltin(value.SEQ_VAL, NewType(TypeSpec{Name: "Seq", Members: seqMembers()}))
	k.RegisterBuiltin(value.MAP_VAL, NewType(TypeSpec{Name: "Map"}))
	k.RegisterBuiltin(value.BLOCK_VAL, NewType(TypeSpec{Name: "Block"}))
	k.RegisterBuiltin(value.NONE_VAL, NewType(TypeSpec{Name: "NoneType"}))
	k.RegisterBuiltin(value.TYPE_VAL, NewType(TypeSpec{Name: "Type"}))
}

// asFloat widens Int or Float operands; ok is false for everything else.
func asFloat(v value.Value) (float64, bool) {
	switch v := v.(type) {
	case *value.Int:
		return float64(v.Value), true
	case *value.Float:
		return v.Value, true
	}
	return 0, false
}

func intMembers() []*Member {
	arith := func(name string, ints func(a, b int64) (value.Value, error)) *Member {
		return binOp(name, func(k *Kernel, self, other value.Value) (value.Value, error) {
			a := self.(*value.Int).Value
			switch o := other.(type) {
			case *value.Int:
				return ints(a, o.Value)
			case *value.Float:
				f, err := floatArith(name, float64(a), o.Value)
				if err != nil {
					return nil, err
				}
				return f, nil
			}
			return value.NotImplemented, nil
		})
	}
	cmp := func(name string, fn func(a, b float64) bool) *Member {
		return binOp(name, func(k *Kernel, self, other value.Value) (value.Value, error) {
			a := float64(self.(*value.Int).Value)
			b, ok := asFloat(other)
			if !ok {
				return value.NotImplemented, nil
			}
			return value.FromBool(fn(a, b)), nil
		})
	}
	bitwise := func(name string, fn func(a, b int64) int64) *Member {
		return binOp(name, func(k *Kernel, self, other value.Value) (value.Value, error) {
			o, ok := other.(*value.Int)
			if !ok {
				return value.NotImplemented, nil
			}
			return &value.Int{Value: fn(self.(*value.Int).Value, o.Value)}, nil
		})
	}
	return []*Member{
		arith("+", func(a, b int64) (value.Value, error) { return &value.Int{Value: a + b}, nil }),
		arith("-", func(a, b int64) (value.Value, error) { return &value.Int{Value: a - b}, nil }),
		arith("*", func(a, b int64) (value.Value, error) { return &value.Int{Value: a * b}, nil }),
		arith("/", func(a, b int64) (value.Value, error) {
			if b == 0 {
				return nil, fmt.Errorf("division by zero")
			}
			return &value.Float{Value: float64(a) / float64(b)}, nil
		}),
		arith("//", func(a, b int64) (value.Value, error) {
			if b == 0 {
				return nil, fmt.Errorf("division by zero")
			}
			q := a / b
			if (a%b != 0) && ((a < 0) != (b < 0)) {
				q--
			}
			return &value.Int{Value: q}, nil
		}),
		arith("%", func(a, b int64) (value.Value, error) {
			if b == 0 {
				return nil, fmt.Errorf("division by zero")
			}
			r := a % b
			if r != 0 && ((a < 0) != (b < 0)) {
				r += b
			}
			return &value.Int{Value: r}, nil
		}),
		arith("**", func(a, b int64) (value.Value, error) {
			if b < 0 {
				return &value.Float{Value: math.Pow(float64(a), float64(b))}, nil
			}
			return intPow(a, b)
		}),
		cmp("==", func(a, b float64) bool { return a == b }),
		cmp("!=", func(a, b float64) bool { return a != b }),
		cmp("<", func(a, b float64) bool { return a < b }),
		cmp("<=", func(a, b float64) bool { return a <= b }),
		cmp(">", func(a, b float64) bool { return a > b }),
		cmp(">=", func(a, b float64) bool { return a >= b }),
		bitwise("&", func(a, b int64) int64 { return a & b }),
		bitwise("|", func(a, b int64) int64 { return a | b }),
		bitwise("^", func(a, b int64) int64 { return a ^ b }),
		shift("<<", func(a int64, b uint) int64 { return a << b }),
		shift(">>", func(a int64, b uint) int64 { return a >> b }),
	}
}

// shift builds a shift operator member: the count must be a non-negative
// int, anything else is an error rather than a silent zero.
func shift(name string, fn func(a int64, b uint) int64) *Member {
	return binOp(name, func(k *Kernel, self, other value.Value) (value.Value, error) {
		o, ok := other.(*value.Int)
		if !ok {
			return value.NotImplemented, nil
		}
		if o.Value < 0 {
			return nil, fmt.Errorf("negative shift count %d", o.Value)
		}
		return &value.Int{Value: fn(self.(*value.Int).Value, uint(o.Value))}, nil
	})
}

// intPow raises a to a non-negative power by squaring, reporting overflow
// instead of wrapping.
func intPow(a, b int64) (value.Value, error) {
	mul := func(x, y int64) (int64, bool) {
		if x == 0 || y == 0 {
			return 0, true
		}
		if (x == math.MinInt64 && y == -1) || (y == math.MinInt64 && x == -1) {
			// Wraps, and the division check below would trap on it.
			return 0, false
		}
		p := x * y
		if p/y != x {
			return 0, false
		}
		return p, true
	}
	out := int64(1)
	base := a
	for e := b; e > 0; e >>= 1 {
		var ok bool
		if e&1 == 1 {
			if out, ok = mul(out, base); !ok {
				return nil, fmt.Errorf("integer overflow in %d ** %d", a, b)
			}
		}
		if e > 1 {
			if base, ok = mul(base, base); !ok {
				return nil, fmt.Errorf("integer overflow in %d ** %d", a, b)
			}
		}
	}
	return &value.Int{Value: out}, nil
}

// floatArith is shared by Int (widening) and Float operator bodies.
func floatArith(name string, a, b float64) (value.Value, error) {
	switch name {
	case "+":
		return &value.Float{Value: a + b}, nil
	case "-":
		return &value.Float{Value: a - b}, nil
	case "*":
		return &value.Float{Value: a * b}, nil
	case "/":
		if b == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return &value.Float{Value: a / b}, nil
	case "//":
		if b == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return &value.Float{Value: math.Floor(a / b)}, nil
	case "%":
		if b == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		m := math.Mod(a, b)
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return &value.Float{Value: m}, nil
	case "**":
		return &value.Float{Value: math.Pow(a, b)}, nil
	}
	return value.NotImplemented, nil
}

func floatMembers() []*Member {
	arith := func(name string) *Member {
		return binOp(name, func(k *Kernel, self, other value.Value) (value.Value, error) {
			b, ok := asFloat(other)
			if !ok {
				return value.NotImplemented, nil
			}
			return floatArith(name, self.(*value.Float).Value, b)
		})
	}
	cmp := func(name string, fn func(a, b float64) bool) *Member {
		return binOp(name, func(k *Kernel, self, other value.Value) (value.Value, error) {
			b, ok := asFloat(other)
			if !ok {
				return value.NotImplemented, nil
			}
			return value.FromBool(fn(self.(*value.Float).Value, b)), nil
		})
	}
	return []*Member{
		arith("+"), arith("-"), arith("*"), arith("/"), arith("//"), arith("%"), arith("**"),
		cmp("==", func(a, b float64) bool { return a == b }),
		cmp("!=", func(a, b float64) bool { return a != b }),
		cmp("<", func(a, b float64) bool { return a < b }),
		cmp("<=", func(a, b float64) bool { return a <= b }),
		cmp(">", func(a, b float64) bool { return a > b }),
		cmp(">=", func(a, b float64) bool { return a >= b }),
	}
}

func boolMembers() []*Member {
	logical := func(name string, fn func(a, b bool) bool) *Member {
		return binOp(name, func(k *Kernel, self, other value.Value) (value.Value, error) {
			o, ok := other.(*value.Bool)
			if !ok {
				return value.NotImplemented, nil
			}
			return value.FromBool(fn(self.(*value.Bool).Value, o.Value)), nil
		})
	}
	return []*Member{
		logical("==", func(a, b bool) bool { return a == b }),
		logical("!=", func(a, b bool) bool { return a != b }),
		logical("&", func(a, b bool) bool { return a && b }),
		logical("|", func(a, b bool) bool { return a || b }),
		logical("^", func(a, b bool) bool { return a != b }),
	}
}

func strMembers() []*Member {
	return []*Member{
		binOp("+", func(k *Kernel, self, other value.Value) (value.Value, error) {
			o, ok := other.(*value.Str)
			if !ok {
				return value.NotImplemented, nil
			}
			return &value.Str{Value: self.(*value.Str).Value + o.Value}, nil
		}),
		binOp("*", func(k *Kernel, self, other value.Value) (value.Value, error) {
			o, ok := other.(*value.Int)
			if !ok || o.Value < 0 {
				return value.NotImplemented, nil
			}
			return &value.Str{Value: strings.Repeat(self.(*value.Str).Value, int(o.Value))}, nil
		}),
		binOp("==", func(k *Kernel, self, other value.Value) (value.Value, error) {
			o, ok := other.(*value.Str)
			if !ok {
				return value.NotImplemented, nil
			}
			return value.FromBool(self.(*value.Str).Value == o.Value), nil
		}),
		binOp("!=", func(k *Kernel, self, other value.Value) (value.Value, error) {
			o, ok := other.(*value.Str)
			if !ok {
				return value.NotImplemented, nil
			}
			return value.FromBool(self.(*value.Str).Value != o.Value), nil
		}),
		binOp("<", func(k *Kernel, self, other value.Value) (value.Value, error) {
			o, ok := other.(*value.Str)
			if !ok {
				return value.NotImplemented, nil
			}
			return value.FromBool(self.(*value.Str).Value < o.Value), nil
		}),
		method("len", emptyDescriptor, func(c *Call) (value.Value, error) {
			return &value.Int{Value: int64(len(c.Self.(*value.Str).Value))}, nil
		}),
	}
}

func seqMembers() []*Member {
	return []*Member{
		binOp("+", func(k *Kernel, self, other value.Value) (value.Value, error) {
			o, ok := other.(*value.Seq)
			if !ok {
				return value.NotImplemented, nil
			}
			s := self.(*value.Seq)
			joined := make([]value.Value, 0, len(s.Elements)+len(o.Elements))
			joined = append(joined, s.Elements...)
			joined = append(joined, o.Elements...)
			return value.NewSeq(joined...), nil
		}),
		method("len", emptyDescriptor, func(c *Call) (value.Value, error) {
			return &value.Int{Value: int64(c.Self.(*value.Seq).Len())}, nil
		}),
	}
}
