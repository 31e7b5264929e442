package kernel

import (
	"errors"
	"testing"

	"github.com/kaki-lang/kaki/internal/value"
)

// numberType builds a wrapper type around an int field with a forward `+`
// for ints only and a commuting reverse `r+`, the classic mixed-operand
// overload shape.
func numberType(k *Kernel) *TypeDecl {
	var ty *TypeDecl
	add := func(c *Call) (value.Value, error) {
		other, ok := c.Args.Get("other").(*value.Int)
		if !ok {
			return value.NotImplemented, nil
		}
		self := c.Self.(*Instance)
		n := self.Fields(ty).Get("n").(*value.Int)
		sum, err := c.Kernel.Instantiate(ty, "new", Args(Pos(intv(n.Value+other.Value))))
		if err != nil {
			return nil, err
		}
		return sum, nil
	}
	ty = NewType(TypeSpec{
		Name:   "Number",
		Fields: []string{"n"},
		Members: []*Member{
			binOp("+", func(k *Kernel, self, other value.Value) (value.Value, error) { return nil, nil }),
			binOp("r+", func(k *Kernel, self, other value.Value) (value.Value, error) { return nil, nil }),
		},
		Constructors: []*Constructor{{
			Name: "new",
			Sig:  MustDescriptor(Param{Name: "v", Class: RequiredParam}),
			Body: func(c *Call) (value.Value, error) {
				c.Self.(*Instance).Fields(ty).Set("n", c.Args.Get("v"))
				return value.None, nil
			},
		}},
	})
	// The operator bodies close over ty, so they are attached after the
	// type exists.
	for _, m := range ty.OwnMembers() {
		m.Body = add
	}
	return k.Store().AddType(ty)
}

func numberValue(t *testing.T, ty *TypeDecl, v value.Value) int64 {
	t.Helper()
	inst, ok := v.(*Instance)
	if !ok {
		t.Fatalf("result %s, want a Number instance", v.Inspect())
	}
	n, ok := inst.Fields(ty).Get("n").(*value.Int)
	if !ok {
		t.Fatal("Number instance has no n field")
	}
	return n.Value
}

func TestApplyBinaryReversePhase(t *testing.T) {
	k := New()
	ty := numberType(k)
	seven, err := k.Instantiate(ty, "new", Args(Pos(intv(7))))
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	// Int's forward + declines the instance operand; Number's reverse r+
	// must pick it up.
	out, err := k.ApplyBinary("+", intv(5), seven)
	if err != nil {
		t.Fatalf("ApplyBinary: %v", err)
	}
	if got := numberValue(t, ty, out); got != 12 {
		t.Fatalf("5 + Number(7) = Number(%d), want Number(12)", got)
	}

	// Forward phase handles the mirrored ordering directly.
	out, err = k.ApplyBinary("+", seven, intv(5))
	if err != nil {
		t.Fatalf("ApplyBinary: %v", err)
	}
	if got := numberValue(t, ty, out); got != 12 {
		t.Fatalf("Number(7) + 5 = Number(%d), want Number(12)", got)
	}
}

func TestApplyBinarySameTypeShortCircuit(t *testing.T) {
	k := New()
	// Forward + declines unconditionally; the reverse would "succeed" but
	// must never be consulted for same-type operands.
	reverseRan := false
	ty := k.Store().AddType(NewType(TypeSpec{
		Name: "X",
		Members: []*Member{
			binOp("+", func(k *Kernel, self, other value.Value) (value.Value, error) {
				return value.NotImplemented, nil
			}),
			binOp("r+", func(k *Kernel, self, other value.Value) (value.Value, error) {
				reverseRan = true
				return intv(99), nil
			}),
		},
		Constructors: []*Constructor{{Name: "new"}},
	}))
	x1, err := k.Instantiate(ty, "new", Args())
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	x2, err := k.Instantiate(ty, "new", Args())
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	_, err = k.ApplyBinary("+", x1, x2)
	var unsupported *UnsupportedOperandError
	if !errors.As(err, &unsupported) {
		t.Fatalf("want UnsupportedOperandError, got %v", err)
	}
	if reverseRan {
		t.Fatal("reverse phase ran for same-type operands")
	}
}

func TestApplyBinaryPrivateOperatorDeclines(t *testing.T) {
	k := New()
	// L hides its forward + behind private visibility; operators resolve
	// from the empty context, so the broker must treat it as declining and
	// hand over to R's public reverse.
	plus := binOp("+", func(k *Kernel, self, other value.Value) (value.Value, error) {
		return intv(-1), nil
	})
	plus.Visibility = PrivateVis
	l := k.Store().AddType(NewType(TypeSpec{
		Name:         "L",
		Members:      []*Member{plus},
		Constructors: []*Constructor{{Name: "new"}},
	}))
	r := k.Store().AddType(NewType(TypeSpec{
		Name: "R",
		Members: []*Member{
			binOp("r+", func(k *Kernel, self, other value.Value) (value.Value, error) {
				return intv(42), nil
			}),
		},
		Constructors: []*Constructor{{Name: "new"}},
	}))
	lv, err := k.Instantiate(l, "new", Args())
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	rv, err := k.Instantiate(r, "new", Args())
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	out, err := k.ApplyBinary("+", lv, rv)
	if err != nil {
		t.Fatalf("ApplyBinary: %v", err)
	}
	if n, ok := out.(*value.Int); !ok || n.Value != 42 {
		t.Fatalf("L + R = %s, want 42 from the reverse phase", out.Inspect())
	}

	t.Run("private on both sides", func(t *testing.T) {
		rplus := binOp("r+", func(k *Kernel, self, other value.Value) (value.Value, error) {
			return intv(-1), nil
		})
		rplus.Visibility = PrivateVis
		r2 := k.Store().AddType(NewType(TypeSpec{
			Name:         "R2",
			Members:      []*Member{rplus},
			Constructors: []*Constructor{{Name: "new"}},
		}))
		r2v, err := k.Instantiate(r2, "new", Args())
		if err != nil {
			t.Fatalf("Instantiate: %v", err)
		}
		_, err = k.ApplyBinary("+", lv, r2v)
		var unsupported *UnsupportedOperandError
		if !errors.As(err, &unsupported) {
			t.Fatalf("want UnsupportedOperandError, got %v", err)
		}
	})
}

func TestApplyBinaryNeitherSideImplements(t *testing.T) {
	k := New()
	a := k.Store().AddType(NewType(TypeSpec{Name: "A", Constructors: []*Constructor{{Name: "new"}}}))
	b := k.Store().AddType(NewType(TypeSpec{Name: "B", Constructors: []*Constructor{{Name: "new"}}}))
	av, err := k.Instantiate(a, "new", Args())
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	bv, err := k.Instantiate(b, "new", Args())
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	_, err = k.ApplyBinary("+", av, bv)
	var unsupported *UnsupportedOperandError
	if !errors.As(err, &unsupported) {
		t.Fatalf("want UnsupportedOperandError, got %v", err)
	}
}

func TestApplyBinaryPrelude(t *testing.T) {
	k := New()
	tests := []struct {
		name string
		op   string
		lhs  value.Value
		rhs  value.Value
		want string
	}{
		{"int addition", "+", intv(1), intv(2), "3"},
		{"int widening", "+", intv(2), &value.Float{Value: 2.5}, "4.5"},
		{"floor division", "//", intv(7), intv(2), "3"},
		{"power", "**", intv(2), intv(10), "1024"},
		{"comparison", "<", intv(1), intv(2), "true"},
		{"string concat", "+", &value.Str{Value: "ka"}, &value.Str{Value: "ki"}, `"kaki"`},
		{"string repeat", "*", &value.Str{Value: "ab"}, intv(3), `"ababab"`},
		{"sequence concat", "+", value.NewSeq(intv(1)), value.NewSeq(intv(2)), "[1, 2]"},
		{"bool and", "&", value.TRUE, value.FALSE, "false"},
		{"power of negative base", "**", intv(-3), intv(3), "-27"},
		{"power zero exponent", "**", intv(0), intv(0), "1"},
		{"left shift", "<<", intv(1), intv(62), "4611686018427387904"},
		{"right shift", ">>", intv(-8), intv(1), "-4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := k.ApplyBinary(tt.op, tt.lhs, tt.rhs)
			if err != nil {
				t.Fatalf("ApplyBinary: %v", err)
			}
			if out.Inspect() != tt.want {
				t.Fatalf("%s %s %s = %s, want %s", tt.lhs.Inspect(), tt.op, tt.rhs.Inspect(), out.Inspect(), tt.want)
			}
		})
	}
}

func TestIntOperatorGuards(t *testing.T) {
	k := New()

	t.Run("power overflow is an error", func(t *testing.T) {
		// Without the guard this would wrap (or spin for huge exponents).
		for _, rhs := range []int64{64, 1 << 40} {
			_, err := k.ApplyBinary("**", intv(2), intv(rhs))
			if err == nil {
				t.Fatalf("2 ** %d succeeded, want an overflow error", rhs)
			}
		}
	})

	t.Run("negative shift count is an error", func(t *testing.T) {
		for _, op := range []string{"<<", ">>"} {
			_, err := k.ApplyBinary(op, intv(1), intv(-1))
			if err == nil {
				t.Fatalf("1 %s -1 succeeded, want a negative shift error", op)
			}
		}
	})
}

func TestApplyBinaryUnknownOperator(t *testing.T) {
	k := New()
	_, err := k.ApplyBinary("?", intv(1), intv(2))
	var unsupported *UnsupportedOperandError
	if !errors.As(err, &unsupported) {
		t.Fatalf("want UnsupportedOperandError, got %v", err)
	}
}

func TestNotImplementedIsDistinct(t *testing.T) {
	if value.IsNotImplemented(value.None) {
		t.Fatal("absent sentinel conflated with NotImplemented")
	}
	if value.IsNone(value.NotImplemented) {
		t.Fatal("NotImplemented conflated with the absent sentinel")
	}
}
