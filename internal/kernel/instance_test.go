package kernel

import (
	"errors"
	"testing"

	"github.com/kaki-lang/kaki/internal/value"
)

func TestFieldStoreAbsentSentinel(t *testing.T) {
	fs := NewFieldStore()
	if !value.IsNone(fs.Get("never")) {
		t.Fatal("unset slot must read as the absent sentinel")
	}
	fs.Set("x", intv(1))
	if got := fs.Get("x").(*value.Int).Value; got != 1 {
		t.Fatalf("x = %d, want 1", got)
	}
}

func TestFieldNamespaceIsolation(t *testing.T) {
	// Two traits and the type itself each declare a field named "state";
	// the three slots must never collide.
	k := New()
	hot := k.Store().AddTrait(NewTrait(TraitSpec{Name: "Hot", Fields: []string{"state"}}))
	cold := k.Store().AddTrait(NewTrait(TraitSpec{Name: "Cold", Fields: []string{"state"}}))
	ty := k.Store().AddType(NewType(TypeSpec{
		Name:         "Mixed",
		Compose:      DeclIDs(hot, cold),
		Fields:       []string{"state"},
		Constructors: []*Constructor{{Name: "new"}},
	}))

	inst, err := k.Instantiate(ty, "new", Args())
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	inst.Fields(hot).Set("state", intv(1))
	inst.Fields(cold).Set("state", intv(2))
	inst.Fields(ty).Set("state", intv(3))

	if inst.Fields(hot).Get("state").(*value.Int).Value != 1 {
		t.Fatal("Hot's state slot was clobbered")
	}
	if inst.Fields(cold).Get("state").(*value.Int).Value != 2 {
		t.Fatal("Cold's state slot was clobbered")
	}
	if inst.Fields(ty).Get("state").(*value.Int).Value != 3 {
		t.Fatal("the type's state slot was clobbered")
	}
}

func TestTraitConstructorsRunOncePerInstantiation(t *testing.T) {
	k := New()
	runs := map[string]int{}
	mkTrait := func(name string, compose []DeclID) *TraitDecl {
		return k.Store().AddTrait(NewTrait(TraitSpec{
			Name:    name,
			Compose: compose,
			Cons: func(c *Call) (value.Value, error) {
				runs[name]++
				return value.None, nil
			},
		}))
	}
	// Diamond: both Left and Right compose Base, but Base's constructor
	// still runs exactly once.
	base := mkTrait("Base", nil)
	left := mkTrait("Left", DeclIDs(base))
	right := mkTrait("Right", DeclIDs(base))
	ty := k.Store().AddType(NewType(TypeSpec{
		Name:         "T",
		Compose:      DeclIDs(left, right),
		Constructors: []*Constructor{{Name: "new"}},
	}))

	if _, err := k.Instantiate(ty, "new", Args()); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	for _, name := range []string{"Base", "Left", "Right"} {
		if runs[name] != 1 {
			t.Fatalf("%s constructor ran %d times, want 1", name, runs[name])
		}
	}
}

func TestInstantiateBindsConstructorArguments(t *testing.T) {
	k := New()
	var ty *TypeDecl
	ty = k.Store().AddType(NewType(TypeSpec{
		Name:   "Point",
		Fields: []string{"x", "y"},
		Constructors: []*Constructor{{
			Name: "new",
			Sig: MustDescriptor(
				Param{Name: "x", Class: RequiredParam},
				Param{Name: "y", Class: OptionalParam, Default: ConstDefault(intv(0))},
			),
			Body: func(c *Call) (value.Value, error) {
				fs := c.Self.(*Instance).Fields(ty)
				fs.Set("x", c.Args.Get("x"))
				fs.Set("y", c.Args.Get("y"))
				return value.None, nil
			},
		}},
	}))

	inst, err := k.Instantiate(ty, "new", Args(Pos(intv(3))))
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	if inst.Fields(ty).Get("x").(*value.Int).Value != 3 {
		t.Fatal("x not populated by the constructor")
	}
	if inst.Fields(ty).Get("y").(*value.Int).Value != 0 {
		t.Fatal("y did not take its default")
	}

	t.Run("unknown constructor", func(t *testing.T) {
		_, err := k.Instantiate(ty, "origin", Args())
		var unknown *UnknownMemberError
		if !errors.As(err, &unknown) {
			t.Fatalf("want UnknownMemberError, got %v", err)
		}
	})

	t.Run("binding failure aborts instantiation", func(t *testing.T) {
		_, err := k.Instantiate(ty, "new", Args())
		var missing *MissingRequiredArgumentError
		if !errors.As(err, &missing) {
			t.Fatalf("want MissingRequiredArgumentError, got %v", err)
		}
	})
}

func TestStaticFieldsShared(t *testing.T) {
	k := New()
	ty := k.Store().AddType(NewType(TypeSpec{
		Name:         "Counter",
		Statics:      []string{"count"},
		Constructors: []*Constructor{{Name: "new"}},
	}))

	if !value.IsNone(ty.StaticFields().Get("count")) {
		t.Fatal("unset static slot must read as the absent sentinel")
	}
	ty.StaticFields().Set("count", intv(41))

	a, err := k.Instantiate(ty, "new", Args())
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	// One slot per type: the instance sees the shared value through its
	// type, and updating it is visible everywhere.
	if a.ResolvedType().Type.StaticFields().Get("count").(*value.Int).Value != 41 {
		t.Fatal("instance does not share the type's static slot")
	}
	ty.StaticFields().Set("count", intv(42))
	if a.ResolvedType().Type.StaticFields().Get("count").(*value.Int).Value != 42 {
		t.Fatal("static update not visible through the instance's type")
	}
}

func TestCallThroughKernel(t *testing.T) {
	k := New()
	var ty *TypeDecl
	ty = k.Store().AddType(NewType(TypeSpec{
		Name:   "Greeter",
		Fields: []string{"name"},
		Members: []*Member{
			method("greet",
				MustDescriptor(Param{Name: "punct", Class: OptionalParam, Default: ConstDefault(&value.Str{Value: "!"})}),
				func(c *Call) (value.Value, error) {
					name := c.Self.(*Instance).Fields(ty).Get("name").(*value.Str)
					punct := c.Args.Get("punct").(*value.Str)
					return &value.Str{Value: "hello " + name.Value + punct.Value}, nil
				}),
		},
		Constructors: []*Constructor{{
			Name: "new",
			Sig:  MustDescriptor(Param{Name: "name", Class: RequiredParam}),
			Body: func(c *Call) (value.Value, error) {
				c.Self.(*Instance).Fields(ty).Set("name", c.Args.Get("name"))
				return value.None, nil
			},
		}},
	}))

	inst, err := k.Instantiate(ty, "new", Args(Pos(&value.Str{Value: "kaki"})))
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	out, err := k.Call(inst, "greet", Args(), Context{})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if out.(*value.Str).Value != "hello kaki!" {
		t.Fatalf("greet = %s", out.Inspect())
	}

	// Universal members arrive through the implicit base trait.
	out, err = k.Call(inst, "str", Args(), Context{})
	if err != nil {
		t.Fatalf("Call str: %v", err)
	}
	if out.Kind() != value.STR_VAL {
		t.Fatalf("str returned %s", out.Inspect())
	}
}
