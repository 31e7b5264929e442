package value

import "testing"

func TestSentinelIdentity(t *testing.T) {
	if !IsNone(None) {
		t.Fatal("None must satisfy IsNone")
	}
	if !IsNone(nil) {
		t.Fatal("a nil Value reads as absent")
	}
	if !IsNotImplemented(NotImplemented) {
		t.Fatal("NotImplemented must satisfy IsNotImplemented")
	}
	if IsNone(NotImplemented) || IsNotImplemented(None) {
		t.Fatal("the two sentinels must be distinct")
	}
	if IsNotImplemented(nil) {
		t.Fatal("nil is absence, not a refused dispatch")
	}
}

func TestSentinelsAreNotOrdinaryValues(t *testing.T) {
	tests := []struct {
		v    Value
		kind Kind
	}{
		{None, NONE_VAL},
		{NotImplemented, NOT_IMPL_VAL},
	}
	for _, tt := range tests {
		if tt.v.Kind() != tt.kind {
			t.Errorf("%s: kind = %s", tt.v.Inspect(), tt.v.Kind())
		}
	}
	if IsNone(FALSE) || IsNone(&Int{Value: 0}) || IsNone(&Str{}) {
		t.Fatal("falsy values must not read as absent")
	}
}

func TestMapInsertionOrder(t *testing.T) {
	m := NewMap()
	for _, k := range []string{"c", "a", "b"} {
		m.Set(k, &Str{Value: k})
	}
	m.Set("a", &Str{Value: "a2"}) // overwrite keeps original position
	got := m.Keys()
	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("keys = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys = %v, want %v", got, want)
		}
	}
	if v, ok := m.Get("a"); !ok || v.(*Str).Value != "a2" {
		t.Fatal("overwrite did not replace the value")
	}
}

func TestBoolInterning(t *testing.T) {
	if FromBool(true) != TRUE || FromBool(false) != FALSE {
		t.Fatal("FromBool must return the shared instances")
	}
	if TRUE.Hash() == FALSE.Hash() {
		t.Fatal("true and false must hash apart")
	}
}

func TestHashConsistency(t *testing.T) {
	tests := []struct {
		a, b Value
	}{
		{&Int{Value: 7}, &Int{Value: 7}},
		{&Str{Value: "kaki"}, &Str{Value: "kaki"}},
		{&Float{Value: 2.5}, &Float{Value: 2.5}},
	}
	for _, tt := range tests {
		if tt.a.Hash() != tt.b.Hash() {
			t.Errorf("equal values hash apart: %s", tt.a.Inspect())
		}
	}
}
