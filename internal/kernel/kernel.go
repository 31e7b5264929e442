// Package kernel implements the object-model runtime kernel of the Kaki
// language: trait linearization, member dispatch, call binding, and the
// two-phase binary-operator protocol. Declarations come from an external
// loader and are immutable; everything here is synchronous and reports
// failures as typed errors to the caller.
package kernel

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/kaki-lang/kaki/internal/config"
	"github.com/kaki-lang/kaki/internal/value"
)

// Kernel ties the declaration store, the linearization cache, and the
// builtin prelude together. It is safe for concurrent use: declarations
// are immutable and the caches are compute-once.
type Kernel struct {
	store *Store

	// any is the universal base trait, implicitly composed first by every
	// type and trait and never reordered.
	any *TraitDecl

	builtinsMu sync.RWMutex
	builtins   map[value.Kind]*TypeDecl

	lin    sync.Map // DeclID -> *ResolvedType
	flight singleflight.Group
}

// New creates a kernel with an empty store, the universal base trait, and
// the builtin prelude registered.
func New() *Kernel {
	k := &Kernel{
		store:    NewStore(),
		builtins: make(map[value.Kind]*TypeDecl),
	}
	k.any = k.store.AddTrait(NewTrait(TraitSpec{
		Name:    config.UniversalTraitName,
		Members: universalMembers(),
	}))
	k.registerPrelude()
	return k
}

func (k *Kernel) Store() *Store { return k.store }

// Universal returns the universal base trait.
func (k *Kernel) Universal() *TraitDecl { return k.any }

// RegisterBuiltin maps a primitive value kind onto a builtin type
// declaration, so primitives participate in dispatch and operator
// brokering like instances do.
func (k *Kernel) RegisterBuiltin(kind value.Kind, t *TypeDecl) *TypeDecl {
	k.store.AddType(t)
	k.builtinsMu.Lock()
	k.builtins[kind] = t
	k.builtinsMu.Unlock()
	return t
}

// TypeOf resolves the concrete type of any runtime value: an instance's
// own resolved type, a type reference's builtin Type type, or the builtin
// type registered for the value's kind.
func (k *Kernel) TypeOf(v value.Value) (*ResolvedType, error) {
	if inst, ok := v.(*Instance); ok {
		return inst.rt, nil
	}
	kind := v.Kind()
	k.builtinsMu.RLock()
	t, ok := k.builtins[kind]
	k.builtinsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no builtin type registered for %s values", kind)
	}
	return k.Linearize(t)
}

// CallMember binds args against m's descriptor and invokes the body with
// self as receiver. Binding is atomic: the body never runs on a failed
// bind.
func (k *Kernel) CallMember(m *Member, self value.Value, args ArgumentList) (value.Value, error) {
	bound, err := Bind(m.Sig, args)
	if err != nil {
		return nil, err
	}
	if m.Body == nil {
		return nil, fmt.Errorf("member %s of %s has no implementation attached", m.Name, declName(m.Owner))
	}
	out, err := m.Body(&Call{Kernel: k, Self: self, Args: bound})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = value.None
	}
	return out, nil
}

// Call resolves name on recv and invokes it, the everyday composition of
// dispatcher and binder.
func (k *Kernel) Call(recv value.Value, name string, args ArgumentList, ctx Context) (value.Value, error) {
	m, err := k.ResolveOn(recv, name, nil, ctx)
	if err != nil {
		return nil, err
	}
	return k.CallMember(m, recv, args)
}
