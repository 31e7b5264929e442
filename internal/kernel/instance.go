package kernel

import (
	"fmt"
	"sync"

	"github.com/kaki-lang/kaki/internal/value"
)

// FieldStore is one declaration's field namespace on an instance (or the
// shared static slot set of a type). Slots are created lazily; an unset
// slot reads as the absent sentinel.
type FieldStore struct {
	mu    sync.RWMutex
	slots map[string]value.Value
}

func NewFieldStore() *FieldStore {
	return &FieldStore{slots: make(map[string]value.Value)}
}

func (fs *FieldStore) Get(name string) value.Value {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if v, ok := fs.slots[name]; ok {
		return v
	}
	return value.None
}

func (fs *FieldStore) Set(name string, v value.Value) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.slots[name] = v
}

// Instance is a constructed value of a type. Field storage is partitioned
// by owning declaration: a trait's fields live in that trait's own store,
// invisible to the implementing type and to other traits, even under name
// collision.
type Instance struct {
	rt *ResolvedType

	mu     sync.Mutex
	fields map[DeclID]*FieldStore
}

func newInstance(rt *ResolvedType) *Instance {
	return &Instance{rt: rt, fields: make(map[DeclID]*FieldStore)}
}

func (i *Instance) Kind() value.Kind { return value.INSTANCE_VAL }
func (i *Instance) Inspect() string  { return fmt.Sprintf("<%s instance>", i.rt.Name()) }
func (i *Instance) Hash() uint32     { return declHash(i.rt.Type) }

func (i *Instance) ResolvedType() *ResolvedType { return i.rt }

// Fields returns owner's private field store on this instance, creating it
// on first access. Bodies reach their own declaration's store through this;
// there is no flat field table to collide in.
func (i *Instance) Fields(owner Decl) *FieldStore {
	i.mu.Lock()
	defer i.mu.Unlock()
	fs, ok := i.fields[owner.ID()]
	if !ok {
		fs = NewFieldStore()
		i.fields[owner.ID()] = fs
	}
	return fs
}

// TypeRef is a type used as a value: the receiver of static member access
// and named constructor calls.
type TypeRef struct {
	Decl *TypeDecl
}

func (t *TypeRef) Kind() value.Kind { return value.TYPE_VAL }
func (t *TypeRef) Inspect() string  { return declName(t.Decl) }
func (t *TypeRef) Hash() uint32     { return declHash(t.Decl) }

// Instantiate constructs an instance of t through its named constructor.
// Linearization runs (or is recalled) first, so a type carrying an
// unimplemented abstract member is refused before any body executes. Every
// composing trait's private constructor runs exactly once, in application
// order, before the named constructor body.
func (k *Kernel) Instantiate(t *TypeDecl, ctorName string, args ArgumentList) (*Instance, error) {
	rt, err := k.Linearize(t)
	if err != nil {
		return nil, err
	}
	ctor, ok := t.Constructor(ctorName)
	if !ok {
		return nil, &UnknownMemberError{Recv: declName(t), Member: ctorName}
	}
	bound, err := Bind(ctor.Sig, args)
	if err != nil {
		return nil, err
	}
	inst := newInstance(rt)
	for _, d := range rt.Order {
		tr, ok := d.(*TraitDecl)
		if !ok || tr.Cons() == nil {
			continue
		}
		empty, err := Bind(tr.Cons().Sig, ArgumentList{})
		if err != nil {
			return nil, err
		}
		if _, err := tr.Cons().Body(&Call{Kernel: k, Self: inst, Args: empty}); err != nil {
			return nil, err
		}
	}
	if ctor.Body != nil {
		if _, err := ctor.Body(&Call{Kernel: k, Self: inst, Args: bound}); err != nil {
			return nil, err
		}
	}
	return inst, nil
}
