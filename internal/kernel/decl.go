package kernel

import (
	"hash/fnv"
	"sync"

	"github.com/google/uuid"

	"github.com/kaki-lang/kaki/internal/value"
)

// DeclID identifies a declaration in the arena. Anonymous traits and types
// get a generated identity, so every declaration is addressable even when
// it has no name.
type DeclID = uuid.UUID

// NewDeclID allocates an identity ahead of declaration construction. Needed
// when composition lists reference declarations that do not exist yet (the
// loader pre-allocates, and tests use it to build deliberate cycles).
func NewDeclID() DeclID { return uuid.New() }

// DeclIDs collects the identities of decls, in order. Convenience for
// building composition lists from already-constructed traits.
func DeclIDs(decls ...Decl) []DeclID {
	ids := make([]DeclID, len(decls))
	for i, d := range decls {
		ids[i] = d.ID()
	}
	return ids
}

// Decl is a trait or type declaration. Declarations are immutable once
// constructed; composition lists hold identities, not pointers, so the
// graph can only be walked through the store that owns the declarations.
type Decl interface {
	ID() DeclID
	// DeclName is the declared name, or "" for anonymous declarations.
	DeclName() string
	// Composes is the ordered composition list.
	Composes() []DeclID
	// OwnMembers is this declaration's own contribution, in declared order.
	OwnMembers() []*Member
}

type MemberKind string

const (
	MethodMember            MemberKind = "method"
	PropertyGetMember       MemberKind = "getter"
	PropertySetMember       MemberKind = "setter"
	StaticMethodMember      MemberKind = "static-method"
	StaticPropertyGetMember MemberKind = "static-getter"
	StaticPropertySetMember MemberKind = "static-setter"
)

type Visibility string

const (
	PublicVis  Visibility = "public"
	PrivateVis Visibility = "private"
)

// Call carries everything a member body sees: the receiver (an *Instance,
// a *TypeRef, or a builtin value), the bound argument record, and the
// kernel for nested resolution. Self/self context is always threaded
// explicitly, never ambient.
type Call struct {
	Kernel *Kernel
	Self   value.Value
	Args   *BoundArguments
}

// Fn is the native implementation of a member or constructor body.
type Fn func(c *Call) (value.Value, error)

// Member is a single named contribution of a trait or type.
type Member struct {
	Name       string
	Kind       MemberKind
	Visibility Visibility
	// Owner is the declaring trait or type, set when the declaration is
	// constructed. Disambiguated access (Trait.member) and visibility
	// checks key off it.
	Owner Decl
	// Abstract marks a trait member declared without a body. Only traits
	// may declare abstract members.
	Abstract bool
	Sig      *CallableDescriptor
	Body     Fn
}

func (m *Member) IsStatic() bool {
	switch m.Kind {
	case StaticMethodMember, StaticPropertyGetMember, StaticPropertySetMember:
		return true
	}
	return false
}

// Constructor is a type's named constructor, or a trait's single unnamed
// one. Trait constructors take no arguments and run once per instantiation
// of any composing type; they are private and not directly callable.
type Constructor struct {
	Name  string // "" for trait constructors
	Owner Decl
	Sig   *CallableDescriptor
	Body  Fn
}

// TraitSpec describes a trait for construction. Compose references other
// traits by identity so forward and cyclic references are representable;
// the linearizer is what rejects the cycles.
type TraitSpec struct {
	ID      DeclID // zero value means generate
	Name    string
	Compose []DeclID
	Members []*Member
	Cons    Fn       // optional field-initializing constructor body
	Fields  []string // private field names, invisible outside this trait
}

type TraitDecl struct {
	id      DeclID
	name    string
	compose []DeclID
	members []*Member
	cons    *Constructor
	fields  []string
}

// NewTrait constructs an immutable trait declaration and claims ownership
// of its members.
func NewTrait(spec TraitSpec) *TraitDecl {
	t := &TraitDecl{
		id:      spec.ID,
		name:    spec.Name,
		compose: spec.Compose,
		members: spec.Members,
		fields:  spec.Fields,
	}
	if t.id == uuid.Nil {
		t.id = NewDeclID()
	}
	for _, m := range t.members {
		m.Owner = t
	}
	if spec.Cons != nil {
		t.cons = &Constructor{Owner: t, Sig: emptyDescriptor, Body: spec.Cons}
	}
	return t
}

func (t *TraitDecl) ID() DeclID            { return t.id }
func (t *TraitDecl) DeclName() string      { return t.name }
func (t *TraitDecl) Composes() []DeclID    { return t.compose }
func (t *TraitDecl) OwnMembers() []*Member { return t.members }
func (t *TraitDecl) Cons() *Constructor    { return t.cons }
func (t *TraitDecl) Fields() []string      { return t.fields }

// TypeSpec describes a concrete type for construction.
type TypeSpec struct {
	ID           DeclID
	Name         string
	Compose      []DeclID
	Members      []*Member
	Fields       []string // instance field names
	Statics      []string // static field names, one shared slot per type
	Constructors []*Constructor
}

type TypeDecl struct {
	id      DeclID
	name    string
	compose []DeclID
	members []*Member
	fields  []string
	statics []string
	cons    []*Constructor

	staticsOnce sync.Once
	staticStore *FieldStore
}

// NewType constructs an immutable type declaration. Types may not declare
// abstract members; a leftover abstract member can only arrive through
// composition, and linearization reports it.
func NewType(spec TypeSpec) *TypeDecl {
	t := &TypeDecl{
		id:      spec.ID,
		name:    spec.Name,
		compose: spec.Compose,
		members: spec.Members,
		fields:  spec.Fields,
		statics: spec.Statics,
		cons:    spec.Constructors,
	}
	if t.id == uuid.Nil {
		t.id = NewDeclID()
	}
	for _, m := range t.members {
		m.Owner = t
	}
	for _, c := range t.cons {
		c.Owner = t
		if c.Sig == nil {
			c.Sig = emptyDescriptor
		}
	}
	return t
}

func (t *TypeDecl) ID() DeclID            { return t.id }
func (t *TypeDecl) DeclName() string      { return t.name }
func (t *TypeDecl) Composes() []DeclID    { return t.compose }
func (t *TypeDecl) OwnMembers() []*Member { return t.members }
func (t *TypeDecl) Fields() []string      { return t.fields }

func (t *TypeDecl) Constructors() []*Constructor { return t.cons }

func (t *TypeDecl) Constructor(name string) (*Constructor, bool) {
	for _, c := range t.cons {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// StaticFields is the type's shared static field store, one slot set for
// all instances, created on first use. Unset slots read as the absent
// sentinel like any other field.
func (t *TypeDecl) StaticFields() *FieldStore {
	t.staticsOnce.Do(func() {
		t.staticStore = NewFieldStore()
	})
	return t.staticStore
}

// declHash folds a declaration identity into the 32-bit value hash space.
func declHash(d Decl) uint32 {
	h := fnv.New32a()
	id := d.ID()
	h.Write(id[:])
	return h.Sum32()
}

// declName renders a declaration for error messages.
func declName(d Decl) string {
	if d == nil {
		return "<top level>"
	}
	if n := d.DeclName(); n != "" {
		return n
	}
	return "<anonymous " + d.ID().String()[:8] + ">"
}
