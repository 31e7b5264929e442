package kernel

import "github.com/kaki-lang/kaki/internal/value"

// Via says whether a member access goes through an instance reference or a
// bare type reference. Static members are reachable both ways; instance
// members only through an instance.
type Via int

const (
	ViaInstance Via = iota
	ViaType
)

// Context is the lexical scope of a member access: the declaration whose
// body contains the access, or the zero Context at top level. It is the
// sole input to visibility checks; member state is never consulted or
// mutated.
type Context struct {
	Owner Decl
}

// In builds the context for code lexically inside d.
func In(d Decl) Context { return Context{Owner: d} }

func (c Context) allows(m *Member) bool {
	if m.Visibility != PrivateVis {
		return true
	}
	return c.Owner != nil && c.Owner.ID() == m.Owner.ID()
}

// Resolve finds the implementation of name on rt. ownerHint, when non-nil,
// is a disambiguated access (Trait.member): the hinted trait's own
// contribution is consulted directly, bypassing the merged table, and the
// hint must genuinely be part of rt's application order. The same
// visibility check applies on both paths.
func (k *Kernel) Resolve(rt *ResolvedType, name string, ownerHint *TraitDecl, ctx Context, via Via) (*Member, error) {
	var m *Member
	if ownerHint != nil {
		if !rt.Composed(ownerHint) {
			return nil, &UnrelatedTraitError{Type: rt.Name(), Trait: declName(ownerHint)}
		}
		for _, own := range ownerHint.OwnMembers() {
			if own.Name == name {
				m = own
				break
			}
		}
		if m == nil {
			return nil, &UnknownMemberError{Recv: declName(ownerHint), Member: name}
		}
	} else {
		var ok bool
		m, ok = rt.Lookup(name)
		if !ok {
			return nil, &UnknownMemberError{Recv: rt.Name(), Member: name}
		}
	}
	if !ctx.allows(m) {
		return nil, &VisibilityError{Owner: declName(m.Owner), Member: name}
	}
	if via == ViaType && !m.IsStatic() {
		return nil, &StaticAccessError{Type: rt.Name(), Member: name}
	}
	return m, nil
}

// ResolveOn resolves name against an arbitrary receiver value, deciding the
// access mode from the receiver itself: a *TypeRef resolves over the
// referenced declaration as a bare type reference, everything else is an
// instance access over the receiver's own type.
func (k *Kernel) ResolveOn(recv value.Value, name string, ownerHint *TraitDecl, ctx Context) (*Member, error) {
	if ref, ok := recv.(*TypeRef); ok {
		rt, err := k.Linearize(ref.Decl)
		if err != nil {
			return nil, err
		}
		return k.Resolve(rt, name, ownerHint, ctx, ViaType)
	}
	rt, err := k.TypeOf(recv)
	if err != nil {
		return nil, err
	}
	return k.Resolve(rt, name, ownerHint, ctx, ViaInstance)
}
