package kernel

import (
	"errors"

	"github.com/kaki-lang/kaki/internal/value"
)

// ApplyBinary evaluates an overloadable binary operator with two-phase
// dispatch. Phase one invokes the left operand's forward member with rhs
// as sole argument. A NotImplemented result hands over to the right
// operand's reverse member with lhs as sole argument — unless both operands
// share the identical concrete resolved type, in which case the forward
// implementation is authoritative and the failure is immediate. Any
// non-sentinel result from either phase is final.
func (k *Kernel) ApplyBinary(op string, lhs, rhs value.Value) (value.Value, error) {
	spec, ok := LookupOp(op)
	if !ok {
		return nil, &UnsupportedOperandError{Op: op, Left: kindName(k, lhs), Right: kindName(k, rhs)}
	}
	lt, err := k.TypeOf(lhs)
	if err != nil {
		return nil, err
	}
	rt, err := k.TypeOf(rhs)
	if err != nil {
		return nil, err
	}

	out, err := k.dispatchPhase(lt, spec.Forward, lhs, rhs)
	if err != nil {
		return nil, err
	}
	if !value.IsNotImplemented(out) {
		return out, nil
	}
	// Same concrete type: the forward side already had the full picture,
	// the reverse path is never attempted.
	if lt == rt {
		return nil, &UnsupportedOperandError{Op: op, Left: lt.Name(), Right: rt.Name()}
	}
	out, err = k.dispatchPhase(rt, spec.Reverse, rhs, lhs)
	if err != nil {
		return nil, err
	}
	if value.IsNotImplemented(out) {
		return nil, &UnsupportedOperandError{Op: op, Left: lt.Name(), Right: rt.Name()}
	}
	return out, nil
}

// dispatchPhase resolves one operator member on recv's type and invokes it
// with the opposite operand. Operators resolve from the empty calling
// context, so a type that declares no member for the phase, or only a
// private one, is treated as declining: the phase yields NotImplemented
// and the broker decides what that means.
func (k *Kernel) dispatchPhase(rt *ResolvedType, member string, recv, operand value.Value) (value.Value, error) {
	m, err := k.Resolve(rt, member, nil, Context{}, ViaInstance)
	if err != nil {
		var unknown *UnknownMemberError
		var private *VisibilityError
		if errors.As(err, &unknown) || errors.As(err, &private) {
			return value.NotImplemented, nil
		}
		return nil, err
	}
	return k.CallMember(m, recv, Args(Pos(operand)))
}

func kindName(k *Kernel, v value.Value) string {
	if rt, err := k.TypeOf(v); err == nil {
		return rt.Name()
	}
	return string(v.Kind())
}
