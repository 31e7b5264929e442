package kernel

import (
	"fmt"
	"strings"
)

// All kernel failures are synchronous and typed. Callers match them with
// errors.As; the kernel never retries and never logs.

// CyclicCompositionError reports a trait that transitively composes itself.
type CyclicCompositionError struct {
	Trait string   // name of the trait closing the cycle
	Path  []string // composition path from the root to the repeat
}

func (e *CyclicCompositionError) Error() string {
	return fmt.Sprintf("trait %s composes itself: %s", e.Trait, strings.Join(e.Path, " -> "))
}

// UnresolvedAbstractMemberError reports a type whose merged member table
// still carries an abstract member after linearization.
type UnresolvedAbstractMemberError struct {
	Type   string
	Member string
}

func (e *UnresolvedAbstractMemberError) Error() string {
	return fmt.Sprintf("type %s does not implement abstract member %s", e.Type, e.Member)
}

// UnknownMemberError reports a name absent from the merged member table.
type UnknownMemberError struct {
	Recv   string // type or trait the lookup ran against
	Member string
}

func (e *UnknownMemberError) Error() string {
	return fmt.Sprintf("%s has no member %s", e.Recv, e.Member)
}

// VisibilityError reports a private member accessed from outside its owning
// declaration.
type VisibilityError struct {
	Owner  string
	Member string
}

func (e *VisibilityError) Error() string {
	return fmt.Sprintf("member %s is private to %s", e.Member, e.Owner)
}

// UnrelatedTraitError reports a disambiguated access (Trait.member) whose
// owner is not part of the type's application order.
type UnrelatedTraitError struct {
	Type  string
	Trait string
}

func (e *UnrelatedTraitError) Error() string {
	return fmt.Sprintf("trait %s is not composed by %s", e.Trait, e.Type)
}

// StaticAccessError reports an instance member accessed through a bare type
// reference.
type StaticAccessError struct {
	Type   string
	Member string
}

func (e *StaticAccessError) Error() string {
	return fmt.Sprintf("instance member %s cannot be accessed through type %s", e.Member, e.Type)
}

// MissingRequiredArgumentError reports a required positional, keyword, or
// block parameter left unfilled by the call site.
type MissingRequiredArgumentError struct {
	Param string
}

func (e *MissingRequiredArgumentError) Error() string {
	return fmt.Sprintf("missing required argument %s", e.Param)
}

// ArityError reports excess arguments with no slot declared to absorb
// them: positional overflow without a variadic collector, or a trailing
// block with no block parameter.
type ArityError struct {
	Want  int  // positional parameters declared
	Got   int  // positional arguments after spread expansion
	Block bool // a trailing block was passed with no block parameter
}

func (e *ArityError) Error() string {
	if e.Block {
		return fmt.Sprintf("a trailing block was passed but the callable declares no block parameter (%d positional arguments)", e.Got)
	}
	return fmt.Sprintf("too many positional arguments: want at most %d, got %d", e.Want, e.Got)
}

// DuplicateArgumentError reports the same parameter bound twice.
type DuplicateArgumentError struct {
	Param string
}

func (e *DuplicateArgumentError) Error() string {
	return fmt.Sprintf("argument %s bound twice", e.Param)
}

// UnknownKeywordArgumentError reports a keyword argument matching no
// declared parameter, with no variadic-keyword collector to route it to.
type UnknownKeywordArgumentError struct {
	Name string
}

func (e *UnknownKeywordArgumentError) Error() string {
	return fmt.Sprintf("unknown keyword argument %s", e.Name)
}

// SpreadError reports a spread argument whose value is not expandable: a
// positional spread needs a sequence, a keyword spread needs a mapping.
type SpreadError struct {
	Want string // "sequence" or "mapping"
	Got  string
}

func (e *SpreadError) Error() string {
	return fmt.Sprintf("cannot spread %s: %s required", e.Got, e.Want)
}

// DescriptorError reports a malformed parameter specification, rejected at
// declaration time before any binding is attempted.
type DescriptorError struct {
	Param  string
	Reason string
}

func (e *DescriptorError) Error() string {
	if e.Param == "" {
		return "invalid parameter list: " + e.Reason
	}
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Reason)
}

// UnsupportedOperandError reports a binary operator both dispatch phases
// declined (or the same-type short circuit).
type UnsupportedOperandError struct {
	Op    string
	Left  string
	Right string
}

func (e *UnsupportedOperandError) Error() string {
	return fmt.Sprintf("unsupported operands for %s: %s and %s", e.Op, e.Left, e.Right)
}
