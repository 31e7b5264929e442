package kernel

import "github.com/kaki-lang/kaki/internal/value"

// ParamClass is one of the five formal parameter classes (plus the block
// slot). A well-formed descriptor declares them in non-decreasing class
// order: positional-required, positional-optional, variadic-positional,
// keyword, variadic-keyword, block.
type ParamClass int

const (
	RequiredParam ParamClass = iota
	OptionalParam
	VarPosParam
	KeywordParam
	VarKeyParam
	BlockParam
)

var paramClassNames = [...]string{
	RequiredParam: "positional-required",
	OptionalParam: "positional-optional",
	VarPosParam:   "variadic-positional",
	KeywordParam:  "keyword",
	VarKeyParam:   "variadic-keyword",
	BlockParam:    "block",
}

func (c ParamClass) String() string { return paramClassNames[c] }

// Thunk evaluates a parameter's default expression. Defaults are evaluated
// at bind time, once per call that needs them.
type Thunk func() value.Value

// ConstDefault wraps a fixed value as a default expression.
func ConstDefault(v value.Value) Thunk {
	return func() value.Value { return v }
}

// Param is one formal parameter.
//
// Default is required on positional-optional parameters. On keyword
// parameters a nil Default means the keyword is required. Optional applies
// to the block parameter only: an optional block binds the absent sentinel
// when the call site passes none.
type Param struct {
	Name     string
	Class    ParamClass
	Default  Thunk
	Optional bool
}

// CallableDescriptor is the validated formal parameter specification of a
// callable. Construct one with NewDescriptor; the zero value is not usable.
type CallableDescriptor struct {
	required []Param
	optional []Param
	varPos   *Param
	keywords []Param
	varKey   *Param
	block    *Param
}

var emptyDescriptor = &CallableDescriptor{}

// NewDescriptor validates the parameter list and partitions it. Binder
// behavior is only defined for descriptors that pass this check, so every
// declaration path goes through it.
func NewDescriptor(params ...Param) (*CallableDescriptor, error) {
	d := &CallableDescriptor{}
	seen := make(map[string]bool, len(params))
	last := RequiredParam
	for i := range params {
		p := params[i]
		if p.Name == "" {
			return nil, &DescriptorError{Reason: "parameter has no name"}
		}
		if seen[p.Name] {
			return nil, &DescriptorError{Param: p.Name, Reason: "declared twice"}
		}
		seen[p.Name] = true
		if p.Class < last {
			return nil, &DescriptorError{Param: p.Name,
				Reason: p.Class.String() + " parameter may not follow a " + last.String() + " one"}
		}
		last = p.Class
		switch p.Class {
		case RequiredParam:
			d.required = append(d.required, p)
		case OptionalParam:
			if p.Default == nil {
				return nil, &DescriptorError{Param: p.Name, Reason: "optional parameter needs a default"}
			}
			d.optional = append(d.optional, p)
		case VarPosParam:
			if d.varPos != nil {
				return nil, &DescriptorError{Param: p.Name, Reason: "second variadic-positional collector"}
			}
			d.varPos = &params[i]
		case KeywordParam:
			d.keywords = append(d.keywords, p)
		case VarKeyParam:
			if d.varKey != nil {
				return nil, &DescriptorError{Param: p.Name, Reason: "second variadic-keyword collector"}
			}
			d.varKey = &params[i]
		case BlockParam:
			if d.block != nil {
				return nil, &DescriptorError{Param: p.Name, Reason: "second block parameter"}
			}
			d.block = &params[i]
		default:
			return nil, &DescriptorError{Param: p.Name, Reason: "unknown parameter class"}
		}
	}
	return d, nil
}

// MustDescriptor is NewDescriptor for statically known parameter lists
// (prelude, tests). It panics on a malformed list.
func MustDescriptor(params ...Param) *CallableDescriptor {
	d, err := NewDescriptor(params...)
	if err != nil {
		panic(err)
	}
	return d
}

// Params returns the formals back in declaration order.
func (d *CallableDescriptor) Params() []Param {
	out := make([]Param, 0, len(d.required)+len(d.optional)+len(d.keywords)+3)
	out = append(out, d.required...)
	out = append(out, d.optional...)
	if d.varPos != nil {
		out = append(out, *d.varPos)
	}
	out = append(out, d.keywords...)
	if d.varKey != nil {
		out = append(out, *d.varKey)
	}
	if d.block != nil {
		out = append(out, *d.block)
	}
	return out
}

func (d *CallableDescriptor) keyword(name string) *Param {
	for i := range d.keywords {
		if d.keywords[i].Name == name {
			return &d.keywords[i]
		}
	}
	return nil
}
