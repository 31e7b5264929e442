package kernel

import "github.com/kaki-lang/kaki/internal/value"

// ArgMode distinguishes the call-site argument forms: a plain positional,
// a `*seq` spread, a `name=value` keyword, and a `**map` spread.
type ArgMode int

const (
	PosArg ArgMode = iota
	SpreadArg
	NamedArg
	SpreadNamedArg
)

// Argument is one call-site argument before binding.
type Argument struct {
	Mode  ArgMode
	Name  string // NamedArg only
	Value value.Value
}

func Pos(v value.Value) Argument        { return Argument{Mode: PosArg, Value: v} }
func Spread(v value.Value) Argument     { return Argument{Mode: SpreadArg, Value: v} }
func Named(name string, v value.Value) Argument {
	return Argument{Mode: NamedArg, Name: name, Value: v}
}
func SpreadNamed(v value.Value) Argument { return Argument{Mode: SpreadNamedArg, Value: v} }

// ArgumentList is a raw call site: ordered arguments plus an optional
// trailing block (a literal closure or a `&ref`).
type ArgumentList struct {
	Args  []Argument
	Block value.Value // nil when no trailing block was passed
}

// Args builds an ArgumentList without a trailing block.
func Args(args ...Argument) ArgumentList {
	return ArgumentList{Args: args}
}

// WithBlock attaches a trailing block argument.
func (a ArgumentList) WithBlock(b value.Value) ArgumentList {
	a.Block = b
	return a
}

// BoundArguments is the successful output of Bind: every declared parameter
// mapped to a value. It exists fully formed or not at all; a failed bind
// leaves nothing behind.
type BoundArguments struct {
	values map[string]value.Value
	order  []string
}

func newBoundArguments() *BoundArguments {
	return &BoundArguments{values: make(map[string]value.Value)}
}

func (b *BoundArguments) set(name string, v value.Value) {
	if _, ok := b.values[name]; !ok {
		b.order = append(b.order, name)
	}
	b.values[name] = v
}

// Get returns the value bound to name, or the absent sentinel if the
// descriptor declared no such parameter.
func (b *BoundArguments) Get(name string) value.Value {
	if v, ok := b.values[name]; ok {
		return v
	}
	return value.None
}

// Names returns the bound parameter names in binding order: positional
// slots in descriptor order, then keywords as they appeared at the call
// site, with defaulted keywords and the collectors after them.
func (b *BoundArguments) Names() []string { return b.order }

func (b *BoundArguments) Len() int { return len(b.order) }

type kwEntry struct {
	name  string
	value value.Value
}

// Bind matches a call site against a descriptor. It is pure and atomic:
// either every declared slot is filled (arguments, defaults, collectors,
// sentinels) and a BoundArguments is returned, or a typed BindingError
// comes back and nothing was invoked or partially recorded.
func Bind(d *CallableDescriptor, args ArgumentList) (*BoundArguments, error) {
	// Phase 1: expand spread markers left to right, before any matching.
	var pos []value.Value
	var kws []kwEntry
	for _, a := range args.Args {
		switch a.Mode {
		case PosArg:
			pos = append(pos, a.Value)
		case SpreadArg:
			seq, ok := a.Value.(*value.Seq)
			if !ok {
				return nil, &SpreadError{Want: "sequence", Got: string(a.Value.Kind())}
			}
			pos = append(pos, seq.Elements...)
		case NamedArg:
			kws = append(kws, kwEntry{name: a.Name, value: a.Value})
		case SpreadNamedArg:
			m, ok := a.Value.(*value.Map)
			if !ok {
				return nil, &SpreadError{Want: "mapping", Got: string(a.Value.Kind())}
			}
			for _, k := range m.Keys() {
				v, _ := m.Get(k)
				kws = append(kws, kwEntry{name: k, value: v})
			}
		}
	}

	bound := newBoundArguments()

	// Phase 2: consume the positional stream.
	i := 0
	for _, p := range d.required {
		if i >= len(pos) {
			return nil, &MissingRequiredArgumentError{Param: p.Name}
		}
		bound.set(p.Name, pos[i])
		i++
	}
	for _, p := range d.optional {
		if i < len(pos) {
			bound.set(p.Name, pos[i])
			i++
		} else {
			bound.set(p.Name, p.Default())
		}
	}
	if d.varPos != nil {
		rest := make([]value.Value, len(pos)-i)
		copy(rest, pos[i:])
		bound.set(d.varPos.Name, value.NewSeq(rest...))
		i = len(pos)
	} else if i < len(pos) {
		return nil, &ArityError{Want: len(d.required) + len(d.optional), Got: len(pos)}
	}

	// Phase 3: consume the keyword stream. The block parameter's name also
	// matches here, so a block can be passed as a named argument.
	var kwBlock value.Value
	filled := make(map[string]bool, len(kws))
	var collected *value.Map
	if d.varKey != nil {
		collected = value.NewMap()
	}
	for _, kw := range kws {
		if d.block != nil && kw.name == d.block.Name {
			if kwBlock != nil {
				return nil, &DuplicateArgumentError{Param: kw.name}
			}
			kwBlock = kw.value
			continue
		}
		if p := d.keyword(kw.name); p != nil {
			if filled[kw.name] {
				return nil, &DuplicateArgumentError{Param: kw.name}
			}
			filled[kw.name] = true
			bound.set(kw.name, kw.value)
			continue
		}
		if collected != nil {
			// Routed keywords follow mapping semantics: a repeated key
			// keeps the later value.
			collected.Set(kw.name, kw.value)
			continue
		}
		return nil, &UnknownKeywordArgumentError{Name: kw.name}
	}
	for _, p := range d.keywords {
		if filled[p.Name] {
			continue
		}
		if p.Default == nil {
			return nil, &MissingRequiredArgumentError{Param: p.Name}
		}
		bound.set(p.Name, p.Default())
	}
	if d.varKey != nil {
		bound.set(d.varKey.Name, collected)
	}

	// Phase 4: bind the block parameter.
	blk := args.Block
	if blk != nil && kwBlock != nil {
		return nil, &DuplicateArgumentError{Param: d.block.Name}
	}
	if blk == nil {
		blk = kwBlock
	}
	if d.block == nil {
		if blk != nil {
			// A trailing block with no slot to receive it is an excess
			// argument.
			return nil, &ArityError{Want: len(d.required) + len(d.optional), Got: len(pos), Block: true}
		}
		return bound, nil
	}
	if blk == nil {
		if !d.block.Optional {
			return nil, &MissingRequiredArgumentError{Param: d.block.Name}
		}
		blk = value.None
	}
	bound.set(d.block.Name, blk)
	return bound, nil
}
