// Package declfile loads declaration sets from YAML into the kernel's
// declaration store. It is a transport for structure — composition lists,
// member tables, parameter specifications — not a parser for Kaki source:
// member bodies are native Go functions the host attaches after loading.
package declfile

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/kaki-lang/kaki/internal/kernel"
	"github.com/kaki-lang/kaki/internal/value"
)

// File is a whole declaration set. The same structure round-trips through
// compiled bundles, so it holds plain data only.
type File struct {
	Traits []TraitSpec `yaml:"traits"`
	Types  []TypeSpec  `yaml:"types"`
}

type TraitSpec struct {
	Name        string       `yaml:"name"`
	Compose     []string     `yaml:"compose,omitempty"`
	Fields      []string     `yaml:"fields,omitempty"`
	Constructor bool         `yaml:"constructor,omitempty"`
	Members     []MemberSpec `yaml:"members,omitempty"`
}

type TypeSpec struct {
	Name         string       `yaml:"name"`
	Compose      []string     `yaml:"compose,omitempty"`
	Fields       []string     `yaml:"fields,omitempty"`
	Statics      []string     `yaml:"statics,omitempty"`
	Members      []MemberSpec `yaml:"members,omitempty"`
	Constructors []ConsSpec   `yaml:"constructors,omitempty"`
}

type MemberSpec struct {
	Name       string      `yaml:"name"`
	Kind       string      `yaml:"kind,omitempty"`       // defaults to method
	Visibility string      `yaml:"visibility,omitempty"` // defaults to public
	Abstract   bool        `yaml:"abstract,omitempty"`
	Params     []ParamSpec `yaml:"params,omitempty"`
}

type ConsSpec struct {
	Name   string      `yaml:"name"`
	Params []ParamSpec `yaml:"params,omitempty"`
}

// ParamSpec is one formal parameter. Optional marks a keyword parameter as
// optional even without a default (it then defaults to none) and marks the
// block parameter as optional; positional-optional parameters are optional
// by class already.
type ParamSpec struct {
	Name     string `yaml:"name"`
	Class    string `yaml:"class,omitempty"` // defaults to required
	Default  any    `yaml:"default,omitempty"`
	Optional bool   `yaml:"optional,omitempty"`
}

var memberKinds = map[string]kernel.MemberKind{
	"":              kernel.MethodMember,
	"method":        kernel.MethodMember,
	"getter":        kernel.PropertyGetMember,
	"setter":        kernel.PropertySetMember,
	"static-method": kernel.StaticMethodMember,
	"static-getter": kernel.StaticPropertyGetMember,
	"static-setter": kernel.StaticPropertySetMember,
}

var paramClasses = map[string]kernel.ParamClass{
	"":         kernel.RequiredParam,
	"required": kernel.RequiredParam,
	"optional": kernel.OptionalParam,
	"rest":     kernel.VarPosParam,
	"keyword":  kernel.KeywordParam,
	"keyrest":  kernel.VarKeyParam,
	"block":    kernel.BlockParam,
}

// Parse decodes a YAML declaration set without touching any store.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("declaration file: %w", err)
	}
	return &f, nil
}

// Load parses data and registers the declarations into store.
func Load(data []byte, store *kernel.Store) error {
	f, err := Parse(data)
	if err != nil {
		return err
	}
	return Build(f, store)
}

// LoadFile loads a declaration set from disk into store.
func LoadFile(path string, store *kernel.Store) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return Load(data, store)
}

// Build registers a parsed declaration set into store. Trait identities are
// pre-allocated so composition lists may reference traits in any order,
// forward references and (deliberately invalid) cycles included — the
// linearizer is the component that rejects cycles, not the loader.
func Build(f *File, store *kernel.Store) error {
	ids := make(map[string]kernel.DeclID, len(f.Traits))
	for _, t := range f.Traits {
		if t.Name == "" {
			return fmt.Errorf("trait with no name")
		}
		if _, dup := ids[t.Name]; dup {
			return fmt.Errorf("trait %s declared twice", t.Name)
		}
		ids[t.Name] = kernel.NewDeclID()
	}

	resolve := func(owner string, names []string) ([]kernel.DeclID, error) {
		out := make([]kernel.DeclID, 0, len(names))
		for _, n := range names {
			if id, ok := ids[n]; ok {
				out = append(out, id)
				continue
			}
			if tr, ok := store.Trait(n); ok {
				out = append(out, tr.ID())
				continue
			}
			return nil, fmt.Errorf("%s composes unknown trait %s", owner, n)
		}
		return out, nil
	}

	for _, t := range f.Traits {
		compose, err := resolve(t.Name, t.Compose)
		if err != nil {
			return err
		}
		members, err := buildMembers(t.Name, t.Members, true)
		if err != nil {
			return err
		}
		spec := kernel.TraitSpec{
			ID:      ids[t.Name],
			Name:    t.Name,
			Compose: compose,
			Members: members,
			Fields:  t.Fields,
		}
		if t.Constructor {
			// Place-holder body until the host attaches one.
			spec.Cons = func(c *kernel.Call) (value.Value, error) { return value.None, nil }
		}
		store.AddTrait(kernel.NewTrait(spec))
	}

	for _, t := range f.Types {
		if t.Name == "" {
			return fmt.Errorf("type with no name")
		}
		compose, err := resolve(t.Name, t.Compose)
		if err != nil {
			return err
		}
		members, err := buildMembers(t.Name, t.Members, false)
		if err != nil {
			return err
		}
		var cons []*kernel.Constructor
		for _, c := range t.Constructors {
			if c.Name == "" {
				return fmt.Errorf("type %s has an unnamed constructor", t.Name)
			}
			sig, err := buildDescriptor(t.Name+"."+c.Name, c.Params)
			if err != nil {
				return err
			}
			cons = append(cons, &kernel.Constructor{Name: c.Name, Sig: sig})
		}
		store.AddType(kernel.NewType(kernel.TypeSpec{
			Name:         t.Name,
			Compose:      compose,
			Members:      members,
			Fields:       t.Fields,
			Statics:      t.Statics,
			Constructors: cons,
		}))
	}
	return nil
}

func buildMembers(owner string, specs []MemberSpec, isTrait bool) ([]*kernel.Member, error) {
	members := make([]*kernel.Member, 0, len(specs))
	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		if s.Name == "" {
			return nil, fmt.Errorf("%s has a member with no name", owner)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("%s declares member %s twice", owner, s.Name)
		}
		seen[s.Name] = true
		kind, ok := memberKinds[s.Kind]
		if !ok {
			return nil, fmt.Errorf("%s.%s: unknown member kind %q", owner, s.Name, s.Kind)
		}
		vis := kernel.PublicVis
		switch s.Visibility {
		case "", "public":
		case "private":
			vis = kernel.PrivateVis
		default:
			return nil, fmt.Errorf("%s.%s: unknown visibility %q", owner, s.Name, s.Visibility)
		}
		if s.Abstract && !isTrait {
			return nil, fmt.Errorf("%s.%s: only traits declare abstract members", owner, s.Name)
		}
		sig, err := buildDescriptor(owner+"."+s.Name, s.Params)
		if err != nil {
			return nil, err
		}
		members = append(members, &kernel.Member{
			Name:       s.Name,
			Kind:       kind,
			Visibility: vis,
			Abstract:   s.Abstract,
			Sig:        sig,
		})
	}
	return members, nil
}

func buildDescriptor(owner string, specs []ParamSpec) (*kernel.CallableDescriptor, error) {
	params := make([]kernel.Param, 0, len(specs))
	for _, s := range specs {
		class, ok := paramClasses[s.Class]
		if !ok {
			return nil, fmt.Errorf("%s: unknown parameter class %q", owner, s.Class)
		}
		p := kernel.Param{Name: s.Name, Class: class, Optional: s.Optional}
		hasDefault := s.Default != nil || s.Optional
		if class == kernel.OptionalParam {
			hasDefault = true
		}
		if hasDefault && class != kernel.BlockParam {
			dv, err := ScalarValue(s.Default)
			if err != nil {
				return nil, fmt.Errorf("%s: parameter %s: %w", owner, s.Name, err)
			}
			p.Default = kernel.ConstDefault(dv)
		}
		params = append(params, p)
	}
	d, err := kernel.NewDescriptor(params...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", owner, err)
	}
	return d, nil
}

// ScalarValue converts a decoded YAML scalar (or nested sequence/mapping)
// into a runtime value.
func ScalarValue(v any) (value.Value, error) {
	switch v := v.(type) {
	case nil:
		return value.None, nil
	case bool:
		return value.FromBool(v), nil
	case int:
		return &value.Int{Value: int64(v)}, nil
	case int64:
		return &value.Int{Value: v}, nil
	case uint64:
		// msgpack decodes small non-negative integers unsigned.
		return &value.Int{Value: int64(v)}, nil
	case float64:
		return &value.Float{Value: v}, nil
	case string:
		return &value.Str{Value: v}, nil
	case []any:
		elems := make([]value.Value, len(v))
		for i, e := range v {
			ev, err := ScalarValue(e)
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}
		return value.NewSeq(elems...), nil
	case map[string]any:
		// Decoded maps have no order of their own; sorted keys keep a
		// mapping default's insertion order stable across runs.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := value.NewMap()
		for _, k := range keys {
			ev, err := ScalarValue(v[k])
			if err != nil {
				return nil, err
			}
			m.Set(k, ev)
		}
		return m, nil
	}
	return nil, fmt.Errorf("unsupported default value %T", v)
}

// AttachBody installs a native implementation on a loaded member, found by
// declaration and member name. Loading covers structure; this is how the
// host supplies the code.
func AttachBody(store *kernel.Store, declName, memberName string, fn kernel.Fn) error {
	var d kernel.Decl
	if tr, ok := store.Trait(declName); ok {
		d = tr
	} else if ty, ok := store.Type(declName); ok {
		d = ty
	} else {
		return fmt.Errorf("unknown declaration %s", declName)
	}
	for _, m := range d.OwnMembers() {
		if m.Name == memberName {
			if m.Abstract {
				return fmt.Errorf("%s.%s is abstract", declName, memberName)
			}
			m.Body = fn
			return nil
		}
	}
	return fmt.Errorf("%s has no member %s", declName, memberName)
}
