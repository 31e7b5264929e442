package value

import "strings"

// Seq is the ordered sequence the call binder relies on: positional spread
// arguments expand a Seq in place, and the variadic-positional collector
// gathers leftover positionals into one.
type Seq struct {
	Elements []Value
}

func (s *Seq) Kind() Kind { return SEQ_VAL }
func (s *Seq) Inspect() string {
	var out strings.Builder
	out.WriteString("[")
	for i, el := range s.Elements {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(el.Inspect())
	}
	out.WriteString("]")
	return out.String()
}
func (s *Seq) Hash() uint32 {
	h := uint32(1)
	for _, el := range s.Elements {
		h = 31*h + el.Hash()
	}
	return h
}

func (s *Seq) Len() int { return len(s.Elements) }

func NewSeq(elements ...Value) *Seq {
	return &Seq{Elements: elements}
}

// Map is a string-keyed mapping with stable insertion order. Keyword spread
// arguments expand one in place and the variadic-keyword collector gathers
// unmatched keywords into one; iteration order is the order keys were set,
// which keeps binding deterministic.
type Map struct {
	keys  []string
	items map[string]Value
}

func (m *Map) Kind() Kind { return MAP_VAL }
func (m *Map) Inspect() string {
	var out strings.Builder
	out.WriteString("{")
	for i, k := range m.keys {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(k)
		out.WriteString(": ")
		out.WriteString(m.items[k].Inspect())
	}
	out.WriteString("}")
	return out.String()
}
func (m *Map) Hash() uint32 {
	h := uint32(1)
	for _, k := range m.keys {
		h = 31*h + hashString(k)
		h = 31*h + m.items[k].Hash()
	}
	return h
}

func NewMap() *Map {
	return &Map{items: make(map[string]Value)}
}

func (m *Map) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not mutate it.
func (m *Map) Keys() []string { return m.keys }

func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.items[key]
	return v, ok
}

// Set inserts or replaces key. A replaced key keeps its original position.
func (m *Map) Set(key string, v Value) {
	if _, ok := m.items[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.items[key] = v
}
