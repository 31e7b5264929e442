package kernel

import (
	"fmt"
	"sort"
)

// ResolvedType is the memoized output of linearization: the application
// order of everything contributing members to a type, and the merged
// name -> implementation table built by replaying members in that order.
// It is immutable once published.
type ResolvedType struct {
	Type *TypeDecl

	// Order is the application sequence: the universal base trait first,
	// inherited traits in linearized order, the type itself last.
	Order []Decl

	table  map[string]*Member
	owners map[DeclID]bool
}

func (rt *ResolvedType) Name() string { return declName(rt.Type) }

// Lookup finds the winning implementation for name in the merged table.
func (rt *ResolvedType) Lookup(name string) (*Member, bool) {
	m, ok := rt.table[name]
	return m, ok
}

// Members returns the merged table's member names, unordered.
func (rt *ResolvedType) Members() []string {
	names := make([]string, 0, len(rt.table))
	for n := range rt.table {
		names = append(names, n)
	}
	return names
}

// Composed reports whether d contributed to this type's application order.
func (rt *ResolvedType) Composed(d Decl) bool {
	return rt.owners[d.ID()]
}

// Linearize computes the ResolvedType of t, memoized for the lifetime of
// the type. Concurrent first use is collapsed to a single computation; a
// second caller never observes a partially merged table.
func (k *Kernel) Linearize(t *TypeDecl) (*ResolvedType, error) {
	if cached, ok := k.lin.Load(t.ID()); ok {
		return cached.(*ResolvedType), nil
	}
	v, err, _ := k.flight.Do(t.ID().String(), func() (interface{}, error) {
		if cached, ok := k.lin.Load(t.ID()); ok {
			return cached, nil
		}
		rt, err := k.linearize(t)
		if err != nil {
			return nil, err
		}
		k.lin.Store(t.ID(), rt)
		return rt, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ResolvedType), nil
}

// linearize is the uncached algorithm: left-to-right depth-first traversal
// of the composition graph recording every visit (descending into each
// trait only on its first visit), dedup keeping first occurrences, reverse,
// universal base prepended, the type's own members applied last. The trait
// earliest in the declared composition list is applied last among traits
// and therefore wins name conflicts.
func (k *Kernel) linearize(t *TypeDecl) (*ResolvedType, error) {
	var seq []*TraitDecl
	visited := make(map[DeclID]bool)
	onPath := make(map[DeclID]bool)
	var path []string

	var walk func(id DeclID) error
	walk = func(id DeclID) error {
		tr, ok := k.store.TraitByID(id)
		if !ok {
			return fmt.Errorf("composition list of %s references unknown trait %s", declName(t), id)
		}
		if onPath[id] {
			return &CyclicCompositionError{
				Trait: declName(tr),
				Path:  append(append([]string{}, path...), declName(tr)),
			}
		}
		seq = append(seq, tr)
		if visited[id] {
			return nil
		}
		visited[id] = true
		onPath[id] = true
		path = append(path, declName(tr))
		for _, sup := range tr.Composes() {
			if err := walk(sup); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		delete(onPath, id)
		return nil
	}
	for _, id := range t.Composes() {
		if err := walk(id); err != nil {
			return nil, err
		}
	}

	// Dedup keeping each trait's first occurrence, then reverse into the
	// application order. The universal base is never part of the walk; it
	// is always applied first, ahead of everything.
	first := make(map[DeclID]bool, len(seq))
	var dedup []*TraitDecl
	for _, tr := range seq {
		if tr == k.any || first[tr.ID()] {
			continue
		}
		first[tr.ID()] = true
		dedup = append(dedup, tr)
	}
	order := make([]Decl, 0, len(dedup)+2)
	order = append(order, k.any)
	for i := len(dedup) - 1; i >= 0; i-- {
		order = append(order, dedup[i])
	}
	order = append(order, t)

	rt := &ResolvedType{
		Type:   t,
		Order:  order,
		table:  make(map[string]*Member),
		owners: make(map[DeclID]bool, len(order)),
	}
	for _, d := range order {
		rt.owners[d.ID()] = true
		for _, m := range d.OwnMembers() {
			rt.table[m.Name] = m
		}
	}
	var abstract []string
	for name, m := range rt.table {
		if m.Abstract {
			abstract = append(abstract, name)
		}
	}
	if len(abstract) > 0 {
		sort.Strings(abstract)
		return nil, &UnresolvedAbstractMemberError{Type: declName(t), Member: abstract[0]}
	}
	return rt, nil
}
