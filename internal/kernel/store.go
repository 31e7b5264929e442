package kernel

import (
	"sync"
)

// Store is the identity-keyed declaration arena. Declarations are immutable
// once added; the store only grows. Composition lists hold DeclIDs, so the
// composition graph — diamonds and deliberate cycles included — lives here
// as a flat index rather than as nested owning structures.
type Store struct {
	mu     sync.RWMutex
	decls  map[DeclID]Decl
	traits map[string]*TraitDecl
	types  map[string]*TypeDecl
}

func NewStore() *Store {
	return &Store{
		decls:  make(map[DeclID]Decl),
		traits: make(map[string]*TraitDecl),
		types:  make(map[string]*TypeDecl),
	}
}

// AddTrait registers t. Anonymous traits are indexed by identity only.
func (s *Store) AddTrait(t *TraitDecl) *TraitDecl {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decls[t.ID()] = t
	if t.DeclName() != "" {
		s.traits[t.DeclName()] = t
	}
	return t
}

// AddType registers t. Anonymous types are indexed by identity only.
func (s *Store) AddType(t *TypeDecl) *TypeDecl {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decls[t.ID()] = t
	if t.DeclName() != "" {
		s.types[t.DeclName()] = t
	}
	return t
}

func (s *Store) Decl(id DeclID) (Decl, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.decls[id]
	return d, ok
}

func (s *Store) TraitByID(id DeclID) (*TraitDecl, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.decls[id].(*TraitDecl)
	return t, ok
}

func (s *Store) Trait(name string) (*TraitDecl, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.traits[name]
	return t, ok
}

func (s *Store) Type(name string) (*TypeDecl, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.types[name]
	return t, ok
}

// TraitNames returns the registered (named) traits, unordered.
func (s *Store) TraitNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.traits))
	for n := range s.traits {
		names = append(names, n)
	}
	return names
}

// TypeNames returns the registered (named) types, unordered.
func (s *Store) TypeNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.types))
	for n := range s.types {
		names = append(names, n)
	}
	return names
}
