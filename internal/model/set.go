package model

// Set is the full, order-stable declaration set produced by one generation
// run, plus an index from declaration name to variant kind. Declarations are
// never mutated after the synthesis pass completes.
type Set struct {
	decls []Declaration
	kinds map[string]Kind
}

// NewSet creates an empty declaration set.
func NewSet() *Set {
	return &Set{
		kinds: make(map[string]Kind),
	}
}

// Add appends a declaration. Names are unique within a run; adding a
// duplicate name is a programming error and the second add is ignored.
func (s *Set) Add(d Declaration) {
	name := d.DeclarationName()
	if _, exists := s.kinds[name]; exists {
		return
	}
	s.decls = append(s.decls, d)
	s.kinds[name] = d.DeclarationKind()
}

// Declarations returns all declarations in synthesis order.
func (s *Set) Declarations() []Declaration {
	return s.decls
}

// KindOf returns the variant kind for a declaration name.
func (s *Set) KindOf(name string) (Kind, bool) {
	kind, ok := s.kinds[name]
	return kind, ok
}

// Has reports whether a declaration with the given name exists.
func (s *Set) Has(name string) bool {
	_, ok := s.kinds[name]
	return ok
}

// Get returns the declaration with the given name.
func (s *Set) Get(name string) (Declaration, bool) {
	if _, ok := s.kinds[name]; !ok {
		return nil, false
	}
	for _, d := range s.decls {
		if d.DeclarationName() == name {
			return d, true
		}
	}
	return nil, false
}

// Index returns a copy of the name-to-kind index.
func (s *Set) Index() map[string]Kind {
	index := make(map[string]Kind, len(s.kinds))
	for name, kind := range s.kinds {
		index[name] = kind
	}
	return index
}

// Len returns the number of declarations.
func (s *Set) Len() int {
	return len(s.decls)
}
