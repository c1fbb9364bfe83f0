package scope

import (
	"fmt"

	"github.com/google/uuid"
)

// Scope is an isolated loading context. Scopes compare by identity, carry a
// generated id for log correlation and form a forest through parent pointers.
// The zero parent marks a root of the forest.
//
// Scopes are immutable after construction, so they are safe to share across
// goroutines.
type Scope struct {
	id     string
	name   string
	parent *Scope
}

// New creates a root scope with the given human readable name.
func New(name string) *Scope {
	return &Scope{id: uuid.NewString(), name: name}
}

// NewChild creates a scope one level below s.
func (s *Scope) NewChild(name string) *Scope {
	return &Scope{id: uuid.NewString(), name: name, parent: s}
}

// ID returns the generated identifier.
func (s *Scope) ID() string { return s.id }

// Name returns the human readable name.
func (s *Scope) Name() string { return s.name }

// Parent returns the parent scope, nil for roots.
func (s *Scope) Parent() *Scope { return s.parent }

// Depth returns the number of ancestors above s.
func (s *Scope) Depth() int {
	d := 0
	for p := s.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// String renders the scope for diagnostics.
func (s *Scope) String() string {
	return fmt.Sprintf("Scope{%s %s}", s.name, s.id)
}

// ParentOf is a ready-made ancestry relation for registry construction:
//
//	store := registry.NewInMemoryStore[scope.Scope, string](scope.ParentOf)
func ParentOf(s *Scope) *Scope {
	if s == nil {
		return nil
	}
	return s.parent
}
