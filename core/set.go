package core

// Set is a minimal map-backed value set. Query results use it so callers get
// constant-time membership checks on the returned snapshots; mutating a
// returned Set never affects registry state.
type Set[T comparable] map[T]struct{}

// NewSet builds a set from the given values.
func NewSet[T comparable](values ...T) Set[T] {
	s := make(Set[T], len(values))
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts v; inserting an existing value is a no-op.
func (s Set[T]) Add(v T) { s[v] = struct{}{} }

// Delete removes v if present.
func (s Set[T]) Delete(v T) { delete(s, v) }

// Contains reports whether v is a member.
func (s Set[T]) Contains(v T) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of members.
func (s Set[T]) Len() int { return len(s) }

// Values returns the members as a slice in unspecified order. The slice is
// a snapshot and safe for caller mutation.
func (s Set[T]) Values() []T {
	out := make([]T, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	return out
}

// Clone returns an independent shallow copy.
func (s Set[T]) Clone() Set[T] {
	out := make(Set[T], len(s))
	for v := range s {
		out[v] = struct{}{}
	}
	return out
}
