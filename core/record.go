package core

// Record pairs a manipulation payload with the scope that defined it.
// It is immutable once constructed and comparable: two records are equal
// exactly when they carry the same owner and an equal payload, which is what
// makes re-adding an equal record a membership no-op in the store.
//
// A nil owner places the record in the universal scope, making it visible to
// every requester.
type Record[S any, T comparable] struct {
	owner   *S
	payload T
}

// NewRecord constructs a record owned by the given scope. Passing a nil owner
// is allowed and means "universally visible".
func NewRecord[S any, T comparable](owner *S, payload T) Record[S, T] {
	return Record[S, T]{owner: owner, payload: payload}
}

// Owner returns the owning scope, nil for universal records.
func (r Record[S, T]) Owner() *S { return r.owner }

// Payload returns the wrapped manipulation value.
func (r Record[S, T]) Payload() T { return r.payload }
