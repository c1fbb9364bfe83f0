package core

// Producer is the write side of the registry, used by the external component
// that generates manipulation descriptions. The caller must guarantee the
// record's owner is a live scope at call time.
type Producer[S any, T comparable] interface {
	// Add registers the record under name in its owner's bucket. Re-adding an
	// equal record is a membership no-op. It fails fast with ErrEmptyName or
	// ErrZeroPayload on contract violations and never partially mutates the
	// store.
	Add(name string, rec Record[S, T]) error
}

// Consumer is the read side, used by load-time interception hooks to learn
// which manipulations apply in their context.
type Consumer[S any, T comparable] interface {
	// Query returns, for every name known to the store, the payloads whose
	// owner is visible to requester under ancestry visibility. Names with no
	// visible payloads are omitted. The result is a fresh snapshot — weakly
	// consistent with concurrent mutation, and safe for the caller to mutate.
	Query(requester *S) map[string]Set[T]
}

// Lifecycle is the teardown side, used when the embedding system retires a
// scope eagerly instead of waiting for the garbage collector to reclaim it.
type Lifecycle[S any] interface {
	// Remove deletes every record under name whose owner is identical to
	// scope. Absent scope or name is a no-op.
	Remove(name string, scope *S)

	// Drop discards all records owned by scope in one step. Absent scope is
	// a no-op.
	Drop(scope *S)
}

// Store combines the three boundary contracts into the full registry surface.
type Store[S any, T comparable] interface {
	Producer[S, T]
	Consumer[S, T]
	Lifecycle[S]
}
