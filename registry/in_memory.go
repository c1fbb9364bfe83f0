package registry

import (
	"fmt"
	"runtime"
	"sync"
	"weak"

	"github.com/hupe1980/manipreg/core"
	"github.com/hupe1980/manipreg/logging"
)

// Options configures an InMemoryStore.
type Options struct {
	// Logger receives debug-level records of mutations and scope reclamation.
	// Defaults to NoOpLogger so the store is silent unless opted in.
	Logger logging.Logger
}

// InMemoryStore is the default core.Store implementation: an in-process
// concurrent registry of manipulation records bucketed by owning scope.
//
// The top-level scope index is keyed by weak pointers and every stored record
// references its owner weakly, so the store is never the reason a retired
// scope's memory is retained. A per-scope runtime cleanup prunes the bucket
// once the embedding system drops its last strong reference; Drop offers the
// same eagerly.
//
// Consistency: Add and Remove are linearizable per (scope, name) set. Query
// is a weakly-consistent snapshot — it may miss a concurrent add or include
// one that just committed, but never returns torn records. No lock spans a
// whole query; each bucket is scanned under its own read lock.
type InMemoryStore[S any, T comparable] struct {
	parent core.ParentFunc[S]
	logger logging.Logger

	mu        sync.RWMutex
	scoped    map[weak.Pointer[S]]*bucket[S, T]
	universal *bucket[S, T] // records with no owning scope, held strongly
}

// bucket holds one scope's name -> record-set mapping under its own lock, so
// unrelated scopes never contend.
type bucket[S any, T comparable] struct {
	mu    sync.RWMutex
	names map[string]core.Set[stored[S, T]]
}

// stored is the internal record form. The owner is kept as a weak pointer;
// the zero pointer marks a universal record. Comparability gives the set its
// (owner, payload) value identity.
type stored[S any, T comparable] struct {
	owner   weak.Pointer[S]
	payload T
}

// NewInMemoryStore constructs an empty store. parent is the ancestry relation
// of the embedding loading system; nil degrades to a flat forest where only a
// record's own scope and the universal scope are visible.
func NewInMemoryStore[S any, T comparable](parent core.ParentFunc[S], optFns ...func(o *Options)) *InMemoryStore[S, T] {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &InMemoryStore[S, T]{
		parent:    parent,
		logger:    opts.Logger,
		scoped:    make(map[weak.Pointer[S]]*bucket[S, T]),
		universal: &bucket[S, T]{names: make(map[string]core.Set[stored[S, T]])},
	}
}

// Add registers rec under name in its owner's bucket, creating the bucket on
// first use. Re-adding an equal record is a membership no-op. Contract
// violations (empty name, zero payload) fail fast without mutating anything.
func (s *InMemoryStore[S, T]) Add(name string, rec core.Record[S, T]) error {
	if name == "" {
		return core.ErrEmptyName
	}
	var zero T
	if rec.Payload() == zero {
		return core.ErrZeroPayload
	}

	owner := rec.Owner()
	b := s.bucketFor(owner)

	b.mu.Lock()
	set, ok := b.names[name]
	if !ok {
		set = core.Set[stored[S, T]]{}
		b.names[name] = set
	}
	set.Add(stored[S, T]{owner: weakOwner(owner), payload: rec.Payload()})
	b.mu.Unlock()

	s.logger.Debug("manipulation registered", "name", name, "universal", owner == nil)
	return nil
}

// Remove deletes every record under name whose owner is identical to scope.
// A nil scope targets universal records. Absent scope or name is a no-op.
func (s *InMemoryStore[S, T]) Remove(name string, scope *S) {
	b := s.lookup(scope)
	if b == nil {
		return
	}

	b.mu.Lock()
	if set, ok := b.names[name]; ok {
		for rec := range set {
			// Identity match on the owning scope, never payload equality, so
			// co-located records owned elsewhere survive.
			if rec.owner.Value() == scope {
				set.Delete(rec)
			}
		}
		if set.Len() == 0 {
			delete(b.names, name)
		}
	}
	b.mu.Unlock()

	s.logger.Debug("manipulation removed", "name", name, "universal", scope == nil)
}

// Drop eagerly discards every record owned by scope. It is the deterministic
// counterpart of the garbage-collection backstop and a no-op for unknown
// scopes. A nil scope clears the universal records.
func (s *InMemoryStore[S, T]) Drop(scope *S) {
	if scope == nil {
		s.universal.mu.Lock()
		s.universal.names = make(map[string]core.Set[stored[S, T]])
		s.universal.mu.Unlock()
		return
	}

	s.mu.Lock()
	delete(s.scoped, weak.Make(scope))
	s.mu.Unlock()

	s.logger.Debug("scope dropped")
}

// Query returns, keyed by name, the union of payloads visible to requester
// across every scope currently present. Names with no visible payloads are
// omitted. The returned map and sets are fresh snapshots owned by the caller.
func (s *InMemoryStore[S, T]) Query(requester *S) map[string]core.Set[T] {
	s.mu.RLock()
	buckets := make([]*bucket[S, T], 0, len(s.scoped)+1)
	buckets = append(buckets, s.universal)
	for _, b := range s.scoped {
		buckets = append(buckets, b)
	}
	s.mu.RUnlock()

	out := make(map[string]core.Set[T])
	for i, b := range buckets {
		isUniversal := i == 0
		b.mu.RLock()
		for name, set := range b.names {
			for rec := range set {
				if !s.includes(requester, rec, isUniversal) {
					continue
				}
				dst, ok := out[name]
				if !ok {
					dst = core.Set[T]{}
					out[name] = dst
				}
				dst.Add(rec.payload)
			}
		}
		b.mu.RUnlock()
	}
	return out
}

// includes decides visibility for one stored record. A record whose owner has
// already been reclaimed is skipped: its bucket is moments from being pruned
// by the owner's cleanup.
func (s *InMemoryStore[S, T]) includes(requester *S, rec stored[S, T], isUniversal bool) bool {
	if isUniversal {
		return true
	}
	owner := rec.owner.Value()
	if owner == nil {
		return false
	}
	return core.Visible(s.parent, requester, owner)
}

// String summarizes the live contents for diagnostics.
func (s *InMemoryStore[S, T]) String() string {
	s.mu.RLock()
	buckets := make([]*bucket[S, T], 0, len(s.scoped)+1)
	buckets = append(buckets, s.universal)
	for _, b := range s.scoped {
		buckets = append(buckets, b)
	}
	scopes := len(s.scoped)
	s.mu.RUnlock()

	names, records := 0, 0
	for _, b := range buckets {
		b.mu.RLock()
		names += len(b.names)
		for _, set := range b.names {
			records += set.Len()
		}
		b.mu.RUnlock()
	}
	return fmt.Sprintf("InMemoryStore{scopes=%d, names=%d, records=%d}", scopes, names, records)
}

// bucketFor resolves the bucket owning records of owner, creating it under
// double-checked locking so concurrent first-inserters converge on a single
// surviving bucket. Bucket creation also arms the reclamation cleanup for the
// scope.
func (s *InMemoryStore[S, T]) bucketFor(owner *S) *bucket[S, T] {
	if owner == nil {
		return s.universal
	}

	key := weak.Make(owner)

	s.mu.RLock()
	b, ok := s.scoped[key]
	s.mu.RUnlock()
	if ok {
		return b
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok = s.scoped[key]; ok {
		return b
	}
	b = &bucket[S, T]{names: make(map[string]core.Set[stored[S, T]])}
	s.scoped[key] = b
	runtime.AddCleanup(owner, func(k weak.Pointer[S]) {
		s.mu.Lock()
		delete(s.scoped, k)
		s.mu.Unlock()
		s.logger.Debug("scope reclaimed, bucket pruned")
	}, key)
	return b
}

// lookup returns the bucket for scope without creating one, nil if absent.
func (s *InMemoryStore[S, T]) lookup(scope *S) *bucket[S, T] {
	if scope == nil {
		return s.universal
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scoped[weak.Make(scope)]
}

// weakOwner converts an owner pointer to its stored form; nil maps to the
// zero weak pointer marking a universal record.
func weakOwner[S any](owner *S) weak.Pointer[S] {
	if owner == nil {
		return weak.Pointer[S]{}
	}
	return weak.Make(owner)
}
