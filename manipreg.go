// Package manipreg provides a high-level façade over the core store
// abstractions for scoped manipulation registries. Most applications interact
// with this package by:
//  1. Creating a Registry via New() with the ancestry relation of their
//     loading system (optionally overriding the default in-memory store)
//  2. Registering manipulation payloads under artifact names (Add/AddPayload)
//  3. Resolving the manipulations visible to a loading context (Query)
//
// The façade delegates storage to a core.Store implementation while keeping
// setup and usage ergonomics concise. All defaults are safe for embedding:
// the in-memory backend never retains a scope the host has discarded, and the
// NoOp logger keeps the library silent unless a structured logger is supplied.
package manipreg

import (
	"github.com/hupe1980/manipreg/core"
	"github.com/hupe1980/manipreg/logging"
	"github.com/hupe1980/manipreg/registry"
)

// Options configures the Registry instance.
type Options[S any, T comparable] struct {
	// Store backs the registry (defaults to an in-memory implementation if
	// not provided).
	Store core.Store[S, T]

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// Registry is the high-level façade aggregating a store and the ancestry
// relation it filters by.
type Registry[S any, T comparable] struct {
	opts  Options[S, T]
	store core.Store[S, T]
}

// New creates a Registry with optional overrides. parent is the loading
// system's ancestry relation; any unset service is initialized with an
// in-memory implementation.
func New[S any, T comparable](parent core.ParentFunc[S], optFns ...func(o *Options[S, T])) *Registry[S, T] {
	opts := Options[S, T]{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Store == nil {
		opts.Store = registry.NewInMemoryStore[S, T](parent, func(o *registry.Options) {
			o.Logger = opts.Logger
		})
	}

	return &Registry[S, T]{opts: opts, store: opts.Store}
}

// Add registers a record under the given artifact name.
func (r *Registry[S, T]) Add(name string, rec core.Record[S, T]) error {
	return r.store.Add(name, rec)
}

// AddPayload is a convenience wrapper constructing the record inline. A nil
// owner registers a universally visible payload.
func (r *Registry[S, T]) AddPayload(name string, owner *S, payload T) error {
	return r.store.Add(name, core.NewRecord(owner, payload))
}

// Remove deletes the records under name owned by scope.
func (r *Registry[S, T]) Remove(name string, scope *S) {
	r.store.Remove(name, scope)
}

// Drop eagerly discards everything owned by scope.
func (r *Registry[S, T]) Drop(scope *S) {
	r.store.Drop(scope)
}

// Query returns the manipulations visible to requester, keyed by artifact
// name.
func (r *Registry[S, T]) Query(requester *S) map[string]core.Set[T] {
	return r.store.Query(requester)
}

// Store exposes the underlying store for callers that need the narrow
// Producer/Consumer/Lifecycle views.
func (r *Registry[S, T]) Store() core.Store[S, T] {
	return r.store
}
