// Package registry contains concrete implementations of core.Store.
//
// The canonical Store, Producer, Consumer and Lifecycle interfaces live in
// the core package to keep domain contracts central. Implementation packages
// like this one provide storage backends that can be swapped without touching
// calling code; InMemoryStore is the default weak-keyed, concurrency-safe
// backend suitable for embedding in a long-lived host process.
//
// Callers should depend on the core interfaces rather than concrete types so
// they can substitute alternative backends in tests.
package registry
