// Package scope provides a reference implementation of an isolated loading
// context for use in tests, examples and hosts that do not already have a
// scope type of their own.
//
// The registry core never depends on this package: it treats scopes as opaque
// pointers plus an injected parent relation. Embedders with an existing
// loading-context type should pass their own type and parent accessor to the
// registry instead.
package scope
