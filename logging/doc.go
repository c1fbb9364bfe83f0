// Package logging provides a minimal logging interface and adapters for the
// manipulation registry.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) the store implementations use for observability. This package
// includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - RegistryLogger with contextual helpers for store and scope attribution
//   - NoOpLogger for silent operation (testing, embedded library defaults)
//
// Usage:
//
//	logger := logging.NewLogger(nil)
//	store := registry.NewInMemoryStore[scope.Scope, string](scope.ParentOf, func(o *registry.Options) {
//		o.Logger = logger
//	})
//
// The design intentionally keeps the interface minimal to avoid vendor
// lock-in while supporting structured logging where available.
package logging
