// Package core provides the foundational domain types and interfaces of the
// scoped manipulation registry. It defines the core abstractions for:
//
//   - Records (manipulation payloads tagged with their owning scope)
//   - Ancestry visibility (which scope's records a requester may see)
//   - Producer / Consumer / Lifecycle boundary contracts for the external
//     systems that feed, read and retire registry state
//   - Result sets returned from consolidated queries
//
// Scopes themselves are owned by the embedding loading system and stay opaque
// here: the registry sees them only as comparable pointers plus an injected
// parent relation (ParentFunc). The package intentionally keeps implementation
// concerns (the concurrent store, weak bookkeeping, logging) out of scope,
// exposing small interfaces so backends can be swapped without touching
// calling code.
package core
