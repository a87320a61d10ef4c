// Package domain is the shared kernel for the workspace/identity model:
// typed identifiers, validated value objects, the aggregate-root base with
// its domain-event buffer, and the generic specification combinators.
// Everything here is pure and in-memory; persistence and transport live
// behind the application ports.
package domain
