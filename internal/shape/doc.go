// Package shape provides the canonical descriptor of a record's layout: how
// many positional elements it has and which named labels follow them.
//
// # Canonical Identity
//
// Shapes are interned by their Key in a Registry. Once a Shape has been
// resolved for a key, every later resolution of that key yields the same
// *Shape, so callers may compare shapes with `==`.
//
// # Lifetime
//
// Registries only grow. Entries are created on first use and are never
// evicted, on the assumption that a program only ever has a small, bounded
// number of distinct record shapes.
package shape
