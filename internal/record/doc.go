// Package record implements record values: immutable, structurally compared
// tuples of positional and named elements.
//
// Records are built by a Factory from a shape key, a positional count, the
// sorted named labels and the values in canonical order (positional first,
// then named in label order). The factory resolves the canonical shape and
// accessor table for the key, so two records of the same shape always share
// the same *shape.Shape and *recordtype.Type.
//
// # Value Semantics
//
// Equal compares shapes by identity and elements by position. Hash is
// consistent with Equal, computed lazily and memoized. String renders the
// record with each element's own formatter and is memoized as well;
// StringSafe never panics and is intended for diagnostics.
//
// # Ownership
//
// A record takes ownership of the values slice passed to the factory. The
// caller must not modify it afterwards.
package record
