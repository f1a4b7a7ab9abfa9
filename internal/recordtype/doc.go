// Package recordtype provides the per-shape accessor table shared by every
// record of that shape.
//
// Instead of synthesizing a distinct Go type per shape, a Type lists the
// read-only accessors a record of the shape exposes: "$1", "$2", ... for
// positional elements, followed by the named labels in sorted order. Each
// accessor maps to a fixed index in the record's value sequence, so field
// access by name is a single table lookup.
package recordtype
