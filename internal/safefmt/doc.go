// Package safefmt renders arbitrary Go values for diagnostics without ever
// panicking or recursing forever.
//
// Stringify never calls String, Error or Format methods, since those may be
// user code that panics or loops. It walks values with reflection instead,
// stops at a fixed depth, reports reference cycles, and substitutes a
// placeholder for anything that fails to render. Types that know how to
// render themselves safely implement SafeRenderer.
package safefmt
