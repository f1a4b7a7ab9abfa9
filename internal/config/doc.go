// Package config defines the format-agnostic model of a record literal file
// and the Loader interface that front ends implement to produce it.
//
// A Literal carries exactly what the record factory needs: the shape key a
// compiler would have computed, the positional count, the sorted named
// labels and the element values in canonical order. Element values are Go
// primitives, nil, or nested *Literal values.
package config
