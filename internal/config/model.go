package config

import (
	"github.com/vk/recordrt/internal/shape"
)

// Model is the unified representation of all loaded record literals, in
// declaration order.
type Model struct {
	Literals []*Literal
}

// Literal describes one record literal.
type Literal struct {
	// Name is the block label for top-level literals and a dotted path
	// (e.g. "point.$2") for nested ones.
	Name       string
	Key        shape.Key
	Positional int
	Labels     []string
	// Values holds positional elements followed by named elements in label
	// order. Each value is nil, bool, int64, float64, string or *Literal.
	Values []any
}

// Len returns the number of elements in the literal.
func (l *Literal) Len() int {
	return l.Positional + len(l.Labels)
}
