package recordtype

import (
	"github.com/vk/recordrt/internal/shape"
)

// Accessor is a single read-only field of a record type.
type Accessor struct {
	Name  string
	Index int
}

// Type is the accessor table of one record shape.
type Type struct {
	shape     *shape.Shape
	accessors []Accessor
}

func newType(s *shape.Shape) *Type {
	accessors := make([]Accessor, s.Len())
	for i := range accessors {
		accessors[i] = Accessor{Name: s.Label(i), Index: i}
	}
	return &Type{shape: s, accessors: accessors}
}

// Shape returns the canonical shape this type was built for.
func (t *Type) Shape() *shape.Shape { return t.shape }

// Key returns the shape key the type is registered under.
func (t *Type) Key() shape.Key { return t.shape.Key() }

// Accessors returns every accessor in value order.
func (t *Type) Accessors() []Accessor {
	return append([]Accessor(nil), t.accessors...)
}

// NumAccessors returns the number of accessors.
func (t *Type) NumAccessors() int { return len(t.accessors) }

// Accessor looks up an accessor by name.
func (t *Type) Accessor(name string) (Accessor, bool) {
	i, ok := t.shape.IndexOf(name)
	if !ok {
		return Accessor{}, false
	}
	return t.accessors[i], true
}

func (t *Type) String() string {
	return "record<" + string(t.shape.Key()) + ">"
}
