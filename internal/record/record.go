package record

import (
	"iter"
	"sync/atomic"

	"github.com/vk/recordrt/internal/recordtype"
	"github.com/vk/recordrt/internal/shape"
)

// Record is an immutable tuple value. Use a Factory to build one.
type Record struct {
	shape  *shape.Shape
	typ    *recordtype.Type
	values []any

	hash  atomic.Pointer[uint64]
	plain atomic.Pointer[string]
}

// Shape returns the canonical shape of the record.
func (r *Record) Shape() *shape.Shape { return r.shape }

// Type returns the record's accessor table.
func (r *Record) Type() *recordtype.Type { return r.typ }

// Len returns the number of elements.
func (r *Record) Len() int { return len(r.values) }

// At returns the element at value index i.
func (r *Record) At(i int) any { return r.values[i] }

// Field returns the element named label. Positional elements are addressed
// as "$1", "$2", ...
func (r *Record) Field(label string) (any, bool) {
	i, ok := r.shape.IndexOf(label)
	if !ok {
		return nil, false
	}
	return r.values[i], true
}

// Fields iterates over accessor names and element values in value order.
func (r *Record) Fields() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for i, v := range r.values {
			if !yield(r.shape.Label(i), v) {
				return
			}
		}
	}
}

// Values returns a copy of the element values in canonical order.
func (r *Record) Values() []any {
	return append([]any(nil), r.values...)
}
