package record

import (
	"reflect"
)

// Equaler is implemented by element values that define their own equality.
// Implementations should also implement Hasher, otherwise the value only
// contributes its type to a record's hash.
type Equaler interface {
	Equal(other any) bool
}

var recordType = reflect.TypeOf(Record{})

// Equal reports whether other is a record of the same shape whose elements
// are pairwise equal. It returns false for anything that is not a *Record.
// Cycles through slices, maps and pointers terminate; a record holding
// itself as a direct element does not.
func (r *Record) Equal(other any) bool {
	o, ok := other.(*Record)
	if !ok {
		return false
	}
	if r == o {
		return true
	}
	if r == nil || o == nil {
		return false
	}
	if r.shape != o.shape {
		return false
	}
	if len(r.values) != len(o.values) {
		return false
	}
	for i := range r.values {
		if !elementsEqual(r.values[i], o.values[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether a is a record equal to b.
func Equal(a, b any) bool {
	r, ok := a.(*Record)
	if !ok {
		return false
	}
	return r.Equal(b)
}

func elementsEqual(a, b any) bool {
	if e, ok := a.(Equaler); ok {
		return e.Equal(b)
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	w := equalWalker{}
	return w.equal(reflect.ValueOf(a), reflect.ValueOf(b))
}

// visit is a pair of references already being compared.
type visit struct {
	a, b uintptr
	typ  reflect.Type
}

// equalWalker compares nested values. Unlike reflect.DeepEqual it routes
// records and Equaler values through Equal at every level, so record caches
// never take part in a comparison.
type equalWalker struct {
	seen map[visit]struct{}
}

// enter reports whether the pair is already being compared further up.
func (w *equalWalker) enter(a, b reflect.Value) bool {
	if w.seen == nil {
		w.seen = make(map[visit]struct{})
	}
	v := visit{a: a.Pointer(), b: b.Pointer(), typ: a.Type()}
	if _, ok := w.seen[v]; ok {
		return true
	}
	w.seen[v] = struct{}{}
	return false
}

func (w *equalWalker) equal(a, b reflect.Value) bool {
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}
	if a.Type() != b.Type() {
		return false
	}
	if a.CanInterface() && b.CanInterface() {
		if e, ok := a.Interface().(Equaler); ok {
			return e.Equal(b.Interface())
		}
	}

	switch a.Kind() {
	case reflect.Bool:
		return a.Bool() == b.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() == b.Uint()
	case reflect.Float32, reflect.Float64:
		return a.Float() == b.Float()
	case reflect.Complex64, reflect.Complex128:
		return a.Complex() == b.Complex()
	case reflect.String:
		return a.String() == b.String()
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() == b.IsNil()
		}
		return w.equal(a.Elem(), b.Elem())
	case reflect.Pointer:
		if a.Pointer() == b.Pointer() {
			return true
		}
		if a.IsNil() || b.IsNil() {
			return false
		}
		if w.enter(a, b) {
			return true
		}
		return w.equal(a.Elem(), b.Elem())
	case reflect.Slice:
		if a.IsNil() != b.IsNil() || a.Len() != b.Len() {
			return false
		}
		if a.Pointer() == b.Pointer() {
			return true
		}
		if w.enter(a, b) {
			return true
		}
		return w.elements(a, b)
	case reflect.Array:
		return w.elements(a, b)
	case reflect.Map:
		if a.IsNil() != b.IsNil() || a.Len() != b.Len() {
			return false
		}
		if a.Pointer() == b.Pointer() {
			return true
		}
		if w.enter(a, b) {
			return true
		}
		iter := a.MapRange()
		for iter.Next() {
			bv := b.MapIndex(iter.Key())
			if !bv.IsValid() || !w.equal(iter.Value(), bv) {
				return false
			}
		}
		return true
	case reflect.Struct:
		if a.Type() == recordType {
			// Reached through an unexported field, where Equal cannot be
			// called: compare shape and values only.
			return a.FieldByName("shape").Pointer() == b.FieldByName("shape").Pointer() &&
				w.equal(a.FieldByName("values"), b.FieldByName("values"))
		}
		for i := 0; i < a.NumField(); i++ {
			if !w.equal(a.Field(i), b.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Func:
		return a.IsNil() && b.IsNil()
	default:
		// Chan and UnsafePointer compare by identity.
		return a.Pointer() == b.Pointer()
	}
}

func (w *equalWalker) elements(a, b reflect.Value) bool {
	for i := 0; i < a.Len(); i++ {
		if !w.equal(a.Index(i), b.Index(i)) {
			return false
		}
	}
	return true
}
