package record

import (
	"fmt"
	"reflect"
)

// refKey identifies a reference-like value on the current rendering path.
// Sub-slices share a data pointer, so the length is part of the key.
type refKey struct {
	ptr uintptr
	typ reflect.Type
	len int
}

// cycleCheck looks for a record that reaches itself through the values that
// plain rendering hands to fmt. It follows the same paths fmt does with %v:
// slices, arrays, maps, struct fields, interfaces and a top-level pointer. It
// stops at Stringer, error and Formatter values other than records, since
// those render themselves.
type cycleCheck struct {
	path map[refKey]struct{}
	done map[refKey]struct{}
}

func newCycleCheck() *cycleCheck {
	return &cycleCheck{
		path: make(map[refKey]struct{}),
		done: make(map[refKey]struct{}),
	}
}

// node visits a reference once per check and reports a cycle when the
// reference is already on the path.
func (c *cycleCheck) node(k refKey, children func() bool) bool {
	if _, ok := c.path[k]; ok {
		return true
	}
	if _, ok := c.done[k]; ok {
		return false
	}
	c.path[k] = struct{}{}
	cyclic := children()
	delete(c.path, k)
	c.done[k] = struct{}{}
	return cyclic
}

func (c *cycleCheck) record(r *Record) bool {
	rv := reflect.ValueOf(r)
	return c.node(refKey{ptr: rv.Pointer(), typ: rv.Type()}, func() bool {
		for _, v := range r.values {
			if c.element(v) {
				return true
			}
		}
		return false
	})
}

// element follows v the way plainElement renders it.
func (c *cycleCheck) element(v any) bool {
	if v == nil {
		return false
	}
	return c.value(reflect.ValueOf(v), true)
}

func (c *cycleCheck) value(rv reflect.Value, top bool) bool {
	for rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return false
	}
	if rv.CanInterface() {
		switch x := rv.Interface().(type) {
		case *Record:
			if x == nil {
				return false
			}
			return c.record(x)
		case fmt.Formatter, fmt.Stringer, error:
			return false
		}
	}

	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return false
		}
		return c.node(refKey{ptr: rv.Pointer(), typ: rv.Type(), len: rv.Len()}, func() bool {
			return c.elements(rv)
		})
	case reflect.Array:
		return c.elements(rv)
	case reflect.Map:
		if rv.IsNil() {
			return false
		}
		return c.node(refKey{ptr: rv.Pointer(), typ: rv.Type()}, func() bool {
			iter := rv.MapRange()
			for iter.Next() {
				if c.value(iter.Key(), false) || c.value(iter.Value(), false) {
					return true
				}
			}
			return false
		})
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			if c.value(rv.Field(i), false) {
				return true
			}
		}
		return false
	case reflect.Pointer:
		// fmt only prints the pointee of a top-level pointer.
		if !top || rv.IsNil() {
			return false
		}
		switch rv.Elem().Kind() {
		case reflect.Array, reflect.Slice, reflect.Struct, reflect.Map:
			return c.node(refKey{ptr: rv.Pointer(), typ: rv.Type()}, func() bool {
				return c.value(rv.Elem(), false)
			})
		}
		return false
	default:
		return false
	}
}

func (c *cycleCheck) elements(rv reflect.Value) bool {
	for i := 0; i < rv.Len(); i++ {
		if c.value(rv.Index(i), false) {
			return true
		}
	}
	return false
}
