package safefmt

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
)

const (
	// Placeholder replaces a value that could not be rendered.
	Placeholder = "<unprintable value>"
	// Cycle replaces a reference to a value that is already being rendered.
	Cycle = "<cycle>"
	// Elided replaces values nested deeper than the depth limit.
	Elided = "..."

	// DefaultMaxDepth bounds nesting for Stringify.
	DefaultMaxDepth = 8
	// DefaultMaxItems bounds how many elements of a slice, array or map are
	// rendered.
	DefaultMaxItems = 64
)

// SafeRenderer is implemented by values that render themselves without
// calling into user-overridable formatting. Children must be rendered
// through s so that depth and cycle tracking carry across.
type SafeRenderer interface {
	RenderSafe(s *State) string
}

var safeRendererType = reflect.TypeOf((*SafeRenderer)(nil)).Elem()

// State tracks one Stringify call.
type State struct {
	maxDepth int
	maxItems int
	depth    int
	active   map[uintptr]struct{}
}

// NewState returns a State with the given limits. Non-positive limits fall
// back to the defaults.
func NewState(maxDepth, maxItems int) *State {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	return &State{
		maxDepth: maxDepth,
		maxItems: maxItems,
		active:   make(map[uintptr]struct{}),
	}
}

// Stringify renders v with the default limits. It never panics.
func Stringify(v any) string {
	return NewState(0, 0).Stringify(v)
}

// Stringify renders v one level below the current depth.
func (s *State) Stringify(v any) string {
	return s.value(reflect.ValueOf(v))
}

func (s *State) value(rv reflect.Value) (out string) {
	if s.depth >= s.maxDepth {
		return Elided
	}
	s.depth++
	defer func() { s.depth-- }()
	defer func() {
		if r := recover(); r != nil {
			out = Placeholder
		}
	}()
	return s.render(rv)
}

// enter marks a reference as being rendered. It reports false when the
// reference is already on the stack.
func (s *State) enter(p uintptr) bool {
	if p == 0 {
		return true
	}
	if _, ok := s.active[p]; ok {
		return false
	}
	s.active[p] = struct{}{}
	return true
}

func (s *State) leave(p uintptr) {
	delete(s.active, p)
}

func (s *State) render(rv reflect.Value) string {
	if !rv.IsValid() {
		return "null"
	}

	if rv.CanInterface() && rv.Type().Implements(safeRendererType) {
		if isNilRef(rv) {
			return "null"
		}
		p := refOf(rv)
		if !s.enter(p) {
			return Cycle
		}
		defer s.leave(p)
		return rv.Interface().(SafeRenderer).RenderSafe(s)
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	case reflect.Complex64:
		return strconv.FormatComplex(rv.Complex(), 'g', -1, 64)
	case reflect.Complex128:
		return strconv.FormatComplex(rv.Complex(), 'g', -1, 128)
	case reflect.Interface:
		if rv.IsNil() {
			return "null"
		}
		return s.render(rv.Elem())
	case reflect.Pointer:
		if rv.IsNil() {
			return "null"
		}
		p := rv.Pointer()
		if !s.enter(p) {
			return Cycle
		}
		defer s.leave(p)
		return s.value(rv.Elem())
	case reflect.Slice:
		if rv.IsNil() {
			return "[]"
		}
		p := rv.Pointer()
		if !s.enter(p) {
			return Cycle
		}
		defer s.leave(p)
		return s.list(rv)
	case reflect.Array:
		return s.list(rv)
	case reflect.Map:
		if rv.IsNil() {
			return "{}"
		}
		p := rv.Pointer()
		if !s.enter(p) {
			return Cycle
		}
		defer s.leave(p)
		return s.dict(rv)
	case reflect.Struct:
		return s.structure(rv)
	default:
		// Func, Chan and UnsafePointer have no useful textual form.
		return "<" + rv.Type().String() + ">"
	}
}

func (s *State) list(rv reflect.Value) string {
	var sb strings.Builder
	sb.WriteByte('[')
	n := rv.Len()
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		if i == s.maxItems {
			sb.WriteString(Elided)
			break
		}
		sb.WriteString(s.value(rv.Index(i)))
	}
	sb.WriteByte(']')
	return sb.String()
}

func (s *State) dict(rv reflect.Value) string {
	type entry struct{ k, v string }
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, entry{k: s.value(iter.Key()), v: s.value(iter.Value())})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].k < entries[j].k })

	var sb strings.Builder
	sb.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		if i == s.maxItems {
			sb.WriteString(Elided)
			break
		}
		sb.WriteString(e.k)
		sb.WriteString(": ")
		sb.WriteString(e.v)
	}
	sb.WriteByte('}')
	return sb.String()
}

func (s *State) structure(rv reflect.Value) string {
	t := rv.Type()
	var sb strings.Builder
	sb.WriteString(t.String())
	sb.WriteByte('{')
	for i := 0; i < t.NumField(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.Field(i).Name)
		sb.WriteString(": ")
		sb.WriteString(s.value(rv.Field(i)))
	}
	sb.WriteByte('}')
	return sb.String()
}

func isNilRef(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func refOf(rv reflect.Value) uintptr {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		return rv.Pointer()
	}
	return 0
}
