package record

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vk/recordrt/internal/safefmt"
)

// safePrefix marks safe-mode renderings.
const safePrefix = "Record "

// ErrCyclicValue is the panic value of String when the record reaches itself
// through the elements plain rendering descends into.
var ErrCyclicValue = errors.New("record: value refers back to itself")

// String renders the record as "(e0, e1, name: eN)", formatting every element
// with its own String or Error method. The result is cached. A panic raised
// by an element's formatter propagates and nothing is cached. A record that
// contains itself, directly or through slices, arrays, maps or structs,
// panics with ErrCyclicValue.
func (r *Record) String() string {
	if s := r.plain.Load(); s != nil {
		return *s
	}
	if newCycleCheck().record(r) {
		panic(ErrCyclicValue)
	}
	s := r.layout(plainElement)
	r.plain.CompareAndSwap(nil, &s)
	return *r.plain.Load()
}

// StringSafe renders the record for diagnostics. It never panics, never calls
// element String methods and substitutes a placeholder for elements that
// cannot be rendered. The result is not cached.
func (r *Record) StringSafe() string {
	return safefmt.Stringify(r)
}

// RenderSafe implements safefmt.SafeRenderer.
func (r *Record) RenderSafe(s *safefmt.State) string {
	return safePrefix + r.layout(s.Stringify)
}

// TryString renders the record like String but converts a panic raised by an
// element formatter into a *PrintError.
func (r *Record) TryString() (out string, err error) {
	defer func() {
		if p := recover(); p != nil {
			out = ""
			err = newPrintError(r, p)
		}
	}()
	return r.String(), nil
}

// Format implements fmt.Formatter. %v and %s use String, %+v uses
// StringSafe and %q quotes String.
func (r *Record) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v':
		if f.Flag('+') {
			io.WriteString(f, r.StringSafe())
			return
		}
		io.WriteString(f, r.String())
	case 's':
		io.WriteString(f, r.String())
	case 'q':
		fmt.Fprintf(f, "%q", r.String())
	default:
		fmt.Fprintf(f, "%%!%c(%s)", verb, r.StringSafe())
	}
}

func (r *Record) layout(element func(any) string) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, v := range r.values {
		if i > 0 {
			sb.WriteString(", ")
		}
		if r.shape.IsNamed(i) {
			sb.WriteString(r.shape.Label(i))
			sb.WriteString(": ")
		}
		sb.WriteString(element(v))
	}
	sb.WriteByte(')')
	return sb.String()
}

func plainElement(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	}
	return fmt.Sprint(v)
}

// PrintError reports that an element of a record failed to render in plain
// mode.
type PrintError struct {
	// Record is the safe rendering of the record that failed to print.
	Record string
	// Cause is the value the element formatter panicked with.
	Cause any
}

func newPrintError(r *Record, cause any) *PrintError {
	return &PrintError{Record: r.StringSafe(), Cause: cause}
}

func (e *PrintError) Error() string {
	return fmt.Sprintf("record: failed to print %s: %s", e.Record, describe(e.Cause))
}

// Unwrap returns the cause when the element formatter panicked with an error.
func (e *PrintError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}

// describe renders a panic value, falling back to safe mode when its own
// Error method panics as well.
func describe(cause any) (out string) {
	defer func() {
		if recover() != nil {
			out = safefmt.Stringify(cause)
		}
	}()
	if err, ok := cause.(error); ok {
		return err.Error()
	}
	if s, ok := cause.(string); ok {
		return s
	}
	return safefmt.Stringify(cause)
}
