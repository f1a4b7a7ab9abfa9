package shape

import (
	"fmt"
	"strconv"
	"strings"
)

// Key is the canonical identifier of a shape. Its textual form is the total
// element count, a semicolon, and every named label followed by a comma:
//
//	(1, "a")            -> "2;"
//	(1, b: 2)           -> "2;b,"
//	(a: 1, b: 2, true)  -> "3;a,b,"
//
// Front ends compute keys ahead of time. Registries treat a key as an opaque
// cache key and never re-derive it.
type Key string

// DeriveKey computes the key for a shape with the given positional count
// and sorted named labels. The result identifies the shape only when every
// label passes ValidateLabel.
func DeriveKey(positional int, labels []string) Key {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(positional + len(labels)))
	sb.WriteByte(';')
	for _, l := range labels {
		sb.WriteString(l)
		sb.WriteByte(',')
	}
	return Key(sb.String())
}

// String returns the key in its textual form.
func (k Key) String() string {
	return string(k)
}

// PositionalLabel returns the accessor name of the zero-based positional
// element i, e.g. "$1" for i == 0.
func PositionalLabel(i int) string {
	return "$" + strconv.Itoa(i+1)
}

// ValidateLabel reports whether label can name a record field. A label must
// be non-empty, must not contain the key separators ';' and ',' and must not
// start with '$', which is reserved for positional accessors.
func ValidateLabel(label string) error {
	switch {
	case label == "":
		return fmt.Errorf("invalid label %q: must not be empty", label)
	case strings.HasPrefix(label, "$"):
		return fmt.Errorf("invalid label %q: must not start with '$'", label)
	case strings.ContainsAny(label, ";,"):
		return fmt.Errorf("invalid label %q: must not contain ';' or ','", label)
	}
	return nil
}
