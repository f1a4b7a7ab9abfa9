package shape

import (
	"encoding/binary"

	"github.com/zeebo/blake3"
)

// domainKey separates shape digests from any other BLAKE3 keyed hash in the
// process. Changing it changes every record hash.
var domainKey = [32]byte{
	'r', 'e', 'c', 'o', 'r', 'd', 'r', 't', '.', 's', 'h', 'a', 'p', 'e',
}

// Shape describes the arity and named-field layout of a record. A Shape is
// immutable once built.
type Shape struct {
	key        Key
	positional int
	named      []string

	// labels holds the accessor names in value order ($1..$n, then named).
	labels  []string
	indices map[string]int
	hash    uint64
}

// New builds a Shape. Callers that need canonical identity should go through
// a Registry instead. labels must already be sorted and unique, and each must
// pass ValidateLabel.
func New(key Key, positional int, labels []string) *Shape {
	named := append([]string(nil), labels...)

	all := make([]string, 0, positional+len(named))
	indices := make(map[string]int, positional+len(named))
	for i := 0; i < positional; i++ {
		l := PositionalLabel(i)
		all = append(all, l)
		indices[l] = i
	}
	for j, l := range named {
		all = append(all, l)
		indices[l] = positional + j
	}

	return &Shape{
		key:        key,
		positional: positional,
		named:      named,
		labels:     all,
		indices:    indices,
		hash:       digest(key),
	}
}

func digest(key Key) uint64 {
	h, err := blake3.NewKeyed(domainKey[:])
	if err != nil {
		// Only returned for keys that are not 32 bytes long.
		panic(err)
	}
	h.Write([]byte(key))
	return binary.LittleEndian.Uint64(h.Sum(nil)[:8])
}

// Key returns the key the shape was registered under.
func (s *Shape) Key() Key { return s.key }

// PositionalCount returns the number of unlabeled leading elements.
func (s *Shape) PositionalCount() int { return s.positional }

// NamedLabels returns a copy of the sorted named labels.
func (s *Shape) NamedLabels() []string {
	return append([]string(nil), s.named...)
}

// Len returns the total number of elements of a record with this shape.
func (s *Shape) Len() int { return s.positional + len(s.named) }

// Labels returns a copy of every accessor name in value order.
func (s *Shape) Labels() []string {
	return append([]string(nil), s.labels...)
}

// Label returns the accessor name for the element at index i.
func (s *Shape) Label(i int) string { return s.labels[i] }

// IsNamed reports whether the element at index i carries a label.
func (s *Shape) IsNamed(i int) bool { return i >= s.positional }

// IndexOf returns the value index of the element named label. Positional
// elements are addressed as "$1", "$2", ...
func (s *Shape) IndexOf(label string) (int, bool) {
	i, ok := s.indices[label]
	return i, ok
}

// Hash returns a digest of the shape key. It is stable across processes.
func (s *Shape) Hash() uint64 { return s.hash }

// String renders the shape as its key.
func (s *Shape) String() string { return string(s.key) }
