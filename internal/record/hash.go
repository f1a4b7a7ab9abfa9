package record

import (
	"encoding/binary"
	"math"
	"reflect"

	"github.com/zeebo/blake3"
)

// Hasher is implemented by element values that define their own hash. It
// must agree with the value's Equaler implementation.
type Hasher interface {
	Hash() uint64
}

// recordDomainKey keys the BLAKE3 hash of record contents.
var recordDomainKey = [32]byte{
	'r', 'e', 'c', 'o', 'r', 'd', 'r', 't', '.', 'r', 'e', 'c', 'o', 'r', 'd',
}

// Element tags written ahead of each element encoding.
const (
	tagNil byte = iota
	tagHasher
	tagBool
	tagInt
	tagUint
	tagFloat
	tagComplex
	tagString
	tagStruct
	tagArray
	tagOpaque
)

// Hash returns a hash of the record's shape and elements. Records that are
// Equal have the same hash. The value is computed on first use and cached.
// A nil record hashes to 0. A record must not hold itself as a direct
// element.
func (r *Record) Hash() uint64 {
	if r == nil {
		return 0
	}
	if h := r.hash.Load(); h != nil {
		return *h
	}
	h := r.computeHash()
	r.hash.CompareAndSwap(nil, &h)
	return *r.hash.Load()
}

func (r *Record) computeHash() uint64 {
	h, err := blake3.NewKeyed(recordDomainKey[:])
	if err != nil {
		panic(err)
	}
	w := &hashWriter{h: h}
	w.uint64(r.shape.Hash())
	for _, v := range r.values {
		w.element(v)
	}
	return binary.LittleEndian.Uint64(h.Sum(nil)[:8])
}

type hashWriter struct {
	h   *blake3.Hasher
	buf [8]byte
}

func (w *hashWriter) tag(t byte) {
	w.h.Write([]byte{t})
}

func (w *hashWriter) uint64(v uint64) {
	binary.LittleEndian.PutUint64(w.buf[:8], v)
	w.h.Write(w.buf[:8])
}

func (w *hashWriter) element(v any) {
	if v == nil {
		w.tag(tagNil)
		return
	}
	if hv, ok := v.(Hasher); ok {
		w.tag(tagHasher)
		w.uint64(hv.Hash())
		return
	}
	if _, ok := v.(Equaler); ok {
		// Custom equality without a matching hash: only the type can be
		// trusted to agree with Equal.
		w.tag(tagOpaque)
		w.h.Write([]byte(reflect.TypeOf(v).String()))
		return
	}
	w.value(reflect.ValueOf(v))
}

// value writes an encoding of rv that agrees with == for comparable values
// and with reflect.DeepEqual for the rest. Reference kinds only contribute
// their kind, since the two notions of equality disagree on them.
func (w *hashWriter) value(rv reflect.Value) {
	switch rv.Kind() {
	case reflect.Bool:
		w.tag(tagBool)
		if rv.Bool() {
			w.uint64(1)
		} else {
			w.uint64(0)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		w.tag(tagInt)
		w.uint64(uint64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		w.tag(tagUint)
		w.uint64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		w.tag(tagFloat)
		w.uint64(floatBits(rv.Float()))
	case reflect.Complex64, reflect.Complex128:
		c := rv.Complex()
		w.tag(tagComplex)
		w.uint64(floatBits(real(c)))
		w.uint64(floatBits(imag(c)))
	case reflect.String:
		s := rv.String()
		w.tag(tagString)
		w.uint64(uint64(len(s)))
		w.h.Write([]byte(s))
	case reflect.Struct:
		w.tag(tagStruct)
		for i := 0; i < rv.NumField(); i++ {
			w.field(rv.Field(i))
		}
	case reflect.Array:
		w.tag(tagArray)
		w.uint64(uint64(rv.Len()))
		for i := 0; i < rv.Len(); i++ {
			w.field(rv.Index(i))
		}
	default:
		w.tag(tagOpaque)
		w.uint64(uint64(rv.Kind()))
	}
}

// field hashes a nested value. Interfaces are unwrapped so the dynamic value
// decides the encoding, and exported values take the same Hasher and Equaler
// paths as top-level elements, matching how Equal walks nested values.
func (w *hashWriter) field(rv reflect.Value) {
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			w.tag(tagNil)
			return
		}
		rv = rv.Elem()
	}
	if rv.CanInterface() {
		w.element(rv.Interface())
		return
	}
	w.value(rv)
}

// floatBits maps equal floats to equal bits; -0 and +0 compare equal.
func floatBits(f float64) uint64 {
	if f == 0 {
		return 0
	}
	return math.Float64bits(f)
}
