package record

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/vk/recordrt/internal/recordtype"
	"github.com/vk/recordrt/internal/shape"
)

// Factory builds records. It is safe for concurrent use.
type Factory struct {
	shapes    *shape.Registry
	types     *recordtype.Registry
	logger    *slog.Logger
	checkKeys bool
}

// Option configures a Factory.
type Option func(*Factory)

// WithShapes sets the shape registry. It is ignored when WithTypes is also
// given, since a type registry is bound to its own shape registry.
func WithShapes(shapes *shape.Registry) Option {
	return func(f *Factory) { f.shapes = shapes }
}

// WithTypes sets the record type registry and, through it, the shape
// registry.
func WithTypes(types *recordtype.Registry) Option {
	return func(f *Factory) { f.types = types }
}

// WithLogger sets the logger used for registries created by the factory.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Factory) { f.logger = logger }
}

// WithKeyChecks makes MakeRecord verify that the key, positional count,
// labels and values agree, panicking on a mismatch. Checks are off by
// default.
func WithKeyChecks(enabled bool) Option {
	return func(f *Factory) { f.checkKeys = enabled }
}

// NewFactory creates a factory. Without options it uses the process-wide
// registries.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	if f.types == nil {
		if f.shapes == nil {
			f.types = recordtype.Default()
		} else {
			f.types = recordtype.NewRegistry(f.shapes, f.logger)
		}
	}
	f.shapes = f.types.Shapes()
	return f
}

// Shapes returns the factory's shape registry.
func (f *Factory) Shapes() *shape.Registry { return f.shapes }

// Types returns the factory's record type registry.
func (f *Factory) Types() *recordtype.Registry { return f.types }

// MakeRecord builds a record of the shape identified by key. values must hold
// the positional elements followed by the named elements in label order; the
// record takes ownership of the slice.
//
// key, positional and labels must describe the same shape. This is not
// verified unless the factory was built with WithKeyChecks(true).
func (f *Factory) MakeRecord(key shape.Key, positional int, labels []string, values []any) *Record {
	if f.checkKeys {
		if err := checkKey(key, positional, labels, values); err != nil {
			panic(err)
		}
	}
	s := f.shapes.Resolve(key, positional, labels)
	t := f.types.Resolve(key, positional, labels)
	return &Record{shape: s, typ: t, values: values}
}

func checkKey(key shape.Key, positional int, labels []string, values []any) error {
	if positional < 0 {
		return fmt.Errorf("record: negative positional count %d for key %q", positional, key)
	}
	if !sort.StringsAreSorted(labels) {
		return fmt.Errorf("record: labels %q for key %q are not sorted", labels, key)
	}
	for i, l := range labels {
		if err := shape.ValidateLabel(l); err != nil {
			return fmt.Errorf("record: key %q: %w", key, err)
		}
		if i > 0 && l == labels[i-1] {
			return fmt.Errorf("record: duplicate label %q for key %q", l, key)
		}
	}
	if want := shape.DeriveKey(positional, labels); want != key {
		return fmt.Errorf("record: key %q does not match shape %q", key, want)
	}
	if n := positional + len(labels); len(values) != n {
		return fmt.Errorf("record: key %q needs %d values, got %d", key, n, len(values))
	}
	return nil
}

var defaultFactory = sync.OnceValue(func() *Factory { return NewFactory() })

// MakeRecord builds a record with the process-wide registries.
func MakeRecord(key shape.Key, positional int, labels []string, values []any) *Record {
	return defaultFactory().MakeRecord(key, positional, labels, values)
}
