package recordtype

import (
	"log/slog"
	"sync"

	"github.com/vk/recordrt/internal/shape"
)

// Registry interns record types by shape key. It is safe for concurrent use.
type Registry struct {
	logger *slog.Logger
	shapes *shape.Registry
	types  sync.Map // Key: shape.Key, Value: *Type
}

// NewRegistry creates an empty registry that attaches shapes from shapes.
// Nil arguments fall back to shape.Default() and slog.Default().
func NewRegistry(shapes *shape.Registry, logger *slog.Logger) *Registry {
	if shapes == nil {
		shapes = shape.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{logger: logger, shapes: shapes}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry, bound to shape.Default().
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry(shape.Default(), nil)
	})
	return defaultRegistry
}

// Shapes returns the shape registry backing this registry.
func (r *Registry) Shapes() *shape.Registry { return r.shapes }

// Resolve returns the canonical record type for key, building its accessor
// table on first use. The same key, positional and labels must be passed to
// the shape registry; they are not re-validated on a hit.
func (r *Registry) Resolve(key shape.Key, positional int, labels []string) *Type {
	if t, ok := r.types.Load(key); ok {
		return t.(*Type)
	}
	s := r.shapes.Resolve(key, positional, labels)
	actual, loaded := r.types.LoadOrStore(key, newType(s))
	if !loaded {
		r.logger.Debug("Registered record type.", "key", key, "accessors", s.Labels())
	}
	return actual.(*Type)
}

// Len returns the number of registered record types.
func (r *Registry) Len() int {
	n := 0
	r.types.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
